//go:build darwin

package platform

func newPlatform(opts Options) Platform {
	return newAppleScriptPicker(opts.Prompt, execRunner)
}
