//go:build linux

package platform

func newPlatform(opts Options) Platform {
	return newZenityPicker(opts.ZenityPath, opts.Prompt, execRunner)
}
