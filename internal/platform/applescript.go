package platform

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
)

// utiPattern validates uniform type identifiers before they are spliced into a script
var utiPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.-]*$`)

// appleScriptPicker shows the macOS open panel through osascript.
// The panel imports by reference: it only reports the chosen path.
type appleScriptPicker struct {
	prompt string
	run    commandRunner
}

func newAppleScriptPicker(prompt string, run commandRunner) *appleScriptPicker {
	return &appleScriptPicker{prompt: prompt, run: run}
}

// chooseFileScript builds the AppleScript for the open panel.
// Returns format: POSIX path of (choose file of type {"com.adobe.pdf"} with prompt "...")
func chooseFileScript(utis []string, prompt string) (string, error) {
	if len(utis) == 0 {
		return "", fmt.Errorf("no type filters")
	}

	quoted := make([]string, 0, len(utis))
	for _, uti := range utis {
		if !utiPattern.MatchString(uti) {
			return "", fmt.Errorf("invalid type identifier %q", uti)
		}
		quoted = append(quoted, `"`+uti+`"`)
	}

	script := fmt.Sprintf("POSIX path of (choose file of type {%s}", strings.Join(quoted, ", "))
	if prompt != "" {
		script += " with prompt " + appleScriptString(prompt)
	}
	return script + ")", nil
}

// appleScriptString quotes s as an AppleScript string literal
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return `"` + s + `"`
}

// PickDocument shows the open panel filtered to utis
func (p *appleScriptPicker) PickDocument(ctx context.Context, utis []string) (string, error) {
	script, err := chooseFileScript(utis, p.prompt)
	if err != nil {
		return "", err
	}

	res, err := p.run(ctx, "osascript", "-e", script)
	if err != nil {
		return "", fmt.Errorf("failed to run osascript: %w", err)
	}

	if res.ExitCode != 0 {
		// "execution error: User canceled. (-128)"
		if bytes.Contains(res.Stderr, []byte("(-128)")) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("osascript exited with %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}

	return validatePath(strings.TrimSpace(string(res.Stdout)))
}
