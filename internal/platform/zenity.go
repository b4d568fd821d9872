package platform

import (
	"context"
	"fmt"
	"strings"
)

// zenityFilter describes the glob patterns standing in for one UTI
type zenityFilter struct {
	Label    string
	Patterns []string
}

// zenityFilters maps the identifiers we emit to GTK file dialog patterns.
// public.data has no entry: it disables filtering.
var zenityFilters = map[string]zenityFilter{
	"com.adobe.pdf": {"PDF documents", []string{"*.pdf", "*.PDF"}},
	"public.image":  {"Images", []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp", "*.tif", "*.tiff", "*.webp", "*.heic", "*.svg"}},
	"public.movie":  {"Videos", []string{"*.mp4", "*.m4v", "*.mov", "*.avi", "*.mkv", "*.webm", "*.mpg", "*.mpeg"}},
	"public.audio":  {"Audio", []string{"*.mp3", "*.m4a", "*.aac", "*.wav", "*.flac", "*.ogg", "*.oga", "*.opus", "*.aiff"}},
}

// zenityPicker shows the GTK file chooser through zenity
type zenityPicker struct {
	bin    string
	prompt string
	run    commandRunner
}

func newZenityPicker(bin, prompt string, run commandRunner) *zenityPicker {
	if bin == "" {
		bin = "zenity"
	}
	return &zenityPicker{bin: bin, prompt: prompt, run: run}
}

// zenityArgs builds the zenity command line for utis. When several
// categories are requested a combined filter comes first so every
// requested type is visible by default.
func zenityArgs(utis []string, prompt string) ([]string, error) {
	if len(utis) == 0 {
		return nil, fmt.Errorf("no type filters")
	}

	args := []string{"--file-selection"}
	if prompt != "" {
		args = append(args, "--title="+prompt)
	}

	var filters []zenityFilter
	seen := make(map[string]bool)
	for _, uti := range utis {
		if uti == "public.data" {
			// Anything goes, so no filter restricts the dialog
			return args, nil
		}
		f, ok := zenityFilters[uti]
		if !ok {
			return nil, fmt.Errorf("unsupported type identifier %q", uti)
		}
		if seen[uti] {
			continue
		}
		seen[uti] = true
		filters = append(filters, f)
	}

	if len(filters) > 1 {
		var all []string
		for _, f := range filters {
			all = append(all, f.Patterns...)
		}
		args = append(args, "--file-filter=Supported documents | "+strings.Join(all, " "))
	}
	for _, f := range filters {
		args = append(args, "--file-filter="+f.Label+" | "+strings.Join(f.Patterns, " "))
	}

	return args, nil
}

// PickDocument shows the file chooser filtered to utis
func (p *zenityPicker) PickDocument(ctx context.Context, utis []string) (string, error) {
	args, err := zenityArgs(utis, p.prompt)
	if err != nil {
		return "", err
	}

	res, err := p.run(ctx, p.bin, args...)
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", p.bin, err)
	}

	switch res.ExitCode {
	case 0:
	case 1:
		// Cancel button, Escape, or window closed
		return "", ErrCancelled
	default:
		return "", fmt.Errorf("%s exited with %d: %s", p.bin, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}

	return validatePath(strings.TrimSpace(string(res.Stdout)))
}
