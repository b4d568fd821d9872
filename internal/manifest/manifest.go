package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// HostName is the native messaging host name extensions connect to
const HostName = "com.reclaim.docpicker"

// Manifest is the native messaging host manifest a browser reads to find us.
// Chromium browsers use AllowedOrigins, Firefox uses AllowedExtensions.
type Manifest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Path              string   `json:"path"`
	Type              string   `json:"type"`
	AllowedOrigins    []string `json:"allowed_origins,omitempty"`
	AllowedExtensions []string `json:"allowed_extensions,omitempty"`
}

// Build returns the manifest for browser pointing at hostPath
func Build(browser, hostPath string, extensionIDs []string) (*Manifest, error) {
	if len(extensionIDs) == 0 {
		return nil, fmt.Errorf("at least one extension ID is required")
	}
	if !filepath.IsAbs(hostPath) {
		return nil, fmt.Errorf("host path must be absolute: %s", hostPath)
	}

	m := &Manifest{
		Name:        HostName,
		Description: "Reclaim document picker",
		Path:        hostPath,
		Type:        "stdio",
	}

	switch browser {
	case "chrome", "chromium", "edge", "brave":
		for _, id := range extensionIDs {
			m.AllowedOrigins = append(m.AllowedOrigins, "chrome-extension://"+id+"/")
		}
	case "firefox":
		m.AllowedExtensions = append(m.AllowedExtensions, extensionIDs...)
	default:
		return nil, fmt.Errorf("unsupported browser: %s", browser)
	}

	return m, nil
}

// Marshal renders the manifest as indented JSON
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := sonic.ConfigStd.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}
