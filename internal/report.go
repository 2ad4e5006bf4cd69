package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sensiblebit/keyprobe"
)

// Result holds the classification outcome for one input.
type Result struct {
	Path       string                  `json:"path,omitempty"`
	Properties *keyprobe.KeyProperties `json:"properties,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// ClassifyFile reads a file (or stdin for "-") and classifies its contents.
// Classification failure is reported in the Result, not as an error; only
// read failures are errors.
func ClassifyFile(path string, passwords []string) (*Result, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result := &Result{Path: path}
	props, err := keyprobe.ClassifyWithPasswords(data, passwords)
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}
	result.Properties = props
	return result, nil
}

// FormatResults formats classification results as text or JSON.
func FormatResults(results []*Result, format string) (string, error) {
	switch format {
	case "text":
		return formatResultsText(results), nil
	case "json":
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use text or json)", format)
	}
}

func formatResultsText(results []*Result) string {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		if r.Path != "" && r.Path != "-" {
			fmt.Fprintf(&sb, "%s:\n", r.Path)
		}
		if r.Error != "" {
			fmt.Fprintf(&sb, "  Error:       %s\n", r.Error)
			continue
		}
		p := r.Properties
		if p.Kind == "" && p.Certificate == nil {
			fmt.Fprintf(&sb, "  Certificate parsed, but its key could not be extracted\n")
			continue
		}
		if p.Kind != "" {
			fmt.Fprintf(&sb, "  Kind:        %s key\n", p.Kind)
		}
		if p.Format != "" {
			fmt.Fprintf(&sb, "  Format:      %s\n", p.Format)
		}
		if p.Algorithm != "" {
			size := fmt.Sprintf("%d", p.KeySizeBits)
			if p.Curve != "" {
				size = fmt.Sprintf("%d (%s)", p.KeySizeBits, p.Curve)
			}
			fmt.Fprintf(&sb, "  Key:         %s %s\n", p.Algorithm, size)
		}
		if p.HashAlgorithm != "" {
			fmt.Fprintf(&sb, "  Hash:        %s (%d bits)\n", p.HashAlgorithm, p.HashSizeBits)
		}
		if p.Comment != "" {
			fmt.Fprintf(&sb, "  Comment:     %s\n", p.Comment)
		}
		if p.Fingerprint != "" {
			fmt.Fprintf(&sb, "  Fingerprint: %s\n", p.Fingerprint)
		}
		if p.HasEmbeddedPublicKey {
			fmt.Fprintf(&sb, "  Public half: embedded\n")
		}
		if c := p.Certificate; c != nil {
			fmt.Fprintf(&sb, "  Certificate:\n")
			fmt.Fprintf(&sb, "    Subject:    %s\n", c.Subject)
			fmt.Fprintf(&sb, "    Issuer:     %s\n", c.Issuer)
			if c.SerialNumber != "" {
				fmt.Fprintf(&sb, "    Serial:     %s\n", c.SerialNumber)
			}
			if c.NotBefore != "" {
				fmt.Fprintf(&sb, "    Not Before: %s\n", c.NotBefore)
			}
			if c.NotAfter != "" {
				fmt.Fprintf(&sb, "    Not After:  %s\n", c.NotAfter)
			}
			if c.Validity != "" {
				fmt.Fprintf(&sb, "    Validity:   %s (raw)\n", c.Validity)
			}
		}
	}
	return sb.String()
}
