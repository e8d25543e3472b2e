package document

import (
	"encoding/json"
	"fmt"
)

// Format is an output format for a rendered document.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// Action is something the presentation layer may offer for a rendered document.
type Action struct {
	Format  Format
	Label   string
	Enabled bool
	Reason  string // why a disabled action is locked
}

// Actions lists the export actions for a document. Plain-text copy is always
// available; PDF export is a premium feature and stays locked.
func Actions() []Action {
	return []Action{
		{Format: FormatText, Label: "Copy Text", Enabled: true},
		{Format: FormatJSON, Label: "Structured Data", Enabled: true},
		{Format: FormatPDF, Label: "PDF (Premium)", Enabled: false, Reason: "PDF download is a premium feature"},
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Export encodes r in format f.
func Export(r *Rendered, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(r.Text + "\n"), nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", r.Kind, err)
		}
		return append(data, '\n'), nil
	case FormatPDF:
		return nil, fmt.Errorf("%w: pdf", ErrExportLocked)
	}
	return nil, fmt.Errorf("unknown format %q", f)
}
