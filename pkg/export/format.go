package export

import (
	"context"
	"strings"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/graph"
)

// Format is an export format.
type Format string

// Export formats.
const (
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatPDF     Format = "pdf"
	FormatJSON    Format = "json"
)

// Formats lists every export format in display order.
var Formats = []Format{FormatMermaid, FormatDOT, FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ParseFormat accepts a format name, case-insensitively. "mmd" and "gv" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "mmd":
		return FormatMermaid, nil
	case "gv":
		return FormatDOT, nil
	case FormatMermaid, FormatDOT, FormatSVG, FormatPNG, FormatPDF, FormatJSON:
		return f, nil
	}
	return "", apperrors.New(apperrors.ErrCodeUnsupported, "unsupported export format: %q", s)
}

// Ext returns the conventional file extension, with the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMermaid:
		return ".mmd"
	case FormatDOT:
		return ".dot"
	}
	return "." + string(f)
}

// ContentType returns the MIME type used when serving f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// IsBinary reports whether f is not text.
func (f Format) IsBinary() bool { return f == FormatPNG || f == FormatPDF }

// Export renders g in format f.
func Export(ctx context.Context, g *graph.Graph, f Format) ([]byte, error) {
	switch f {
	case FormatMermaid:
		return []byte(Mermaid(g)), nil
	case FormatDOT:
		return []byte(DOT(g)), nil
	case FormatJSON:
		return graph.MarshalGraph(g)
	case FormatSVG, FormatPNG, FormatPDF:
		svg, err := RenderSVG(ctx, DOT(g))
		if err != nil {
			return nil, err
		}
		switch f {
		case FormatPNG:
			return ToPNG(ctx, svg, 2.0)
		case FormatPDF:
			return ToPDF(ctx, svg)
		}
		return svg, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unsupported export format: %q", f)
}
