package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/graph"
	"github.com/matzehuels/aepplanner/pkg/project"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"mermaid", FormatMermaid},
		{"MMD", FormatMermaid},
		{"dot", FormatDOT},
		{"gv", FormatDOT},
		{" svg ", FormatSVG},
		{"Json", FormatJSON},
		{"pdf", FormatPDF},
		{"png", FormatPNG},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	_, err := ParseFormat("bmp")
	if !apperrors.Is(err, apperrors.ErrCodeUnsupported) {
		t.Errorf("ParseFormat(bmp) err = %v, want UNSUPPORTED", err)
	}
}

func TestFormatMetadata(t *testing.T) {
	if FormatMermaid.Ext() != ".mmd" || FormatSVG.Ext() != ".svg" {
		t.Error("unexpected extension")
	}
	if FormatSVG.ContentType() != "image/svg+xml" {
		t.Errorf("svg content type = %s", FormatSVG.ContentType())
	}
	if !FormatPNG.IsBinary() || FormatDOT.IsBinary() {
		t.Error("IsBinary mismatch")
	}
}

func TestExportText(t *testing.T) {
	ctx := context.Background()
	g := graph.FromProject(project.Sample())

	mmd, err := Export(ctx, g, FormatMermaid)
	if err != nil || string(mmd) != Mermaid(g) {
		t.Errorf("mermaid export mismatch: %v", err)
	}
	dot, err := Export(ctx, g, FormatDOT)
	if err != nil || string(dot) != DOT(g) {
		t.Errorf("dot export mismatch: %v", err)
	}

	data, err := Export(ctx, g, FormatJSON)
	if err != nil {
		t.Fatalf("json export: %v", err)
	}
	var decoded struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json export not JSON: %v", err)
	}
	if len(decoded.Nodes) != len(g.Nodes) || len(decoded.Edges) != len(g.Edges) {
		t.Errorf("json export has %d nodes, %d edges", len(decoded.Nodes), len(decoded.Edges))
	}
}

func TestExportUnsupported(t *testing.T) {
	_, err := Export(context.Background(), graph.Build(nil, nil, nil), Format("bmp"))
	if !apperrors.Is(err, apperrors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if !strings.HasSuffix(out, "<g/></svg>") {
		t.Errorf("body lost: %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox changed")
	}
}
