package graph

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/aepplanner/pkg/model"
	"github.com/matzehuels/aepplanner/pkg/project"
)

func TestGraphFileRoundTrip(t *testing.T) {
	g := FromProject(project.Sample())
	g.Nodes[0].Position = &Position{X: 10, Y: 20}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error: %v", err)
	}
	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}

	if len(back.Nodes) != len(g.Nodes) || len(back.Edges) != len(g.Edges) {
		t.Fatalf("got %d nodes %d edges", len(back.Nodes), len(back.Edges))
	}
	if p := back.Nodes[0].Position; p == nil || p.X != 10 || p.Y != 20 {
		t.Errorf("position = %+v", p)
	}

	s, ok := back.Node("schema_crm_profile")
	if !ok {
		t.Fatal("schema node missing")
	}
	schema, ok := s.Details.(model.Schema)
	if !ok {
		t.Fatalf("details type = %T, want model.Schema", s.Details)
	}
	if !schema.IsProfileEnabled || len(schema.Fields) != 5 {
		t.Errorf("schema details = %+v", schema)
	}

	p, _ := back.Node(model.UnifiedProfileID)
	if ps, ok := p.Details.(model.ProfileStore); !ok || ps.Stats == nil {
		t.Errorf("profile details = %#v", p.Details)
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"malformed", `{`, "decode"},
		{"empty id", `{"nodes":[{"id":"","kind":"schema"}]}`, "empty id"},
		{"duplicate", `{"nodes":[{"id":"a","kind":"schema"},{"id":"a","kind":"dataset"}]}`, "duplicate"},
		{"unknown kind", `{"nodes":[{"id":"a","kind":"table"}]}`, "unknown kind"},
		{"missing endpoint", `{"nodes":[],"edges":[{"id":"e","source":"a"}]}`, "missing endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalGraph([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("UnmarshalGraph() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestReadGraphAllowsDanglingEdges(t *testing.T) {
	g, err := UnmarshalGraph([]byte(`{"nodes":[{"id":"d","kind":"dataset"}],"edges":[{"id":"e-d-x","source":"d","target":"x"}]}`))
	if err != nil {
		t.Fatalf("UnmarshalGraph() error: %v", err)
	}
	if len(g.DanglingEdges()) != 1 {
		t.Error("expected one dangling edge")
	}
}
