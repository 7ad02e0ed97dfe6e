package xdm

import (
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
)

// InvalidSchemaMessage is the only failure message the analysis surfaces.
const InvalidSchemaMessage = "invalid schema format"

// Causes of an analysis failure. Callers see both as [apperrors.ErrCodeInvalidSchema];
// errors.Is distinguishes them for diagnostics.
var (
	ErrParse             = errors.New("malformed JSON")
	ErrUnrecognizedShape = errors.New("document is neither a schema object nor a mixin array")
)

// Result is the outcome of one analysis.
type Result struct {
	Root       *Node      `json:"root"`
	Fields     []Field    `json:"fields"`
	Conflicts  []Conflict `json:"conflicts,omitempty"`
	Shape      string     `json:"shape"`      // "schema" or "mixins"
	Identities int        `json:"identities"` // fields marked by descriptors
}

// Analyze parses a schema document, extracts its fields, applies identity
// descriptors and reconstructs the field tree.
//
// Failures carry code INVALID_SCHEMA and wrap [ErrParse] or
// [ErrUnrecognizedShape]. No partial result is returned.
func Analyze(text string) (*Result, error) {
	if !gjson.Valid(text) {
		return nil, invalid(ErrParse)
	}
	return analyze(gjson.Parse(text))
}

// AnalyzeBytes is [Analyze] over a byte slice.
func AnalyzeBytes(data []byte) (*Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, invalid(ErrParse)
	}
	return analyze(gjson.ParseBytes(data))
}

// AnalyzeReader reads r to EOF and analyzes its content.
func AnalyzeReader(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return AnalyzeBytes(data)
}

func analyze(doc gjson.Result) (*Result, error) {
	in, err := Classify(doc)
	if err != nil {
		return nil, invalid(err)
	}
	fields := Extract(in)
	marked := 0
	if m, ok := in.(MixinArray); ok {
		marked = Annotate(fields, m.Descriptors)
	}
	root, conflicts := Reconstruct(fields)
	return &Result{
		Root:       root,
		Fields:     fields,
		Conflicts:  conflicts,
		Shape:      Shape(in),
		Identities: marked,
	}, nil
}

func invalid(cause error) error {
	return apperrors.Wrap(apperrors.ErrCodeInvalidSchema, cause, InvalidSchemaMessage)
}
