package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"schema", apperrors.Wrap(apperrors.ErrCodeInvalidSchema, errors.New("eof"), "invalid schema format"), 400, "INVALID_SCHEMA", "invalid schema format"},
		{"not found", apperrors.New(apperrors.ErrCodeFileNotFound, "no such project"), 404, "FILE_NOT_FOUND", "no such project"},
		{"unsupported", apperrors.New(apperrors.ErrCodeUnsupported, "bmp"), 415, "UNSUPPORTED", "bmp"},
		{"plain", errors.New("disk on fire"), 500, "INTERNAL_ERROR", "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body ErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tt.code || body.Message != tt.msg {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %s", ct)
	}
}

func TestReadBodyLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", MaxBodySize+1)))
	if _, err := ReadBody(req); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct{ A int }
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"A": 3}`))
	if err := DecodeJSON(req, &v); err != nil || v.A != 3 {
		t.Errorf("DecodeJSON = %v, %+v", err, v)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"A":`))
	if err := DecodeJSON(req, &v); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
