package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
)

// MaxBodySize bounds request bodies read by [ReadBody].
const MaxBodySize = 8 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrorResponse writes a JSON error with an explicit status and code.
func ErrorResponse(w http.ResponseWriter, status int, code, message string) error {
	return WriteJSON(w, status, ErrorBody{Error: code, Message: message})
}

// WriteError writes err with the status matching its code. Errors without
// a code are reported as internal without leaking their text.
func WriteError(w http.ResponseWriter, err error) error {
	code := apperrors.GetCode(err)
	if code == "" {
		return ErrorResponse(w, http.StatusInternalServerError, string(apperrors.ErrCodeInternal), "internal error")
	}
	return ErrorResponse(w, StatusOf(code), string(code), apperrors.UserMessage(err))
}

// StatusOf maps an error code to an HTTP status.
func StatusOf(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidSchema, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidProject, apperrors.ErrCodeInvalidEntity, apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

// ReadBody reads at most [MaxBodySize] bytes of the request body. Larger
// bodies fail with INVALID_INPUT.
func ReadBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) > MaxBodySize {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodySize)
	}
	return data, nil
}

// DecodeJSON reads the body into v. Malformed JSON fails with
// INVALID_INPUT.
func DecodeJSON(r *http.Request, v any) error {
	data, err := ReadBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "malformed JSON at offset %d", syn.Offset)
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request: %v", err)
	}
	return nil
}
