package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	errs "github.com/matzehuels/bigo/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	c := errs.GetCode(err)
	if c == "" {
		c = errs.ErrCodeInternal
	}
	writeJSON(w, code, errorBody{Error: errs.UserMessage(err), Code: c})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeEmptyInput, errs.ErrCodeTokenize, errs.ErrCodeParse,
		errs.ErrCodeTooManyTerms, errs.ErrCodeUnsupportedShape, errs.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			writeError(w, http.StatusRequestEntityTooLarge,
				errs.New(errs.ErrCodeEmptyInput, "request body exceeds %d bytes", tooBig.Limit))
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, errs.New(errs.ErrCodeEmptyInput, "request body is empty"))
		default:
			writeError(w, http.StatusBadRequest, errs.Wrap(errs.ErrCodeEmptyInput, err, "invalid JSON body"))
		}
		return false
	}
	return true
}

// queryInt parses an integer query parameter, returning def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, errs.New(errs.ErrCodeEmptyInput, "%s must be a non-negative integer", key)
	}
	return v, nil
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}

func errMethod(method, path string) error {
	return errs.New(errs.ErrCodeUnsupported, "method %s not allowed on %s", method, path)
}
