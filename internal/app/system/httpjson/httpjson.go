// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the request/response helpers shared by the JSON
// API handlers.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the uniform error envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Error: msg})
}

// NotFound is the 404 helper used when a document lookup misses.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Decode reads the request body into dst, limiting it to 1 MiB.
// Returns false (and writes a 400) on malformed input.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
