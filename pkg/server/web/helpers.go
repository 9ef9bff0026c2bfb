package web

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// RenderJSON sets the correct HTTP headers for JSON, then writes the
// specified data (typically a struct) encoded in JSON.
func RenderJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Expires", "-1")
	enc := json.NewEncoder(w)
	return enc.Encode(data)
}

// RenderJSONStatus writes data as JSON with a non-200 status code.
func RenderJSONStatus(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Expires", "-1")
	w.WriteHeader(statusCode)
	enc := json.NewEncoder(w)
	return enc.Encode(data)
}
