package httpx

import (
	"encoding/json"
	"net/http"
)

// ProblemDetail is an RFC 7807 body. Type is always about:blank here.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON writes v as the body of a non-cacheable response.
func JSON(w http.ResponseWriter, status int, v any) {
	write(w, "application/json", status, v)
}

// Problem writes an RFC 7807 problem response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	write(w, "application/problem+json", status, ProblemDetail{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// Lookup results and health probes depend on the signed-in user or the
// moment, so nothing here may be cached.
func write(w http.ResponseWriter, contentType string, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
