package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/opsgarden/admind/pkg/apierr"
)

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h outermost-first, so Chain(h, a, b) runs a,
// then b, then h.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err onto the taxonomy's status code and writes the
// classified body. Unclassified errors come out as a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	e := apierr.From(err)
	WriteJSON(w, e.HTTPStatus(), e)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Token responses must never land in a shared cache.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
