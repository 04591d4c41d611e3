package health

import "net/http"

// Liveness reports that the process is running. Always 200 "ALIVE", no
// dependency checks.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

// NoContent returns 204 without a body. Ideal for high-frequency checks.
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
