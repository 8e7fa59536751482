package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
)

// HealthcheckHandler aggregates named probes into a single health
// endpoint. It answers 200 with {"status":"ok"} when every probe passes
// and 503 with the failing probe names otherwise.
func HealthcheckHandler(probes map[string]func(context.Context) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		failures := make(map[string]string)
		for name, probe := range probes {
			if err := probe(r.Context()); err != nil {
				failures[name] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if len(failures) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "unavailable", "failures": failures})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
}
