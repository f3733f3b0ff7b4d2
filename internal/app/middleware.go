package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mindthegap/mindthegap/internal/config"
	"github.com/mindthegap/mindthegap/pkg/household"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Fall back to the session cookie when a household request carries no id,
	// so a returning browser lands on its own record.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Path == "/api/household" && req.Method == http.MethodGet && req.URL.Query().Get("id") == "" {
				if sessionID := household.SessionID(req); sessionID != "" {
					log.Debugf("resolving household from session cookie: %s", sessionID)
					q := req.URL.Query()
					q.Set("id", sessionID)
					req.URL.RawQuery = q.Encode()
				}
			}
			next.ServeHTTP(w, req)
		})
	})

	// Request logging
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			log.Debugf("%s %s", req.Method, req.URL.Path)
			next.ServeHTTP(w, req)
		})
	})
}
