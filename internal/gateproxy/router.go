// Package gateproxy wires the auth gate in front of an upstream
// server: a handful of gate-owned routes plus a reverse proxy for
// everything else.
package gateproxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/andrebq/stagedoor/auth/api"
	"github.com/julienschmidt/httprouter"
)

const (
	LoginPath   = "/.gate/login"
	LogoutPath  = "/.gate/logout"
	HealthzPath = "/.gate/healthz"
)

func AsHandler(upstream *url.URL, gate *api.Gate) http.Handler {
	router := httprouter.New()

	router.Handler("POST", LoginPath, gate.LoginHandler())
	router.Handler("POST", LogoutPath, gate.LogoutHandler())
	router.HandlerFunc("GET", HealthzPath, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "OK", http.StatusOK)
	})

	proxy := httputil.NewSingleHostReverseProxy(upstream)

	// everything that is not gate business goes upstream, behind the
	// cookie check
	router.NotFound = gate.Protect(proxy)

	return router
}
