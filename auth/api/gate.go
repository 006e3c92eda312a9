// Package api exposes the shared-password scheme from package auth as
// an HTTP surface: a login/logout pair plus a middleware that keeps
// unauthenticated requests away from whatever sits behind the gate.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/andrebq/stagedoor/auth"
	"github.com/andrebq/stagedoor/internal/logutil"
)

type (
	Gate struct {
		creds   auth.Credentials
		cookie  CookieSpec
		tokens  *TokenCache
		journal Recorder
	}

	CookieSpec struct {
		Name   string
		Domain string
		Secure bool
	}

	// Recorder receives the outcome of every login attempt. The
	// journal package provides the durable implementation.
	Recorder interface {
		Record(ctx context.Context, remote string, granted bool) error
	}
)

const (
	DefaultCookieName = "stagedoor_session"
)

func NewGate(creds auth.Credentials, cookie CookieSpec, tokens *TokenCache, journal Recorder) *Gate {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return &Gate{
		creds:   creds,
		cookie:  cookie,
		tokens:  tokens,
		journal: journal,
	}
}

// Protect lets a request through only when its session cookie still
// authenticates the holder. Everything else is a plain 401, the body
// never hints at why.
func (g *Gate) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.checkCookie(r) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		sensitive.ServeHTTP(w, r)
	})
}

func (g *Gate) checkCookie(r *http.Request) bool {
	cookie, err := r.Cookie(g.cookie.Name)
	if err != nil {
		return false
	}
	token, err := url.QueryUnescape(cookie.Value)
	if err != nil || token == "" {
		return false
	}
	if g.tokens.Known(token) {
		return true
	}
	// classification is re-derived per request, the configuration is
	// static so this is cheap and can never go stale
	method := auth.ClassifyMethod(g.creds.HashedPassword)
	if !auth.IsCookieValid(method, token, g.creds) {
		return false
	}
	g.tokens.Remember(token)
	return true
}

// LoginHandler validates a submitted password (form field or JSON body,
// both named "password") and, when it matches, issues the session
// cookie holding the canonical hash.
func (g *Gate) LoginHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logutil.GetOrDefault(ctx)
		method := auth.ClassifyMethod(g.creds.HashedPassword)
		res, err := auth.Validate(method, submittedPassword(r), g.creds)
		if err != nil {
			// a backend failure must look exactly like a wrong
			// password from the outside
			log.Error().Err(err).Msg("Unexpected error while validating password")
		}
		g.record(ctx, r.RemoteAddr, res.Valid)
		if !res.Valid {
			writeStatus(w, http.StatusUnauthorized, "denied")
			return
		}
		// PHC hashes contain commas, escape the value instead of
		// trusting every client to cope with a raw one
		http.SetCookie(w, &http.Cookie{
			Name:     g.cookie.Name,
			Value:    url.QueryEscape(res.CanonicalHash),
			Path:     "/",
			Domain:   g.cookie.Domain,
			Secure:   g.cookie.Secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		g.tokens.Remember(res.CanonicalHash)
		writeStatus(w, http.StatusOK, "ok")
	})
}

// LogoutHandler drops the session cookie. The token cache keeps its
// entry until eviction, which is fine: the cookie is gone from the
// browser and the cache only ever short-circuits tokens that would
// re-validate anyway.
func (g *Gate) LogoutHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     g.cookie.Name,
			Value:    "",
			Path:     "/",
			Domain:   g.cookie.Domain,
			Secure:   g.cookie.Secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
		writeStatus(w, http.StatusOK, "ok")
	})
}

func (g *Gate) record(ctx context.Context, remote string, granted bool) {
	if g.journal == nil {
		return
	}
	err := g.journal.Record(ctx, remote, granted)
	if err != nil {
		logger := logutil.GetOrDefault(ctx)
		logger.Error().Err(err).Msg("Unable to record login attempt")
	}
}

func submittedPassword(r *http.Request) string {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Password string `json:"password"`
		}
		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			return ""
		}
		return body.Password
	}
	return r.FormValue("password")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, "{\"status\":%q}\n", status)
}
