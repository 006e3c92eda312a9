package serve

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/andrebq/stagedoor/auth"
	"github.com/andrebq/stagedoor/auth/api"
	"github.com/andrebq/stagedoor/auth/journal"
	"github.com/andrebq/stagedoor/internal/certgen"
	"github.com/andrebq/stagedoor/internal/cmdflags"
	"github.com/andrebq/stagedoor/internal/confscript"
	"github.com/andrebq/stagedoor/internal/gateproxy"
	"github.com/andrebq/stagedoor/internal/httpserver"
	"github.com/andrebq/stagedoor/internal/logutil"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7100"
	upstream := "http://localhost:3000"
	script := ""
	cookieName := ""
	journalDir := ""
	pwEnvVar := ""
	hashedPwEnvVar := ""
	certFile := ""
	keyFile := ""
	certDir := "certs"
	selfSigned := false
	debug := false
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the gate in front of an upstream server",
		Flags: []cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.Upstream(&upstream),
			cmdflags.ConfigScript(&script),
			cmdflags.CookieName(&cookieName),
			cmdflags.Journal(&journalDir),
			cmdflags.PasswordEnvVarName(&pwEnvVar),
			cmdflags.HashedPasswordEnvVarName(&hashedPwEnvVar),
			&cli.StringFlag{
				Name:        "tls-cert",
				Usage:       "Path to a TLS certificate (leave empty together with tls-key to serve plain HTTP)",
				Destination: &certFile,
			},
			&cli.StringFlag{
				Name:        "tls-key",
				Usage:       "Path to the TLS key matching tls-cert",
				Destination: &keyFile,
			},
			&cli.BoolFlag{
				Name:        "self-signed",
				Usage:       "Generate (or reuse) a self-signed certificate instead of requiring tls-cert/tls-key",
				Destination: &selfSigned,
			},
			&cli.StringFlag{
				Name:        "cert-dir",
				Usage:       "Directory holding the self-signed certificate pair",
				Value:       certDir,
				Destination: &certDir,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Log at debug level",
				Destination: &debug,
			},
		},
		Action: func(ctx *cli.Context) error {
			rootCtx := logutil.Setup(ctx.Context, debug)
			log := logutil.GetOrDefault(rootCtx)

			var cfg confscript.Config
			if script != "" {
				var err error
				cfg, err = confscript.Load(script)
				if err != nil {
					return err
				}
			}
			// the script fills whatever the command line left alone
			if !ctx.IsSet("bind") && cfg.Bind != "" {
				bindAddr = cfg.Bind
			}
			if !ctx.IsSet("upstream") && cfg.Upstream != "" {
				upstream = cfg.Upstream
			}
			if !ctx.IsSet("cookie-name") && cfg.CookieName != "" {
				cookieName = cfg.CookieName
			}
			if !ctx.IsSet("journal") && cfg.Journal != "" {
				journalDir = cfg.Journal
			}
			if !ctx.IsSet("tls-cert") && cfg.TLS.Cert != "" {
				certFile, keyFile = cfg.TLS.Cert, cfg.TLS.Key
			}
			if !ctx.IsSet("self-signed") && cfg.TLS.SelfSigned {
				selfSigned = true
			}

			creds := auth.Credentials{
				Password:       takeEnv(pwEnvVar),
				HashedPassword: takeEnv(hashedPwEnvVar),
			}
			if creds.Password == "" {
				creds.Password = cfg.Password
			}
			if creds.HashedPassword == "" {
				creds.HashedPassword = cfg.HashedPassword
			}
			if creds.Password == "" && creds.HashedPassword == "" {
				return fmt.Errorf("no credential configured, set %v or %v (run `stagedoor hash` to produce the latter)",
					pwEnvVar, hashedPwEnvVar)
			}

			upstreamURL, err := url.Parse(upstream)
			if err != nil {
				return fmt.Errorf("invalid upstream %v, cause %w", upstream, err)
			}
			if upstreamURL.Scheme == "" || upstreamURL.Host == "" {
				return fmt.Errorf("upstream %v must be an absolute http(s) URL", upstream)
			}

			if selfSigned {
				if certFile != "" {
					return errors.New("self-signed and tls-cert/tls-key are mutually exclusive")
				}
				host, _, err := net.SplitHostPort(bindAddr)
				if err != nil || host == "" {
					host = "localhost"
				}
				certFile, keyFile, err = certgen.EnsurePair(certDir, host)
				if err != nil {
					return err
				}
			}

			var recorder api.Recorder
			if journalDir != "" {
				j, err := journal.Open(rootCtx, journalDir)
				if err != nil {
					return err
				}
				defer j.Close()
				recorder = j
			}

			gate := api.NewGate(creds, api.CookieSpec{
				Name:   cookieName,
				Secure: certFile != "",
			}, api.NewTokenCache(), recorder)
			handler := gateproxy.AsHandler(upstreamURL, gate)

			log.Info().
				Stringer("method", auth.ClassifyMethod(creds.HashedPassword)).
				Str("upstream", upstreamURL.String()).
				Msg("Gate configured")
			if certFile != "" {
				return httpserver.ServeTLS(rootCtx, bindAddr, handler, certFile, keyFile)
			}
			log.Warn().Msg("Serving without TLS, session cookies travel in the clear")
			return httpserver.Serve(rootCtx, bindAddr, handler)
		},
	}
}

// takeEnv reads and clears the variable, the secret should not outlive
// startup in the process environment
func takeEnv(name string) string {
	val := os.Getenv(name)
	os.Setenv(name, "")
	return val
}
