package cert

import (
	"github.com/andrebq/stagedoor/internal/certgen"
	"github.com/andrebq/stagedoor/internal/logutil"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	dir := "certs"
	host := "localhost"
	return &cli.Command{
		Name:  "cert",
		Usage: "Generate (or reuse) a self-signed certificate pair for the gate",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "Directory to store the certificate pair",
				Value:       dir,
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "host",
				Usage:       "Hostname or IP the certificate should cover",
				Value:       host,
				Destination: &host,
			},
		},
		Action: func(ctx *cli.Context) error {
			certPath, keyPath, err := certgen.EnsurePair(dir, host)
			if err != nil {
				return err
			}
			logger := logutil.GetOrDefault(ctx.Context)
			logger.Info().
				Str("cert", certPath).
				Str("key", keyPath).
				Msg("Certificate pair ready")
			return nil
		},
	}
}
