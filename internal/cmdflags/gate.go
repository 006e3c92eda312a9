package cmdflags

import (
	"github.com/andrebq/stagedoor/auth/api"
	"github.com/urfave/cli/v2"
)

const (
	PasswordEnvVar       = "STAGEDOOR_PASSWORD"
	HashedPasswordEnvVar = "STAGEDOOR_HASHED_PASSWORD"
)

func Bind(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "bind",
		Aliases:     []string{"b"},
		Usage:       "Address to bind and expose the gate",
		Destination: out,
		Value:       *out,
	}
}

func Upstream(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "upstream",
		Aliases:     []string{"u"},
		Usage:       "Base URL of the server hiding behind the gate",
		Destination: out,
		Value:       *out,
	}
}

func ConfigScript(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to a lua config script (flags given on the command line win over the script)",
		Destination: out,
		Value:       *out,
	}
}

func CookieName(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = api.DefaultCookieName
	}
	return &cli.StringFlag{
		Name:        "cookie-name",
		Usage:       "Name of the session cookie",
		Value:       *out,
		Destination: out,
	}
}

func Journal(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "journal",
		Usage:       "Directory holding the login journal database (leave empty to keep no journal)",
		Destination: out,
		Value:       *out,
	}
}

func PasswordEnvVarName(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = PasswordEnvVar
	}
	return &cli.StringFlag{
		Name:        "password-envvar-name",
		Usage:       "Name of the environment variable that holds the shared password. The password itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
	}
}

func HashedPasswordEnvVarName(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = HashedPasswordEnvVar
	}
	return &cli.StringFlag{
		Name:        "hashed-password-envvar-name",
		Usage:       "Name of the environment variable that holds the hashed password (sha256 digest or argon2 PHC string). Takes precedence over the plain password",
		Value:       *out,
		Destination: out,
	}
}
