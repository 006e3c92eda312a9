package hash

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrebq/stagedoor/auth"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "Read a password from stdin and print its argon2 hash, ready for the hashed-password environment variable",
		Action: func(ctx *cli.Context) error {
			buf, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("unable to read password from stdin, cause %w", err)
			}
			password := strings.TrimRight(string(buf), "\r\n")
			if password == "" {
				return errors.New("refusing to hash an empty password")
			}
			hashed, err := auth.NewHasher().Hash(password)
			if err != nil {
				return err
			}
			fmt.Println(hashed)
			return nil
		},
	}
}
