package auth

import "fmt"

type (
	// Credentials is the operator supplied secret material, fixed for
	// the lifetime of the process. At most one field is set per
	// deployment, an empty string means absent. ClassifyMethod only
	// looks at HashedPassword, so when both are set the hash wins and
	// the raw password is ignored.
	Credentials struct {
		// Password is the raw shared secret.
		Password string
		// HashedPassword is either a legacy sha256 hex digest or an
		// argon2 PHC string.
		HashedPassword string
	}

	// Result is the outcome of validating one submitted secret.
	//
	// CanonicalHash is the value to store in the session cookie. It is
	// populated even when Valid is false so callers never branch on
	// the outcome to decide what to persist, with one exception: under
	// Argon2 with no configured hash it stays empty, leaving any
	// session built from it unauthenticated on replay.
	Result struct {
		Valid         bool
		CanonicalHash string
	}
)

// Validate checks a submitted secret against the configured credentials
// under the given method. It is total over its inputs: unknown methods
// and empty submitted secrets simply fail, they never panic. The only
// error condition is the hashing backend itself failing while deriving
// the PlainText canonical hash, in which case Valid is forced false
// and no canonical hash is returned.
func Validate(method Method, submitted string, creds Credentials) (Result, error) {
	switch method {
	case PlainText:
		valid := submitted != "" && creds.Password != "" &&
			SafeCompare(submitted, creds.Password)
		// hash what the user just typed, valid or not, so a session
		// can later be re-verified without the raw secret ever being
		// stored anywhere
		canonical, err := std.Hash(submitted)
		if err != nil {
			return Result{}, fmt.Errorf("auth: unable to derive session hash, cause %w", err)
		}
		return Result{Valid: valid, CanonicalHash: canonical}, nil
	case SHA256Legacy:
		valid := submitted != "" &&
			SafeCompare(LegacyDigest(submitted), creds.HashedPassword)
		// never re-derive when a configured hash exists, the original
		// value is the session's identity anchor
		canonical := creds.HashedPassword
		if canonical == "" {
			canonical = LegacyDigest(submitted)
		}
		return Result{Valid: valid, CanonicalHash: canonical}, nil
	case Argon2:
		// Verify tolerates an empty or malformed configured hash by
		// reporting a mismatch, no fallback hashing on this path
		return Result{
			Valid:         std.Verify(submitted, creds.HashedPassword),
			CanonicalHash: creds.HashedPassword,
		}, nil
	}
	return Result{}, nil
}

// IsCookieValid reports whether a previously issued session token
// still authenticates its holder.
//
// The two branches are deliberately asymmetric. A PlainText token is
// an argon2 hash of the secret typed at login, so it must be checked
// by hash verification with the configured secret playing the
// candidate role and the token the reference role. For the other two
// methods the token is the configured hash echoed back, and a
// timing-safe equality check is the whole story. Neither branch may
// stand in for the other: equality against a salted hash can never
// match, and hash-verifying a legacy token would treat an unsalted
// digest as a PHC string.
func IsCookieValid(method Method, token string, creds Credentials) bool {
	switch method {
	case PlainText:
		return std.Verify(creds.Password, token)
	case SHA256Legacy, Argon2:
		return SafeCompare(token, creds.HashedPassword)
	}
	return false
}
