package auth

import "strings"

type (
	// Method identifies which of the three credential representations
	// protects the instance.
	Method uint8
)

const (
	// PlainText means the operator configured the raw shared secret.
	PlainText Method = iota
	// SHA256Legacy means the configured hash predates argon2 support.
	SHA256Legacy
	// Argon2 means the configured hash is a PHC argon2 string.
	Argon2
)

func (m Method) String() string {
	switch m {
	case PlainText:
		return "plain-text"
	case SHA256Legacy:
		return "sha256-legacy"
	case Argon2:
		return "argon2"
	}
	return "unknown"
}

// ClassifyMethod decides which scheme a configured hash selects.
//
// An empty hash means the operator supplied the raw secret instead. A
// hash carrying the "$argon" marker is an argon2 PHC string. Anything
// else is assumed to be a legacy sha256 digest without any further
// format validation, so a malformed configured hash silently becomes a
// legacy credential that will never match any password.
//
// Classification is cheap and free of side effects, callers re-run it
// on every request instead of caching the result.
func ClassifyMethod(configuredHash string) Method {
	switch {
	case configuredHash == "":
		return PlainText
	case strings.Contains(configuredHash, "$argon"):
		return Argon2
	}
	return SHA256Legacy
}
