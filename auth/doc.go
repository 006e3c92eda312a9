// Package auth holds the password scheme used to protect a whole
// stagedoor instance with a single shared secret.
//
// There is no per-user identity here. The operator configures either a
// raw password or a precomputed hash of one, and every login attempt is
// checked against that single credential. Three representations are
// supported: the raw secret itself, a legacy unsalted sha256 digest
// kept only so old deployments keep working, and an argon2 hash in PHC
// format, which is what new deployments should use.
//
// Sessions are a cookie holding an opaque token. For the raw-secret
// scheme that token is an argon2 hash of whatever the user typed at
// login, so the secret itself is never stored anywhere. For the two
// hash schemes the token is the configured hash echoed back, and a
// returning cookie only has to survive a timing-safe equality check.
//
// Nothing in this package keeps state between calls and every function
// is safe for concurrent use.
package auth
