package auth

import "testing"

func TestValidatePlainText(t *testing.T) {
	creds := Credentials{Password: "hunter2"}
	res, err := Validate(PlainText, "hunter2", creds)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Fatal("matching secret must validate")
	}
	if ClassifyMethod("") != PlainText {
		t.Fatal("no configured hash must classify as plain-text")
	}
	// the canonical hash is an argon2 hash of what the user typed, so
	// the cookie round-trip works without storing the secret
	if !IsCookieValid(PlainText, res.CanonicalHash, creds) {
		t.Fatal("canonical hash must re-verify as a session token")
	}
	if IsCookieValid(PlainText, res.CanonicalHash+"x", creds) {
		t.Fatal("mutated session token must not verify")
	}
	if IsCookieValid(PlainText, res.CanonicalHash, Credentials{Password: "hunter3"}) {
		t.Fatal("token must be bound to the configured secret")
	}

	res, err = Validate(PlainText, "hunter3", creds)
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Fatal("wrong secret must not validate")
	}
	if res.CanonicalHash == "" {
		t.Fatal("canonical hash is populated even on failure")
	}

	// never compare against an absent secret
	res, err = Validate(PlainText, "anything", Credentials{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Fatal("absent configured secret must fail unconditionally")
	}
}

func TestValidateSHA256Legacy(t *testing.T) {
	digest := LegacyDigest("hunter2")
	creds := Credentials{HashedPassword: digest}
	res, err := Validate(SHA256Legacy, "hunter2", creds)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Fatal("matching secret must validate")
	}
	if res.CanonicalHash != digest {
		t.Fatal("canonical hash must echo the configured digest, not recompute it")
	}
	if !IsCookieValid(SHA256Legacy, res.CanonicalHash, creds) {
		t.Fatal("echoed token must pass the cookie check")
	}
	if IsCookieValid(SHA256Legacy, LegacyDigest("hunter3"), creds) {
		t.Fatal("foreign digest must not pass the cookie check")
	}

	res, err = Validate(SHA256Legacy, "hunter3", creds)
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Fatal("wrong secret must not validate")
	}

	// without a configured hash the digest is derived fresh, and can
	// never be valid because the comparison runs against emptiness
	res, err = Validate(SHA256Legacy, "hunter2", Credentials{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Fatal("absent configured hash must fail")
	}
	if res.CanonicalHash != digest {
		t.Fatal("fallback canonical hash must be the fresh digest")
	}
}

func TestValidateArgon2(t *testing.T) {
	configured, err := std.Hash("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	creds := Credentials{HashedPassword: configured}
	if ClassifyMethod(configured) != Argon2 {
		t.Fatal("PHC strings must classify as argon2")
	}
	res, err := Validate(Argon2, "hunter2", creds)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Fatal("matching secret must validate")
	}
	if res.CanonicalHash != configured {
		t.Fatal("canonical hash must echo the configured hash")
	}
	if !IsCookieValid(Argon2, configured, creds) {
		t.Fatal("echoed token must pass the cookie check")
	}

	res, err = Validate(Argon2, "hunter3", creds)
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Fatal("wrong secret must not validate")
	}

	// method selection implies a configured hash exists, when it does
	// not the result is invalid and carries no canonical hash at all
	res, err = Validate(Argon2, "anything", Credentials{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid || res.CanonicalHash != "" {
		t.Fatalf("argon2 without configured hash must yield an empty, invalid result, got %+v", res)
	}
}

func TestValidateEmptySubmitted(t *testing.T) {
	hash, err := std.Hash("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		method Method
		creds  Credentials
	}{
		{PlainText, Credentials{Password: "hunter2"}},
		// an operator that configures an empty password still gets no
		// free entry for empty submissions
		{PlainText, Credentials{Password: ""}},
		{SHA256Legacy, Credentials{HashedPassword: LegacyDigest("")}},
		{Argon2, Credentials{HashedPassword: hash}},
	}
	for _, c := range cases {
		res, err := Validate(c.method, "", c.creds)
		if err != nil {
			t.Fatal(err)
		}
		if res.Valid {
			t.Errorf("empty submitted secret validated under %v", c.method)
		}
	}
}

func TestValidateUnknownMethod(t *testing.T) {
	res, err := Validate(Method(99), "hunter2", Credentials{Password: "hunter2"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid || res.CanonicalHash != "" {
		t.Fatal("unknown methods must fail closed")
	}
	if IsCookieValid(Method(99), "token", Credentials{HashedPassword: "token"}) {
		t.Fatal("unknown methods must fail closed on the cookie path too")
	}
}

func TestValidateIdempotence(t *testing.T) {
	creds := Credentials{HashedPassword: LegacyDigest("hunter2")}
	first, err := Validate(SHA256Legacy, "hunter2", creds)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Validate(SHA256Legacy, "hunter2", creds)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("identical inputs must yield identical results")
	}
}
