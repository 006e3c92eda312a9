package certgen

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsurePair(t *testing.T) {
	dir, err := ioutil.TempDir("", "stagedoor-tests")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	certPath, keyPath, err := EnsurePair(filepath.Join(dir, "certs"), "localhost")
	if err != nil {
		t.Fatal(err)
	}

	// the pair must be loadable the same way the http server loads it
	if _, err := tls.LoadX509KeyPair(certPath, keyPath); err != nil {
		t.Fatalf("generated pair does not load: %v", err)
	}

	buf, err := ioutil.ReadFile(certPath)
	if err != nil {
		t.Fatal(err)
	}
	block, _ := pem.Decode(buf)
	if block == nil || block.Type != "CERTIFICATE" {
		t.Fatal("certificate file is not a PEM certificate")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	if err := cert.VerifyHostname("localhost"); err != nil {
		t.Fatalf("certificate does not cover its host: %v", err)
	}

	// a second call must reuse the files instead of rotating them
	certAgain, _, err := EnsurePair(filepath.Join(dir, "certs"), "localhost")
	if err != nil {
		t.Fatal(err)
	}
	bufAgain, err := ioutil.ReadFile(certAgain)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != string(bufAgain) {
		t.Fatal("existing pair should be reused, not regenerated")
	}
}

func TestEnsurePairForIP(t *testing.T) {
	dir, err := ioutil.TempDir("", "stagedoor-tests")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	certPath, _, err := EnsurePair(dir, "127.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	buf, err := ioutil.ReadFile(certPath)
	if err != nil {
		t.Fatal(err)
	}
	block, _ := pem.Decode(buf)
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	if len(cert.IPAddresses) != 1 {
		t.Fatal("IP hosts must land in the IPAddresses SAN, not DNSNames")
	}
}
