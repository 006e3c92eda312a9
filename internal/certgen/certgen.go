// Package certgen generates the self-signed certificate a stagedoor
// instance uses when the operator wants TLS but has no certificate of
// their own. Browsers will complain, the traffic is still encrypted.
package certgen

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

const (
	certFile = "stagedoor.crt"
	keyFile  = "stagedoor.key"
)

// EnsurePair returns the paths of a certificate/key pair for host
// under dir, generating both files when either is missing. An existing
// pair is reused as-is, expired or not: deleting the files is the
// rotation story.
func EnsurePair(dir, host string) (string, string, error) {
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return "", "", fmt.Errorf("unable to create directory %v to store certificates, cause %w", dir, err)
	}
	certPath := filepath.Join(dir, certFile)
	keyPath := filepath.Join(dir, keyFile)
	if exists(certPath) && exists(keyPath) {
		return certPath, keyPath, nil
	}
	certPEM, keyPEM, err := selfSigned(host)
	if err != nil {
		return "", "", err
	}
	err = os.WriteFile(certPath, certPEM, 0644)
	if err != nil {
		return "", "", fmt.Errorf("unable to write %v, cause %w", certPath, err)
	}
	err = os.WriteFile(keyPath, keyPEM, 0600)
	if err != nil {
		return "", "", fmt.Errorf("unable to write %v, cause %w", keyPath, err)
	}
	return certPath, keyPath, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func selfSigned(host string) (certPEM []byte, keyPEM []byte, err error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to generate private key, cause %w", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to generate serial number, cause %w", err)
	}
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName: host,
		},
		NotBefore:             time.Now().Add(-1 * time.Minute),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	if ip := net.ParseIP(host); ip != nil {
		template.IPAddresses = append(template.IPAddresses, ip)
	} else {
		template.DNSNames = append(template.DNSNames, host)
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &priv.PublicKey, priv)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create certificate, cause %w", err)
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to marshal private key, cause %w", err)
	}
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM, nil
}
