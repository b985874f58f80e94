// Package certs inspects the TLS certificate the server is configured with.
package certs

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"
)

var ErrExpired = errors.New("certificate expired")

// CertManager loads a certificate/key pair and reports on its validity window.
type CertManager struct {
	certFile string
	keyFile  string
	now      func() time.Time
}

func NewCertManager(certFile, keyFile string) *CertManager {
	return &CertManager{certFile: certFile, keyFile: keyFile, now: time.Now}
}

// LoadKeyPair loads the pair for use in a tls.Config.
func (cm *CertManager) LoadKeyPair() (tls.Certificate, error) {
	pair, err := tls.LoadX509KeyPair(cm.certFile, cm.keyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("load key pair: %w", err)
	}
	return pair, nil
}

// LoadCertificate parses the leaf certificate from the cert file.
func (cm *CertManager) LoadCertificate() (*x509.Certificate, error) {
	data, err := os.ReadFile(cm.certFile)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, errors.New("failed to parse certificate PEM")
	}
	return x509.ParseCertificate(block.Bytes)
}

// IsExpired checks if a certificate is expired.
func (cm *CertManager) IsExpired(cert *x509.Certificate) bool {
	return cert.NotAfter.Before(cm.now())
}

// Check returns the time left before the certificate expires. An expired or
// not-yet-valid certificate is an error.
func (cm *CertManager) Check() (time.Duration, error) {
	cert, err := cm.LoadCertificate()
	if err != nil {
		return 0, err
	}
	now := cm.now()
	if cm.IsExpired(cert) {
		return 0, fmt.Errorf("%w on %s", ErrExpired, cert.NotAfter.Format(time.RFC3339))
	}
	if now.Before(cert.NotBefore) {
		return 0, fmt.Errorf("certificate not valid before %s", cert.NotBefore.Format(time.RFC3339))
	}
	return cert.NotAfter.Sub(now), nil
}
