package certs

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePair(t *testing.T, notBefore, notAfter time.Time) (string, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		DNSNames:     []string{"localhost"},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	dir := t.TempDir()
	certFile := filepath.Join(dir, "server.crt")
	keyFile := filepath.Join(dir, "server.key")
	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
	return certFile, keyFile
}

func TestCheckValidCertificate(t *testing.T) {
	now := time.Now()
	certFile, keyFile := writePair(t, now.Add(-time.Hour), now.Add(48*time.Hour))
	cm := NewCertManager(certFile, keyFile)

	left, err := cm.Check()
	require.NoError(t, err)
	assert.InDelta(t, (48 * time.Hour).Seconds(), left.Seconds(), 60)

	_, err = cm.LoadKeyPair()
	assert.NoError(t, err)
}

func TestCheckExpiredCertificate(t *testing.T) {
	now := time.Now()
	certFile, keyFile := writePair(t, now.Add(-48*time.Hour), now.Add(-time.Hour))
	_, err := NewCertManager(certFile, keyFile).Check()
	assert.ErrorIs(t, err, ErrExpired)
}

func TestCheckNotYetValid(t *testing.T) {
	now := time.Now()
	certFile, keyFile := writePair(t, now.Add(time.Hour), now.Add(48*time.Hour))
	_, err := NewCertManager(certFile, keyFile).Check()
	assert.ErrorContains(t, err, "not valid before")
}

func TestLoadCertificateRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.crt")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o600))
	_, err := NewCertManager(path, path).LoadCertificate()
	assert.Error(t, err)
}
