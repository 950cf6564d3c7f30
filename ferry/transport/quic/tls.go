package quic

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sync"
	"time"
)

// ALPN is the application protocol negotiated on every ferry connection.
const ALPN = "ferry/1"

var (
	certOnce sync.Once
	cert     tls.Certificate
	certErr  error
)

// serverCertificate returns a self-signed certificate shared by every
// listener in the process.
func serverCertificate() (tls.Certificate, error) {
	certOnce.Do(func() {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			certErr = err
			return
		}
		serial, err := rand.Int(rand.Reader, big.NewInt(1<<62))
		if err != nil {
			certErr = err
			return
		}
		tpl := x509.Certificate{
			SerialNumber:          serial,
			Subject:               pkix.Name{CommonName: "ferry"},
			NotBefore:             time.Now().Add(-time.Hour),
			NotAfter:              time.Now().Add(7 * 24 * time.Hour),
			KeyUsage:              x509.KeyUsageDigitalSignature,
			ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
			BasicConstraintsValid: true,
		}
		der, err := x509.CreateCertificate(rand.Reader, &tpl, &tpl, pub, priv)
		if err != nil {
			certErr = err
			return
		}
		cert = tls.Certificate{Certificate: [][]byte{der}, PrivateKey: priv}
	})
	return cert, certErr
}

func NewServerTLSConfig() (*tls.Config, error) {
	c, err := serverCertificate()
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{c},
		MinVersion:   tls.VersionTLS13,
		NextProtos:   []string{ALPN},
	}, nil
}

// NewClientTLSConfig accepts any server certificate. Push and pull roles are
// agreed out of band; QUIC only has to provide an encrypted, ordered stream.
func NewClientTLSConfig() (*tls.Config, error) {
	return &tls.Config{
		MinVersion:         tls.VersionTLS13,
		NextProtos:         []string{ALPN},
		InsecureSkipVerify: true,
	}, nil
}
