package internal

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"sync"

	"github.com/breml/rootcerts/embedded"
)

// mozillaRoots lazily parses the embedded Mozilla root program once.
var mozillaRoots = sync.OnceValues(func() (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM([]byte(embedded.MozillaCACertificatesPEM())) {
		return nil, errors.New("parsing embedded Mozilla root certificates")
	}
	return pool, nil
})

// IsPubliclyTrusted reports whether the first certificate in data chains to
// the embedded Mozilla root program, using any further certificates in the
// same blob as intermediates. Non-certificate input and broken chains are
// simply not trusted; this check never fails a scan.
func IsPubliclyTrusted(data []byte) bool {
	certs := collectCertificates(data)
	if len(certs) == 0 {
		return false
	}

	roots, err := mozillaRoots()
	if err != nil {
		return false
	}

	intermediates := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediates.AddCert(cert)
	}

	_, err = certs[0].Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	return err == nil
}

// collectCertificates gathers all certificates from a PEM bundle or a single
// DER blob. Malformed entries are skipped.
func collectCertificates(data []byte) []*x509.Certificate {
	var certs []*x509.Certificate
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		if cert, err := x509.ParseCertificate(block.Bytes); err == nil {
			certs = append(certs, cert)
		}
	}
	if len(certs) == 0 {
		if cert, err := x509.ParseCertificate(data); err == nil {
			certs = append(certs, cert)
		}
	}
	return certs
}
