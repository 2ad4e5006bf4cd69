package keyprobe

import (
	"crypto/x509"
	"encoding/asn1"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/smallstep/pkcs7"
)

func TestParseCertificate_PKCS7(t *testing.T) {
	// WHY: Windows and Java tooling ship certificates in degenerate PKCS#7
	// bundles; the first certificate in the bundle is the classified one.
	t.Parallel()
	certDER, _ := selfSignedCert(t, genRSAKey(t, 2048), "p7.example.com")
	p7DER, err := pkcs7.DegenerateCertificate(certDER)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"der", p7DER},
		{"pem", pem.EncodeToMemory(&pem.Block{Type: "PKCS7", Bytes: p7DER})},
	} {
		t.Run(tc.name, func(t *testing.T) {
			facts := parseCertificate(tc.data)
			if facts == nil {
				t.Fatal("PKCS#7 bundle not recognized")
			}
			if !strings.Contains(facts.subject, "p7.example.com") {
				t.Errorf("subject = %q", facts.subject)
			}
		})
	}
}

func TestParseCertificate_RejectsNonCertPEM(t *testing.T) {
	// WHY: A PEM block with a key label must not reach the DER certificate
	// parsers; the certificate path is nil-checked, not error-driven.
	t.Parallel()
	if facts := parseCertificate(pkcs8PEM(t, genECKey(t))); facts != nil {
		t.Errorf("private key PEM parsed as certificate: %+v", facts)
	}
	if facts := parseCertificate([]byte("plain text")); facts != nil {
		t.Errorf("garbage parsed as certificate: %+v", facts)
	}
}

func TestCertFactsInfo_ScalarValidity(t *testing.T) {
	// WHY: When both times decoded, the block carries RFC 3339 UTC scalars
	// and no raw fallback.
	t.Parallel()
	f := &certFacts{
		subject:   "CN=a",
		issuer:    "CN=b",
		serial:    big.NewInt(42),
		notBefore: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		notAfter:  time.Date(2034, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	ci := f.info()
	if ci.NotBefore != "2024-01-01T00:00:00Z" || ci.NotAfter != "2034-01-01T00:00:00Z" {
		t.Errorf("scalar validity = %q / %q", ci.NotBefore, ci.NotAfter)
	}
	if ci.Validity != "" {
		t.Errorf("raw fallback %q present alongside scalars", ci.Validity)
	}
	if ci.SerialNumber != "42" {
		t.Errorf("SerialNumber = %q, want 42", ci.SerialNumber)
	}
}

func TestCertFactsInfo_MissingNotBefore(t *testing.T) {
	// WHY: Only the expiry may be representable; the start time is then
	// omitted rather than reported as the zero time.
	t.Parallel()
	f := &certFacts{
		notAfter: time.Date(2034, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	ci := f.info()
	if ci.NotBefore != "" {
		t.Errorf("NotBefore = %q, want empty", ci.NotBefore)
	}
	if ci.NotAfter == "" {
		t.Error("NotAfter missing")
	}
}

func TestCertFactsInfo_RawFallback(t *testing.T) {
	// WHY: When the times did not decode at all, the raw DER validity element
	// is carried verbatim so nothing is silently dropped.
	t.Parallel()
	certDER, _ := selfSignedCert(t, genECKey(t), "raw.example.com")
	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		t.Fatal(err)
	}

	f := &certFacts{rawTBS: cert.RawTBSCertificate}
	ci := f.info()
	if ci.NotBefore != "" || ci.NotAfter != "" {
		t.Errorf("scalar fields set without decoded times: %q / %q", ci.NotBefore, ci.NotAfter)
	}
	raw, err := base64.StdEncoding.DecodeString(ci.Validity)
	if err != nil {
		t.Fatalf("Validity %q is not base64: %v", ci.Validity, err)
	}

	var validity struct {
		NotBefore, NotAfter time.Time
	}
	if _, err := asn1.Unmarshal(raw, &validity); err != nil {
		t.Fatalf("Validity does not decode as a DER validity element: %v", err)
	}
	if !validity.NotAfter.Equal(cert.NotAfter) {
		t.Errorf("raw validity notAfter = %v, want %v", validity.NotAfter, cert.NotAfter)
	}
}

func TestRawValidity(t *testing.T) {
	// WHY: The TBS walk must land on the validity element despite the
	// optional explicit version field preceding the fixed ones.
	t.Parallel()
	certDER, _ := selfSignedCert(t, genRSAKey(t, 2048), "tbs.example.com")
	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := rawValidity(cert.RawTBSCertificate)
	if err != nil {
		t.Fatal(err)
	}
	var validity struct {
		NotBefore, NotAfter time.Time
	}
	if _, err := asn1.Unmarshal(raw, &validity); err != nil {
		t.Fatal(err)
	}
	if !validity.NotBefore.Equal(cert.NotBefore) || !validity.NotAfter.Equal(cert.NotAfter) {
		t.Errorf("extracted validity %v–%v, want %v–%v",
			validity.NotBefore, validity.NotAfter, cert.NotBefore, cert.NotAfter)
	}
}
