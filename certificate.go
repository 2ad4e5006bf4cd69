package keyprobe

import (
	"crypto"
	"crypto/x509"
	"encoding/asn1"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"time"

	ctx509 "github.com/google/certificate-transparency-go/x509"
	"github.com/smallstep/pkcs7"
)

// certFacts is the format-independent view of a parsed certificate. Both the
// strict stdlib parser and the lenient certificate-transparency fallback
// produce one, so extraction never cares which parser won.
type certFacts struct {
	subject   string
	issuer    string
	serial    *big.Int
	notBefore time.Time
	notAfter  time.Time
	rawTBS    []byte
	pub       crypto.PublicKey
}

// parseCertificate attempts to parse the input as an X.509 certificate.
// Returns nil on failure — certificate detection is nil-checked, never
// raised. Accepts PEM armor, raw DER, PKCS#7 certificate bundles, and as a
// last resort the lenient certificate-transparency-go parser for
// certificates the stdlib rejects on strictness grounds.
func parseCertificate(data []byte) *certFacts {
	der := data
	if block, _ := pem.Decode(data); block != nil {
		switch block.Type {
		case "CERTIFICATE", "TRUSTED CERTIFICATE", "PKCS7":
			der = block.Bytes
		default:
			return nil
		}
	}

	if cert, err := x509.ParseCertificate(der); err == nil {
		return factsFromCert(cert)
	}

	if p7, err := pkcs7.Parse(der); err == nil && len(p7.Certificates) > 0 {
		return factsFromCert(p7.Certificates[0])
	}

	// Lenient fallback: the CT fork parses certificates with encoding
	// violations the stdlib refuses, reporting them as non-fatal errors.
	if cert, err := ctx509.ParseCertificate(der); cert != nil && !ctx509.IsFatal(err) {
		return &certFacts{
			subject:   cert.Subject.String(),
			issuer:    cert.Issuer.String(),
			serial:    cert.SerialNumber,
			notBefore: cert.NotBefore,
			notAfter:  cert.NotAfter,
			rawTBS:    cert.RawTBSCertificate,
			pub:       cert.PublicKey,
		}
	}

	return nil
}

func factsFromCert(cert *x509.Certificate) *certFacts {
	return &certFacts{
		subject:   cert.Subject.String(),
		issuer:    cert.Issuer.String(),
		serial:    cert.SerialNumber,
		notBefore: cert.NotBefore,
		notAfter:  cert.NotAfter,
		rawTBS:    cert.RawTBSCertificate,
		pub:       cert.PublicKey,
	}
}

// info builds the CertificateInfo block. Subject and issuer come from their
// respective fields — never one copied into the other. The validity period
// is reported as scalar UTC timestamps when it decoded into the expected
// pair of single times; otherwise the raw DER validity element is carried
// verbatim (base64) so no information is lost.
func (f *certFacts) info() *CertificateInfo {
	ci := &CertificateInfo{
		Subject: f.subject,
		Issuer:  f.issuer,
	}
	if f.serial != nil {
		ci.SerialNumber = f.serial.String()
	}

	switch {
	case !f.notAfter.IsZero():
		ci.NotAfter = f.notAfter.UTC().Format(time.RFC3339)
		if !f.notBefore.IsZero() {
			ci.NotBefore = f.notBefore.UTC().Format(time.RFC3339)
		}
	default:
		if raw, err := rawValidity(f.rawTBS); err == nil && len(raw) > 0 {
			ci.Validity = base64.StdEncoding.EncodeToString(raw)
		}
	}

	return ci
}

// rawValidity extracts the DER-encoded validity element from a
// TBSCertificate without interpreting it.
func rawValidity(tbsDER []byte) ([]byte, error) {
	var tbs struct {
		Version    int `asn1:"optional,explicit,default:0,tag:0"`
		Serial     asn1.RawValue
		SigAlg     asn1.RawValue
		Issuer     asn1.RawValue
		Validity   asn1.RawValue
		Subject    asn1.RawValue
		SPKI       asn1.RawValue
		IssuerUID  asn1.BitString `asn1:"optional,tag:1"`
		SubjectUID asn1.BitString `asn1:"optional,tag:2"`
		Extensions asn1.RawValue  `asn1:"optional,explicit,tag:3"`
	}
	if _, err := asn1.Unmarshal(tbsDER, &tbs); err != nil {
		return nil, err
	}
	return tbs.Validity.FullBytes, nil
}
