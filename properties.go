package keyprobe

import "errors"

// Sentinel errors returned by Classify. Individual parse failures inside the
// detection pipeline are never surfaced; only these two terminal conditions
// reach the caller.
var (
	// ErrEmptyInput is returned when the input is empty. No parse is attempted.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnrecognized is returned when the input matched no known key format
	// and was not a parseable certificate either.
	ErrUnrecognized = errors.New("not recognized as a key")
)

// Kind identifies the role of a classified key.
type Kind string

const (
	// KindPrivate marks a private key.
	KindPrivate Kind = "private"
	// KindPublic marks a public key, including keys embedded in certificates.
	KindPublic Kind = "public"
)

// Serialization format names reported in KeyProperties.Format.
const (
	FormatPKCS1   = "PKCS1"   // traditional OpenSSL ASN.1 encoding (RSA, DSA)
	FormatSEC1    = "SEC1"    // traditional OpenSSL EC private key encoding
	FormatPKCS8   = "PKCS8"   // RFC 5208/5958 private key encoding
	FormatPKIX    = "PKIX"    // SubjectPublicKeyInfo public key encoding
	FormatOpenSSH = "OpenSSH" // OpenSSH private key / authorized_keys line
	FormatX509    = "X509"    // public key extracted from a certificate
	FormatPKCS12  = "PKCS12"  // PKCS#12/PFX container
	FormatJKS     = "JKS"     // Java KeyStore container
	FormatRaw     = "Raw"     // bare Ed25519 seed||public key bytes
)

// Algorithm names reported in KeyProperties.Algorithm.
const (
	AlgorithmRSA     = "RSA"
	AlgorithmEC      = "EC"
	AlgorithmDSA     = "DSA"
	AlgorithmEd25519 = "Ed25519"
)

// KeyProperties is the result of classifying an opaque key or certificate
// blob. Every field is best-effort: a field that could not be determined is
// left at its zero value and omitted from JSON output, never populated with
// an empty placeholder. The value is a pure computation result; it holds no
// resources and is safe to share once returned.
type KeyProperties struct {
	// Kind is set if and only if the input was classified as a key. An input
	// that parsed as a certificate whose key payload could not be extracted
	// has no Kind.
	Kind Kind `json:"kind,omitempty"`

	// Format names the serialization the input was recognized in.
	Format string `json:"format,omitempty"`

	// Algorithm names the key algorithm: RSA, EC, DSA, or Ed25519.
	Algorithm string `json:"algorithm,omitempty"`

	// KeySizeBits is the key size in bits: the modulus length for RSA, the
	// prime length for DSA, the curve field size for EC, and 256 for
	// Ed25519. For EC keys Curve carries the non-scalar part of the size.
	KeySizeBits int `json:"key_size_bits,omitempty"`

	// Curve is the named curve for EC keys. Callers that treat key size as
	// a scalar must be prepared for this composite representation.
	Curve string `json:"curve,omitempty"`

	// HashAlgorithm is the hash bound to the key type's default signature
	// scheme, when the algorithm defines one.
	HashAlgorithm string `json:"hash_algorithm,omitempty"`

	// HashSizeBits is the output size of HashAlgorithm.
	HashSizeBits int `json:"hash_size_bits,omitempty"`

	// Comment is the human annotation embedded in formats that carry one
	// (OpenSSH authorized_keys).
	Comment string `json:"comment,omitempty"`

	// Fingerprint identifies the public key. Populated for public keys only.
	Fingerprint string `json:"fingerprint,omitempty"`

	// HasEmbeddedPublicKey reports whether a private key's structure also
	// yields its public counterpart.
	HasEmbeddedPublicKey bool `json:"has_embedded_public_key,omitempty"`

	// Certificate is present only when the input was an X.509 certificate
	// and its public key was extracted (Kind == KindPublic).
	Certificate *CertificateInfo `json:"certificate,omitempty"`
}

// CertificateInfo carries X.509 metadata for certificate inputs.
//
// Exactly one of {NotBefore/NotAfter, Validity} is populated when the
// certificate encodes a validity period: the scalar fields when the validity
// decodes into the expected pair of single UTC times, the opaque Validity
// fallback otherwise. The fallback is the raw DER validity element,
// base64-encoded verbatim; it is not escaped for display.
type CertificateInfo struct {
	// Subject is the subject distinguished name.
	Subject string `json:"subject"`
	// Issuer is the issuer distinguished name. Extracted from the issuer
	// field proper, never copied from the subject.
	Issuer string `json:"issuer"`
	// SerialNumber is the certificate serial in decimal.
	SerialNumber string `json:"serial_number,omitempty"`
	// NotBefore is the start of the validity period as a UTC RFC 3339 string.
	NotBefore string `json:"not_before,omitempty"`
	// NotAfter is the end of the validity period as a UTC RFC 3339 string.
	NotAfter string `json:"not_after,omitempty"`
	// Validity holds the base64 raw validity element when the scalar fields
	// could not be populated.
	Validity string `json:"validity,omitempty"`
}
