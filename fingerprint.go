package keyprobe

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // DSA keys still show up in legacy material
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// ColonHex formats a byte slice as colon-separated lowercase hex.
func ColonHex(b []byte) string {
	h := hex.EncodeToString(b)
	parts := make([]string, 0, len(h)/2)
	for i := 0; i < len(h); i += 2 {
		end := min(i+2, len(h))
		parts = append(parts, h[i:end])
	}
	return strings.Join(parts, ":")
}

// PublicKeyFingerprint returns the SHA-256 fingerprint of a public key as
// colon-separated lowercase hex over its SubjectPublicKeyInfo encoding.
// Supports RSA, ECDSA, Ed25519, and DSA keys.
func PublicKeyFingerprint(pub crypto.PublicKey) (string, error) {
	der, err := marshalPublicKeyDER(pub)
	if err != nil {
		return "", fmt.Errorf("marshal PKIX: %w", err)
	}
	sum := sha256.Sum256(der)
	return ColonHex(sum[:]), nil
}

// marshalPublicKeyDER marshals a public key to PKIX SubjectPublicKeyInfo DER.
// Wraps x509.MarshalPKIXPublicKey with additional DSA support (RFC 3279).
func marshalPublicKeyDER(pub crypto.PublicKey) ([]byte, error) {
	// Try stdlib first (handles RSA, ECDSA, Ed25519)
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err == nil {
		return der, nil
	}

	// Handle DSA manually — Go stdlib doesn't support marshaling DSA keys
	if dsaKey, ok := pub.(*dsa.PublicKey); ok {
		return marshalDSAPublicKeyDER(dsaKey)
	}

	return nil, err
}

// marshalDSAPublicKeyDER encodes a DSA public key as PKIX SubjectPublicKeyInfo
// per RFC 3279 Section 2.3.2.
func marshalDSAPublicKeyDER(pub *dsa.PublicKey) ([]byte, error) {
	// id-dsa OID: 1.2.840.10040.4.1
	dsaOID := asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}

	type dsaParams struct {
		P, Q, G *big.Int
	}
	paramBytes, err := asn1.Marshal(dsaParams{P: pub.P, Q: pub.Q, G: pub.G})
	if err != nil {
		return nil, fmt.Errorf("marshaling DSA parameters: %w", err)
	}

	pubKeyBytes, err := asn1.Marshal(pub.Y)
	if err != nil {
		return nil, fmt.Errorf("marshaling DSA public key: %w", err)
	}

	type algorithmIdentifier struct {
		Algorithm  asn1.ObjectIdentifier
		Parameters asn1.RawValue
	}
	type subjectPublicKeyInfo struct {
		Algorithm algorithmIdentifier
		PublicKey asn1.BitString
	}

	spki := subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{
			Algorithm:  dsaOID,
			Parameters: asn1.RawValue{FullBytes: paramBytes},
		},
		PublicKey: asn1.BitString{
			Bytes:     pubKeyBytes,
			BitLength: len(pubKeyBytes) * 8,
		},
	}

	return asn1.Marshal(spki)
}
