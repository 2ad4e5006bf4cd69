package keyprobe

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // DSA keys still show up in legacy material
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
)

// extract builds the property map from a decoded handle and, for certificate
// inputs, the parsed certificate facts. Every field is independently
// best-effort: a field that cannot be determined for this (format,
// algorithm) pair is omitted, and no single field ever aborts the rest.
func extract(h *keyHandle, cert *certFacts) *KeyProperties {
	p := &KeyProperties{
		Kind:      h.kind,
		Format:    h.format,
		Algorithm: h.algo,
		Comment:   h.comment,
	}

	switch h.kind {
	case KindPrivate:
		p.KeySizeBits, p.Curve = privateKeySize(h.priv)
		if _, ok := embeddedPublicKey(h.priv); ok {
			p.HasEmbeddedPublicKey = true
		}
	case KindPublic:
		p.KeySizeBits, p.Curve = publicKeySize(h.pub)
		p.Fingerprint = h.fingerprint
		if p.Fingerprint == "" {
			// Derivation failure just leaves the field absent.
			if fp, err := PublicKeyFingerprint(h.pub); err == nil {
				p.Fingerprint = fp
			}
		}
	}

	p.HashAlgorithm, p.HashSizeBits = defaultHash(p.Algorithm, p.Curve)

	if cert != nil && h.kind == KindPublic {
		p.Certificate = cert.info()
	}

	return p
}

// privateKeySize returns the key size in bits and, for EC keys, the named
// curve. Unknown types yield zero values, which extraction omits.
func privateKeySize(key crypto.PrivateKey) (int, string) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return k.N.BitLen(), ""
	case *ecdsa.PrivateKey:
		return k.Curve.Params().BitSize, k.Curve.Params().Name
	case *dsa.PrivateKey:
		return k.P.BitLen(), ""
	case ed25519.PrivateKey:
		return 256, ""
	default:
		return 0, ""
	}
}

// publicKeySize returns the key size in bits and, for EC keys, the named
// curve.
func publicKeySize(key crypto.PublicKey) (int, string) {
	switch k := key.(type) {
	case *rsa.PublicKey:
		return k.N.BitLen(), ""
	case *ecdsa.PublicKey:
		return k.Curve.Params().BitSize, k.Curve.Params().Name
	case *dsa.PublicKey:
		return k.P.BitLen(), ""
	case ed25519.PublicKey:
		return 256, ""
	default:
		return 0, ""
	}
}

// defaultHash names the hash bound to the algorithm's default signature
// scheme. Plain RSA and DSA default to SHA-256, Ed25519 is defined over
// SHA-512, and EC follows the curve size. Unknown algorithms expose no hash.
func defaultHash(algorithm, curve string) (string, int) {
	switch algorithm {
	case AlgorithmRSA, AlgorithmDSA:
		return "sha256", 256
	case AlgorithmEd25519:
		return "sha512", 512
	case AlgorithmEC:
		switch curve {
		case "P-384":
			return "sha384", 384
		case "P-521":
			return "sha512", 512
		default:
			return "sha256", 256
		}
	default:
		return "", 0
	}
}
