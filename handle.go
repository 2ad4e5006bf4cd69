package keyprobe

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // DSA keys still show up in legacy material
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
)

// keyHandle is the closed result variant produced by the parsing layer. The
// parser that succeeds decides the role at the moment of decode; later
// stages never re-infer it from the serialization.
type keyHandle struct {
	kind   Kind
	format string
	algo   string

	// priv is set when kind == KindPrivate.
	priv crypto.PrivateKey
	// pub is set when kind == KindPublic.
	pub crypto.PublicKey

	// comment is the annotation carried by formats that have one.
	comment string
	// fingerprint overrides the computed SPKI fingerprint for formats with
	// their own fingerprint convention (OpenSSH).
	fingerprint string
}

// privateHandle builds a private-key handle, resolving the algorithm from
// the decoded key's concrete type. Returns nil for unsupported types so a
// failed candidate falls through to the next one.
func privateHandle(format string, key crypto.PrivateKey) *keyHandle {
	algo := privateKeyAlgorithm(key)
	if algo == "" {
		return nil
	}
	return &keyHandle{kind: KindPrivate, format: format, algo: algo, priv: normalizePrivateKey(key)}
}

// publicHandle builds a public-key handle, resolving the algorithm from the
// decoded key's concrete type. Returns nil for unsupported types.
func publicHandle(format string, key crypto.PublicKey) *keyHandle {
	algo := publicKeyAlgorithm(key)
	if algo == "" {
		return nil
	}
	return &keyHandle{kind: KindPublic, format: format, algo: algo, pub: key}
}

// normalizePrivateKey converts non-standard private key representations to
// their canonical Go form. Currently this dereferences *ed25519.PrivateKey
// (returned by ssh.ParseRawPrivateKey) to the value type ed25519.PrivateKey,
// ensuring downstream type switches only need one case.
func normalizePrivateKey(key crypto.PrivateKey) crypto.PrivateKey {
	if ptr, ok := key.(*ed25519.PrivateKey); ok {
		return *ptr
	}
	return key
}

// privateKeyAlgorithm names a private key's algorithm, or "" if the type is
// not supported.
func privateKeyAlgorithm(key crypto.PrivateKey) string {
	switch key.(type) {
	case *rsa.PrivateKey:
		return AlgorithmRSA
	case *ecdsa.PrivateKey:
		return AlgorithmEC
	case *dsa.PrivateKey:
		return AlgorithmDSA
	case ed25519.PrivateKey, *ed25519.PrivateKey:
		return AlgorithmEd25519
	default:
		return ""
	}
}

// publicKeyAlgorithm names a public key's algorithm, or "" if the type is
// not supported.
func publicKeyAlgorithm(key crypto.PublicKey) string {
	switch key.(type) {
	case *rsa.PublicKey:
		return AlgorithmRSA
	case *ecdsa.PublicKey:
		return AlgorithmEC
	case *dsa.PublicKey:
		return AlgorithmDSA
	case ed25519.PublicKey, *ed25519.PublicKey:
		return AlgorithmEd25519
	default:
		return ""
	}
}

// embeddedPublicKey derives the public half from a private key via
// crypto.Signer, with a manual path for DSA which predates the Signer
// interface in practice.
func embeddedPublicKey(priv crypto.PrivateKey) (crypto.PublicKey, bool) {
	if signer, ok := priv.(crypto.Signer); ok {
		return signer.Public(), true
	}
	if k, ok := priv.(*dsa.PrivateKey); ok {
		return &k.PublicKey, true
	}
	return nil, false
}
