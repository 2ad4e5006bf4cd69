// Package keyprobe classifies opaque key and certificate material: given a
// blob claimed to be a cryptographic key or X.509 certificate, it determines
// whether it is a private key, a public key, or a certificate, in which
// serialization format, with which algorithm and parameters, and extracts
// certificate metadata.
//
// Classification is a pure, synchronous computation over the input bytes: no
// I/O, no shared state, safe for concurrent use. Results are produced fresh
// on every call; callers that find the exhaustive fallback too expensive for
// repeated inputs should cache by input themselves.
package keyprobe

// Classify determines what kind of cryptographic material raw contains and
// extracts its properties. The passphrase, when non-empty, is tried for
// private-key decryption alongside a small list of well-known defaults; it
// is ignored for public keys and certificates.
//
// Detection runs in priority order, each attempt swallowing its own parse
// failure:
//
//  1. RSA in PKCS#8 — what standard tooling emits, so trying this one
//     (algorithm, format) pair first avoids the exhaustive fallback for the
//     overwhelmingly common case.
//  2. X.509 certificate (PEM, DER, PKCS#7; lenient fallback parser). A
//     certificate whose key payload cannot be extracted falls through to
//     the generic loader with the raw input.
//  3. The full priority-ordered (algorithm, format) table: PKCS#1, SEC1,
//     PKCS#8, OpenSSH, PKIX, and the PKCS#12 and JKS container formats,
//     across RSA, EC, DSA, and Ed25519.
//
// Empty input fails with ErrEmptyInput before any parse; input matching
// nothing fails with ErrUnrecognized. No other error is ever returned, and
// per-field extraction faults degrade to omitted fields rather than errors.
func Classify(raw []byte, passphrase string) (*KeyProperties, error) {
	var extra []string
	if passphrase != "" {
		extra = []string{passphrase}
	}
	return ClassifyWithPasswords(raw, extra)
}

// ClassifyWithPasswords is Classify with a caller-supplied password list,
// merged with the defaults, for material whose passphrase is not known in
// advance.
func ClassifyWithPasswords(raw []byte, extra []string) (*KeyProperties, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}
	passwords := DeduplicatePasswords(extra)

	// Fast path: the statistically likely case.
	handle, _ := parseRSAPKCS8(raw, passwords)

	// Certificate path. Parsing is nil-checked, never raising; a parsed
	// certificate whose public key cannot be used keeps the pipeline going.
	var cert *certFacts
	if handle == nil {
		cert = parseCertificate(raw)
		if cert != nil {
			handle = publicHandle(FormatX509, cert.pub)
		}
	}

	// Generic fallback over the full format × algorithm table.
	if handle == nil {
		for _, c := range candidates() {
			if h, err := c.parse(raw, passwords); err == nil && h != nil {
				handle = h
				break
			}
		}
	}

	if handle == nil {
		if cert == nil {
			return nil, ErrUnrecognized
		}
		// The certificate container parsed but its key payload did not:
		// classification produced no key, so no kind is reported.
		return &KeyProperties{}, nil
	}

	return extract(handle, cert), nil
}
