package keyprobe

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/youmark/pkcs8"
	"golang.org/x/crypto/ssh"
)

// candidate is one (algorithm, format) parse attempt in the detection table.
// Each attempt owns its own failure: a non-nil error or nil handle means
// "try the next candidate", never a terminal failure.
type candidate struct {
	algorithm string // "" when the parser resolves it from the decoded type
	format    string
	parse     func(data []byte, passwords []string) (*keyHandle, error)
}

// candidates returns the priority-ordered generic detection table. The fast
// path (RSA in PKCS#8, the overwhelmingly common case from standard tooling)
// is tried by Classify before the certificate path and this table, so the
// expensive exhaustive tail only runs for uncommon inputs. Container formats
// come last: their magic checks are cheap but their decode is not.
func candidates() []candidate {
	return []candidate{
		{AlgorithmRSA, FormatPKCS1, parsePKCS1},
		{AlgorithmEC, FormatSEC1, parseSEC1},
		{"", FormatPKCS8, parsePKCS8},
		{AlgorithmDSA, FormatPKCS1, parseDSAPKCS1},
		{"", FormatOpenSSH, parseOpenSSHPrivate},
		{"", FormatOpenSSH, parseAuthorizedKey},
		{"", FormatPKIX, parsePKIXPublic},
		{AlgorithmEd25519, FormatRaw, parseRawEd25519},
		{"", FormatPKCS12, parsePKCS12},
		{"", FormatJKS, parseJKS},
	}
}

// parseRSAPKCS8 is the fast-path parser: a PKCS#8 key that decodes to RSA.
// Any other outcome is an error so the pipeline falls through.
func parseRSAPKCS8(data []byte, passwords []string) (*keyHandle, error) {
	key, err := parsePKCS8PrivateKey(data, passwords)
	if err != nil {
		return nil, err
	}
	if _, ok := key.(*rsa.PrivateKey); !ok {
		return nil, fmt.Errorf("PKCS#8 key is %T, not RSA", key)
	}
	return privateHandle(FormatPKCS8, key), nil
}

// parsePKCS8 accepts any supported algorithm in PKCS#8 encoding.
func parsePKCS8(data []byte, passwords []string) (*keyHandle, error) {
	key, err := parsePKCS8PrivateKey(data, passwords)
	if err != nil {
		return nil, err
	}
	h := privateHandle(FormatPKCS8, key)
	if h == nil {
		return nil, fmt.Errorf("unsupported PKCS#8 key type %T", key)
	}
	return h, nil
}

// parsePKCS8PrivateKey parses a PKCS#8 private key from PEM or raw DER,
// handling both RFC 5958 encrypted PKCS#8 and legacy RFC 1423 encrypted PEM
// via the password list.
func parsePKCS8PrivateKey(data []byte, passwords []string) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		// Raw DER: plain first, then encrypted PKCS#8.
		if key, err := x509.ParsePKCS8PrivateKey(data); err == nil {
			return key, nil
		}
		return parseEncryptedPKCS8(data, passwords)
	}

	switch block.Type {
	case "PRIVATE KEY":
		der, err := decryptLegacyPEM(block, passwords)
		if err != nil {
			return nil, err
		}
		key, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#8 private key: %w", err)
		}
		return key, nil
	case "ENCRYPTED PRIVATE KEY":
		return parseEncryptedPKCS8(block.Bytes, passwords)
	default:
		return nil, fmt.Errorf("unexpected PEM block type %q", block.Type)
	}
}

// parseEncryptedPKCS8 tries each password against RFC 5958 encrypted PKCS#8
// DER. The empty password is skipped; encrypted PKCS#8 always has one.
func parseEncryptedPKCS8(der []byte, passwords []string) (crypto.PrivateKey, error) {
	for _, password := range passwords {
		if password == "" {
			continue
		}
		if key, err := pkcs8.ParsePKCS8PrivateKey(der, []byte(password)); err == nil {
			return key, nil
		}
	}
	return nil, errors.New("decrypting PKCS#8 private key with any provided password")
}

// parsePKCS1 parses a traditional OpenSSL RSA private key from PEM or raw
// DER. "PRIVATE KEY" blocks are accepted too: some tools (e.g., pkcs12.ToPEM)
// label PKCS#1 keys that way.
func parsePKCS1(data []byte, passwords []string) (*keyHandle, error) {
	der, err := pemOrDER(data, passwords, "RSA PRIVATE KEY", "PRIVATE KEY")
	if err != nil {
		return nil, err
	}
	key, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#1 private key: %w", err)
	}
	return privateHandle(FormatPKCS1, key), nil
}

// parseSEC1 parses a traditional OpenSSL EC private key from PEM or raw DER.
// Mislabeled "PRIVATE KEY" blocks are accepted, matching parsePKCS1.
func parseSEC1(data []byte, passwords []string) (*keyHandle, error) {
	der, err := pemOrDER(data, passwords, "EC PRIVATE KEY", "PRIVATE KEY")
	if err != nil {
		return nil, err
	}
	key, err := x509.ParseECPrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing EC private key: %w", err)
	}
	return privateHandle(FormatSEC1, key), nil
}

// parseDSAPKCS1 parses a traditional OpenSSL DSA private key. The stdlib has
// no DSA ASN.1 parser; x/crypto/ssh handles the "DSA PRIVATE KEY" PEM form.
func parseDSAPKCS1(data []byte, passwords []string) (*keyHandle, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "DSA PRIVATE KEY" {
		return nil, errors.New("no DSA PRIVATE KEY block")
	}
	der, err := decryptLegacyPEM(block, passwords)
	if err != nil {
		return nil, err
	}
	clearPEM := pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der})
	key, err := ssh.ParseRawPrivateKey(clearPEM)
	if err != nil {
		return nil, fmt.Errorf("parsing DSA private key: %w", err)
	}
	return privateHandle(FormatPKCS1, key), nil
}

// parseOpenSSHPrivate parses the proprietary OpenSSH private key encoding,
// trying the passphrase list when the key is encrypted. OpenSSH uses its own
// encryption format, not legacy RFC 1423.
func parseOpenSSHPrivate(data []byte, passwords []string) (*keyHandle, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "OPENSSH PRIVATE KEY" {
		return nil, errors.New("no OPENSSH PRIVATE KEY block")
	}
	if key, err := ssh.ParseRawPrivateKey(data); err == nil {
		return privateHandle(FormatOpenSSH, key), nil
	}
	for _, password := range passwords {
		if password == "" {
			continue
		}
		if key, err := ssh.ParseRawPrivateKeyWithPassphrase(data, []byte(password)); err == nil {
			return privateHandle(FormatOpenSSH, key), nil
		}
	}
	return nil, errors.New("parsing OpenSSH private key with any provided password")
}

// parseAuthorizedKey parses a single-line OpenSSH public key (the
// authorized_keys format), preserving its comment and SSH fingerprint.
func parseAuthorizedKey(data []byte, _ []string) (*keyHandle, error) {
	sshPub, comment, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, fmt.Errorf("parsing authorized_keys line: %w", err)
	}
	cpk, ok := sshPub.(ssh.CryptoPublicKey)
	if !ok {
		return nil, fmt.Errorf("SSH key type %s has no crypto form", sshPub.Type())
	}
	h := publicHandle(FormatOpenSSH, cpk.CryptoPublicKey())
	if h == nil {
		return nil, fmt.Errorf("unsupported SSH public key type %s", sshPub.Type())
	}
	h.comment = comment
	h.fingerprint = ssh.FingerprintSHA256(sshPub)
	return h, nil
}

// parsePKIXPublic parses a SubjectPublicKeyInfo public key ("PUBLIC KEY" PEM
// or raw DER), plus the PKCS#1 "RSA PUBLIC KEY" form.
func parsePKIXPublic(data []byte, _ []string) (*keyHandle, error) {
	der := data
	if block, _ := pem.Decode(data); block != nil {
		switch block.Type {
		case "PUBLIC KEY":
			der = block.Bytes
		case "RSA PUBLIC KEY":
			key, err := x509.ParsePKCS1PublicKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parsing PKCS#1 public key: %w", err)
			}
			return publicHandle(FormatPKCS1, key), nil
		default:
			return nil, fmt.Errorf("unexpected PEM block type %q", block.Type)
		}
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing PKIX public key: %w", err)
	}
	h := publicHandle(FormatPKIX, key)
	if h == nil {
		return nil, fmt.Errorf("unsupported PKIX key type %T", key)
	}
	return h, nil
}

// parseRawEd25519 recognizes a bare Ed25519 private key (seed || public
// key). Validated by deriving the public key from the seed and comparing to
// the suffix — prevents misidentifying arbitrary 64-byte blobs.
func parseRawEd25519(data []byte, _ []string) (*keyHandle, error) {
	if len(data) != ed25519.PrivateKeySize {
		return nil, errors.New("not an Ed25519 raw key")
	}
	derived := ed25519.NewKeyFromSeed(data[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], data[ed25519.SeedSize:]) {
		return nil, errors.New("Ed25519 public half does not match seed")
	}
	return privateHandle(FormatRaw, derived), nil
}

// pemOrDER returns the DER payload for one of the accepted PEM block types,
// decrypting legacy RFC 1423 encryption when present, or the input itself
// when it is not PEM at all.
func pemOrDER(data []byte, passwords []string, types ...string) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return data, nil
	}
	for _, t := range types {
		if block.Type == t {
			return decryptLegacyPEM(block, passwords)
		}
	}
	return nil, fmt.Errorf("unexpected PEM block type %q", block.Type)
}

// decryptLegacyPEM returns the block's DER bytes, decrypting RFC 1423
// encrypted blocks with the password list.
func decryptLegacyPEM(block *pem.Block, passwords []string) ([]byte, error) {
	//nolint:staticcheck // x509.IsEncryptedPEMBlock is deprecated but needed for legacy encrypted PEM support
	if !x509.IsEncryptedPEMBlock(block) {
		return block.Bytes, nil
	}
	for _, password := range passwords {
		//nolint:staticcheck // x509.DecryptPEMBlock is deprecated but needed for legacy encrypted PEM support
		if der, err := x509.DecryptPEMBlock(block, []byte(password)); err == nil {
			return der, nil
		}
	}
	return nil, errors.New("decrypting PEM block with any provided password")
}
