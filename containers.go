package keyprobe

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/pavlo-v-chernykh/keystore-go/v4"
	gopkcs12 "software.sslmate.com/src/go-pkcs12"
)

// parsePKCS12 decodes a PKCS#12/PFX container, trying each password. A
// container with a private key classifies as that key; a certs-only
// container classifies as the public key of its first certificate.
func parsePKCS12(data []byte, passwords []string) (*keyHandle, error) {
	der := data
	if block, _ := pem.Decode(data); block != nil {
		if block.Type != "PKCS12" {
			return nil, fmt.Errorf("unexpected PEM block type %q", block.Type)
		}
		der = block.Bytes
	}

	for _, password := range passwords {
		key, leaf, _, err := gopkcs12.DecodeChain(der, password)
		if err != nil {
			continue
		}
		if key != nil {
			if h := privateHandle(FormatPKCS12, key); h != nil {
				return h, nil
			}
		}
		if leaf != nil {
			if h := publicHandle(FormatPKCS12, leaf.PublicKey); h != nil {
				return h, nil
			}
		}
		return nil, errors.New("PKCS#12 container holds no usable key")
	}
	return nil, errors.New("decoding PKCS#12 with any provided password")
}

// jksMagic is the Java KeyStore file header.
var jksMagic = []byte{0xFE, 0xED, 0xFE, 0xED}

// parseJKS decodes a Java KeyStore, trying each password for both the store
// and its entries (standard Java convention uses the same one). A private
// key entry wins over trusted certificate entries.
func parseJKS(data []byte, passwords []string) (*keyHandle, error) {
	if !bytes.HasPrefix(data, jksMagic) {
		return nil, errors.New("no JKS magic")
	}

	for _, password := range passwords {
		ks := keystore.New()
		if err := ks.Load(bytes.NewReader(data), []byte(password)); err != nil {
			continue
		}

		var pub *keyHandle
		for _, alias := range ks.Aliases() {
			if ks.IsPrivateKeyEntry(alias) {
				entry, err := ks.GetPrivateKeyEntry(alias, []byte(password))
				if err != nil {
					continue
				}
				key, err := x509.ParsePKCS8PrivateKey(entry.PrivateKey)
				if err != nil {
					continue
				}
				if h := privateHandle(FormatJKS, key); h != nil {
					return h, nil
				}
			}
			if pub == nil && ks.IsTrustedCertificateEntry(alias) {
				entry, err := ks.GetTrustedCertificateEntry(alias)
				if err != nil {
					continue
				}
				cert, err := x509.ParseCertificate(entry.Certificate.Content)
				if err != nil {
					continue
				}
				pub = publicHandle(FormatJKS, cert.PublicKey)
			}
		}
		if pub != nil {
			return pub, nil
		}
		return nil, errors.New("JKS contains no usable entries")
	}
	return nil, errors.New("loading JKS with any provided password")
}
