// Package secrets decrypts SOPS-encrypted manifest files in memory so
// plaintext secret material is piped straight into the cluster apply path
// and never written to disk.
package secrets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
)

// Decrypter turns an encrypted file into plaintext manifest bytes.
type Decrypter interface {
	Decrypt(path string) ([]byte, error)
}

// SOPSDecrypter decrypts files encrypted with SOPS using whatever key
// material is available in the environment (age, PGP, KMS).
type SOPSDecrypter struct{}

// Decrypt returns the plaintext content of the encrypted file.
func (SOPSDecrypter) Decrypt(path string) ([]byte, error) {
	plaintext, err := decrypt.File(path, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s: %w", path, err)
	}
	return plaintext, nil
}

// formatFor maps a file extension to the SOPS store format.
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".env":
		return "dotenv"
	default:
		return "yaml"
	}
}
