// Package ere is the equality-revealing specialization of aes128v1:
// comparing two ciphertexts under the same Cipher reveals only whether
// their plaintexts are equal.
package ere

import (
	"io"

	"github.com/coinbase/cretrit-go/pkg/cre"
	"github.com/coinbase/cretrit-go/pkg/cre/aes128v1"
)

// Cipher is an aes128v1 cre.Cipher bound to cre.EqualityComparator.
type Cipher struct {
	inner *cre.Cipher
}

// New derives an equality-revealing Cipher for n digits of radix w from
// rootKey (which must be 16 bytes, an AES-128 key).
func New(rootKey []byte, n, w int) (*Cipher, error) {
	inner, err := cre.NewCipher(aes128v1.Suite{}, cre.EqualityComparator{}, rootKey, n, w)
	if err != nil {
		return nil, err
	}
	return &Cipher{inner: inner}, nil
}

// Close zeroizes the Cipher's derived key material.
func (c *Cipher) Close() error { return c.inner.Close() }

// EncryptLeft produces the deterministic left ciphertext for pt.
func (c *Cipher) EncryptLeft(pt *cre.Plaintext) (*cre.LeftCipherText, error) {
	return c.inner.EncryptLeft(pt)
}

// EncryptRight produces a randomized right ciphertext for pt, drawing its
// nonce from rng.
func (c *Cipher) EncryptRight(rng io.Reader, pt *cre.Plaintext) (*cre.RightCipherText, error) {
	return c.inner.EncryptRight(rng, pt)
}

// EncryptFull produces a full ciphertext for pt, drawing its nonce from
// rng.
func (c *Cipher) EncryptFull(rng io.Reader, pt *cre.Plaintext) (*cre.FullCipherText, error) {
	return c.inner.EncryptFull(rng, pt)
}

// Equal reports whether the plaintexts underlying l and r are equal.
func (c *Cipher) Equal(l *cre.LeftCipherText, r *cre.RightCipherText) (bool, error) {
	residue, err := c.inner.Compare(l, r)
	if err != nil {
		return false, err
	}
	return residue == 0, nil
}

// EqualFull compares the left half of a against the right half of b.
func (c *Cipher) EqualFull(a, b *cre.FullCipherText) (bool, error) {
	return c.Equal(a.Left, b.Right)
}
