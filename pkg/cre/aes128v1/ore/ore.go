// Package ore is the order-revealing specialization of aes128v1: comparing
// two ciphertexts under the same Cipher reveals the Ordering between their
// plaintexts and nothing else.
package ore

import (
	"io"
	"sort"

	"github.com/coinbase/cretrit-go/pkg/cre"
	"github.com/coinbase/cretrit-go/pkg/cre/aes128v1"
)

// Cipher is an aes128v1 cre.Cipher bound to cre.OrderingComparator.
type Cipher struct {
	inner *cre.Cipher
}

// New derives an order-revealing Cipher for n digits of radix w from
// rootKey (which must be 16 bytes, an AES-128 key).
func New(rootKey []byte, n, w int) (*Cipher, error) {
	inner, err := cre.NewCipher(aes128v1.Suite{}, cre.OrderingComparator{}, rootKey, n, w)
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

// Compare returns the Ordering between the plaintexts underlying l and r.
func (c *Cipher) Compare(l *cre.LeftCipherText, r *cre.RightCipherText) (cre.Ordering, error) {
	residue, err := c.inner.Compare(l, r)
	if err != nil {
		return cre.OrderingEqual, err
	}
	return cre.Ordering(residue), nil
}

// CompareFull compares the left half of a against the right half of b.
func (c *Cipher) CompareFull(a, b *cre.FullCipherText) (cre.Ordering, error) {
	return c.Compare(a.Left, b.Right)
}

// SortableFullCipherTexts adapts a slice of FullCipherText for sort.Sort,
// comparing each pair's left half against the other's right half.
type SortableFullCipherTexts struct {
	Cipher *Cipher
	Items  []*cre.FullCipherText

	// err records the first comparison failure encountered by Less, which
	// sort.Interface has no way to surface; callers should check it after
	// sorting.
	err error
}

// Len implements sort.Interface.
func (s *SortableFullCipherTexts) Len() int { return len(s.Items) }

// Swap implements sort.Interface.
func (s *SortableFullCipherTexts) Swap(i, j int) {
	s.Items[i], s.Items[j] = s.Items[j], s.Items[i]
}

// Less implements sort.Interface.
func (s *SortableFullCipherTexts) Less(i, j int) bool {
	o, err := s.Cipher.CompareFull(s.Items[i], s.Items[j])
	if err != nil && s.err == nil {
		s.err = err
	}
	return o == cre.OrderingLess
}

// Err returns the first comparison error encountered while sorting, if any.
func (s *SortableFullCipherTexts) Err() error { return s.err }

// SortFullCipherTexts sorts items in place by the Ordering each pair's
// ciphertexts reveal, returning the first comparison error encountered, if
// any.
func SortFullCipherTexts(c *Cipher, items []*cre.FullCipherText) error {
	s := &SortableFullCipherTexts{Cipher: c, Items: items}
	sort.Stable(s)
	return s.Err()
}
