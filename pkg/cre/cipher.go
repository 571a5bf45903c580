package cre

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Cipher binds a Suite and a Comparator to a fixed shape (N digits of
// radix W) and a root key, deriving the subkeys every encryption and
// comparison under it will use. A Cipher is safe for concurrent use by
// EncryptLeft and Compare; EncryptRight and EncryptFull take an explicit
// io.Reader so concurrent callers supply distinct randomness rather than
// contend on RNG state owned by the Cipher.
type Cipher struct {
	suite Suite
	cmp   Comparator
	n     int
	w     int

	prf    PRF
	hashFn HashFn
	prp    PRP

	prfKey  []byte
	hashKey []byte
	prpKey  []byte
}

// NewCipher derives subkeys from rootKey for the given shape (n digits of
// radix w) and comparator, binding them to suite's primitives.
func NewCipher(suite Suite, cmp Comparator, rootKey []byte, n int, w int) (*Cipher, error) {
	const op = "NewCipher"

	if n < 1 {
		return nil, errorf(op, "%w: n=%d", ErrInvalidShape, n)
	}
	if w < 2 || w > 256 {
		return nil, errorf(op, "%w: w=%d (must be in [2, 256])", ErrInvalidShape, w)
	}
	if len(rootKey) != suite.RootKeyLen() {
		return nil, errorf(op, "%w: want %d bytes, got %d", ErrInvalidKeyLength, suite.RootKeyLen(), len(rootKey))
	}

	kh, err := suite.NewKeyHierarchy(rootKey)
	if err != nil {
		return nil, errorf(op, "derive key hierarchy: %w", err)
	}

	shapeSuffix := []byte(fmt.Sprintf("/n=%d/w=%d/m=%d", n, w, cmp.Arity()))

	prfKey, err := kh.Derive(append([]byte(labelPRF), shapeSuffix...), suite.PRFKeyLen())
	if err != nil {
		return nil, errorf(op, "derive prf key: %w", err)
	}
	hashKey, err := kh.Derive(append([]byte(labelHash), shapeSuffix...), suite.HashKeyLen())
	if err != nil {
		return nil, errorf(op, "derive hash key: %w", err)
	}
	prpKey, err := kh.Derive(append([]byte(labelPerm), shapeSuffix...), suite.PRPKeyLen())
	if err != nil {
		return nil, errorf(op, "derive prp key: %w", err)
	}

	prf, err := suite.NewPRF(prfKey)
	if err != nil {
		return nil, errorf(op, "construct prf: %w", err)
	}
	hashFn, err := suite.NewHashFn(hashKey)
	if err != nil {
		return nil, errorf(op, "construct hash fn: %w", err)
	}
	prp, err := suite.NewPRP(prpKey, uint16(w))
	if err != nil {
		return nil, errorf(op, "construct prp: %w", err)
	}

	return &Cipher{
		suite:   suite,
		cmp:     cmp,
		n:       n,
		w:       w,
		prf:     prf,
		hashFn:  hashFn,
		prp:     prp,
		prfKey:  prfKey,
		hashKey: hashKey,
		prpKey:  prpKey,
	}, nil
}

// Close zeroizes the subkeys this Cipher derived. The Cipher must not be
// used after Close returns.
func (c *Cipher) Close() error {
	ZeroizeBytes(c.prfKey)
	ZeroizeBytes(c.hashKey)
	ZeroizeBytes(c.prpKey)
	return nil
}

// N returns the digit count this Cipher is bound to.
func (c *Cipher) N() int { return c.n }

// W returns the digit radix this Cipher is bound to.
func (c *Cipher) W() int { return c.w }

// Comparator returns the comparator this Cipher is bound to.
func (c *Cipher) Comparator() Comparator { return c.cmp }

func (c *Cipher) checkShape(op string, pt *Plaintext) error {
	if pt.N() != c.n || pt.W != c.w {
		return errorf(op, "%w: cipher is (n=%d,w=%d), plaintext is (n=%d,w=%d)", ErrShapeMismatch, c.n, c.w, pt.N(), pt.W)
	}
	return nil
}

// buildPrefixBlock assembles the 16-byte PRF input for block blockIndex's
// F_i: a 2-byte big-endian block index and the 14-byte chain state carried
// in from the preceding block. F_i is a pure function of the block index
// and the digits strictly before it — it deliberately does NOT depend on
// the block's own digit, which is instead carried separately as the
// permuted value p_i.
func buildPrefixBlock(blockIndex uint16, chainIn [14]byte) [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint16(b[0:2], blockIndex)
	copy(b[2:16], chainIn[:])
	return b
}

// nextChain folds this block's real PRF output and committed digit into
// the chain state the next block's prefix will carry.
func nextChain(f [16]byte, digit uint16) [14]byte {
	var out [14]byte
	copy(out[:], f[0:14])
	var d [2]byte
	binary.BigEndian.PutUint16(d[:], digit)
	out[12] ^= d[0]
	out[13] ^= d[1]
	return out
}

// realChain computes, for each block of pt, the real PRF output F_i (a
// pure function of blocks before i, never of pt's own digit at i).
func (c *Cipher) realChain(pt *Plaintext) (fs [][16]byte) {
	fs = make([][16]byte, c.n)

	var chain [14]byte
	for idx := 0; idx < c.n; idx++ {
		blockIndex := uint16(idx + 1)
		f := c.prf.Evaluate(buildPrefixBlock(blockIndex, chain))
		fs[idx] = f
		chain = nextChain(f, pt.Digits[idx])
	}
	return fs
}

// EncryptLeft produces the deterministic left ciphertext for pt.
func (c *Cipher) EncryptLeft(pt *Plaintext) (*LeftCipherText, error) {
	const op = "EncryptLeft"
	if err := c.checkShape(op, pt); err != nil {
		return nil, err
	}

	fs := c.realChain(pt)
	blocks := make([]leftBlock, c.n)
	for idx := range blocks {
		blockIndex := uint16(idx + 1)
		p := c.prp.Permute(blockIndex, pt.Digits[idx])
		blocks[idx] = leftBlock{F: fs[idx], P: uint8(p)}
	}
	return &LeftCipherText{N: c.n, W: c.w, M: c.cmp.Arity(), Blocks: blocks}, nil
}

// EncryptRight produces a randomized right ciphertext for pt, drawing its
// nonce from rng. Each block's value vector is masked by a single hash
// evaluation per block (not one per candidate slot): every entry of v_i
// shares the same additive mask H(K_H, (F_i, nonce)).
func (c *Cipher) EncryptRight(rng io.Reader, pt *Plaintext) (*RightCipherText, error) {
	const op = "EncryptRight"
	if err := c.checkShape(op, pt); err != nil {
		return nil, err
	}

	var nonce [16]byte
	if _, err := io.ReadFull(rng, nonce[:]); err != nil {
		return nil, errorf(op, "%w: %v", ErrRNGFailure, err)
	}

	fs := c.realChain(pt)
	m := c.cmp.Arity()
	bw := bitsPerValue(m)

	blocks := make([]rightBlock, c.n)
	for idx := 0; idx < c.n; idx++ {
		blockIndex := uint16(idx + 1)
		digit := pt.Digits[idx]

		mask, err := c.hashFn.Hash(hashInput(fs[idx], nonce), m)
		if err != nil {
			return nil, errorf(op, "hash block %d: %w", idx, err)
		}

		bits := newWritableBitList(c.w, bw)
		for j := 0; j < c.w; j++ {
			actual := c.prp.Invert(blockIndex, uint16(j))
			delta := c.cmp.Compare(actual, digit)
			v := (delta + mask) % m
			bits.Push(v)
		}
		blocks[idx] = rightBlock{V: bits.Bytes()}
	}

	return &RightCipherText{N: c.n, W: c.w, M: m, Nonce: nonce, Blocks: blocks}, nil
}

// EncryptFull produces a full ciphertext (Left and Right computed from the
// same plaintext and sharing the right side's nonce), drawing randomness
// from rng.
func (c *Cipher) EncryptFull(rng io.Reader, pt *Plaintext) (*FullCipherText, error) {
	left, err := c.EncryptLeft(pt)
	if err != nil {
		return nil, err
	}
	right, err := c.EncryptRight(rng, pt)
	if err != nil {
		return nil, err
	}
	return &FullCipherText{Left: left, Right: right}, nil
}

// Compare evaluates the comparator between the plaintexts underlying l and
// r without decrypting either.
//
// F_i is a pure function of the digits strictly before block i, so for
// every block up to and including the first point of divergence between
// the two plaintexts, l's stored F_i equals the F_i that was really used
// to mask r's block i — recomputing H(K_H,(l.F_i, r.Nonce)) at that block
// reproduces the same mask EncryptRight applied there, and unmasking
// yields the true comparator residue. At every block before the
// divergence point the two plaintexts' digits are equal, so the residue
// is exactly 0 by construction; at the divergence point itself the
// residue is the real, nonzero δ(x_i, y_i). Blocks after the divergence
// point see unsynchronized chain state (l.F_i no longer equals the F_i
// EncryptRight actually used), so their recomputed residues are
// uninformative noise — scanning forward and stopping at the first
// nonzero residue guarantees those blocks are never consulted.
func (c *Cipher) Compare(l *LeftCipherText, r *RightCipherText) (uint8, error) {
	const op = "Compare"
	// l.M is not authoritative: the wire format for LeftCipherText doesn't
	// carry M (it's implied by the comparator), so a deserialized left
	// ciphertext may have it unset. r.M is the only one that matters here.
	if l.N != r.N || l.W != r.W {
		return 0, errorf(op, "%w", ErrShapeMismatch)
	}
	if l.N != c.n || l.W != c.w || r.M != c.cmp.Arity() {
		return 0, errorf(op, "%w: does not match cipher shape", ErrShapeMismatch)
	}

	bw := bitsPerValue(c.cmp.Arity())
	for idx := 0; idx < c.n; idx++ {
		mask, err := c.hashFn.Hash(hashInput(l.Blocks[idx].F, r.Nonce), c.cmp.Arity())
		if err != nil {
			return 0, errorf(op, "hash block %d: %w", idx, err)
		}

		reader := newReadableBitList(r.Blocks[idx].V, bw)
		var vAtP uint8
		for k := 0; k <= int(l.Blocks[idx].P); k++ {
			val, err := reader.Shift()
			if err != nil {
				return 0, errorf(op, "%w: block %d: %v", ErrInvalidCiphertext, idx, err)
			}
			vAtP = val
		}

		residue := (vAtP - mask + c.cmp.Arity()) % c.cmp.Arity()
		if residue != 0 {
			return residue, nil
		}
	}
	// Every block's residue was 0: the plaintexts agree at every digit, or
	// N=1 and that single block's comparator residue was itself 0. Block 1's
	// chain state is always the zero-value [14]byte{} regardless of
	// plaintext, so this path is always reachable and well-defined — there
	// is no "no common prefix at all" case that would need separate
	// handling.
	return 0, nil
}

// hashInput builds the canonical input to HashFn for a block whose real or
// candidate PRF output is f, given the right ciphertext's shared nonce.
// This does not fold in the block index or candidate slot directly: the
// block index is already bound into f through the PRF's own prefix-chained
// construction, and H masks a block's entire value vector with a single
// shared value rather than one mask per slot.
func hashInput(f [16]byte, nonce [16]byte) []byte {
	out := make([]byte, 0, 32)
	out = append(out, f[:]...)
	out = append(out, nonce[:]...)
	return out
}
