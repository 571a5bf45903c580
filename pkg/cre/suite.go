package cre

// PRF is a keyed pseudorandom function over 16-byte blocks, realized in
// aes128v1 as single-block AES-128 encryption. Cipher builds each block's
// input by combining a block index with the running chain state folded in
// from every preceding block's real output and committed digit (see
// buildPrefixBlock in cipher.go); PRF itself is oblivious to that
// structure and, notably, never sees the current block's own digit.
type PRF interface {
	// Evaluate returns a pseudorandom 16-byte block for block.
	Evaluate(block [16]byte) [16]byte
}

// HashFn is a keyed hash reduced modulo an arity M, used to blind the
// per-block value vectors of a right ciphertext. Implementations must
// reduce their raw output to [0, modulus) without introducing a detectable
// bias, e.g. via rejection sampling.
type HashFn interface {
	// Hash returns a pseudorandom residue in [0, modulus) for input.
	Hash(input []byte, modulus uint8) (uint8, error)
}

// PRP is a keyed family of pseudorandom permutations of [0, W), one per
// block index, used to decorrelate a block's committed digit from its
// stored representation in a LeftCT/RightCT.
type PRP interface {
	// Permute returns π_blockIndex(x) for x in [0, W).
	Permute(blockIndex uint16, x uint16) uint16

	// Invert returns π_blockIndex⁻¹(y) for y in [0, W).
	Invert(blockIndex uint16, y uint16) uint16
}

// KeyHierarchy derives independent, fixed-length subkeys from a Cipher's
// root key, one per domain-separation label.
type KeyHierarchy interface {
	// Derive returns a pseudorandom subkey of the given length for label.
	Derive(label []byte, length int) ([]byte, error)
}

// Suite bundles the primitive constructors a concrete ciphersuite (e.g.
// aes128v1) supplies to the generic Cipher engine. A Suite is stateless;
// all per-Cipher state lives in the subkeys Cipher derives through it.
type Suite interface {
	// Name identifies the suite, e.g. "aes128v1".
	Name() string

	// RootKeyLen returns the expected length in bytes of a root key.
	RootKeyLen() int

	// NewKeyHierarchy constructs a KeyHierarchy bound to rootKey.
	NewKeyHierarchy(rootKey []byte) (KeyHierarchy, error)

	// NewPRF constructs a PRF bound to key, which must be PRFKeyLen() bytes.
	NewPRF(key []byte) (PRF, error)

	// NewHashFn constructs a HashFn bound to key, which must be
	// HashKeyLen() bytes.
	NewHashFn(key []byte) (HashFn, error)

	// NewPRP constructs a PRP over [0, w) bound to key, which must be
	// PRPKeyLen() bytes.
	NewPRP(key []byte, w uint16) (PRP, error)

	// PRFKeyLen, HashKeyLen, PRPKeyLen report the subkey lengths NewPRF,
	// NewHashFn and NewPRP expect, respectively.
	PRFKeyLen() int
	HashKeyLen() int
	PRPKeyLen() int
}

// Domain-separation labels used to derive a Cipher's subkeys from its root
// key via Suite.NewKeyHierarchy. Each purpose gets its own label so the
// F-subkey, hash subkey and permutation subkey are independent of one
// another even though they all trace back to the same root key.
const (
	labelPRF  = "cre/v1/prf"
	labelHash = "cre/v1/hash"
	labelPerm = "cre/v1/perm"
)
