package cre

// fakeSuite is a deterministic, insecure Suite used only to exercise
// Cipher's shape validation, chaining and wire-format plumbing without
// pulling in a real cryptographic primitive (that coverage belongs to
// pkg/cre/aes128v1, which plugs a real Suite into the same Cipher).
type fakeSuite struct{}

func (fakeSuite) Name() string    { return "fake" }
func (fakeSuite) RootKeyLen() int { return 4 }
func (fakeSuite) PRFKeyLen() int  { return 4 }
func (fakeSuite) HashKeyLen() int { return 4 }
func (fakeSuite) PRPKeyLen() int  { return 4 }

func (fakeSuite) NewKeyHierarchy(rootKey []byte) (KeyHierarchy, error) {
	return &fakeKeyHierarchy{root: rootKey}, nil
}

func (fakeSuite) NewPRF(key []byte) (PRF, error) {
	return &fakePRF{key: key[0]}, nil
}

func (fakeSuite) NewHashFn(key []byte) (HashFn, error) {
	return &fakeHashFn{key: key[0]}, nil
}

func (fakeSuite) NewPRP(key []byte, w uint16) (PRP, error) {
	return newFakePRP(key[0], w), nil
}

type fakeKeyHierarchy struct {
	root []byte
}

func (kh *fakeKeyHierarchy) Derive(label []byte, length int) ([]byte, error) {
	out := make([]byte, length)
	seed := kh.root[0]
	for _, b := range label {
		seed ^= b
	}
	for i := range out {
		out[i] = seed + byte(i)
	}
	return out, nil
}

// fakePRF is a deterministic, non-cryptographic stand-in: each output byte
// is the XOR of the key with the corresponding input byte, rotated.
type fakePRF struct {
	key byte
}

func (p *fakePRF) Evaluate(block [16]byte) [16]byte {
	var out [16]byte
	for i, b := range block {
		out[i] = b ^ p.key ^ byte(i)
	}
	return out
}

type fakeHashFn struct {
	key byte
}

func (h *fakeHashFn) Hash(input []byte, modulus uint8) (uint8, error) {
	var acc byte = h.key
	for _, b := range input {
		acc = acc*31 + b
	}
	return acc % modulus, nil
}

// fakePRP is the identity permutation perturbed by a key-and-block-index
// dependent constant rotation, invertible in closed form. The rotation
// varies by block index so tests exercise a genuinely distinct permutation
// per block, matching the real suite's π_{K_π,i} family.
type fakePRP struct {
	key byte
	w   uint16
}

func newFakePRP(key byte, w uint16) *fakePRP {
	return &fakePRP{key: key, w: w}
}

func (p *fakePRP) shiftFor(blockIndex uint16) uint16 {
	return (uint16(p.key) + blockIndex) % p.w
}

func (p *fakePRP) Permute(blockIndex uint16, x uint16) uint16 {
	return (x + p.shiftFor(blockIndex)) % p.w
}

func (p *fakePRP) Invert(blockIndex uint16, y uint16) uint16 {
	shift := p.shiftFor(blockIndex)
	return (y + p.w - shift%p.w) % p.w
}
