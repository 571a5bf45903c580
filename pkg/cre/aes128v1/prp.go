package aes128v1

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// shufflePRP is cre.PRP realized as a keyed Fisher-Yates shuffle over
// [0, w), driven by a ChaCha20 keystream seeded from the derived subkey and
// a per-block-index nonce. Each block index needs its own permutation
// under the same key; the key is shared across blocks (it is the subkey
// this type is constructed with) and the block index is folded into the
// ChaCha20 nonce instead, which is equivalent to keying per block index
// since a (key, nonce) pair uniquely seeds the keystream.
type shufflePRP struct {
	key [32]byte
	w   uint16

	mu    sync.Mutex
	byIdx map[uint16]*blockPerm
}

type blockPerm struct {
	perm    []uint16 // perm[x] = π(x)
	inverse []uint16 // inverse[y] = π⁻¹(y)
}

func newPRP(key []byte, w uint16) (*shufflePRP, error) {
	p := &shufflePRP{w: w, byIdx: make(map[uint16]*blockPerm)}
	copy(p.key[:], key)
	return p, nil
}

// forBlock returns (lazily building and caching) the permutation for
// blockIndex, which must be in [1, N].
func (p *shufflePRP) forBlock(blockIndex uint16) *blockPerm {
	p.mu.Lock()
	defer p.mu.Unlock()

	if bp, ok := p.byIdx[blockIndex]; ok {
		return bp
	}

	var nonce [chacha20.NonceSize]byte
	binary.BigEndian.PutUint16(nonce[0:2], blockIndex)

	stream, err := chacha20.NewUnauthenticatedCipher(p.key[:], nonce[:])
	if err != nil {
		// key is always exactly 32 bytes (ChaCha20KeySize) by construction in
		// NewCipher, so this can only fail on a library-internal invariant
		// violation, not on caller input.
		panic("aes128v1: chacha20 cipher construction failed: " + err.Error())
	}

	w := int(p.w)
	perm := make([]uint16, w)
	for i := range perm {
		perm[i] = uint16(i)
	}

	// Keyed Fisher-Yates: for i from w-1 down to 1, swap perm[i] with
	// perm[j] where j is drawn uniformly from [0, i] via the keystream.
	zero := make([]byte, 4)
	draw := make([]byte, 4)
	for i := w - 1; i > 0; i-- {
		j := streamUint32Below(stream, zero, draw, uint32(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}

	inverse := make([]uint16, w)
	for x, y := range perm {
		inverse[y] = uint16(x)
	}

	bp := &blockPerm{perm: perm, inverse: inverse}
	p.byIdx[blockIndex] = bp
	return bp
}

// streamUint32Below draws a uniform value in [0, bound) from stream via
// rejection sampling over 4-byte keystream words.
func streamUint32Below(stream *chacha20.Cipher, zero, draw []byte, bound uint32) uint32 {
	limit := ^uint32(0) - (^uint32(0) % bound)
	for {
		stream.XORKeyStream(draw, zero)
		v := binary.LittleEndian.Uint32(draw)
		if v < limit {
			return v % bound
		}
	}
}

// Permute returns π_{blockIndex}(x).
func (p *shufflePRP) Permute(blockIndex uint16, x uint16) uint16 {
	return p.forBlock(blockIndex).perm[x]
}

// Invert returns π_{blockIndex}⁻¹(y).
func (p *shufflePRP) Invert(blockIndex uint16, y uint16) uint16 {
	return p.forBlock(blockIndex).inverse[y]
}
