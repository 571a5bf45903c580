package aes128v1

import "crypto/aes"

// prf128 is cre.PRF realized as single-block AES-128 encryption.
type prf128 struct {
	block cipherBlock
}

// cipherBlock is the subset of cipher.Block this package needs; narrowing
// the dependency to an interface keeps prf128 and cmac's helper decoupled
// from the concrete aes.NewCipher return type.
type cipherBlock interface {
	Encrypt(dst, src []byte)
}

func newPRF(key []byte) (*prf128, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &prf128{block: block}, nil
}

// Evaluate encrypts the 16-byte block in a single AES-128 call.
func (p *prf128) Evaluate(block [16]byte) [16]byte {
	var out [16]byte
	p.block.Encrypt(out[:], block[:])
	return out
}
