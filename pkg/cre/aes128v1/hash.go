package aes128v1

import "errors"

// errRejectionSamplingExhausted is returned if rejection sampling fails to
// find an unbiased residue within a bounded number of CMAC evaluations,
// which would indicate a broken PRF rather than ordinary bad luck (the
// probability of exhausting maxAttempts is astronomically small for any
// M this package supports).
var errRejectionSamplingExhausted = errors.New("aes128v1: rejection sampling exhausted")

const maxRejectionAttempts = 256

// cmacHash is cre.HashFn realized as CMAC-AES128 over the input, reduced
// modulo an arbitrary modulus via rejection sampling so the output
// distribution carries no detectable bias from modulus not dividing 256.
type cmacHash struct {
	key []byte
}

func newHashFn(key []byte) (*cmacHash, error) {
	return &cmacHash{key: key}, nil
}

// Hash returns a residue in [0, modulus) derived from CMAC-AES128(key,
// input). Each CMAC evaluation yields 16 candidate bytes; a byte is
// accepted if it falls in the largest multiple of modulus that fits in
// [0, 256), and rejected (moving to the next byte, then incrementing the
// attempt counter appended to the input and re-hashing under the same key)
// otherwise. This keeps every accepted residue
// uniform over [0, modulus) regardless of whether modulus divides 256.
func (h *cmacHash) Hash(input []byte, modulus uint8) (uint8, error) {
	if modulus == 0 {
		return 0, errors.New("aes128v1: modulus must be non-zero")
	}

	limit := 256 - 256%int(modulus)

	for attempt := 0; attempt < maxRejectionAttempts; attempt++ {
		msg := make([]byte, 0, len(input)+1)
		msg = append(msg, input...)
		msg = append(msg, byte(attempt))

		digest, err := cmac(h.key, msg)
		if err != nil {
			return 0, err
		}

		for _, b := range digest {
			if int(b) < limit {
				return b % modulus, nil
			}
		}
	}
	return 0, errRejectionSamplingExhausted
}
