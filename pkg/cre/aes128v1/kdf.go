package aes128v1

import "encoding/binary"

// keyHierarchy derives subkeys from a root key via SP800-108 counter-mode
// KBKDF over CMAC-AES128.
type keyHierarchy struct {
	rootKey []byte
}

func newKeyHierarchy(rootKey []byte) (*keyHierarchy, error) {
	kh := &keyHierarchy{rootKey: make([]byte, len(rootKey))}
	copy(kh.rootKey, rootKey)
	return kh, nil
}

// Derive returns length pseudorandom bytes for label via SP800-108
// counter-mode KDF: K(i) = CMAC(rootKey, [i]_32 || label || 0x00 || [length*8]_32),
// concatenating blocks until length bytes are produced.
func (kh *keyHierarchy) Derive(label []byte, length int) ([]byte, error) {
	out := make([]byte, 0, length)

	var lengthBits [4]byte
	binary.BigEndian.PutUint32(lengthBits[:], uint32(length)*8)

	for counter := uint32(1); len(out) < length; counter++ {
		var counterBytes [4]byte
		binary.BigEndian.PutUint32(counterBytes[:], counter)

		msg := make([]byte, 0, 4+len(label)+1+4)
		msg = append(msg, counterBytes[:]...)
		msg = append(msg, label...)
		msg = append(msg, 0x00)
		msg = append(msg, lengthBits[:]...)

		block, err := cmac(kh.rootKey, msg)
		if err != nil {
			return nil, err
		}
		out = append(out, block[:]...)
	}
	return out[:length], nil
}
