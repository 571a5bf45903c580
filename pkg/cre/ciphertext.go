package cre

import (
	"encoding/binary"
)

// Wire version bytes identifying each ciphertext's serialized encoding.
// These are stamped first in every encoding so a reader can dispatch on the
// byte alone without additional framing.
const (
	wireVersionLeft  byte = 1
	wireVersionRight byte = 2
	wireVersionFull  byte = 3
)

type leftBlock struct {
	F [16]byte
	P uint8
}

type rightBlock struct {
	V []byte // bit-packed, bitsPerValue(M) bits per of W values
}

// LeftCipherText is the deterministic half of a ciphertext: one (F_i, p_i)
// pair per digit block. Two left ciphertexts of equal plaintext under the
// same Cipher are byte-identical, which is what makes equality checks on
// left ciphertexts alone meaningful.
type LeftCipherText struct {
	N, W   int
	M      uint8
	Blocks []leftBlock
}

// RightCipherText is the randomized half of a ciphertext: a shared nonce
// plus, per digit block, a bit-packed vector of W blinded comparator
// outcomes, one per possible digit value at that position.
type RightCipherText struct {
	N, W   int
	M      uint8
	Nonce  [16]byte
	Blocks []rightBlock
}

// FullCipherText bundles a Left and Right ciphertext produced from the same
// plaintext, letting the holder compare it against either another Left or
// another Right ciphertext.
type FullCipherText struct {
	Left  *LeftCipherText
	Right *RightCipherText
}

// leftBlockSize is the encoded size in bytes of a single leftBlock: F_i (16
// bytes) followed by p_i (1 byte).
const leftBlockSize = 17

func checkU16Shape(op string, n, w int) error {
	if n > 0xFFFF || w > 0xFFFF {
		return errorf(op, "%w: n=%d w=%d exceed u16", ErrInvalidShape, n, w)
	}
	return nil
}

func encodeLeftBlocks(out []byte, blocks []leftBlock) []byte {
	for _, b := range blocks {
		out = append(out, b.F[:]...)
		out = append(out, b.P)
	}
	return out
}

func decodeLeftBlocks(op string, body []byte, n int) ([]leftBlock, error) {
	if len(body) != n*leftBlockSize {
		return nil, errorf(op, "%w: expected %d bytes of block data, got %d", ErrInvalidCiphertext, n*leftBlockSize, len(body))
	}
	blocks := make([]leftBlock, n)
	for i := 0; i < n; i++ {
		off := i * leftBlockSize
		var blk leftBlock
		copy(blk.F[:], body[off:off+16])
		blk.P = body[off+16]
		blocks[i] = blk
	}
	return blocks, nil
}

func encodeRightBlocks(out []byte, blocks []rightBlock, blockBytes int) ([]byte, error) {
	for _, b := range blocks {
		if len(b.V) != blockBytes {
			return nil, errorf("encodeRightBlocks", "%w: block has %d bytes, want %d", ErrInvalidCiphertext, len(b.V), blockBytes)
		}
		out = append(out, b.V...)
	}
	return out, nil
}

func decodeRightBlocks(op string, body []byte, n, blockBytes int) ([]rightBlock, error) {
	if len(body) != n*blockBytes {
		return nil, errorf(op, "%w: expected %d bytes of block data, got %d", ErrInvalidCiphertext, n*blockBytes, len(body))
	}
	blocks := make([]rightBlock, n)
	for i := 0; i < n; i++ {
		off := i * blockBytes
		v := make([]byte, blockBytes)
		copy(v, body[off:off+blockBytes])
		blocks[i] = rightBlock{V: v}
	}
	return blocks, nil
}

// Serialize encodes l per the canonical wire format: version byte 1, N and
// W as little-endian u16, then N blocks of F_i (16 bytes) followed by p_i
// (1 byte). M is not carried in the header: it is implied by the
// comparator a caller already knows it's deserializing into.
func (l *LeftCipherText) Serialize() ([]byte, error) {
	const op = "LeftCipherText.Serialize"
	if err := checkU16Shape(op, l.N, l.W); err != nil {
		return nil, err
	}

	out := make([]byte, 0, 5+l.N*leftBlockSize)
	out = append(out, wireVersionLeft)
	out = appendU16LE(out, uint16(l.N))
	out = appendU16LE(out, uint16(l.W))
	out = encodeLeftBlocks(out, l.Blocks)
	return out, nil
}

// DeserializeLeftCipherText decodes the output of LeftCipherText.Serialize.
// The returned value's M is left at 0; callers compare it against a
// RightCipherText produced by the same Cipher, which carries M itself.
func DeserializeLeftCipherText(data []byte) (*LeftCipherText, error) {
	const op = "DeserializeLeftCipherText"
	if len(data) < 5 {
		return nil, errorf(op, "%w: truncated header", ErrInvalidCiphertext)
	}
	if data[0] != wireVersionLeft {
		return nil, errorf(op, "%w: bad version", ErrInvalidCiphertext)
	}
	n := int(binary.LittleEndian.Uint16(data[1:3]))
	w := int(binary.LittleEndian.Uint16(data[3:5]))

	blocks, err := decodeLeftBlocks(op, data[5:], n)
	if err != nil {
		return nil, err
	}
	return &LeftCipherText{N: n, W: w, Blocks: blocks}, nil
}

// Serialize encodes r per the canonical wire format: version byte 2, N and
// W as little-endian u16, M, the shared 16-byte nonce, then N bit-packed
// value vectors of ceil(W*bitsPerValue(M)/8) bytes each.
func (r *RightCipherText) Serialize() ([]byte, error) {
	const op = "RightCipherText.Serialize"
	if err := checkU16Shape(op, r.N, r.W); err != nil {
		return nil, err
	}

	bw := bitsPerValue(r.M)
	blockBytes := (r.W*bw + 7) / 8

	out := make([]byte, 0, 6+16+r.N*blockBytes)
	out = append(out, wireVersionRight)
	out = appendU16LE(out, uint16(r.N))
	out = appendU16LE(out, uint16(r.W))
	out = append(out, r.M)
	out = append(out, r.Nonce[:]...)
	out, err := encodeRightBlocks(out, r.Blocks, blockBytes)
	if err != nil {
		return nil, errorf(op, "%w", err)
	}
	return out, nil
}

// DeserializeRightCipherText decodes the output of
// RightCipherText.Serialize.
func DeserializeRightCipherText(data []byte) (*RightCipherText, error) {
	const op = "DeserializeRightCipherText"
	if len(data) < 6+16 {
		return nil, errorf(op, "%w: truncated header", ErrInvalidCiphertext)
	}
	if data[0] != wireVersionRight {
		return nil, errorf(op, "%w: bad version", ErrInvalidCiphertext)
	}
	n := int(binary.LittleEndian.Uint16(data[1:3]))
	w := int(binary.LittleEndian.Uint16(data[3:5]))
	m := data[5]

	var nonce [16]byte
	copy(nonce[:], data[6:22])

	bw := bitsPerValue(m)
	blockBytes := (w*bw + 7) / 8
	blocks, err := decodeRightBlocks(op, data[22:], n, blockBytes)
	if err != nil {
		return nil, err
	}
	return &RightCipherText{N: n, W: w, M: m, Nonce: nonce, Blocks: blocks}, nil
}

// Serialize encodes f as a single version-3 header shared between its two
// halves — N, W, M and the nonce each appear once — followed by the Left
// block array and then the Right block array.
func (f *FullCipherText) Serialize() ([]byte, error) {
	const op = "FullCipherText.Serialize"
	if err := checkU16Shape(op, f.Left.N, f.Left.W); err != nil {
		return nil, err
	}

	bw := bitsPerValue(f.Right.M)
	blockBytes := (f.Right.W*bw + 7) / 8

	out := make([]byte, 0, 6+16+f.Left.N*leftBlockSize+f.Right.N*blockBytes)
	out = append(out, wireVersionFull)
	out = appendU16LE(out, uint16(f.Left.N))
	out = appendU16LE(out, uint16(f.Left.W))
	out = append(out, f.Right.M)
	out = append(out, f.Right.Nonce[:]...)
	out = encodeLeftBlocks(out, f.Left.Blocks)
	out, err := encodeRightBlocks(out, f.Right.Blocks, blockBytes)
	if err != nil {
		return nil, errorf(op, "%w", err)
	}
	return out, nil
}

// DeserializeFullCipherText decodes the output of FullCipherText.Serialize.
func DeserializeFullCipherText(data []byte) (*FullCipherText, error) {
	const op = "DeserializeFullCipherText"
	if len(data) < 6+16 {
		return nil, errorf(op, "%w: truncated header", ErrInvalidCiphertext)
	}
	if data[0] != wireVersionFull {
		return nil, errorf(op, "%w: bad version", ErrInvalidCiphertext)
	}
	n := int(binary.LittleEndian.Uint16(data[1:3]))
	w := int(binary.LittleEndian.Uint16(data[3:5]))
	m := data[5]

	var nonce [16]byte
	copy(nonce[:], data[6:22])

	body := data[22:]
	leftLen := n * leftBlockSize
	if len(body) < leftLen {
		return nil, errorf(op, "%w: truncated left blocks", ErrInvalidCiphertext)
	}
	leftBlocks, err := decodeLeftBlocks(op, body[:leftLen], n)
	if err != nil {
		return nil, errorf(op, "left: %w", err)
	}

	bw := bitsPerValue(m)
	blockBytes := (w*bw + 7) / 8
	rightBlocks, err := decodeRightBlocks(op, body[leftLen:], n, blockBytes)
	if err != nil {
		return nil, errorf(op, "right: %w", err)
	}

	return &FullCipherText{
		Left:  &LeftCipherText{N: n, W: w, M: m, Blocks: leftBlocks},
		Right: &RightCipherText{N: n, W: w, M: m, Nonce: nonce, Blocks: rightBlocks},
	}, nil
}

func appendU16LE(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}
