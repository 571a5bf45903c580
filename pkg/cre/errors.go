package cre

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeyLength indicates the root key is not the length a
	// ciphersuite requires.
	ErrInvalidKeyLength = errors.New("cre: invalid key length")

	// ErrInvalidShape indicates an (N, W) digit/radix pair is out of the
	// range a Cipher can operate on.
	ErrInvalidShape = errors.New("cre: invalid shape")

	// ErrValueOutOfRange indicates a plaintext value does not fit in N
	// digits of radix W.
	ErrValueOutOfRange = errors.New("cre: value out of range")

	// ErrInvalidCiphertext indicates a ciphertext failed to parse, or its
	// packed value vectors are too short to read during comparison.
	ErrInvalidCiphertext = errors.New("cre: invalid ciphertext")

	// ErrShapeMismatch indicates two ciphertexts being compared do not
	// share the same N, W and comparator.
	ErrShapeMismatch = errors.New("cre: shape mismatch")

	// ErrRNGFailure indicates the caller-supplied randomness source
	// returned an error or short read.
	ErrRNGFailure = errors.New("cre: rng failure")
)

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cre.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorf creates a new Error.
func errorf(op string, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}
