// Package aes128v1 is a concrete cre.Suite built from AES-128 and
// CMAC-AES-128: an AES-128 PRF, a CMAC-AES-128 hash reduced mod M by
// rejection sampling, a keyed-ChaCha20-driven Fisher-Yates permutation, and
// an SP800-108 counter-mode KBKDF over CMAC-AES-128 for subkey derivation.
//
// aes128v1/ore and aes128v1/ere wrap this suite with the order-revealing
// and equality-revealing comparators, respectively.
package aes128v1
