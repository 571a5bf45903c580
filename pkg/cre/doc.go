// Package cre implements the generic engine behind the Lewi-Wu
// comparison-revealing encryption (CRE) construction: a keyed scheme that
// lets two ciphertexts of the same key be compared without decrypting
// either, while revealing nothing beyond the result of that single
// comparison. Comparison runs through the same Cipher (and so the same
// derived subkeys) that produced the ciphertexts.
//
// This package does not itself decide what "compare" means or how the
// underlying pseudorandom primitives are realized — those are supplied by a
// concrete ciphersuite such as pkg/cre/aes128v1. pkg/cre owns the shape of
// the scheme: plaintext digit decomposition, the left/right/full ciphertext
// containers and their wire encoding, the comparison algorithm over those
// containers, and the comparator abstraction it is parameterized by.
//
// Two specializations live under pkg/cre/aes128v1: ore (order-revealing,
// three-way comparison) and ere (equality-revealing, two-way comparison).
package cre
