// Package internalcheck provides AST-based security-hygiene meta-tests for
// pkg/cre and its aes128v1 suite.
//
// These are not unit tests of CRE's behavior; they load and type-check the
// target packages and flag source patterns that are always a mistake in a
// package handling key material: comparing byte slices with == instead of
// crypto/subtle, and formatting secrets with %x/%X into a log or error
// call. It is not intended for external use.
package internalcheck
