package cre

import "runtime"

// ZeroizeBytes overwrites buf with zeros and prevents the compiler from
// eliminating the store as dead code via runtime.KeepAlive.
//
// This cannot guarantee a secret never existed elsewhere in memory (copies
// made by the garbage collector or by called library code are out of
// reach), but it is the standard best-effort idiom for scrubbing key
// material once a Cipher is done with it.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
