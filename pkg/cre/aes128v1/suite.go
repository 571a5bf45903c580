package aes128v1

import "github.com/coinbase/cretrit-go/pkg/cre"

const (
	rootKeyLen = 16 // AES-128
	prfKeyLen  = 16 // AES-128
	hashKeyLen = 16 // CMAC-AES-128
	prpKeyLen  = 32 // ChaCha20 key
)

// Suite is the aes128v1 cre.Suite: AES-128 PRF, CMAC-AES-128 hash with
// rejection-sampled reduction, a ChaCha20-driven keyed Fisher-Yates PRP,
// and an SP800-108/CMAC-AES-128 key hierarchy.
type Suite struct{}

var _ cre.Suite = Suite{}

func (Suite) Name() string { return "aes128v1" }

func (Suite) RootKeyLen() int { return rootKeyLen }
func (Suite) PRFKeyLen() int  { return prfKeyLen }
func (Suite) HashKeyLen() int { return hashKeyLen }
func (Suite) PRPKeyLen() int  { return prpKeyLen }

func (Suite) NewKeyHierarchy(rootKey []byte) (cre.KeyHierarchy, error) {
	return newKeyHierarchy(rootKey)
}

func (Suite) NewPRF(key []byte) (cre.PRF, error) {
	return newPRF(key)
}

func (Suite) NewHashFn(key []byte) (cre.HashFn, error) {
	return newHashFn(key)
}

func (Suite) NewPRP(key []byte, w uint16) (cre.PRP, error) {
	return newPRP(key, w)
}
