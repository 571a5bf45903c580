package ore

import (
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cretrit-go/pkg/cre"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := New([]byte("0123456789abcdef"), 4, 256)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// TestTinyInequality checks that a smaller full ciphertext compares Less,
// and the reverse comparison compares Greater.
func TestTinyInequality(t *testing.T) {
	c := newTestCipher(t)

	pt1, err := cre.NewPlaintextFromUint32(1, 4, 256)
	require.NoError(t, err)
	pt2, err := cre.NewPlaintextFromUint32(2, 4, 256)
	require.NoError(t, err)

	full1, err := c.EncryptFull(rand.Reader, pt1)
	require.NoError(t, err)
	full2, err := c.EncryptFull(rand.Reader, pt2)
	require.NoError(t, err)

	o, err := c.CompareFull(full1, full2)
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingLess, o)

	o, err = c.CompareFull(full2, full1)
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingGreater, o)
}

func TestEqualValuesCompareEqual(t *testing.T) {
	c := newTestCipher(t)

	pt, err := cre.NewPlaintextFromUint32(123456, 4, 256)
	require.NoError(t, err)

	fullA, err := c.EncryptFull(rand.Reader, pt)
	require.NoError(t, err)
	fullB, err := c.EncryptFull(rand.Reader, pt)
	require.NoError(t, err)

	o, err := c.CompareFull(fullA, fullB)
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingEqual, o)
}

// TestU32Compare checks ordering consistency against plain uint32
// comparison over a bounded random sweep of value pairs.
func TestU32Compare(t *testing.T) {
	c := newTestCipher(t)

	for i := 0; i < 300; i++ {
		a := uint32(i * 7919 % 1_000_000)
		b := uint32(i * 104729 % 1_000_000)

		ptA, err := cre.NewPlaintextFromUint32(a, 4, 256)
		require.NoError(t, err)
		ptB, err := cre.NewPlaintextFromUint32(b, 4, 256)
		require.NoError(t, err)

		fullA, err := c.EncryptFull(rand.Reader, ptA)
		require.NoError(t, err)
		fullB, err := c.EncryptFull(rand.Reader, ptB)
		require.NoError(t, err)

		o, err := c.CompareFull(fullA, fullB)
		require.NoError(t, err)

		var want cre.Ordering
		switch {
		case a < b:
			want = cre.OrderingLess
		case a > b:
			want = cre.OrderingGreater
		default:
			want = cre.OrderingEqual
		}
		assert.Equal(t, want, o, "compare(%d, %d)", a, b)
	}
}

// TestReflexivity checks that a value always compares Equal against an
// independent full encryption of itself.
func TestReflexivity(t *testing.T) {
	c := newTestCipher(t)

	pt, err := cre.NewPlaintextFromUint32(4242, 4, 256)
	require.NoError(t, err)

	fullA, err := c.EncryptFull(rand.Reader, pt)
	require.NoError(t, err)
	fullB, err := c.EncryptFull(rand.Reader, pt)
	require.NoError(t, err)

	o, err := c.CompareFull(fullA, fullB)
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingEqual, o)
}

// TestAntisymmetry checks that compare(x,y) = Less iff compare(y,x) =
// Greater.
func TestAntisymmetry(t *testing.T) {
	c := newTestCipher(t)

	for i := uint32(1); i < 50; i++ {
		x, err := cre.NewPlaintextFromUint32(i, 4, 256)
		require.NoError(t, err)
		y, err := cre.NewPlaintextFromUint32(i*i, 4, 256)
		require.NoError(t, err)

		fullX, err := c.EncryptFull(rand.Reader, x)
		require.NoError(t, err)
		fullY, err := c.EncryptFull(rand.Reader, y)
		require.NoError(t, err)

		forward, err := c.CompareFull(fullX, fullY)
		require.NoError(t, err)
		backward, err := c.CompareFull(fullY, fullX)
		require.NoError(t, err)

		if forward == cre.OrderingLess {
			assert.Equal(t, cre.OrderingGreater, backward)
		} else if forward == cre.OrderingGreater {
			assert.Equal(t, cre.OrderingLess, backward)
		} else {
			assert.Equal(t, cre.OrderingEqual, backward)
		}
	}
}

// TestTransitivity checks that compare(x,y)=Less and compare(y,z)=Less
// implies compare(x,z)=Less.
func TestTransitivity(t *testing.T) {
	c := newTestCipher(t)

	x, err := cre.NewPlaintextFromUint32(10, 4, 256)
	require.NoError(t, err)
	y, err := cre.NewPlaintextFromUint32(500, 4, 256)
	require.NoError(t, err)
	z, err := cre.NewPlaintextFromUint32(90000, 4, 256)
	require.NoError(t, err)

	fullX, err := c.EncryptFull(rand.Reader, x)
	require.NoError(t, err)
	fullY, err := c.EncryptFull(rand.Reader, y)
	require.NoError(t, err)
	fullZ, err := c.EncryptFull(rand.Reader, z)
	require.NoError(t, err)

	xy, err := c.CompareFull(fullX, fullY)
	require.NoError(t, err)
	require.Equal(t, cre.OrderingLess, xy)

	yz, err := c.CompareFull(fullY, fullZ)
	require.NoError(t, err)
	require.Equal(t, cre.OrderingLess, yz)

	xz, err := c.CompareFull(fullX, fullZ)
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingLess, xz)
}

// TestConcreteScenarios checks a handful of concrete comparisons for the
// ORE suite at (N=4, W=256), including the 2^32-1 boundary value.
func TestConcreteScenarios(t *testing.T) {
	c := newTestCipher(t)

	encrypt := func(v uint32) *cre.FullCipherText {
		pt, err := cre.NewPlaintextFromUint32(v, 4, 256)
		require.NoError(t, err)
		full, err := c.EncryptFull(rand.Reader, pt)
		require.NoError(t, err)
		return full
	}

	// 1. encrypt_full(42).compare(encrypt_full(9001)) == Less
	o, err := c.CompareFull(encrypt(42), encrypt(9001))
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingLess, o)

	// 2. encrypt_full(9001).compare(encrypt_full(42)) == Greater
	o, err = c.CompareFull(encrypt(9001), encrypt(42))
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingGreater, o)

	// 3. encrypt_full(42).compare(encrypt_full(42)) == Equal (two
	// independent full encryptions of the same value).
	o, err = c.CompareFull(encrypt(42), encrypt(42))
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingEqual, o)

	// 4. encrypt_full(0).compare(encrypt_full(2^32 - 1)) == Less
	o, err = c.CompareFull(encrypt(0), encrypt(4294967295))
	require.NoError(t, err)
	assert.Equal(t, cre.OrderingLess, o)
}

// TestSortRandomValuesMatchesPlaintextSort checks that sorting random u32
// values by their full ciphertexts matches sorting the plaintexts
// directly.
func TestSortRandomValuesMatchesPlaintextSort(t *testing.T) {
	c := newTestCipher(t)

	const count = 1000
	values := make([]uint32, count)
	state := uint32(1)
	for i := range values {
		// A small deterministic xorshift generator: no dependence on
		// math/rand's seeding semantics, just a spread of u32 values.
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		values[i] = state
	}

	// FullCipherText carries no recoverable plaintext, so track each
	// ciphertext's originating value alongside it and sort both slices in
	// lockstep via the same comparator SortFullCipherTexts uses.
	type pair struct {
		full  *cre.FullCipherText
		value uint32
	}
	pairs := make([]pair, count)
	for i, v := range values {
		pt, err := cre.NewPlaintextFromUint32(v, 4, 256)
		require.NoError(t, err)
		full, err := c.EncryptFull(rand.Reader, pt)
		require.NoError(t, err)
		pairs[i] = pair{full: full, value: v}
	}

	plaintextOrder := append([]uint32(nil), values...)
	sort.Slice(plaintextOrder, func(i, j int) bool { return plaintextOrder[i] < plaintextOrder[j] })

	var sortErr error
	sort.SliceStable(pairs, func(i, j int) bool {
		o, err := c.CompareFull(pairs[i].full, pairs[j].full)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return o == cre.OrderingLess
	})
	require.NoError(t, sortErr)

	ciphertextOrder := make([]uint32, count)
	for i, p := range pairs {
		ciphertextOrder[i] = p.value
	}

	assert.Equal(t, plaintextOrder, ciphertextOrder)
}

func TestSortFullCipherTexts(t *testing.T) {
	c := newTestCipher(t)

	values := []uint32{50, 10, 200, 3, 3, 99}
	items := make([]*cre.FullCipherText, len(values))
	for i, v := range values {
		pt, err := cre.NewPlaintextFromUint32(v, 4, 256)
		require.NoError(t, err)
		full, err := c.EncryptFull(rand.Reader, pt)
		require.NoError(t, err)
		items[i] = full
	}

	err := SortFullCipherTexts(c, items)
	require.NoError(t, err)

	// Every ciphertext compares non-decreasing against its successor, which
	// is exactly what SortFullCipherTexts promises.
	for i := 1; i < len(items); i++ {
		o, err := c.CompareFull(items[i-1], items[i])
		require.NoError(t, err)
		assert.NotEqual(t, cre.OrderingGreater, o)
	}
}
