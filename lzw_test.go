package gif

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lzwRoundTrip(t *testing.T, minCodeSize int, indices []byte) []byte {
	t.Helper()
	out := newByteBuffer()
	encodeAll(minCodeSize, indices, out)
	data := out.Bytes()

	sbr := newSubBlockReader(data, 0)
	got, err := decodeAll(minCodeSize, sbr.nextByte)
	require.NoError(t, err)
	return got
}

func TestLzwRoundTripSmall(t *testing.T) {
	indices := []byte{0, 0, 0, 1, 1, 2, 2, 2, 2, 3, 0, 1, 2, 3}
	got := lzwRoundTrip(t, 2, indices)
	assert.Equal(t, indices, got)
}

func TestLzwRoundTripEmpty(t *testing.T) {
	got := lzwRoundTrip(t, 4, nil)
	assert.Empty(t, got)
}

func TestLzwRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, minCodeSize := range []int{2, 4, 8} {
		alphabet := 1 << minCodeSize
		indices := make([]byte, 5000)
		for i := range indices {
			indices[i] = byte(rng.Intn(alphabet))
		}
		got := lzwRoundTrip(t, minCodeSize, indices)
		assert.Equal(t, indices, got, "min code size %d", minCodeSize)
	}
}

func TestLzwRoundTripForcesDictionaryGrowthAndReset(t *testing.T) {
	// A long, low-repetition sequence that forces both code-width growth
	// and at least one dictionary-full CLEAR+reset. The encoder always
	// emits CLEAR when its dictionary fills, so the decoder's
	// full-dictionary-without-CLEAR path is not reached here.
	rng := rand.New(rand.NewSource(2))
	indices := make([]byte, 20000)
	for i := range indices {
		indices[i] = byte(rng.Intn(8))
	}
	got := lzwRoundTrip(t, 3, indices)
	assert.Equal(t, indices, got)
}

func TestLzwKwKwKCase(t *testing.T) {
	// "ABABAB..." repeated triggers the classic KwKwK edge case once the
	// two-symbol sequence has been learned and is immediately re-seen.
	indices := make([]byte, 0, 300)
	for i := 0; i < 150; i++ {
		indices = append(indices, 0, 1)
	}
	got := lzwRoundTrip(t, 2, indices)
	assert.Equal(t, indices, got)
}

func TestLzwDecodeRejectsCodeBeyondDictionary(t *testing.T) {
	// Hand-craft a stream: CLEAR, then a code equal to next_code+1 (not
	// the KwKwK case), which must be a decode failure.
	minCodeSize := 2
	clearCode := 1 << minCodeSize
	w := newBitWriter()
	w.writeBits(uint32(clearCode), uint(minCodeSize+1))
	// next free code after CLEAR is clearCode+2; clearCode+3 is invalid
	// without a preceding prevCode sequence reaching that far.
	w.writeBits(uint32(clearCode+3), uint(minCodeSize+1))
	data := w.flush()

	pos := 0
	_, err := decodeAll(minCodeSize, func() (byte, bool) {
		if pos >= len(data) {
			return 0, false
		}
		b := data[pos]
		pos++
		return b, true
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrLzwDecode))
}
