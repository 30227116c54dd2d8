package gif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContainerRejectsBadMagic(t *testing.T) {
	_, err := parseContainer([]byte("PNG89a1234567"), nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrBadMagic))
}

func TestParseContainerRejectsTruncatedHeader(t *testing.T) {
	_, err := parseContainer([]byte("GIF89a"), nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrTruncated))
}

func TestParseContainerAcceptsGIF87a(t *testing.T) {
	g := &Gif{Width: 1, Height: 1, Frames: []Frame{{Pix: []byte{1, 2, 3, 255}}}}
	data, err := Encode(g)
	require.NoError(t, err)
	// Rewrite the magic to GIF87a; spec.md §6 requires the decoder accept
	// it and treat absent extensions as their defaults.
	data87 := append([]byte("GIF87a"), data[6:]...)

	got, err := Decode(data87, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Width)
	assert.Equal(t, []byte{1, 2, 3, 255}, got.Frames[0].Pix)
}

func TestParseContainerUnknownBlockTag(t *testing.T) {
	data := append([]byte("GIF89a"), 1, 0, 1, 0, 0, 0, 0, 0xFF) // LSD with no GCT, then garbage tag
	_, err := parseContainer(data, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrBadBlockTag))
}

// spyDiagSink records UnknownApplicationExtension calls for assertions.
type spyDiagSink struct {
	calls [][2]string
}

func (s *spyDiagSink) UnknownApplicationExtension(appID, authCode string) {
	s.calls = append(s.calls, [2]string{appID, authCode})
}

func TestUnknownApplicationExtensionReportedNotFatal(t *testing.T) {
	// header + LSD (no GCT) + unknown app extension + trailer
	data := []byte("GIF89a")
	data = append(data, 1, 0, 1, 0, 0, 0, 0) // width=1 height=1 packed=0 bg=0 aspect=0
	data = append(data, blockExtension, extApplication, 11)
	data = append(data, []byte("ABCDEFGHXYZ")...) // 8-byte app ID + 3-byte auth code
	data = append(data, 0)                        // zero-length sub-block terminator (no payload)
	data = append(data, blockTrailer)

	sink := &spyDiagSink{}
	cs, err := parseContainer(data, sink)
	require.NoError(t, err)
	assert.Equal(t, -1, cs.loopCount)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "ABCDEFGH", sink.calls[0][0])
	assert.Equal(t, "XYZ", sink.calls[0][1])
}
