package gif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbaAt(pix []byte, w, x, y int) [4]byte {
	o := (y*w + x) * 4
	return [4]byte{pix[o], pix[o+1], pix[o+2], pix[o+3]}
}

// buildCS assembles a minimal containerStream for compositor unit tests
// without going through the byte-level parser.
func buildCS(width, height int, gct ColorTable, images []decodedImageBlock, gces []*graphicControl) *containerStream {
	return &containerStream{
		width: width, height: height,
		globalTable: gct,
		images:      images,
		gceForImage: gces,
	}
}

func TestMissingColorTableFails(t *testing.T) {
	cs := buildCS(2, 2, nil, []decodedImageBlock{
		{left: 0, top: 0, width: 2, height: 2, indices: []byte{0, 0, 0, 0}},
	}, []*graphicControl{nil})

	_, err := compose(cs)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrMissingColorTable))
}

func TestUnknownDisposalMethodFails(t *testing.T) {
	gct := ColorTable{{255, 0, 0}, {0, 255, 0}}
	cs := buildCS(1, 1, gct, []decodedImageBlock{
		{left: 0, top: 0, width: 1, height: 1, indices: []byte{0}},
	}, []*graphicControl{
		{present: true, disposalMethod: 7},
	})

	_, err := compose(cs)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrUnknownDisposalMethod))
}

func TestDisposalMethodTwoFillsBackground(t *testing.T) {
	gct := ColorTable{{10, 20, 30}, {200, 200, 200}} // index0 is bg
	cs := buildCS(2, 1, gct, []decodedImageBlock{
		{left: 0, top: 0, width: 2, height: 1, indices: []byte{1, 1}},
		{left: 0, top: 0, width: 2, height: 1, indices: []byte{1, 1}},
	}, []*graphicControl{
		{present: true, disposalMethod: 2},
		{present: true, disposalMethod: 0},
	})

	frames, err := compose(cs)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	// Frame 0 painted index1 everywhere.
	assert.Equal(t, [4]byte{200, 200, 200, 255}, rgbaAt(frames[0].Pix, 2, 0, 0))
	// After frame 0 (disposal=2), its rect is restored to background
	// before frame 1 paints; frame 1 repaints the same rect with index1
	// again so it's indistinguishable here — assert via a partial-rect
	// case instead for a real signal.
	assert.Equal(t, [4]byte{200, 200, 200, 255}, rgbaAt(frames[1].Pix, 2, 0, 0))
}

func TestDisposalMethodTwoRestoresOutsideRect(t *testing.T) {
	gct := ColorTable{{10, 20, 30}, {200, 200, 200}}
	cs := buildCS(3, 1, gct, []decodedImageBlock{
		{left: 0, top: 0, width: 2, height: 1, indices: []byte{1, 1}}, // covers cols 0,1
		{left: 2, top: 0, width: 1, height: 1, indices: []byte{1}},    // covers col 2
	}, []*graphicControl{
		{present: true, disposalMethod: 2},
		{present: true, disposalMethod: 0},
	})

	frames, err := compose(cs)
	require.NoError(t, err)
	// Second frame: col 0,1 should be restored to background (disposal=2
	// applied after frame 0), col 2 freshly painted.
	assert.Equal(t, [4]byte{10, 20, 30, 255}, rgbaAt(frames[1].Pix, 3, 0, 0))
	assert.Equal(t, [4]byte{10, 20, 30, 255}, rgbaAt(frames[1].Pix, 3, 1, 0))
	assert.Equal(t, [4]byte{200, 200, 200, 255}, rgbaAt(frames[1].Pix, 3, 2, 0))
}

func TestDisposalMethodThreeRestoresPreviousCanvas(t *testing.T) {
	// spec.md §8: "Disposal method 3 restores pixels outside the
	// sub-image rectangle identically to before the prior frame" — here
	// we check the simpler, explicitly specified case: the whole canvas
	// before frame 1 painted is restored before frame 2 paints.
	gct := ColorTable{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}
	cs := buildCS(1, 1, gct, []decodedImageBlock{
		{left: 0, top: 0, width: 1, height: 1, indices: []byte{0}},
		{left: 0, top: 0, width: 1, height: 1, indices: []byte{1}},
		{left: 0, top: 0, width: 1, height: 1, indices: []byte{2}},
	}, []*graphicControl{
		{present: true, disposalMethod: 0},
		{present: true, disposalMethod: 3}, // restore to state before frame 1 painted
		{present: true, disposalMethod: 0},
	})

	frames, err := compose(cs)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, [4]byte{1, 1, 1, 255}, rgbaAt(frames[0].Pix, 1, 0, 0))
	assert.Equal(t, [4]byte{2, 2, 2, 255}, rgbaAt(frames[1].Pix, 1, 0, 0))
	// Frame 2 should show index2's color painted on top of the restored
	// (pre-frame-1) canvas, i.e. still just index2's color here since
	// the rect is fully repainted — the restore is observable in the
	// canvas state, not this 1x1 case; covered at the byte level in
	// TestDisposalMethodThreeRestoresOutsideRect below.
	assert.Equal(t, [4]byte{3, 3, 3, 255}, rgbaAt(frames[2].Pix, 1, 0, 0))
}

func TestDisposalMethodThreeRestoresOutsideRect(t *testing.T) {
	gct := ColorTable{{9, 9, 9}, {1, 0, 0}, {0, 1, 0}}
	cs := buildCS(2, 1, gct, []decodedImageBlock{
		{left: 0, top: 0, width: 2, height: 1, indices: []byte{1, 1}},
		{left: 0, top: 0, width: 1, height: 1, indices: []byte{2}}, // only col 0 repainted
	}, []*graphicControl{
		{present: true, disposalMethod: 3}, // restore canvas to pre-frame-0 state after frame 0
		{present: true, disposalMethod: 0},
	})

	frames, err := compose(cs)
	require.NoError(t, err)
	// Before frame 1 paints, canvas is restored to pre-frame-0 (background).
	// Frame 1 repaints only col 0; col 1 should show the restored
	// background color, not frame 0's color.
	assert.Equal(t, [4]byte{9, 9, 9, 255}, rgbaAt(frames[1].Pix, 2, 1, 0))
	assert.Equal(t, [4]byte{0, 1, 0, 255}, rgbaAt(frames[1].Pix, 2, 0, 0))
}

func TestTransparencyPreservesUnderlyingCanvasPixel(t *testing.T) {
	// §9(a): transparent source pixels must not overwrite the canvas —
	// the pixel underneath (from a prior opaque paint) must survive into
	// the NEXT frame's canvas state, even though THIS frame's emitted
	// copy shows A=0 there.
	gct := ColorTable{{50, 60, 70}, {80, 90, 100}}
	cs := buildCS(1, 1, gct, []decodedImageBlock{
		{left: 0, top: 0, width: 1, height: 1, indices: []byte{0}},
		{left: 0, top: 0, width: 1, height: 1, indices: []byte{1}},
	}, []*graphicControl{
		{present: true, disposalMethod: 1},
		{present: true, disposalMethod: 1, transparentColorFlag: true, transparentColorIndex: 1},
	})

	frames, err := compose(cs)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{50, 60, 70, 255}, rgbaAt(frames[0].Pix, 1, 0, 0))
	// Frame 1's source pixel maps to the transparent index: emitted frame
	// shows A=0, but RGB underneath is whatever was there (unspecified).
	assert.Equal(t, byte(0), frames[1].Pix[3])
}
