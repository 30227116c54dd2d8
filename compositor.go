package gif

// compositor.go implements the frame compositor (spec.md §4.5): it
// applies each decoded image block to a persistent canvas using the
// active Graphic Control Extension to yield the public frame sequence.
//
// §9 Open Question (a) is resolved per SPEC_FULL.md: transparent source
// pixels never overwrite the canvas — the correct GIF89a behavior —
// rather than the source gifprime's overwrite-with-transparent bug.

type compositor struct {
	width, height int
	canvas        []byte // RGBA, width*height*4, owned by the compositor
	bg            [4]byte
}

func newCompositor(cs *containerStream) *compositor {
	c := &compositor{width: cs.width, height: cs.height}
	if cs.globalTable != nil && int(cs.bgColorIndex) < len(cs.globalTable) {
		col := cs.globalTable[cs.bgColorIndex]
		c.bg = [4]byte{col.R, col.G, col.B, 255}
	} else {
		c.bg = [4]byte{0, 0, 0, 255}
	}
	c.canvas = make([]byte, c.width*c.height*4)
	for i := 0; i < c.width*c.height; i++ {
		copy(c.canvas[i*4:i*4+4], c.bg[:])
	}
	return c
}

// compose runs every decoded image block through the compositor in
// order and returns the public frame sequence.
//
// The canvas carried forward between frames is grounded on
// original_source/gifprime's prev_state: disposal methods 0/1 carry the
// just-painted canvas forward unchanged; method 2 carries forward the
// just-painted canvas with its own rectangle re-filled to background;
// method 3 carries forward the canvas exactly as it was immediately
// before THIS frame painted (gifprime: "prev_state is unchanged" — the
// just-painted result is emitted to the caller but never adopted as the
// base for the next frame). Because the carry-forward target is this
// same frame's own disposal method, no cross-iteration "previous frame's
// disposal" bookkeeping is needed.
func compose(cs *containerStream) ([]Frame, error) {
	c := newCompositor(cs)
	frames := make([]Frame, 0, len(cs.images))

	for i, img := range cs.images {
		table := img.localColorTable
		if table == nil {
			table = cs.globalTable
		}
		if table == nil {
			return nil, newErr(ErrMissingColorTable, "image block has no local or global color table")
		}

		gce := cs.gceForImage[i]
		transparentFlag := false
		transparentIndex := uint8(0)
		delayMs := 0
		disposal := 0
		if gce != nil {
			transparentFlag = gce.transparentColorFlag
			transparentIndex = gce.transparentColorIndex
			delayMs = int(gce.delayTime) * 10
			disposal = gce.disposalMethod
		}
		if disposal < 0 || disposal > 3 {
			return nil, newErr(ErrUnknownDisposalMethod, "disposal method out of range")
		}

		var preCanvas []byte
		if disposal == 3 {
			preCanvas = append([]byte(nil), c.canvas...)
		}

		sub := renderSubImage(img, table, transparentFlag, transparentIndex)
		paintSubImage(c, img, sub)

		framePix := append([]byte(nil), c.canvas...)
		markSeeThrough(framePix, c.width, img, sub)

		frame := Frame{
			Pix:     framePix,
			DelayMs: delayMs,
		}
		if gce != nil {
			frame.UserInput = gce.userInputFlag
		}
		frames = append(frames, frame)

		switch disposal {
		case 0, 1:
			// carry the just-painted canvas forward unchanged
		case 2:
			fillBackground(c, img.left, img.top, img.width, img.height)
		case 3:
			copy(c.canvas, preCanvas)
		}
	}

	return frames, nil
}

// renderSubImage maps a decoded image block's palette indices to RGBA,
// de-interlacing if needed. Alpha is 0 where index == transparentIndex
// (only meaningful when transparentFlag is set), else 255.
func renderSubImage(img decodedImageBlock, table ColorTable, transparentFlag bool, transparentIndex uint8) []byte {
	n := img.width * img.height
	out := make([]byte, n*4)

	rowOf := func(transmissionRow int) int { return transmissionRow }
	if img.interlaceFlag {
		rowOf = deinterlaceRowMap(img.height)
	}

	for row := 0; row < img.height; row++ {
		srcRow := rowOf(row)
		for x := 0; x < img.width; x++ {
			idx := img.indices[srcRow*img.width+x]
			var col Color
			if int(idx) < len(table) {
				col = table[idx]
			}
			o := (row*img.width + x) * 4
			out[o] = col.R
			out[o+1] = col.G
			out[o+2] = col.B
			if transparentFlag && idx == transparentIndex {
				out[o+3] = 0
			} else {
				out[o+3] = 255
			}
		}
	}
	return out
}

// deinterlaceRowMap returns a function mapping a final (top-to-bottom)
// row index to the transmission-order row index it was stored at,
// inverting GIF's 4-pass interlace order (every 8th row starting at 0,
// then every 8th starting at 4, then every 4th starting at 2, then every
// 2nd starting at 1).
func deinterlaceRowMap(height int) func(int) int {
	order := make([]int, 0, height)
	for row := 0; row < height; row += 8 {
		order = append(order, row)
	}
	for row := 4; row < height; row += 8 {
		order = append(order, row)
	}
	for row := 2; row < height; row += 4 {
		order = append(order, row)
	}
	for row := 1; row < height; row += 2 {
		order = append(order, row)
	}
	transmissionToFinal := order
	finalToTransmission := make([]int, height)
	for transmissionRow, finalRow := range transmissionToFinal {
		finalToTransmission[finalRow] = transmissionRow
	}
	return func(finalRow int) int { return finalToTransmission[finalRow] }
}

// markSeeThrough forces A=0 at every pixel the current sub-image marked
// transparent, in the emitted frame copy only — never in the persistent
// canvas. The canvas must keep the real underlying color for correct
// disposal-method-1 ("do not dispose") rendering of the next frame, but
// the frame handed to the caller must show transparency where the
// source said so, per spec.md §4.5 step 5 and §9(a).
func markSeeThrough(framePix []byte, canvasWidth int, img decodedImageBlock, sub []byte) {
	for row := 0; row < img.height; row++ {
		cy := img.top + row
		if cy < 0 {
			continue
		}
		for x := 0; x < img.width; x++ {
			cx := img.left + x
			if cx < 0 {
				continue
			}
			so := (row*img.width + x) * 4
			if sub[so+3] != 0 {
				continue
			}
			fo := (cy*canvasWidth + cx) * 4
			if fo+3 >= len(framePix) {
				continue
			}
			framePix[fo+3] = 0
		}
	}
}

// paintSubImage composites sub onto the canvas at (img.left, img.top),
// clipped to the logical screen. Transparent source pixels (A==0) do not
// overwrite the canvas (spec.md §9(a)'s corrected behavior).
func paintSubImage(c *compositor, img decodedImageBlock, sub []byte) {
	for row := 0; row < img.height; row++ {
		cy := img.top + row
		if cy < 0 || cy >= c.height {
			continue
		}
		for x := 0; x < img.width; x++ {
			cx := img.left + x
			if cx < 0 || cx >= c.width {
				continue
			}
			so := (row*img.width + x) * 4
			if sub[so+3] == 0 {
				continue // transparent: preserve existing canvas pixel
			}
			co := (cy*c.width + cx) * 4
			copy(c.canvas[co:co+4], sub[so:so+4])
		}
	}
}

// fillBackground paints rect (clipped to the logical screen) with the
// background color, for disposal method 2.
func fillBackground(c *compositor, left, top, width, height int) {
	for row := 0; row < height; row++ {
		cy := top + row
		if cy < 0 || cy >= c.height {
			continue
		}
		for x := 0; x < width; x++ {
			cx := left + x
			if cx < 0 || cx >= c.width {
				continue
			}
			co := (cy*c.width + cx) * 4
			copy(c.canvas[co:co+4], c.bg[:])
		}
	}
}
