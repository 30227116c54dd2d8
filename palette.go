package gif

// palette.go builds a GIF color table from caller-supplied RGBA frames
// (spec.md §4.6). Quantization is explicitly out of scope (spec.md §1
// Non-goals): the caller must already supply frames whose unique colors
// fit in a palette of <=256 entries; this is why the teacher's
// NeuQuant/dither machinery (ManInM00N-nicogif's NeuQuant.go, dither.go)
// is not adapted here — see DESIGN.md.

// builtPalette is the result of collecting a Gif's frames into a color
// table ready for ContainerCodec to emit.
type builtPalette struct {
	table            ColorTable
	sizeField        int // GCT/LCT size field: log2(len(table))-1
	hasTransparency  bool
	transparentIndex uint8
	// index[pixel RGBA] -> palette index, built once per encode call
	lookup map[[4]byte]uint8
}

// buildPalette scans every frame's pixels, collecting unique opaque RGB
// values. If any pixel is transparent (A==0), index 0 is reserved for
// it. Fails with ErrPaletteTooLarge if the result would exceed 256
// entries, and with ErrInvalidAlpha if any alpha byte is neither 0 nor
// 255 (spec.md §6: "the A channel must be 0 or 255").
func buildPalette(frames []Frame, width, height int) (*builtPalette, error) {
	needed := width * height * 4

	seen := make(map[[3]byte]struct{})
	order := make([][3]byte, 0, 256)
	hasTransparency := false

	for _, f := range frames {
		if len(f.Pix) != needed {
			return nil, newErr(ErrInvalidFrameSize, "frame pixel buffer length does not match width*height*4")
		}
		for i := 0; i < len(f.Pix); i += 4 {
			a := f.Pix[i+3]
			if a != 0 && a != 255 {
				return nil, newErr(ErrInvalidAlpha, "frame alpha byte is neither 0 nor 255")
			}
			if a == 0 {
				hasTransparency = true
				continue
			}
			rgb := [3]byte{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
			if _, ok := seen[rgb]; !ok {
				seen[rgb] = struct{}{}
				order = append(order, rgb)
			}
		}
	}

	entries := len(order)
	if hasTransparency {
		entries++ // reserve index 0
	}
	if entries > 256 {
		return nil, newErr(ErrPaletteTooLarge, "more than 256 unique colors across frames")
	}
	if entries == 0 {
		entries = 1 // a color table must have at least 2 entries; pad below
	}

	size := 2
	sizeField := 0
	for size < entries {
		size <<= 1
		sizeField++
	}

	table := make(ColorTable, size) // zero-valued (black) padding by default
	lookup := make(map[[4]byte]uint8, len(order))

	start := 0
	if hasTransparency {
		// index 0 reserved for the transparent slot; RGB is arbitrary.
		start = 1
	}
	for i, rgb := range order {
		table[start+i] = Color{R: rgb[0], G: rgb[1], B: rgb[2]}
		lookup[[4]byte{rgb[0], rgb[1], rgb[2], 255}] = uint8(start + i)
	}

	bp := &builtPalette{
		table:           table,
		sizeField:       sizeField,
		hasTransparency: hasTransparency,
		lookup:          lookup,
	}
	if hasTransparency {
		bp.transparentIndex = 0
	}
	return bp, nil
}

// indexOf returns the palette index for an RGBA pixel. Transparent
// pixels always map to the reserved transparent index.
func (p *builtPalette) indexOf(r, g, b, a byte) uint8 {
	if a == 0 {
		return p.transparentIndex
	}
	return p.lookup[[4]byte{r, g, b, 255}]
}
