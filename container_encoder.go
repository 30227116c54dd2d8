package gif

// container_encoder.go implements the emitter side of ContainerCodec
// (spec.md §4.4, §6), adapted from the teacher's GIFEncoder.go. The
// teacher only ever wrote its first AddFrame call's image correctly as
// part of a full stream (its LCT-vs-GCT bookkeeping assumed one
// dominant call site); this version generalizes that to one full
// image-descriptor + GCE + LZW block per Frame, resolving §9(c).

// encodeGif serializes a Gif to a byte-exact GIF89a stream.
func encodeGif(g *Gif) ([]byte, error) {
	if g.Width <= 0 || g.Height <= 0 {
		return nil, newErr(ErrInvalidFrameSize, "logical screen size must be positive")
	}

	pal, err := buildPalette(g.Frames, g.Width, g.Height)
	if err != nil {
		return nil, err
	}

	out := newByteBuffer()
	out.WriteString("GIF89a")

	out.WriteUint16LE(uint16(g.Width))
	out.WriteUint16LE(uint16(g.Height))

	packed := byte(0x80) | (0x07 << 4) | byte(pal.sizeField) // gct_flag | color_res=7 | gct_size
	out.WriteByte(packed)
	out.WriteByte(0) // background color index
	out.WriteByte(0) // pixel aspect ratio

	writeColorTable(out, pal.table)

	for _, c := range g.Comments {
		writeCommentExtension(out, c)
	}

	if len(g.Frames) > 1 || g.LoopCount != 1 {
		field := 0
		if g.LoopCount != 0 {
			field = g.LoopCount - 1
		}
		writeNetscapeLoopExtension(out, field)
	}

	minCodeSize := pal.sizeField + 1
	if minCodeSize < 2 {
		minCodeSize = 2
	}

	for _, f := range g.Frames {
		needsGCE := pal.hasTransparency || f.DelayMs != 0
		if needsGCE {
			writeGraphicControlExtension(out, pal, f)
		}
		writeImageDescriptor(out, g.Width, g.Height)

		indices := make([]byte, g.Width*g.Height)
		for i := 0; i < g.Width*g.Height; i++ {
			o := i * 4
			indices[i] = pal.indexOf(f.Pix[o], f.Pix[o+1], f.Pix[o+2], f.Pix[o+3])
		}

		out.WriteByte(byte(minCodeSize))
		encodeAll(minCodeSize, indices, out)
	}

	out.WriteByte(blockTrailer)
	return out.Bytes(), nil
}

func writeColorTable(out *byteBuffer, table ColorTable) {
	for _, c := range table {
		out.WriteByte(c.R)
		out.WriteByte(c.G)
		out.WriteByte(c.B)
	}
}

func writeCommentExtension(out *byteBuffer, text string) {
	out.WriteByte(blockExtension)
	out.WriteByte(extComment)
	writeSubBlocks(out, []byte(text))
}

func writeNetscapeLoopExtension(out *byteBuffer, loopField int) {
	out.WriteByte(blockExtension)
	out.WriteByte(extApplication)
	out.WriteByte(11)
	out.WriteString("NETSCAPE2.0")
	out.WriteByte(3)
	out.WriteByte(1)
	out.WriteUint16LE(uint16(loopField))
	out.WriteByte(0)
}

func writeGraphicControlExtension(out *byteBuffer, pal *builtPalette, f Frame) {
	out.WriteByte(blockExtension)
	out.WriteByte(extGraphicCtrl)
	out.WriteByte(4)

	var transFlag byte
	if pal.hasTransparency {
		transFlag = 1
	}
	var userInput byte
	if f.UserInput {
		userInput = 1 << 1
	}
	// disposal method 0 (unspecified): this codec never plans multi-frame
	// disposal on encode (spec.md Non-goals), so every emitted frame
	// leaves disposal to the decoder's default handling.
	packed := userInput | transFlag
	out.WriteByte(packed)

	out.WriteUint16LE(uint16(f.DelayMs / 10))
	out.WriteByte(pal.transparentIndex)
	out.WriteByte(0)
}

func writeImageDescriptor(out *byteBuffer, width, height int) {
	out.WriteByte(blockImage)
	out.WriteUint16LE(0) // left
	out.WriteUint16LE(0) // top
	out.WriteUint16LE(uint16(width))
	out.WriteUint16LE(uint16(height))
	out.WriteByte(0) // no local color table, no interlace, no sort
}
