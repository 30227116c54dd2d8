package gif

// lzw_encoder.go implements GIF's variable-code-width LZW compressor
// (spec.md §4.3), adapted from the teacher's LZWEncoder.go (itself a Go
// port of the classic GIFCOMPR.C "compress"-derived encoder). The
// teacher's encoder used an open-addressing hash table keyed by
// (prefix<<12 | suffix) to find existing dictionary sequences; this
// version keeps the same greedy longest-match algorithm and the same
// choice of behavior when the dictionary fills (emit CLEAR and reset,
// matching the teacher's clBlock()), but looks sequences up with a plain
// Go map instead of hand-rolled open addressing — there is no
// performance reason here to avoid map[int]int, and it reads closer to
// the decoder's dictionary model.
type lzwEncoder struct {
	minCodeSize int
	clearCode   int
	endCode     int
	next        int
	width       uint

	dict map[int]int // (prefix<<8 | suffix) -> code, a negative (root) prefix keyed as 0xFFFFF
}

func newLzwEncoder(minCodeSize int) *lzwEncoder {
	e := &lzwEncoder{minCodeSize: minCodeSize}
	e.reset()
	return e
}

func (e *lzwEncoder) reset() {
	e.clearCode = 1 << e.minCodeSize
	e.endCode = e.clearCode + 1
	e.next = e.clearCode + 2
	e.width = uint(e.minCodeSize + 1)
	e.dict = make(map[int]int, 1024)
}

func dictKey(prefix int, suffix uint8) int {
	if prefix < 0 {
		prefix = 0xFFFFF // sentinel for "root", distinct from any real code
	}
	return prefix<<8 | int(suffix)
}

// encodeAll compresses indices (each in [0, 2^minCodeSize)) and writes the
// resulting LZW byte stream, sub-block framed, to out.
func encodeAll(minCodeSize int, indices []byte, out *byteBuffer) {
	e := newLzwEncoder(minCodeSize)
	bw := newBitWriter()
	sbw := newSubBlockWriter(out)

	flushFullBytes := func() {
		for _, b := range bw.out {
			sbw.writeByte(b)
		}
		bw.out = bw.out[:0]
	}

	emit := func(code int) {
		bw.writeBits(uint32(code), e.width)
		flushFullBytes()
	}

	emit(e.clearCode)

	if len(indices) == 0 {
		emit(e.endCode)
		for _, b := range bw.flush() {
			sbw.writeByte(b)
		}
		sbw.close()
		return
	}

	prefixCode := -1 // -1 means "no accumulated sequence yet"
	for _, sym := range indices {
		if prefixCode == -1 {
			prefixCode = int(sym)
			continue
		}
		if code, ok := e.dict[dictKey(prefixCode, sym)]; ok {
			prefixCode = code
			continue
		}

		// prefixCode ++ [sym] is not in the dictionary: emit prefixCode,
		// add the new sequence, restart the buffer at sym.
		emit(prefixCode)

		if e.next < maxLzwDictSize {
			e.dict[dictKey(prefixCode, sym)] = e.next
			e.next++
			// The decoder assigns each entry one code later than the
			// encoder, so widen only once the code just assigned
			// (e.next-1) reaches 2^width, in step with its growth rule.
			if e.next-1 == 1<<e.width && e.width < maxLzwCodeWidth {
				e.width++
			}
		} else {
			// Dictionary full: emit CLEAR and start over, mirroring the
			// teacher's clBlock().
			emit(e.clearCode)
			e.next = e.clearCode + 2
			e.width = uint(e.minCodeSize + 1)
			e.dict = make(map[int]int, 1024)
		}
		prefixCode = int(sym)
	}
	if prefixCode != -1 {
		emit(prefixCode)
		// The decoder adds one more entry on reading this last code and
		// widens if that fills the current width; END must follow suit.
		if e.next == 1<<e.width && e.width < maxLzwCodeWidth {
			e.width++
		}
	}
	emit(e.endCode)

	for _, b := range bw.flush() {
		sbw.writeByte(b)
	}
	sbw.close()
}
