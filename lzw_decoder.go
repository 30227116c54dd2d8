package gif

// lzw_decoder.go implements GIF's variable-code-width LZW decompressor
// (spec.md §4.3). The dictionary is represented as (prefix code, suffix
// symbol) pairs with a separate root table for codes < 2^M, per spec.md
// §9's design note — the same representation pdfcpu's enhanced LZW
// reader uses for the analogous PDF/TIFF variant, avoiding the need to
// materialize every dictionary entry as its own byte slice.
const maxLzwCodeWidth = 12
const maxLzwDictSize = 1 << maxLzwCodeWidth

// lzwDecoder holds the reset-on-CLEAR dictionary state.
type lzwDecoder struct {
	minCodeSize int
	clearCode   int
	endCode     int

	prefix [maxLzwDictSize]int   // prefix[c]: the code preceding c's final symbol
	suffix [maxLzwDictSize]uint8 // suffix[c]: c's final symbol
	next   int                   // next free code

	width uint // current code width in bits

	prevCode int // -1 if none
}

func newLzwDecoder(minCodeSize int) *lzwDecoder {
	d := &lzwDecoder{minCodeSize: minCodeSize}
	d.reset()
	return d
}

func (d *lzwDecoder) reset() {
	d.clearCode = 1 << d.minCodeSize
	d.endCode = d.clearCode + 1
	d.next = d.clearCode + 2
	d.width = uint(d.minCodeSize + 1)
	d.prevCode = -1
	for i := 0; i < d.clearCode; i++ {
		d.prefix[i] = -1
		d.suffix[i] = uint8(i)
	}
}

// firstSymbol walks a code's prefix chain down to its root and returns
// the first (leftmost) symbol of the sequence it expands to.
func (d *lzwDecoder) firstSymbol(code int) uint8 {
	for d.prefix[code] != -1 {
		code = d.prefix[code]
	}
	return d.suffix[code]
}

// expand appends code's expansion to dst and returns the result. Codes
// expand prefix-first: the sequence is expand(prefix[code]) ++ [suffix[code]].
func (d *lzwDecoder) expand(dst []byte, code int) []byte {
	// Walk the prefix chain, collecting suffixes back-to-front, then reverse.
	start := len(dst)
	for {
		dst = append(dst, d.suffix[code])
		code = d.prefix[code]
		if code == -1 {
			break
		}
	}
	for l, r := start, len(dst)-1; l < r; l, r = l+1, r-1 {
		dst[l], dst[r] = dst[r], dst[l]
	}
	return dst
}

// decodeAll decodes an entire LZW-compressed index stream read through
// next (a GIF sub-block byte source) and returns the decompressed index
// sequence.
func decodeAll(minCodeSize int, next func() (byte, bool)) ([]byte, error) {
	if minCodeSize < 2 || minCodeSize > 12 {
		return nil, newErr(ErrLzwDecode, "lzw min code size out of range")
	}
	d := newLzwDecoder(minCodeSize)
	br := newBitReader(next)

	var out []byte
	for {
		raw, err := br.readBits(d.width)
		if err != nil {
			return nil, err
		}
		code := int(raw)
		switch {
		case code == d.clearCode:
			d.reset()
			continue
		case code == d.endCode:
			return out, nil
		}

		switch {
		case code < d.clearCode:
			// Literal root code.
			out = append(out, uint8(code))
			if d.prevCode != -1 && d.next < maxLzwDictSize {
				d.prefix[d.next] = d.prevCode
				d.suffix[d.next] = uint8(code)
				d.next++
			}
		case code == d.next && d.prevCode != -1:
			// KwKwK: prev ++ [first_symbol(prev)]. code == next can only be
			// reached while next < maxLzwDictSize, since a 12-bit code can't
			// name a dictionary slot beyond 4095.
			first := d.firstSymbol(d.prevCode)
			d.prefix[d.next] = d.prevCode
			d.suffix[d.next] = first
			out = d.expand(out, d.next)
			d.next++
		case code < d.next:
			out = d.expand(out, code)
			if d.prevCode != -1 && d.next < maxLzwDictSize {
				d.prefix[d.next] = d.prevCode
				d.suffix[d.next] = d.firstSymbol(code)
				d.next++
			}
		default:
			return nil, newErr(ErrLzwDecode, "code exceeds dictionary size")
		}

		if code != d.clearCode {
			d.prevCode = code
		}

		// Widen the code width once the dictionary has grown to fill it,
		// unless the dictionary is already maxed out (spec.md §9(b): continue
		// reading at width 12 with no further growth).
		if d.next == 1<<d.width && d.width < maxLzwCodeWidth {
			d.width++
		}
	}
}
