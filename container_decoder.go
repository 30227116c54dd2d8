package gif

import "encoding/binary"

// container_decoder.go implements the structural parser side of
// ContainerCodec (spec.md §4.4): header, Logical Screen Descriptor,
// Global Color Table, the ordered stream of body blocks, and trailer.
// Byte-layout details (field offsets, packed-byte bit assignments) are
// grounded on the stdlib-derived decoder kept in the pack under
// other_examples (ostafen-digler's format/gif.go, itself adapted from
// Go's image/gif), cross-checked against spec.md's table.

const (
	blockImage       = 0x2C
	blockExtension   = 0x21
	blockTrailer     = 0x3B
	extGraphicCtrl   = 0xF9
	extComment       = 0xFE
	extPlainText     = 0x01
	extApplication   = 0xFF
)

const (
	fieldColorTableFlag = 1 << 7
	fieldColorTableSize = 0x07
)

// decodedImageBlock is one parsed image block, with its LZW data already
// decompressed into palette indices, prior to compositing.
type decodedImageBlock struct {
	left, top, width, height int
	interlaceFlag            bool
	localColorTable          ColorTable
	lzwMinCodeSize           int
	indices                  []byte // decompressed palette indices, width*height
}

// containerStream is the ordered sequence of structural elements a
// decode pass produces, consumed in order by the Compositor.
type containerStream struct {
	width, height int
	globalTable   ColorTable
	bgColorIndex  uint8

	// events, in file order
	images     []decodedImageBlock
	comments   []string
	loopCount  int // -1 means "not specified" (no NETSCAPE2.0 extension seen)

	// gceForImage[i] is the GCE active for images[i], or nil if none.
	gceForImage []*graphicControl
}

// parseContainer parses a full GIF87a/GIF89a byte stream into its
// structural elements, decompressing each image block's LZW data along
// the way (spec.md keeps LZW decompression and structural parsing as
// tightly coupled steps — the sub-block run for an image IS the image's
// LZW stream).
func parseContainer(data []byte, sink DiagSink) (*containerStream, error) {
	if len(data) < 6 {
		return nil, newErr(ErrTruncated, "stream shorter than magic")
	}
	magic := string(data[:6])
	if magic != "GIF87a" && magic != "GIF89a" {
		return nil, newErr(ErrBadMagic, "not GIF87a/GIF89a: "+magic)
	}
	if len(data) < 13 {
		return nil, newErr(ErrTruncated, "stream shorter than LSD")
	}

	cs := &containerStream{loopCount: -1}
	cs.width = int(binary.LittleEndian.Uint16(data[6:8]))
	cs.height = int(binary.LittleEndian.Uint16(data[8:10]))
	packed := data[10]
	cs.bgColorIndex = data[11]
	// data[12] is pixel aspect ratio, unused.

	pos := 13
	if packed&fieldColorTableFlag != 0 {
		size := int(packed & fieldColorTableSize)
		table, next, err := readColorTable(data, pos, size)
		if err != nil {
			return nil, err
		}
		cs.globalTable = table
		pos = next
	}

	var pendingGCE *graphicControl

	for {
		if pos >= len(data) {
			return nil, newErr(ErrTruncated, "stream ended before trailer")
		}
		tag := data[pos]
		pos++
		switch tag {
		case blockTrailer:
			return cs, nil

		case blockImage:
			img, next, err := parseImageDescriptor(data, pos)
			if err != nil {
				return nil, err
			}
			pos = next

			if img.interlaceFlag {
				// Non-goal: interlaced encoding is out of scope for the
				// encoder, but decoding must still accept interlaced input
				// (spec.md doesn't exempt the decoder). Indices are still
				// stored row-major in *transmission* order here; the
				// Compositor de-interlaces when painting.
			}

			if len(data) <= pos {
				return nil, newErr(ErrTruncated, "missing lzw min code size")
			}
			minCodeSize := int(data[pos])
			pos++

			sbr := newSubBlockReader(data, pos)
			indices, err := decodeAll(minCodeSize, sbr.nextByte)
			if err != nil {
				return nil, err
			}
			// decodeAll stops at the END code; consume whatever is left of
			// the sub-block run, terminator included, before calling end().
			for {
				if _, ok := sbr.nextByte(); !ok {
					break
				}
			}
			pos = sbr.end()

			img.lzwMinCodeSize = minCodeSize
			img.indices = indices

			cs.images = append(cs.images, img)
			cs.gceForImage = append(cs.gceForImage, pendingGCE)
			pendingGCE = nil

		case blockExtension:
			if pos >= len(data) {
				return nil, newErr(ErrTruncated, "extension missing label byte")
			}
			label := data[pos]
			pos++
			switch label {
			case extGraphicCtrl:
				gce, next, err := parseGraphicControl(data, pos)
				if err != nil {
					return nil, err
				}
				pos = next
				pendingGCE = gce

			case extComment:
				payload, next, err := readSubBlocksRaw(data, pos)
				if err != nil {
					return nil, err
				}
				pos = next
				cs.comments = append(cs.comments, string(payload))

			case extApplication:
				next, loop, err := parseApplicationExtension(data, pos, sink)
				if err != nil {
					return nil, err
				}
				pos = next
				if loop != nil {
					cs.loopCount = *loop
				}

			case extPlainText:
				// Unknown/unused text block: skip header + sub-blocks silently.
				if pos >= len(data) {
					return nil, newErr(ErrTruncated, "plain text extension truncated")
				}
				blockSize := int(data[pos])
				pos++
				if pos+blockSize > len(data) {
					return nil, newErr(ErrTruncated, "plain text extension header truncated")
				}
				pos += blockSize
				_, next, err := readSubBlocksRaw(data, pos)
				if err != nil {
					return nil, err
				}
				pos = next

			default:
				return nil, newErr(ErrBadBlockTag, "unknown extension label")
			}

		default:
			return nil, newErr(ErrBadBlockTag, "unknown body block tag")
		}
	}
}

func readColorTable(data []byte, pos int, sizeField int) (ColorTable, int, error) {
	n := 1 << (uint(sizeField) + 1)
	end := pos + 3*n
	if end > len(data) {
		return nil, pos, newErr(ErrTruncated, "color table truncated")
	}
	table := make(ColorTable, n)
	for i := 0; i < n; i++ {
		table[i] = Color{R: data[pos], G: data[pos+1], B: data[pos+2]}
		pos += 3
	}
	return table, pos, nil
}

func parseImageDescriptor(data []byte, pos int) (decodedImageBlock, int, error) {
	if pos+9 > len(data) {
		return decodedImageBlock{}, pos, newErr(ErrTruncated, "image descriptor truncated")
	}
	left := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
	top := int(binary.LittleEndian.Uint16(data[pos+2 : pos+4]))
	width := int(binary.LittleEndian.Uint16(data[pos+4 : pos+6]))
	height := int(binary.LittleEndian.Uint16(data[pos+6 : pos+8]))
	packed := data[pos+8]
	pos += 9

	img := decodedImageBlock{
		left: left, top: top, width: width, height: height,
		interlaceFlag: packed&(1<<6) != 0,
	}

	if packed&fieldColorTableFlag != 0 {
		size := int(packed & fieldColorTableSize)
		table, next, err := readColorTable(data, pos, size)
		if err != nil {
			return decodedImageBlock{}, pos, err
		}
		img.localColorTable = table
		pos = next
	}
	return img, pos, nil
}

func parseGraphicControl(data []byte, pos int) (*graphicControl, int, error) {
	if pos+6 > len(data) {
		return nil, pos, newErr(ErrTruncated, "graphic control extension truncated")
	}
	blockSize := data[pos]
	if blockSize != 4 {
		return nil, pos, newErr(ErrTruncated, "graphic control extension has wrong block size")
	}
	packed := data[pos+1]
	delay := binary.LittleEndian.Uint16(data[pos+2 : pos+4])
	transIndex := data[pos+4]
	terminator := data[pos+5]
	if terminator != 0 {
		return nil, pos, newErr(ErrTruncated, "graphic control extension missing terminator")
	}
	gce := &graphicControl{
		present:               true,
		disposalMethod:        int(packed>>2) & 0x07,
		transparentColorFlag:  packed&0x01 != 0,
		transparentColorIndex: transIndex,
		delayTime:             delay,
		userInputFlag:         packed&0x02 != 0,
	}
	return gce, pos + 6, nil
}

// parseApplicationExtension parses an Application Extension block and
// recognizes NETSCAPE2.0's loop-count sub-extension (spec.md §4.4).
// Unknown application extensions are reported to sink and their
// sub-blocks are skipped, never failing the decode.
func parseApplicationExtension(data []byte, pos int, sink DiagSink) (next int, loopCount *int, err error) {
	if pos >= len(data) {
		return pos, nil, newErr(ErrTruncated, "application extension missing block size")
	}
	blockSize := int(data[pos])
	pos++
	if blockSize != 11 {
		return pos, nil, newErr(ErrTruncated, "application extension has unexpected block size")
	}
	if pos+11 > len(data) {
		return pos, nil, newErr(ErrTruncated, "application extension identifier truncated")
	}
	appID := string(data[pos : pos+8])
	authCode := string(data[pos+8 : pos+11])
	pos += 11

	payload, end, err := readSubBlocksRaw(data, pos)
	if err != nil {
		return pos, nil, err
	}

	if appID == "NETSCAPE" && authCode == "2.0" && len(payload) == 3 && payload[0] == 1 {
		field := int(payload[1]) | int(payload[2])<<8
		lc := field
		if field > 0 {
			lc = field + 1
		}
		return end, &lc, nil
	}

	if sink != nil {
		sink.UnknownApplicationExtension(appID, authCode)
	}
	return end, nil, nil
}
