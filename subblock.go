package gif

// subblock.go implements GIF's data-sub-block framing: length-prefixed
// chunks of 1..255 payload bytes, terminated by a zero-length block. The
// LZW byte stream always rides through this framing (spec.md §4.2).

// subBlockReader concatenates a run of sub-blocks into one logical byte
// stream, reading from an underlying byte cursor.
type subBlockReader struct {
	data []byte
	pos  int

	cur    []byte // current sub-block payload not yet consumed
	curPos int
	done   bool
}

func newSubBlockReader(data []byte, pos int) *subBlockReader {
	return &subBlockReader{data: data, pos: pos}
}

// nextByte returns the next payload byte across sub-block boundaries,
// transparently pulling in the next length-prefixed chunk when the
// current one is exhausted. ok is false once the zero-length terminator
// has been consumed.
func (s *subBlockReader) nextByte() (byte, bool) {
	for s.curPos >= len(s.cur) {
		if s.done {
			return 0, false
		}
		if s.pos >= len(s.data) {
			s.done = true
			return 0, false
		}
		n := int(s.data[s.pos])
		s.pos++
		if n == 0 {
			s.done = true
			return 0, false
		}
		if s.pos+n > len(s.data) {
			s.done = true
			return 0, false
		}
		s.cur = s.data[s.pos : s.pos+n]
		s.curPos = 0
		s.pos += n
	}
	b := s.cur[s.curPos]
	s.curPos++
	return b, true
}

// end returns the stream position immediately after the terminator,
// valid once nextByte has returned ok==false.
func (s *subBlockReader) end() int {
	return s.pos
}

// readSubBlocksRaw reads a whole run of sub-blocks starting at pos and
// returns their concatenated payload plus the position just past the
// terminator. Used for blocks (comment, application) whose payload is
// needed whole rather than streamed byte-by-byte.
func readSubBlocksRaw(data []byte, pos int) ([]byte, int, error) {
	var out []byte
	for {
		if pos >= len(data) {
			return nil, pos, newErr(ErrTruncated, "sub-block length prefix missing")
		}
		n := int(data[pos])
		pos++
		if n == 0 {
			return out, pos, nil
		}
		if pos+n > len(data) {
			return nil, pos, newErr(ErrTruncated, "sub-block payload truncated")
		}
		out = append(out, data[pos:pos+n]...)
		pos += n
	}
}

// subBlockWriter splits a payload into <=255-byte chunks, each with its
// length prefix, and appends the zero-length terminator. Mirrors
// ByteArray/LZWEncoder's packetized writer in the teacher encoder.
type subBlockWriter struct {
	out *byteBuffer
	buf [255]byte
	n   int
}

func newSubBlockWriter(out *byteBuffer) *subBlockWriter {
	return &subBlockWriter{out: out}
}

// writeByte appends one byte to the pending sub-block, flushing a full
// 255-byte chunk to out when the buffer fills.
func (w *subBlockWriter) writeByte(b byte) {
	w.buf[w.n] = b
	w.n++
	if w.n == 255 {
		w.flushChunk()
	}
}

func (w *subBlockWriter) flushChunk() {
	if w.n == 0 {
		return
	}
	w.out.WriteByte(byte(w.n))
	w.out.WriteBytes(w.buf[:w.n])
	w.n = 0
}

// close flushes any pending partial chunk and writes the zero-length
// terminator.
func (w *subBlockWriter) close() {
	w.flushChunk()
	w.out.WriteByte(0)
}

// writeSubBlocks writes an arbitrary payload as a run of sub-blocks
// followed by the terminator, for payloads (comment text, application
// extension data) that are available whole rather than streamed.
func writeSubBlocks(out *byteBuffer, payload []byte) {
	for len(payload) > 0 {
		n := len(payload)
		if n > 255 {
			n = 255
		}
		out.WriteByte(byte(n))
		out.WriteBytes(payload[:n])
		payload = payload[n:]
	}
	out.WriteByte(0)
}
