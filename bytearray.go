package gif

import "bytes"

// byteBuffer is a growing, page-backed byte buffer, adapted from the
// teacher's ByteArray: the emitter writes far more single bytes (one per
// LZW-packed byte, one per color-table entry) than it does large slices,
// so paging avoids repeated large reallocations without needing a
// bytes.Buffer's amortized-growth copy on every resize.
type byteBuffer struct {
	pages    [][]byte
	page     int
	cursor   int
	pageSize int
}

const byteBufferPageSize = 4096

func newByteBuffer() *byteBuffer {
	b := &byteBuffer{
		page:     -1,
		pageSize: byteBufferPageSize,
	}
	b.newPage()
	return b
}

func (b *byteBuffer) newPage() {
	b.page++
	b.pages = append(b.pages, make([]byte, b.pageSize))
	b.cursor = 0
}

// WriteByte appends a single byte.
func (b *byteBuffer) WriteByte(v byte) {
	if b.cursor >= b.pageSize {
		b.newPage()
	}
	b.pages[b.page][b.cursor] = v
	b.cursor++
}

// WriteBytes appends a byte slice.
func (b *byteBuffer) WriteBytes(data []byte) {
	for _, v := range data {
		b.WriteByte(v)
	}
}

// WriteString appends a string's bytes verbatim (no UTF validation —
// GIF's ASCII tokens like the magic and app identifiers are always
// 7-bit clean).
func (b *byteBuffer) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		b.WriteByte(s[i])
	}
}

// WriteUint16LE appends v as two little-endian bytes.
func (b *byteBuffer) WriteUint16LE(v uint16) {
	b.WriteByte(byte(v))
	b.WriteByte(byte(v >> 8))
}

// Bytes materializes the full accumulated buffer.
func (b *byteBuffer) Bytes() []byte {
	var buf bytes.Buffer
	for i, page := range b.pages {
		if i < len(b.pages)-1 {
			buf.Write(page)
		} else {
			buf.Write(page[:b.cursor])
		}
	}
	return buf.Bytes()
}
