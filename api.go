package gif

// Decode parses a GIF87a/GIF89a byte stream and composes its full frame
// sequence (spec.md §4.6, §6). sink receives non-fatal diagnostics
// (currently: unknown application extensions); pass nil to discard them.
func Decode(data []byte, sink DiagSink) (*Gif, error) {
	cs, err := parseContainer(data, sink)
	if err != nil {
		return nil, err
	}
	frames, err := compose(cs)
	if err != nil {
		return nil, err
	}
	loop := cs.loopCount
	if loop < 0 {
		loop = 1 // no NETSCAPE2.0 extension: play once (GIF89a default)
	}
	return &Gif{
		Width:     cs.width,
		Height:    cs.height,
		LoopCount: loop,
		Frames:    frames,
		Comments:  cs.comments,
	}, nil
}

// Encode serializes g into a byte-exact GIF89a stream (spec.md §6). Every
// frame's Pix must already be quantized so that the whole sequence fits
// a 256-entry palette; if any pixel is transparent, one of those entries
// is reserved for it, leaving 255 for opaque colors — this codec does
// not perform color quantization.
func Encode(g *Gif) ([]byte, error) {
	return encodeGif(g)
}

// Summary is a structural scan result: everything the container format
// states up front, without running the Compositor over any image data.
// Used by cmd/gifcodec's info subcommand, grounded on
// original_source/gifprime's __main__.py report.
type Summary struct {
	Width, Height int
	FrameCount    int
	LoopCount     int
	Comments      []string
	DelaysMs      []int
}

// Inspect parses a stream's structural elements and reports on them
// without compositing frames (spec.md §4.4 only, no §4.5).
func Inspect(data []byte, sink DiagSink) (*Summary, error) {
	cs, err := parseContainer(data, sink)
	if err != nil {
		return nil, err
	}
	loop := cs.loopCount
	if loop < 0 {
		loop = 1
	}
	s := &Summary{
		Width:      cs.width,
		Height:     cs.height,
		FrameCount: len(cs.images),
		LoopCount:  loop,
		Comments:   cs.comments,
	}
	for _, gce := range cs.gceForImage {
		delay := 0
		if gce != nil {
			delay = int(gce.delayTime) * 10
		}
		s.DelaysMs = append(s.DelaysMs, delay)
	}
	return s, nil
}
