package gif

import "github.com/pkg/errors"

// ErrorKind identifies one of the fatal error categories a decode or
// encode call can fail with.
type ErrorKind int

const (
	// ErrBadMagic means the byte stream did not start with GIF87a or GIF89a.
	ErrBadMagic ErrorKind = iota
	// ErrTruncated means the stream ended before a structural element was complete.
	ErrTruncated
	// ErrBadBlockTag means a body block's dispatch byte was not recognized.
	ErrBadBlockTag
	// ErrLzwDecode means the LZW code stream violated the dictionary protocol.
	ErrLzwDecode
	// ErrMissingColorTable means an image block had neither a local nor a global color table.
	ErrMissingColorTable
	// ErrUnknownDisposalMethod means a GCE's disposal method was outside {0,1,2,3}.
	ErrUnknownDisposalMethod
	// ErrPaletteTooLarge means the caller's frames use more than 256 unique colors.
	ErrPaletteTooLarge
	// ErrInvalidFrameSize means a frame's pixel buffer length did not match width*height*4.
	ErrInvalidFrameSize
	// ErrInvalidAlpha means a frame pixel's alpha channel was neither 0 nor 255.
	ErrInvalidAlpha
)

func (k ErrorKind) String() string {
	switch k {
	case ErrBadMagic:
		return "BadMagic"
	case ErrTruncated:
		return "Truncated"
	case ErrBadBlockTag:
		return "BadBlockTag"
	case ErrLzwDecode:
		return "LzwDecodeError"
	case ErrMissingColorTable:
		return "MissingColorTable"
	case ErrUnknownDisposalMethod:
		return "UnknownDisposalMethod"
	case ErrPaletteTooLarge:
		return "PaletteTooLarge"
	case ErrInvalidFrameSize:
		return "InvalidFrameSize"
	case ErrInvalidAlpha:
		return "InvalidAlpha"
	default:
		return "Unknown"
	}
}

// CodecError is the concrete error type returned by every fatal failure
// in this package. Callers can switch on Kind without string matching.
type CodecError struct {
	Kind ErrorKind
	msg  string
}

func (e *CodecError) Error() string {
	return "gif: " + e.Kind.String() + ": " + e.msg
}

func newErr(kind ErrorKind, msg string) error {
	return errors.WithStack(&CodecError{Kind: kind, msg: msg})
}

// IsKind reports whether err is a CodecError of the given kind, unwrapping
// any errors.Wrap/WithStack layers added along the way.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CodecError
	for err != nil {
		if c, ok := err.(*CodecError); ok {
			ce = c
			break
		}
		u, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = u.Cause()
	}
	return ce != nil && ce.Kind == kind
}
