// Package cerrors defines the error taxonomy shared by every codec in the
// compressor-system module: a closed set of root causes, each wrappable
// with a call-specific message and an optional underlying error.
package cerrors

import "fmt"

// Kind identifies the structural reason a codec call failed. It is a
// closed set; callers that need to branch on failure type should compare
// against the sentinel Kinds below rather than matching on message text.
type Kind string

const (
	// EmptyInput is returned by Encode when the codec's frame has no
	// representation for zero-length input.
	EmptyInput Kind = "empty_input"
	// TruncatedStream is returned by Decode when the input ends before a
	// token, tree, or count field has been fully consumed.
	TruncatedStream Kind = "truncated_stream"
	// CorruptFrame is returned by Decode for any structural violation:
	// unknown tag, bad magic, or a length field that doesn't match the
	// bytes that follow it.
	CorruptFrame Kind = "corrupt_frame"
	// CorruptTree is returned by the Huffman decoder when the serialised
	// tree is internally inconsistent, or a bit stream descends into a
	// null child.
	CorruptTree Kind = "corrupt_tree"
	// BadReference is returned by the LZ77 decoder when a match's
	// distance exceeds the length of the output produced so far.
	BadReference Kind = "bad_reference"
	// Unsupported is returned by the registry when asked to create a
	// codec under an unknown name, and by a codec asked to honor a
	// configuration it cannot satisfy.
	Unsupported Kind = "unsupported"
)

// Error is the concrete error type returned by every codec in this
// module. It carries a machine-readable Kind and a human-readable
// message, and optionally wraps an underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given Kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given Kind around an existing error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether err is an *Error of the given Kind, unwrapping as
// needed. It mirrors the standard errors.Is contract without requiring
// callers to construct a sentinel value to compare against.
func Is(err error, kind Kind) bool {
	for err != nil {
		if ce, ok := err.(*Error); ok {
			if ce.Kind == kind {
				return true
			}
			err = ce.Err
			continue
		}
		break
	}
	return false
}
