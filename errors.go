package bdat

import "fmt"

// Kind classifies the error kinds a BDAT parse, serialize or build can
// fail with. See spec §7.
type Kind int

// Error kinds.
const (
	// MalformedHeader means the magic was wrong, a declared offset is out
	// of range, or declared counts are inconsistent.
	MalformedHeader Kind = iota

	// InsufficientData means the buffer is shorter than a declared
	// offset+length requires.
	InsufficientData

	// InvalidOffset means an intra-file offset points outside its
	// expected section or crosses a section boundary.
	InvalidOffset

	// UnknownValueTag means a column tag byte is not in the defined set.
	UnknownValueTag

	// TypeMismatch means a cell accessor was asked for a tag the cell
	// does not carry.
	TypeMismatch

	// DuplicateColumn means the builder was given two columns with the
	// same name.
	DuplicateColumn

	// DuplicateLabel means the builder was given two rows with the same
	// label hash in a modern table.
	DuplicateLabel

	// UnsupportedDialect means a write targets a dialect that cannot
	// represent a value present in the input, e.g. a HashRef cell headed
	// for a legacy table.
	UnsupportedDialect
)

func (k Kind) String() string {
	switch k {
	case MalformedHeader:
		return "malformed header"
	case InsufficientData:
		return "insufficient data"
	case InvalidOffset:
		return "invalid offset"
	case UnknownValueTag:
		return "unknown value tag"
	case TypeMismatch:
		return "type mismatch"
	case DuplicateColumn:
		return "duplicate column"
	case DuplicateLabel:
		return "duplicate label"
	case UnsupportedDialect:
		return "unsupported dialect"
	default:
		return "unknown error"
	}
}

// Error is the error type every BDAT operation fails with. Kind is always
// inspectable via errors.Is against the matching sentinel below.
type Error struct {
	Kind    Kind
	Context string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bdat: %s: %s: %v", e.Kind, e.Context, e.Err)
	}
	return fmt.Sprintf("bdat: %s: %s", e.Kind, e.Context)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, bdat.MalformedHeaderError) match any Error of
// that Kind regardless of context or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values usable with errors.Is(err, bdat.MalformedHeaderError).
var (
	MalformedHeaderError    = &Error{Kind: MalformedHeader}
	InsufficientDataError   = &Error{Kind: InsufficientData}
	InvalidOffsetError      = &Error{Kind: InvalidOffset}
	UnknownValueTagError    = &Error{Kind: UnknownValueTag}
	TypeMismatchError       = &Error{Kind: TypeMismatch}
	DuplicateColumnError    = &Error{Kind: DuplicateColumn}
	DuplicateLabelError     = &Error{Kind: DuplicateLabel}
	UnsupportedDialectError = &Error{Kind: UnsupportedDialect}
)

func errMalformedHeader(context string, err error) error {
	return &Error{Kind: MalformedHeader, Context: context, Err: err}
}

func errInsufficientData(context string, err error) error {
	return &Error{Kind: InsufficientData, Context: context, Err: err}
}

func errInvalidOffset(context string, err error) error {
	return &Error{Kind: InvalidOffset, Context: context, Err: err}
}

func errUnknownValueTag(context string, err error) error {
	return &Error{Kind: UnknownValueTag, Context: context, Err: err}
}

func errTypeMismatch(context string) error {
	return &Error{Kind: TypeMismatch, Context: context}
}

func errDuplicateColumn(context string) error {
	return &Error{Kind: DuplicateColumn, Context: context}
}

func errDuplicateLabel(context string) error {
	return &Error{Kind: DuplicateLabel, Context: context}
}

func errUnsupportedDialect(context string) error {
	return &Error{Kind: UnsupportedDialect, Context: context}
}
