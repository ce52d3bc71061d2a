package structure

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gostatics/internal/ids"
)

// ErrorKind classifies every failure a construction, mutation or solve can
// report.
type ErrorKind int

const (
	NegativeOrZeroValue ErrorKind = iota + 1
	DegenerateSegment
	DuplicateID
	OffsetExceedsLength
	EmptyStructure
	NoSupport
	DisjointStructure
	TooManyUnknowns
	Unsolvable
	NonExistentReference
)

func (k ErrorKind) String() string {
	switch k {
	case NegativeOrZeroValue:
		return "negative or zero value"
	case DegenerateSegment:
		return "degenerate segment"
	case DuplicateID:
		return "duplicate id"
	case OffsetExceedsLength:
		return "offset exceeds length"
	case EmptyStructure:
		return "empty structure"
	case NoSupport:
		return "no support"
	case DisjointStructure:
		return "disjoint structure"
	case TooManyUnknowns:
		return "too many unknowns"
	case Unsolvable:
		return "unsolvable"
	case NonExistentReference:
		return "non-existent reference"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error type of the package. Two errors match under
// errors.Is when their kinds are equal.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNegativeOrZeroValue  = &Error{Kind: NegativeOrZeroValue}
	ErrDegenerateSegment    = &Error{Kind: DegenerateSegment}
	ErrDuplicateID          = &Error{Kind: DuplicateID}
	ErrOffsetExceedsLength  = &Error{Kind: OffsetExceedsLength}
	ErrEmptyStructure       = &Error{Kind: EmptyStructure}
	ErrNoSupport            = &Error{Kind: NoSupport}
	ErrDisjointStructure    = &Error{Kind: DisjointStructure}
	ErrTooManyUnknowns      = &Error{Kind: TooManyUnknowns}
	ErrUnsolvable           = &Error{Kind: Unsolvable}
	ErrNonExistentReference = &Error{Kind: NonExistentReference}
)

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// wrap builds an *Error of the given kind around cause.
func wrap(kind ErrorKind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...) + ": " + cause.Error(), Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// claimID claims a custom id or allocates a fresh one.
func claimID(reg *ids.Registry, k ids.Kind, custom *int) (int, error) {
	if custom == nil {
		return reg.Allocate(k), nil
	}
	if err := reg.Claim(k, *custom); err != nil {
		return 0, wrap(DuplicateID, err, "cannot create %s", k)
	}
	return *custom, nil
}
