package feed

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	MissingField ErrorKind = iota + 1
	InvalidDate
	InvalidShape
	InvalidValue
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidShape = errors.New("invalid shape")
	ErrInvalidValue = errors.New("invalid value")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingField:
		return ErrMissingField
	case InvalidDate:
		return ErrInvalidDate
	case InvalidShape:
		return ErrInvalidShape
	case InvalidValue:
		return ErrInvalidValue
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ValidationError reports one offending field. Item is the index of the
// offending entry in Feed.Items, or -1 for feed-level fields.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Item  int
}

func feedError(kind ErrorKind, field string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Item: -1}
}

func itemError(kind ErrorKind, field string, index int) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Item: index}
}

func (e *ValidationError) Error() string {
	if e.Item < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s: items[%d].%s", e.Kind, e.Item, e.Field)
}

// Is lets errors.Is match a ValidationError against the kind sentinels.
func (e *ValidationError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// ValidationErrors is every problem found in a single validation pass, in
// the order the fields were checked.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "feed is invalid"
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return "invalid feed: " + strings.Join(msgs, "; ")
}

func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, 0, len(errs))
	for _, e := range errs {
		out = append(out, e)
	}
	return out
}

// First returns the primary cause, or nil for an empty list.
func (errs ValidationErrors) First() *ValidationError {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
