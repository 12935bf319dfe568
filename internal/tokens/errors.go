package tokens

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Use errors.Is to classify a compile failure.
var (
	ErrMissingInput    = errors.New("missing token files")
	ErrInvalidDocument = errors.New("invalid token document")
	ErrNotRefOnly      = errors.New("layer must be reference-only")
	ErrDanglingRef     = errors.New("dangling reference")
	ErrNotLiteral      = errors.New("layer must be literal-only")
	ErrLiteralFormat   = errors.New("literal format violation")
)

// maxListed bounds how many offending entries a validation error names.
const maxListed = 10

// MissingInputError names every token file that was not found.
type MissingInputError struct {
	Paths []string
}

func (e *MissingInputError) Error() string {
	var b strings.Builder
	b.WriteString("Missing token files. Expected:")
	for _, path := range e.Paths {
		b.WriteString("\n- ")
		b.WriteString(path)
	}
	return b.String()
}

func (e *MissingInputError) Unwrap() error {
	return ErrMissingInput
}

// ValidationError reports the entries of one layer that failed a check.
type ValidationError struct {
	Kind  error
	Layer Layer
	Items []string
	Total int
}

func (e *ValidationError) Error() string {
	shown := fmt.Sprintf("first %d", len(e.Items))
	if e.Total > len(e.Items) {
		shown = fmt.Sprintf("first %d of %d", len(e.Items), e.Total)
	}

	label := e.Layer.Label()
	switch e.Kind {
	case ErrNotRefOnly:
		return fmt.Sprintf("%s tokens must be $ref-only. Found non-$ref entries (%s): %s",
			label, shown, strings.Join(e.Items, ", "))
	case ErrDanglingRef:
		return fmt.Sprintf("%s tokens contain $ref that do not exist in Base (%s): %s",
			label, shown, strings.Join(e.Items, " | "))
	case ErrNotLiteral:
		return fmt.Sprintf("%s tokens must be literal-only. Found non-literal entries (%s): %s",
			label, shown, strings.Join(e.Items, ", "))
	case ErrLiteralFormat:
		return fmt.Sprintf("%s tokens contain literals outside the allowed formats (%s): %s",
			label, shown, strings.Join(e.Items, " | "))
	default:
		return fmt.Sprintf("%s tokens: %v (%s): %s", label, e.Kind, shown, strings.Join(e.Items, ", "))
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// boundedList keeps the first limit items while counting every addition.
type boundedList[T any] struct {
	limit int
	items []T
	total int
}

func newBoundedList[T any](limit int) *boundedList[T] {
	return &boundedList[T]{limit: limit}
}

func (b *boundedList[T]) Add(item T) {
	b.total++
	if len(b.items) < b.limit {
		b.items = append(b.items, item)
	}
}

func (b *boundedList[T]) Items() []T {
	return b.items
}

func (b *boundedList[T]) Total() int {
	return b.total
}

func (b *boundedList[T]) Truncated() bool {
	return b.total > len(b.items)
}

func newValidationError(kind error, layer Layer, list *boundedList[string]) *ValidationError {
	return &ValidationError{
		Kind:  kind,
		Layer: layer,
		Items: list.Items(),
		Total: list.Total(),
	}
}
