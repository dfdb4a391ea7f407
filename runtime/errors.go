package runtime

import "fmt"

// Host side failures that natives report as Error values.

// EmptyCollection is returned by operations that need at least one element.
type EmptyCollection struct {
	Operation string
}

func (e *EmptyCollection) Error() string {
	return fmt.Sprintf("%s: empty collection", e.Operation)
}

func (e *EmptyCollection) HushError() *Error {
	return ErrorOf("empty collection", NewString(e.Operation))
}

// IndexOutOfBounds is returned when an index or key is missing from a collection.
type IndexOutOfBounds struct {
	Index Value
}

func (e *IndexOutOfBounds) Error() string {
	return fmt.Sprintf("index out of bounds: %s", e.Index.Inspect())
}

func (e *IndexOutOfBounds) HushError() *Error {
	return ErrorOf("index out of bounds", e.Index)
}

// InvalidArgument is returned by natives called with the wrong number or kind of
// arguments.
type InvalidArgument struct {
	Function string
	Message  string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.Message)
}

func (e *InvalidArgument) HushError() *Error {
	return ErrorOf("invalid argument", NewString(e.Error()))
}
