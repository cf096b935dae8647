package state

import "fmt"

// RangeError reports a rejected navigation. Value is the index that was
// refused; state is left as it was.
type RangeError struct {
	Op    string
	Value int
	Limit int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %d out of range [0, %d)", e.Op, e.Value, e.Limit)
}
