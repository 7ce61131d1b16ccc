package dom

import "fmt"

// Fault is panicked by Dom operations that detect a broken invariant or an
// out-of-range handle. Package composer recovers it at the single command
// dispatch boundary and turns it into a returned, documented error; the
// Dom must not be used again afterwards.
type Fault struct{ Reason string }

func (f *Fault) Error() string { return "dom: invariant violated: " + f.Reason }

// Raise panics with a Fault built from the given reason.
func Raise(format string, args ...any) {
	panic(&Fault{Reason: fmt.Sprintf(format, args...)})
}
