package match

import "fmt"

// CardinalityError reports more candidate files than catalog tracks. It is
// raised before any scoring begins and fails the whole run.
type CardinalityError struct {
	Candidates int
	Tracks     int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("more files (%d) than songs in the album (%d)", e.Candidates, e.Tracks)
}

// UnresolvedError reports a candidate that ended disambiguation without an
// assigned track, either because the user declined every option or aborted
// the protocol. It fails the whole run before any metadata is written.
type UnresolvedError struct {
	Label string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("no track assigned for %q", e.Label)
}
