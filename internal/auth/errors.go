package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when a Session method is called out of order.
	ErrInvalidState = errors.New("sign-in session is not in the expected state")

	// ErrNoOrganizations means the account has no organization to choose from.
	ErrNoOrganizations = errors.New("no organizations available for this account")
)

// InvalidChoiceError reports a selection outside 1..Count. Input is set
// when the operator typed something that is not a number; Index is then 0.
type InvalidChoiceError struct {
	Index int
	Input string
	Count int
}

func (e *InvalidChoiceError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid choice %q: enter a number between 1 and %d", e.Input, e.Count)
	}
	return fmt.Sprintf("invalid choice %d: enter a number between 1 and %d", e.Index, e.Count)
}
