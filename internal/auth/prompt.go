package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompt presents the organizations as a numbered menu on w, reads the
// operator's choice from r and confirms it. Invalid input is reported and
// asked again until attempts runs out; attempts < 1 means one attempt.
func (s *Session) Prompt(ctx context.Context, r io.Reader, w io.Writer, attempts int) error {
	if s.state != AwaitingOrganizationChoice {
		return fmt.Errorf("prompting for organization while %s: %w", s.state, ErrInvalidState)
	}
	if attempts < 1 {
		attempts = 1
	}

	reader := bufio.NewReader(r)
	fmt.Fprintf(w, "\nSelect organization:\n")
	for i, org := range s.orgs {
		fmt.Fprintf(w, "  %d) %s\n", i+1, org.DisplayName())
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		fmt.Fprintf(w, "Enter number [1-%d]: ", len(s.orgs))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return fmt.Errorf("reading selection: %w", err)
		}

		input := strings.TrimSpace(line)
		n, convErr := strconv.Atoi(input)
		if convErr != nil {
			err = &InvalidChoiceError{Input: input, Count: len(s.orgs)}
		} else {
			err = s.Choose(ctx, n)
		}
		var choiceErr *InvalidChoiceError
		if errors.As(err, &choiceErr) {
			lastErr = err
			fmt.Fprintln(w, err)
			continue
		}
		return err
	}
	return lastErr
}
