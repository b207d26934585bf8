// Package report relays "report an error" submissions to the dictionary
// maintainers by email. Origin allow-listing is the only access control
// on this path, so the checks here reject before any processing.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Report is one user submission about a dictionary entry.
type Report struct {
	EntryID     string `json:"entryID"`
	Word        string `json:"word,omitempty"`
	Description string `json:"description"`
}

// Validation failures for incoming submissions.
var (
	ErrMissingOrigin    = errors.New("missing request origin")
	ErrOriginNotAllowed = errors.New("request origin not allowed")
	ErrMissingEntryID   = errors.New("missing entry identifier")
)

// Relay validates submissions and forwards them through a Mailer.
type Relay struct {
	allowedOrigins map[string]bool
	maintainer     string
	mailer         Mailer
}

// NewRelay creates a Relay forwarding to the fixed maintainer address.
func NewRelay(allowedOrigins []string, maintainer string, mailer Mailer) *Relay {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSuffix(origin, "/")] = true
	}
	return &Relay{
		allowedOrigins: allowed,
		maintainer:     maintainer,
		mailer:         mailer,
	}
}

// CheckOrigin rejects submissions that lack an origin or arrive from an
// origin outside the allow-list.
func (relay *Relay) CheckOrigin(origin string) error {
	if origin == "" {
		return ErrMissingOrigin
	}
	if !relay.allowedOrigins[strings.TrimSuffix(origin, "/")] {
		return fmt.Errorf("%w: %s", ErrOriginNotAllowed, origin)
	}
	return nil
}

// Forward validates the submission and sends it to the maintainer.
// No email is sent when validation fails.
func (relay *Relay) Forward(ctx context.Context, submission Report) error {
	if strings.TrimSpace(submission.EntryID) == "" {
		return ErrMissingEntryID
	}

	subject := fmt.Sprintf("Dictionary entry report: %s", submission.EntryID)
	var body strings.Builder
	fmt.Fprintf(&body, "Entry: %s\n", submission.EntryID)
	if submission.Word != "" {
		fmt.Fprintf(&body, "Word: %s\n", submission.Word)
	}
	fmt.Fprintf(&body, "\n%s\n", submission.Description)

	if err := relay.mailer.Send(ctx, relay.maintainer, subject, body.String()); err != nil {
		return fmt.Errorf("mailer.Send > %w", err)
	}
	return nil
}
