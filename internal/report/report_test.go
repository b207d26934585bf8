package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func TestRelay_CheckOrigin(t *testing.T) {
	relay := NewRelay([]string{
		"https://dictionary.example.org",
		"https://staging.example.org/",
	}, "maintainer@example.org", &fakeMailer{})

	tests := []struct {
		name    string
		origin  string
		wantErr error
	}{
		{name: "allowed origin", origin: "https://dictionary.example.org"},
		{name: "allowed with trailing slash", origin: "https://dictionary.example.org/"},
		{name: "allow-list entry had trailing slash", origin: "https://staging.example.org"},
		{name: "missing origin", origin: "", wantErr: ErrMissingOrigin},
		{name: "unknown origin", origin: "https://evil.example.org", wantErr: ErrOriginNotAllowed},
		{name: "scheme mismatch", origin: "http://dictionary.example.org", wantErr: ErrOriginNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := relay.CheckOrigin(tt.origin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRelay_Forward(t *testing.T) {
	ctx := context.Background()

	t.Run("sends to the maintainer", func(t *testing.T) {
		mailer := &fakeMailer{}
		relay := NewRelay(nil, "maintainer@example.org", mailer)

		err := relay.Forward(ctx, Report{
			EntryID:     "001-002-01",
			Word:        "atim",
			Description: "the recording cuts off early",
		})
		require.NoError(t, err)

		require.Len(t, mailer.sent, 1)
		mail := mailer.sent[0]
		assert.Equal(t, "maintainer@example.org", mail.to)
		assert.Equal(t, "Dictionary entry report: 001-002-01", mail.subject)
		assert.Contains(t, mail.body, "Entry: 001-002-01")
		assert.Contains(t, mail.body, "Word: atim")
		assert.Contains(t, mail.body, "the recording cuts off early")
	})

	t.Run("missing entry id sends nothing", func(t *testing.T) {
		mailer := &fakeMailer{}
		relay := NewRelay(nil, "maintainer@example.org", mailer)

		err := relay.Forward(ctx, Report{EntryID: "   ", Description: "typo"})
		assert.ErrorIs(t, err, ErrMissingEntryID)
		assert.Empty(t, mailer.sent)
	})

	t.Run("word line omitted when absent", func(t *testing.T) {
		mailer := &fakeMailer{}
		relay := NewRelay(nil, "maintainer@example.org", mailer)

		require.NoError(t, relay.Forward(ctx, Report{EntryID: "x", Description: "d"}))
		require.Len(t, mailer.sent, 1)
		assert.NotContains(t, mailer.sent[0].body, "Word:")
	})

	t.Run("mailer failure surfaces", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("smtp down")}
		relay := NewRelay(nil, "maintainer@example.org", mailer)

		err := relay.Forward(ctx, Report{EntryID: "x", Description: "d"})
		assert.ErrorContains(t, err, "smtp down")
	})
}

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "temporary smtp status", err: errors.New("421 service not available"), want: true},
		{name: "permanent smtp status", err: errors.New("550 mailbox unavailable"), want: false},
		{name: "unrelated error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransientError(tt.err))
		})
	}
}
