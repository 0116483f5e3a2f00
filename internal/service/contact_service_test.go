package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadthebusiness/platform-api/internal/mailer"
	"github.com/leadthebusiness/platform-api/internal/models"
	"github.com/leadthebusiness/platform-api/pkg/config"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
)

type mockMailer struct {
	sent    []mailer.Message
	sendErr error
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func contactMailConfig() config.MailConfig {
	return config.MailConfig{From: "site@leadthebusiness.in", To: []string{"team@leadthebusiness.in"}}
}

func TestContactServiceRelay(t *testing.T) {
	m := &mockMailer{}
	svc := NewContactService(m, contactMailConfig(), nil, nil)

	err := svc.Relay(context.Background(), models.ContactRequest{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "+91 9876543210",
		Message:  "Interested in the mentorship program",
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)

	msg := m.sent[0]
	assert.Equal(t, "site@leadthebusiness.in", msg.From)
	assert.Equal(t, []string{"team@leadthebusiness.in"}, msg.To)
	assert.Contains(t, msg.Subject, "Asha Verma")
	assert.Contains(t, msg.HTML, "asha@example.com")
	assert.Contains(t, msg.HTML, "Interested in the mentorship program")
}

func TestContactServiceRelayEscapesHTML(t *testing.T) {
	m := &mockMailer{}
	svc := NewContactService(m, contactMailConfig(), nil, nil)

	err := svc.Relay(context.Background(), models.ContactRequest{
		FullName: "<script>alert(1)</script>",
		Email:    "attacker@example.com",
		Message:  "hi",
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.NotContains(t, m.sent[0].HTML, "<script>")
	assert.Contains(t, m.sent[0].HTML, "&lt;script&gt;")
}

func TestContactServiceRelayValidation(t *testing.T) {
	m := &mockMailer{}
	svc := NewContactService(m, contactMailConfig(), nil, nil)

	err := svc.Relay(context.Background(), models.ContactRequest{Email: "bad"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, m.sent)
}

func TestContactServiceRelayUpstreamFailure(t *testing.T) {
	m := &mockMailer{sendErr: errors.New("provider down")}
	svc := NewContactService(m, contactMailConfig(), nil, nil)

	err := svc.Relay(context.Background(), models.ContactRequest{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Message:  "hello",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
