package smtp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeClient struct {
	failures int
	calls    int
	sent     []*mail.Msg
}

func (c *fakeClient) DialAndSend(msgs ...*mail.Msg) error {
	c.calls++
	if c.calls <= c.failures {
		return errors.New("connection refused")
	}
	c.sent = append(c.sent, msgs...)
	return nil
}

var welcomeData = map[string]any{
	"Name":    "ada lovelace",
	"Email":   "ada@example.com",
	"BaseURL": "https://crm.example.com",
}

func TestSend_RendersTemplates(t *testing.T) {
	client := &fakeClient{}
	m := newMailer(client, "crm@example.com")

	err := m.Send("ada@example.com", welcomeData, "welcome.tmpl")

	require.NoError(t, err)
	require.Len(t, client.sent, 1)
	require.Equal(t, []string{"Welcome to the CRM, Ada Lovelace"}, client.sent[0].GetGenHeader(mail.HeaderSubject))
	require.Len(t, client.sent[0].GetParts(), 2)
}

func TestSend_RetriesFailedDelivery(t *testing.T) {
	client := &fakeClient{failures: 2}
	m := newMailer(client, "crm@example.com")
	m.retryDelay = 0

	err := m.Send("ada@example.com", welcomeData, "welcome.tmpl")

	require.NoError(t, err)
	require.Equal(t, 3, client.calls)
}

func TestSend_GivesUpAfterLastAttempt(t *testing.T) {
	client := &fakeClient{failures: 5}
	m := newMailer(client, "crm@example.com")
	m.retryDelay = 0

	err := m.Send("ada@example.com", welcomeData, "welcome.tmpl")

	require.EqualError(t, err, "connection refused")
	require.Equal(t, defaultAttempts, client.calls)
}

func TestSend_UnknownTemplate(t *testing.T) {
	client := &fakeClient{}
	m := newMailer(client, "crm@example.com")

	err := m.Send("ada@example.com", welcomeData, "missing.tmpl")

	require.Error(t, err)
	require.Zero(t, client.calls)
}
