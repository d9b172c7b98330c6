package smtp

import (
	"bytes"
	"time"

	"github.com/cradoe/crm/assets"
	"github.com/cradoe/crm/internal/funcs"

	"github.com/wneessen/go-mail"

	htmlTemplate "html/template"
	textTemplate "text/template"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultAttempts   = 3
	defaultRetryDelay = 2 * time.Second
)

type MailClient interface {
	DialAndSend(...*mail.Msg) error
}

type MailerInterface interface {
	Send(recipient string, data any, patterns ...string) error
}

type Mailer struct {
	client     MailClient
	from       string
	attempts   int
	retryDelay time.Duration
}

func NewMailer(host string, port int, username, password, from string) (*Mailer, error) {
	client, err := mail.NewClient(
		host,
		mail.WithTimeout(defaultTimeout),
		mail.WithPort(port),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.NoTLS),
	)
	if err != nil {
		return nil, err
	}

	return newMailer(client, from), nil
}

func newMailer(client MailClient, from string) *Mailer {
	return &Mailer{
		client:     client,
		from:       from,
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
	}
}

// Send renders the named templates from assets/emails and delivers the
// message, retrying failed deliveries.
func (m *Mailer) Send(recipient string, data any, patterns ...string) error {
	msg, err := m.compose(recipient, data, patterns...)
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err = m.client.DialAndSend(msg)
		if err == nil || attempt >= m.attempts {
			return err
		}
		time.Sleep(m.retryDelay)
	}
}

// compose builds the message from the "subject", "plainBody" and optional
// "htmlBody" templates.
func (m *Mailer) compose(recipient string, data any, patterns ...string) (*mail.Msg, error) {
	paths := make([]string, len(patterns))
	for i, pattern := range patterns {
		paths[i] = "emails/" + pattern
	}

	msg := mail.NewMsg()
	if err := msg.To(recipient); err != nil {
		return nil, err
	}
	if err := msg.From(m.from); err != nil {
		return nil, err
	}

	text, err := textTemplate.New("").Funcs(funcs.TemplateFuncs).ParseFS(assets.EmbeddedFiles, paths...)
	if err != nil {
		return nil, err
	}

	var subject, plain bytes.Buffer
	if err := text.ExecuteTemplate(&subject, "subject", data); err != nil {
		return nil, err
	}
	if err := text.ExecuteTemplate(&plain, "plainBody", data); err != nil {
		return nil, err
	}

	msg.Subject(subject.String())
	msg.SetBodyString(mail.TypeTextPlain, plain.String())

	if text.Lookup("htmlBody") == nil {
		return msg, nil
	}

	html, err := htmlTemplate.New("").Funcs(funcs.TemplateFuncs).ParseFS(assets.EmbeddedFiles, paths...)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := html.ExecuteTemplate(&body, "htmlBody", data); err != nil {
		return nil, err
	}
	msg.AddAlternativeString(mail.TypeTextHTML, body.String())

	return msg, nil
}
