package services

import "log"

// Mailer delivers transactional mail. Delivery itself is an external
// collaborator; the default implementation only logs.
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer writes outgoing mail to the process log. Used in development and
// tests where no mail gateway is configured.
type LogMailer struct {
	From string
}

func NewLogMailer(from string) *LogMailer {
	return &LogMailer{From: from}
}

func (m *LogMailer) Send(to, subject, body string) error {
	log.Printf("mail from=%s to=%s subject=%q body=%q", m.From, to, subject, body)
	return nil
}
