package email

import (
	"context"
	"errors"
	"strings"
)

// Message es un reporte listo para enviar.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Recipients devuelve los destinatarios sin vacios ni duplicados, en orden.
func (m Message) Recipients() []string {
	seen := make(map[string]struct{}, len(m.To))
	out := make([]string, 0, len(m.To))
	for _, to := range m.To {
		to = strings.TrimSpace(to)
		key := strings.ToLower(to)
		if to == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, to)
	}
	return out
}

var ErrNoRecipients = errors.New("no recipients")

// Sender define la interfaz para envio de reportes de assessment.
type Sender interface {
	SendReport(ctx context.Context, msg Message) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendReport(_ context.Context, _ Message) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
