package infra

import (
	"context"
	"encoding/json"
	"fmt"

	"jobs-api/jobs/domain"
)

// Publisher é o pedaço de *nats.Conn que o notifier usa.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier publica a candidatura em JSON num subject do NATS.
// O Publish do NATS é assíncrono e não aceita contexto; checamos o ctx antes.
type NATSNotifier struct {
	pub     Publisher
	subject string
}

func NewNATSNotifier(pub Publisher, subject string) *NATSNotifier {
	return &NATSNotifier{pub: pub, subject: subject}
}

func (n *NATSNotifier) Target() string { return "nats:" + n.subject }

func (n *NATSNotifier) Notify(ctx context.Context, app domain.Application) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("nats publish cancelled: %w", err)
	}

	data, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}
	if err := n.pub.Publish(n.subject, data); err != nil {
		return fmt.Errorf("nats publish to %s: %w", n.subject, err)
	}
	return nil
}
