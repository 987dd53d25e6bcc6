package domain

import (
	"context"
	"time"
)

// Application é a candidatura aprovada na validação, enviada ao canal de notificação.
// Não é persistida.
type Application struct {
	// ID serve apenas para correlacionar logs do envio com o request.
	ID              string    `json:"id"`
	Slug            Slug      `json:"slug"`
	Position        string    `json:"position"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	LinkedInProfile string    `json:"linkedinProfile"`
	GraduationYear  int       `json:"graduationYear"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// Notifier entrega a candidatura a um canal externo (Slack, NATS, log...).
type Notifier interface {
	Notify(ctx context.Context, app Application) error
}

// Dispatcher dispara a notificação sem bloquear quem chamou.
// O resultado do envio nunca volta para o chamador.
type Dispatcher interface {
	Dispatch(app Application)
}
