package infra

import (
	"context"

	"github.com/rs/zerolog"

	"jobs-api/jobs/domain"
)

// LogNotifier só escreve a candidatura no log. Usado em desenvolvimento.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(l zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: l}
}

func (n *LogNotifier) Target() string { return "log" }

func (n *LogNotifier) Notify(_ context.Context, app domain.Application) error {
	n.log.Info().
		Str("application_id", app.ID).
		Str("position", app.Position).
		Str("full_name", app.FullName).
		Str("email", app.Email).
		Str("linkedin", app.LinkedInProfile).
		Int("graduation_year", app.GraduationYear).
		Time("submitted_at", app.SubmittedAt).
		Msg("new job application")
	return nil
}
