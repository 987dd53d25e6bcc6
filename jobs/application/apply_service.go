package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"jobs-api/jobs/domain"
)

// ErrUnknownPosition indica que o slug não está registrado.
var ErrUnknownPosition = errors.New("job position not found")

const (
	msgMalformed  = "Invalid request format"
	hintMalformed = "Please submit valid JSON in the request body"

	msgUnexpected  = "An unexpected error occurred. Please check your submission format."
	hintUnexpected = "Ensure your submission is valid JSON with all required fields"
)

// MalformedResult é a resposta para corpo que não é JSON válido.
func MalformedResult() domain.ValidationResult {
	return domain.Failed(msgMalformed, hintMalformed)
}

// ApplyService concentra o fluxo de candidatura, sem saber nada sobre HTTP.
//
// Dispatcher e Stats são opcionais: a CLI usa o serviço sem notificar ninguém.
type ApplyService struct {
	Registry   *Registry
	Dispatcher domain.Dispatcher
	Stats      domain.StatsStore
	Clock      func() time.Time
	NewID      func() string
	Log        *zerolog.Logger
}

func (s ApplyService) Jobs() []domain.JobSummary {
	return s.Registry.List()
}

func (s ApplyService) Describe(slug string) (domain.ChallengeResponse, error) {
	c, ok := s.Registry.Lookup(slug)
	if !ok {
		return domain.ChallengeResponse{}, ErrUnknownPosition
	}
	return c.Describe(), nil
}

// Submit valida o corpo bruto da requisição para a vaga informada.
//
// Falhas de validação não são erro: voltam como ValidationResult com Success=false.
// O único erro possível é ErrUnknownPosition. Em caso de sucesso a notificação é
// disparada exatamente uma vez e Submit não espera por ela.
func (s ApplyService) Submit(ctx context.Context, slug string, body []byte) (domain.ValidationResult, error) {
	c, ok := s.Registry.Lookup(slug)
	if !ok {
		s.logger().Debug().Str("slug", slug).Msg("unknown position")
		s.record(ctx, "", domain.EventUnknownPosition)
		return domain.ValidationResult{}, ErrUnknownPosition
	}

	payload, err := decodePayload(body)
	if err != nil {
		s.record(ctx, c.Slug(), domain.EventMalformed)
		return MalformedResult(), nil
	}

	out := s.validate(c, payload)
	if !out.Result.Success || out.Application == nil {
		s.record(ctx, c.Slug(), domain.EventRejected)
		return out.Result, nil
	}

	app := *out.Application
	app.ID = s.newID()
	app.Slug = c.Slug()
	app.SubmittedAt = s.now()

	s.record(ctx, c.Slug(), domain.EventAccepted)
	s.logger().Info().
		Str("application_id", app.ID).
		Str("slug", string(app.Slug)).
		Str("email", app.Email).
		Msg("application accepted")

	if s.Dispatcher != nil {
		s.Dispatcher.Dispatch(app)
	}
	return out.Result, nil
}

// validate nunca deixa um pânico do desafio escapar para o handler.
func (s ApplyService) validate(c domain.Challenge, payload any) (out domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger().Error().Interface("panic", r).Str("slug", string(c.Slug())).Msg("challenge validation panicked")
			out = domain.Outcome{Result: domain.Failed(msgUnexpected, hintUnexpected)}
		}
	}()
	return c.Validate(payload)
}

func (s ApplyService) record(ctx context.Context, slug domain.Slug, kind domain.EventKind) {
	if s.Stats == nil {
		return
	}
	if err := s.Stats.Record(ctx, domain.StatsEvent{Slug: slug, Kind: kind, At: s.now()}); err != nil {
		s.logger().Warn().Err(err).Str("event", string(kind)).Msg("stats record failed")
	}
}

func (s ApplyService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s ApplyService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s ApplyService) logger() *zerolog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return &log.Logger
}

// decodePayload lê um único valor JSON preservando números como json.Number,
// para que 2025.5 não vire 2025 silenciosamente.
func decodePayload(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return payload, nil
}
