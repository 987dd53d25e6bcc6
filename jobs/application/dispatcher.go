package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"jobs-api/jobs/domain"
)

var errNoSlot = errors.New("no dispatch slot available")

// targeted é implementado pelos notifiers que sabem para onde enviam
// (canal do Slack, subject do NATS). O destino vira a chave do pacer.
type targeted interface {
	Target() string
}

// Dispatcher envia notificações em goroutines destacadas.
//
// Dispatch retorna na hora; vagas de envio, ritmo e timeout são aplicados dentro
// da goroutine, nunca no caminho da resposta HTTP. Não há retry.
type Dispatcher struct {
	notifier       domain.Notifier
	slots          domain.SlotPool
	acquireTimeout time.Duration
	pacers         domain.PacerStore
	stats          domain.StatsStore
	timeout        time.Duration
	log            *zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type DispatcherOption func(*Dispatcher)

// WithSlots limita os envios simultâneos. Com acquireTimeout <= 0 o envio
// espera por uma vaga até o dispatcher ser fechado.
func WithSlots(pool domain.SlotPool, acquireTimeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.slots = pool
		d.acquireTimeout = acquireTimeout
	}
}

// WithPacing aplica um token bucket por destino antes de cada envio.
func WithPacing(store domain.PacerStore) DispatcherOption {
	return func(d *Dispatcher) { d.pacers = store }
}

func WithDispatchStats(stats domain.StatsStore) DispatcherOption {
	return func(d *Dispatcher) { d.stats = stats }
}

// WithSendTimeout limita cada chamada ao notifier. 0 desliga.
func WithSendTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.timeout = timeout }
}

func WithDispatchLogger(l *zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = l }
}

func NewDispatcher(notifier domain.Notifier, opts ...DispatcherOption) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		notifier: notifier,
		log:      &log.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch implementa domain.Dispatcher.
func (d *Dispatcher) Dispatch(app domain.Application) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.send(app)
	}()
}

func (d *Dispatcher) send(app domain.Application) {
	start := time.Now()
	logger := d.log.With().
		Str("application_id", app.ID).
		Str("slug", string(app.Slug)).
		Logger()

	err := d.deliver(app)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("notification failed")
		d.record(app.Slug, domain.EventNotifyFailed)
		return
	}
	logger.Info().Dur("elapsed", time.Since(start)).Msg("notification sent")
	d.record(app.Slug, domain.EventNotified)
}

func (d *Dispatcher) deliver(app domain.Application) error {
	release, ok := d.acquireSlot()
	if !ok {
		return errNoSlot
	}
	defer release()

	if d.pacers != nil {
		target := "default"
		if t, ok := d.notifier.(targeted); ok {
			target = t.Target()
		}
		if err := d.pacers.Get(target).Wait(d.ctx); err != nil {
			return err
		}
	}

	ctx := d.ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return d.notifier.Notify(ctx, app)
}

func (d *Dispatcher) acquireSlot() (func(), bool) {
	if d.slots == nil {
		return func() {}, true
	}
	if d.acquireTimeout <= 0 {
		return d.slots.Acquire(d.ctx)
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.acquireTimeout)
	defer cancel()
	return d.slots.Acquire(ctx)
}

func (d *Dispatcher) record(slug domain.Slug, kind domain.EventKind) {
	if d.stats == nil {
		return
	}
	if err := d.stats.Record(context.Background(), domain.StatsEvent{Slug: slug, Kind: kind, At: time.Now()}); err != nil {
		d.log.Warn().Err(err).Str("event", string(kind)).Msg("stats record failed")
	}
}

// Close espera os envios em voo. Se ctx encerrar antes, cancela os envios
// pendentes e devolve ctx.Err().
func (d *Dispatcher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return ctx.Err()
	}
}
