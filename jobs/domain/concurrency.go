package domain

import "context"

// SlotPool representa um recurso com capacidade finita (ex: envios simultâneos).
//
// A semântica é: Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar.
// Ao adquirir, retorna uma função de release que deve ser chamada exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}

// Pacer controla o ritmo de chamadas de saída (ex: token bucket).
// Wait bloqueia até a próxima chamada ser permitida ou o ctx encerrar.
type Pacer interface {
	Wait(ctx context.Context) error
}

// PacerStore obtém um pacer por destino (canal do Slack, subject do NATS...).
type PacerStore interface {
	Get(target string) Pacer
}
