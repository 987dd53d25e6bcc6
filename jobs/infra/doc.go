// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - ChanPool: semáforo simples que limita envios de notificação em voo
//   - PacerStore: token bucket por destino usando golang.org/x/time/rate
//   - SlackNotifier, NATSNotifier, LogNotifier: canais de notificação
//   - MemoryStatsStore, RedisStatsStore, PromStatsStore: contadores de eventos
package infra
