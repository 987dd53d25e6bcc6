// Package jobs é o adapter HTTP (echo) da API de vagas.
//
// Camadas:
//
//   - domain: tipos e contratos (sem echo, sem net/http)
//   - challenge: desafios por vaga e regras de validação
//   - application: registry, fluxo de candidatura, dispatcher de notificações, health
//   - infra: notifiers (Slack, NATS, log), stats (memória, Redis, Prometheus), semáforo e pacer
//   - jobs (este pacote): rotas, tradução de erros para JSON, middlewares
//
// Fluxo de um POST /:slug/apply:
//
//  1. Lê o corpo (limitado por BODY_LIMIT)
//  2. ApplyService procura a vaga e valida o payload
//  3. Responde 200/400 com o ValidationResult, ou 404 se a vaga não existe
//  4. Em caso de sucesso a notificação sai em background, fora do request
package jobs
