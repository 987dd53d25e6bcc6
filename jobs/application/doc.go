// Package application contém os casos de uso do processo seletivo:
// registro de vagas, submissão de candidaturas, disparo de notificações
// e health check.
//
// Não conhece net/http nem as implementações concretas de infra.
// Ex.: ApplyService.Submit(ctx, slug, body) devolve um ValidationResult.
package application
