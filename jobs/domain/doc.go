// Package domain define os tipos e contratos do processo seletivo: vagas,
// desafios, resultados de validação, candidaturas e estatísticas.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é manter as regras de validação testáveis sem servidor e
// desacopladas de Slack, NATS, Redis etc.
package domain
