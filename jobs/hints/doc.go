// Package hints reúne utilitários puros para gerar dicas de correção:
// diferença estrutural entre payloads e similaridade entre strings.
//
// Hoje nenhum desafio usa estas funções diretamente; elas ficam disponíveis
// para desafios futuros e para o subcomando `similarity` da CLI.
package hints
