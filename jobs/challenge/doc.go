// Package challenge contém os desafios de cada vaga e o mecanismo de validação
// declarativa usado por eles.
//
// Um Schema é uma lista ordenada de campos; cada campo tem um tipo JSON e uma
// lista de checagens. A validação percorre todos os campos e produz no máximo
// uma dica por campo, no formato "<campo>: <mensagem>".
package challenge
