package domain

// Slug identifica uma vaga e é usado como chave de roteamento (ex: "intern-junior").
type Slug string

// JobSummary é a forma resumida de uma vaga, usada nas listagens.
type JobSummary struct {
	Slug  Slug   `json:"slug"`
	Level string `json:"level"`
}

// ChallengeResponse é o que o candidato recebe no GET /:slug/apply.
type ChallengeResponse struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	JobPost      string   `json:"jobPost"`
	Instructions []string `json:"instructions"`
	Hints        []string `json:"hints,omitempty"`
	ExampleInput any      `json:"exampleInput,omitempty"`
}

// ValidationResult é o resultado de uma submissão. Hints só aparece em falhas.
type ValidationResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Hints   []string `json:"hints,omitempty"`
}

// Failed monta um resultado de falha com as dicas informadas.
func Failed(message string, hints ...string) ValidationResult {
	return ValidationResult{Success: false, Message: message, Hints: hints}
}

// Outcome é o retorno de Challenge.Validate.
//
// Application só é preenchido quando Result.Success == true.
type Outcome struct {
	Result      ValidationResult
	Application *Application
}

// Challenge representa o desafio de uma vaga: instruções + validação.
//
// Validate deve ser uma função pura: não envia notificação, não grava nada.
// Efeitos colaterais ficam na camada application.
type Challenge interface {
	Slug() Slug
	Level() string
	Describe() ChallengeResponse
	Validate(input any) Outcome
}
