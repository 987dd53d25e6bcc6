package challenge

import (
	"time"

	"jobs-api/jobs/domain"
)

// Defaults devolve os desafios registrados no binário, na ordem de exibição.
func Defaults(now func() time.Time) []domain.Challenge {
	return []domain.Challenge{
		NewInternJunior(WithClock(now)),
	}
}
