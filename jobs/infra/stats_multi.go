package infra

import (
	"context"
	"errors"

	"jobs-api/jobs/domain"
)

// MultiStats repassa cada evento para todos os stores. Um store com erro não
// impede os outros; os erros voltam juntos.
type MultiStats []domain.StatsStore

func (m MultiStats) Record(ctx context.Context, ev domain.StatsEvent) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
