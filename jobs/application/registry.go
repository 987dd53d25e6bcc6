package application

import (
	"fmt"

	"jobs-api/jobs/domain"
)

// Registry mapeia slug -> desafio. É montado uma vez no startup e não muda depois,
// por isso pode ser lido de várias goroutines sem lock.
type Registry struct {
	order  []domain.Slug
	bySlug map[domain.Slug]domain.Challenge
}

// NewRegistry entra em pânico com slug vazio ou repetido: é erro de programação.
func NewRegistry(challenges ...domain.Challenge) *Registry {
	r := &Registry{bySlug: make(map[domain.Slug]domain.Challenge, len(challenges))}
	for _, c := range challenges {
		slug := c.Slug()
		if slug == "" {
			panic("application: challenge with empty slug")
		}
		if _, dup := r.bySlug[slug]; dup {
			panic(fmt.Sprintf("application: duplicate challenge slug %q", slug))
		}
		r.bySlug[slug] = c
		r.order = append(r.order, slug)
	}
	return r
}

func (r *Registry) Lookup(slug string) (domain.Challenge, bool) {
	c, ok := r.bySlug[domain.Slug(slug)]
	return c, ok
}

// List devolve as vagas na ordem de registro. Cada chamada retorna uma cópia nova.
func (r *Registry) List() []domain.JobSummary {
	out := make([]domain.JobSummary, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, domain.JobSummary{Slug: slug, Level: r.bySlug[slug].Level()})
	}
	return out
}
