package config

import "strings"

// ValidationError lista todas as variáveis ausentes ou inválidas de uma vez.
type ValidationError struct {
	Vars []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid configuration: " + strings.Join(e.Vars, ", ")
}

type problems struct {
	seen map[string]bool
	vars []string
}

func (p *problems) add(name string) {
	if p.seen == nil {
		p.seen = map[string]bool{}
	}
	v := envName(name)
	if p.seen[v] {
		return
	}
	p.seen[v] = true
	p.vars = append(p.vars, v)
}

func (p *problems) err() error {
	if len(p.vars) == 0 {
		return nil
	}
	return &ValidationError{Vars: p.vars}
}
