package challenge

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"jobs-api/jobs/hints"
)

// validate é compartilhado: o validator faz cache das tags e é seguro para uso concorrente.
var validate = validator.New()

// Kind é o tipo JSON esperado de um campo.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// Check valida um valor já com o tipo correto. Retorna "" quando passa.
type Check func(v any) string

// Field descreve um campo obrigatório do payload.
type Field struct {
	Name   string
	Kind   Kind
	Checks []Check
}

// Schema é avaliado na ordem em que os campos foram declarados.
type Schema []Field

// Validate confere o payload e devolve os valores por campo ou a lista de dicas.
// O payload precisa ser um objeto JSON (map[string]any).
func (s Schema) Validate(input any) (map[string]any, []string) {
	obj, ok := input.(map[string]any)
	if !ok {
		return nil, []string{"body: Expected object, received " + hints.KindOf(input)}
	}

	var problems []string
	for _, f := range s {
		if msg := f.check(obj); msg != "" {
			problems = append(problems, f.Name+": "+msg)
		}
	}
	if len(problems) > 0 {
		return nil, problems
	}
	return obj, nil
}

func (f Field) check(obj map[string]any) string {
	v, present := obj[f.Name]
	if !present {
		return "Required"
	}
	if got := hints.KindOf(v); got != string(f.Kind) {
		return fmt.Sprintf("Expected %s, received %s", f.Kind, got)
	}
	for _, c := range f.Checks {
		if msg := c(v); msg != "" {
			return msg
		}
	}
	return ""
}

// MinLength exige ao menos n caracteres (runas, não bytes).
func MinLength(n int, msg string) Check {
	return func(v any) string {
		if utf8.RuneCountInString(v.(string)) < n {
			return msg
		}
		return ""
	}
}

func Email(msg string) Check {
	return tagCheck("email", msg)
}

func URL(msg string) Check {
	return tagCheck("url", msg)
}

func Contains(substr, msg string) Check {
	return func(v any) string {
		if !strings.Contains(v.(string), substr) {
			return msg
		}
		return ""
	}
}

func Integer(msg string) Check {
	return func(v any) string {
		f, ok := Number(v)
		if !ok || f != math.Trunc(f) {
			return msg
		}
		return ""
	}
}

func Min(n float64, msg string) Check {
	return func(v any) string {
		if f, ok := Number(v); !ok || f < n {
			return msg
		}
		return ""
	}
}

func Max(n float64, msg string) Check {
	return func(v any) string {
		if f, ok := Number(v); !ok || f > n {
			return msg
		}
		return ""
	}
}

func tagCheck(tag, msg string) Check {
	return func(v any) string {
		if err := validate.Var(v, tag); err != nil {
			return msg
		}
		return ""
	}
}

// Number converte os formatos numéricos que aparecem no payload para float64.
// O decoder HTTP usa json.Number (UseNumber); testes e a CLI podem mandar float64/int.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
