package challenge

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"jobs-api/jobs/domain"
)

const (
	internJuniorSlug  domain.Slug = "intern-junior"
	internJuniorLevel             = "Intern/Junior Developer"

	secretPrefix   = "ENERLAB"
	linkedInDomain = "linkedin.com"
)

// Mensagens de falha. Ficam exportadas para os testes dos pacotes de cima.
const (
	MsgInvalidSubmission = "Invalid submission. Please check the errors below:"
	MsgHybridRequired    = "This position requires accepting the hybrid work condition (minimum 2 days on-site in Barra Funda)."
	MsgWrongSecret       = "The secret is incorrect. Please follow the instructions carefully."

	HintHybridRequired = "You must accept the hybrid work condition to proceed with the application"
	HintUppercase      = "The email prefix in the secret should be in UPPERCASE"
	HintPrefix         = `The secret should start with "ENERLAB"`
)

// Submission é o payload esperado no POST /intern-junior/apply.
// Também é usado como exemplo no Describe, por isso a ordem dos campos importa.
type Submission struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	LinkedInProfile string `json:"linkedinProfile"`
	GraduationYear  int    `json:"graduationYear"`
	AcceptsHybrid   bool   `json:"acceptsHybrid"`
	Secret          string `json:"secret"`
}

// InternJunior é o desafio da vaga de estágio/júnior.
type InternJunior struct {
	now func() time.Time
}

type Option func(*InternJunior)

// WithClock troca o relógio usado para descobrir o ano corrente.
func WithClock(now func() time.Time) Option {
	return func(c *InternJunior) {
		if now != nil {
			c.now = now
		}
	}
}

func NewInternJunior(opts ...Option) *InternJunior {
	c := &InternJunior{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *InternJunior) Slug() domain.Slug { return internJuniorSlug }
func (c *InternJunior) Level() string     { return internJuniorLevel }

func (c *InternJunior) Describe() domain.ChallengeResponse {
	year := c.now().Year()
	example := Submission{
		FullName:        "João Silva",
		Email:           "joao.silva@email.com",
		LinkedInProfile: "https://www.linkedin.com/in/joaosilva",
		GraduationYear:  year,
		AcceptsHybrid:   true,
		Secret:          ExpectedSecret("joao.silva@email.com", year),
	}

	return domain.ChallengeResponse{
		Title:       "Intern/Junior Developer Challenge - Enerlab",
		Description: "Apply for our Intern/Junior Developer position. This is a HYBRID role requiring at least 2 days on-site in Barra Funda, São Paulo.",
		JobPost:     "https://www.linkedin.com/hiring/jobs/4270192595/detail/",
		Instructions: []string{
			"To apply, make a POST request to this same endpoint",
			"The request body should be a JSON with the following fields:",
			"1. fullName: Your complete name",
			"2. email: Your email address",
			"3. linkedinProfile: Your LinkedIn profile URL",
			"4. graduationYear: Your expected graduation year (must be current year or next year)",
			"5. acceptsHybrid: Boolean indicating if you accept the hybrid work condition (min 2 days on-site in Barra Funda)",
			"6. secret: Generate a secret by concatenating:",
			`   - The word "ENERLAB"`,
			`   - followed by underscore "_"`,
			"   - followed by the current year",
			`   - followed by underscore "_"`,
			"   - followed by your email (before the @) in UPPERCASE",
			"",
			"Example: If your email is john.doe@email.com, the secret would be: " + ExpectedSecret("john.doe@email.com", year),
		},
		Hints: []string{
			"Make sure your LinkedIn URL is complete (https://www.linkedin.com/in/...)",
			"The secret should follow the exact format: ENERLAB_YEAR_EMAILPREFIX",
			"Email prefix means everything before the @ symbol",
			"Convert the email prefix to UPPERCASE",
			"This position requires on-site presence in Barra Funda at least 2 days per week",
		},
		ExampleInput: example,
	}
}

func (c *InternJunior) schema(year int) Schema {
	return Schema{
		{Name: "fullName", Kind: KindString, Checks: []Check{
			MinLength(3, "Full name must have at least 3 characters"),
		}},
		{Name: "email", Kind: KindString, Checks: []Check{
			Email("Invalid email format"),
		}},
		{Name: "linkedinProfile", Kind: KindString, Checks: []Check{
			URL("Invalid LinkedIn URL"),
			Contains(linkedInDomain, "Must be a LinkedIn URL"),
		}},
		{Name: "graduationYear", Kind: KindNumber, Checks: []Check{
			Integer("Graduation year must be an integer"),
			Min(float64(year), fmt.Sprintf("Graduation year must be %d or later", year)),
			Max(float64(year+1), fmt.Sprintf("Graduation year must be at most %d", year+1)),
		}},
		{Name: "acceptsHybrid", Kind: KindBoolean},
		{Name: "secret", Kind: KindString},
	}
}

// Validate aplica, nesta ordem: schema, regra do híbrido e o secret.
// A recusa do híbrido tem prioridade mesmo quando o secret também está errado.
func (c *InternJunior) Validate(input any) domain.Outcome {
	year := c.now().Year()

	fields, problems := c.schema(year).Validate(input)
	if len(problems) > 0 {
		return domain.Outcome{Result: domain.Failed(MsgInvalidSubmission, problems...)}
	}
	sub := toSubmission(fields)

	if !sub.AcceptsHybrid {
		return domain.Outcome{Result: domain.Failed(MsgHybridRequired, HintHybridRequired)}
	}

	if hints, ok := CheckSecret(sub.Secret, sub.Email, year); !ok {
		return domain.Outcome{Result: domain.Failed(MsgWrongSecret, hints...)}
	}

	return domain.Outcome{
		Result: domain.ValidationResult{
			Success: true,
			Message: fmt.Sprintf(
				"Application received successfully! Welcome %s. Your application for the %s position has been submitted. We will contact you at %s for the next steps.",
				sub.FullName, internJuniorLevel, sub.Email),
		},
		Application: &domain.Application{
			Slug:            internJuniorSlug,
			Position:        internJuniorLevel,
			FullName:        sub.FullName,
			Email:           sub.Email,
			LinkedInProfile: sub.LinkedInProfile,
			GraduationYear:  sub.GraduationYear,
		},
	}
}

// toSubmission só é chamado depois do schema, então os tipos já estão garantidos.
func toSubmission(fields map[string]any) Submission {
	year, _ := Number(fields["graduationYear"])
	return Submission{
		FullName:        fields["fullName"].(string),
		Email:           fields["email"].(string),
		LinkedInProfile: fields["linkedinProfile"].(string),
		GraduationYear:  int(year),
		AcceptsHybrid:   fields["acceptsHybrid"].(bool),
		Secret:          fields["secret"].(string),
	}
}

// ExpectedSecret monta ENERLAB_<ano>_<PREFIXO DO EMAIL EM MAIÚSCULAS>.
func ExpectedSecret(email string, year int) string {
	return secretPrefix + "_" + strconv.Itoa(year) + "_" + strings.ToUpper(emailPrefix(email))
}

// CheckSecret compara o secret exatamente (sem trim, case-sensitive).
// Quando não bate, devolve o formato esperado seguido das dicas dos erros comuns
// encontrados; as sondagens são independentes e podem disparar juntas.
func CheckSecret(secret, email string, year int) ([]string, bool) {
	expected := ExpectedSecret(email, year)
	if secret == expected {
		return nil, true
	}

	yearDigits := strconv.Itoa(year)
	hints := []string{
		fmt.Sprintf("Expected format: %s_%s_[EMAIL_PREFIX_IN_UPPERCASE]", secretPrefix, yearDigits),
	}
	if strings.Contains(secret, strings.ToLower(emailPrefix(email))) {
		hints = append(hints, HintUppercase)
	}
	if !strings.HasPrefix(secret, secretPrefix) {
		hints = append(hints, HintPrefix)
	}
	if !strings.Contains(secret, yearDigits) {
		hints = append(hints, fmt.Sprintf("The secret should include the current year (%s)", yearDigits))
	}
	return hints, false
}

func emailPrefix(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
