// Package setup validates the problem definition a new tree starts from.
package setup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/treykane/logicalroot/internal/tree"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Input is the raw intake form.
type Input struct {
	Statement       string `validate:"gt=10"`
	Type            string `validate:"oneof=Business Product Strategic Personal"`
	SuccessCriteria string
	Scope           string `validate:"gt=5"`
}

// Placeholders shown in the empty form fields.
const (
	StatementPlaceholder = "e.g., How can we increase the monthly recurring revenue of our SaaS product by 20% in Q3?"
	CriteriaPlaceholder  = "e.g., Specific target numbers"
	ScopePlaceholder     = "e.g., Budget, timeframe, geography"
)

// Normalized returns a copy with surrounding whitespace removed and an empty
// type defaulted to Business.
func (in Input) Normalized() Input {
	in.Statement = strings.TrimSpace(in.Statement)
	in.Type = strings.TrimSpace(in.Type)
	in.SuccessCriteria = strings.TrimSpace(in.SuccessCriteria)
	in.Scope = strings.TrimSpace(in.Scope)
	if in.Type == "" {
		in.Type = string(tree.Business)
	}
	return in
}

// Validate checks the trimmed input. The returned error joins one message
// per failing field.
func (in Input) Validate() error {
	err := validate.Struct(in.Normalized())
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fieldError(fe.Field()))
	}
	return errors.Join(errs...)
}

// Valid reports whether the form may be submitted.
func (in Input) Valid() bool {
	return in.Validate() == nil
}

// ToProblem converts validated input.
func (in Input) ToProblem() (tree.Problem, error) {
	if err := in.Validate(); err != nil {
		return tree.Problem{}, err
	}
	n := in.Normalized()
	pt, err := tree.ParseProblemType(n.Type)
	if err != nil {
		return tree.Problem{}, err
	}
	return tree.Problem{
		Statement:       n.Statement,
		Type:            pt,
		SuccessCriteria: n.SuccessCriteria,
		Scope:           n.Scope,
	}, nil
}

// StatementError validates a single statement value, for inline form checks.
func StatementError(s string) error {
	return fieldCheck("Statement", Input{Statement: s, Type: string(tree.Business), Scope: "placeholder"})
}

// ScopeError validates a single scope value.
func ScopeError(s string) error {
	return fieldCheck("Scope", Input{Statement: "placeholder statement", Type: string(tree.Business), Scope: s})
}

func fieldCheck(field string, in Input) error {
	if err := validate.StructPartial(in.Normalized(), field); err != nil {
		return fieldError(field)
	}
	return nil
}

func fieldError(field string) error {
	switch field {
	case "Statement":
		return errors.New("problem statement must be longer than 10 characters")
	case "Scope":
		return errors.New("scope must be longer than 5 characters")
	case "Type":
		return fmt.Errorf("problem category must be one of %s", strings.Join(typeNames(), ", "))
	default:
		return fmt.Errorf("%s is invalid", strings.ToLower(field))
	}
}

func typeNames() []string {
	out := make([]string, 0, len(tree.ProblemTypes))
	for _, pt := range tree.ProblemTypes {
		out = append(out, string(pt))
	}
	return out
}
