package validation

import (
	"fmt"
	"reflect"
	"strings"

	"career-guide/internal/domain"
	"career-guide/internal/dto"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json/query names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	v.RegisterStructValidation(questionOptionsRule, dto.QuestionRequest{})

	return &Validator{validate: v}
}

// questionOptionsRule requires options exactly for the choice, scale and
// ranking types.
func questionOptionsRule(sl validator.StructLevel) {
	q := sl.Current().Interface().(dto.QuestionRequest)
	qt := domain.QuestionType(q.Type)
	if !qt.Valid() {
		return
	}
	if qt.RequiresOptions() && len(q.Options) < 2 {
		sl.ReportError(q.Options, "options", "Options", "options_required", q.Type)
	}
	if !qt.RequiresOptions() && len(q.Options) > 0 {
		sl.ReportError(q.Options, "options", "Options", "options_forbidden", q.Type)
	}
}

// ValidateCreateAssessmentRequest validates the create assessment request.
// Tag rules run first; the engine's question rules (duplicate ids, correct
// answer shapes) are merged in so one response lists every problem.
func (v *Validator) ValidateCreateAssessmentRequest(req *dto.CreateAssessmentRequest) domain.ValidationErrors {
	errs := v.check(req)
	reported := make(map[string]bool, len(errs))
	for _, e := range errs {
		reported[e.Field] = true
	}
	for _, e := range domain.ValidateQuestions(req.ToParams("").Questions) {
		if !reported[e.Field] {
			reported[e.Field] = true
			errs = append(errs, e)
		}
	}
	return errs
}

// ValidateSubmitResponseRequest validates the submit response request
func (v *Validator) ValidateSubmitResponseRequest(req *dto.SubmitResponseRequest) domain.ValidationErrors {
	errs := v.check(req)
	if req.Answer.IsZero() {
		errs = append(errs, domain.NewMissingFieldError("answer"))
	}
	return errs
}

// ValidateListQuery validates list query parameters
func (v *Validator) ValidateListQuery(q *dto.ListAssessmentsQuery) domain.ValidationErrors {
	return v.check(q)
}

func (v *Validator) check(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ValidationErrors{domain.NewValidationError("body", err.Error())}
	}

	out := make(domain.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, toDomainError(fe))
	}
	return out
}

// fieldPath drops the root struct name from the namespace,
// e.g. "CreateAssessmentRequest.questions[0].type" -> "questions[0].type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func toDomainError(fe validator.FieldError) domain.ValidationError {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "oneof":
		e := domain.NewInvalidFormatError(field, fe.Value())
		e.Message = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
		return e
	case "min", "gte":
		e := domain.NewValidationError(field, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		e.Code = domain.CodeOutOfRange
		e.Value = fe.Value()
		return e
	case "max", "lte":
		e := domain.NewValidationError(field, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		e.Code = domain.CodeOutOfRange
		e.Value = fe.Value()
		return e
	case "options_required":
		return domain.NewValidationError(field, fmt.Sprintf("%s questions require at least 2 options", fe.Param()))
	case "options_forbidden":
		return domain.NewValidationError(field, fmt.Sprintf("%s questions must not define options", fe.Param()))
	}
	return domain.NewValidationError(field, fmt.Sprintf("%s failed on %s", field, fe.Tag()))
}
