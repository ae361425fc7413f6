package domain

import "fmt"

// QuestionType declares how a question is answered and scored.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionLikertScale    QuestionType = "likert_scale"
	QuestionText           QuestionType = "text"
	QuestionRanking        QuestionType = "ranking"
	QuestionBoolean        QuestionType = "boolean"
)

// DefaultQuestionWeight applies when a question does not declare a weight.
const DefaultQuestionWeight = 1.0

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionLikertScale, QuestionText, QuestionRanking, QuestionBoolean:
		return true
	}
	return false
}

// RequiresOptions reports whether the type needs a fixed choice set.
// Types that don't need one must not carry options.
func (t QuestionType) RequiresOptions() bool {
	switch t {
	case QuestionMultipleChoice, QuestionLikertScale, QuestionRanking:
		return true
	}
	return false
}

// acceptsCorrectAnswer reports whether a correct-answer reference of kind k
// fits the type. Multiple choice takes the option text or an option index.
func (t QuestionType) acceptsCorrectAnswer(k AnswerKind) bool {
	switch t {
	case QuestionMultipleChoice:
		return k == AnswerText || k == AnswerNumber
	case QuestionText:
		return k == AnswerText
	case QuestionLikertScale:
		return k == AnswerNumber
	case QuestionBoolean:
		return k == AnswerBool
	case QuestionRanking:
		return k == AnswerList
	}
	return false
}

// Question is an immutable prompt belonging to one assessment.
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer *Answer      `json:"correct_answer,omitempty"`
	Weight        float64      `json:"weight"`
	Category      string       `json:"category,omitempty"`
	Subcategory   string       `json:"subcategory,omitempty"`
}

// HasCorrectAnswer reports whether the question can be graded automatically.
func (q Question) HasCorrectAnswer() bool {
	return q.CorrectAnswer != nil && !q.CorrectAnswer.IsZero()
}

// Validate checks the question shape and returns every violation, with field
// names prefixed by prefix (e.g. "questions[2]").
func (q Question) Validate(prefix string) ValidationErrors {
	var errs ValidationErrors
	field := func(name string) string {
		if prefix == "" {
			return name
		}
		return prefix + "." + name
	}

	if q.ID == "" {
		errs = append(errs, NewMissingFieldError(field("id")))
	}
	if q.Prompt == "" {
		errs = append(errs, NewMissingFieldError(field("question")))
	}
	if !q.Type.Valid() {
		errs = append(errs, NewInvalidFormatError(field("type"), string(q.Type)))
		// option and answer rules depend on a known type
		return errs
	}
	if q.Weight < 0 || q.Weight > 1 {
		errs = append(errs, NewOutOfRangeError(field("weight"), q.Weight, 0, 1))
	}

	if q.Type.RequiresOptions() {
		if len(q.Options) < 2 {
			errs = append(errs, NewValidationError(field("options"),
				fmt.Sprintf("%s questions require at least 2 options", q.Type)))
		}
		for i, opt := range q.Options {
			if opt == "" {
				errs = append(errs, NewMissingFieldError(fmt.Sprintf("%s[%d]", field("options"), i)))
			}
		}
	} else if len(q.Options) > 0 {
		errs = append(errs, NewValidationError(field("options"),
			fmt.Sprintf("%s questions must not define options", q.Type)))
	}

	if q.HasCorrectAnswer() {
		if !q.Type.acceptsCorrectAnswer(q.CorrectAnswer.Kind) {
			errs = append(errs, NewValidationError(field("correct_answer"),
				fmt.Sprintf("%s questions do not take a %s correct answer", q.Type, q.CorrectAnswer.Kind)))
		} else if q.Type == QuestionRanking && len(q.Options) > 0 && len(q.CorrectAnswer.List) != len(q.Options) {
			errs = append(errs, NewValidationError(field("correct_answer"),
				fmt.Sprintf("ranking correct answer must order all %d options, got %d", len(q.Options), len(q.CorrectAnswer.List))))
		}
	}
	return errs
}
