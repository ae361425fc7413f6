package domain

import "math"

// Grade is the letter grade derived from a percentage.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// gradeLadder is evaluated top-down; the first threshold met wins.
var gradeLadder = []struct {
	min   int
	grade Grade
}{
	{90, GradeAPlus},
	{80, GradeA},
	{70, GradeBPlus},
	{60, GradeB},
	{50, GradeCPlus},
	{40, GradeC},
	{30, GradeD},
}

// GradeFor maps a 0-100 percentage onto the grade ladder.
func GradeFor(percentage int) Grade {
	for _, step := range gradeLadder {
		if percentage >= step.min {
			return step.grade
		}
	}
	return GradeF
}

// likertSpread is the distance that drops credit to zero on a 5-point scale.
const likertSpread = 4.0

type questionScorer func(correct, answer Answer) float64

var questionScorers = map[QuestionType]questionScorer{
	QuestionMultipleChoice: scoreExact,
	QuestionBoolean:        scoreExact,
	QuestionLikertScale:    scoreLikert,
	QuestionRanking:        scoreRanking,
	// text answers are never graded automatically
}

func scoreExact(correct, answer Answer) float64 {
	if answer.Equal(correct) {
		return 1
	}
	return 0
}

func scoreLikert(correct, answer Answer) float64 {
	if correct.Kind != AnswerNumber || answer.Kind != AnswerNumber {
		return 0
	}
	return math.Max(0, 1-math.Abs(answer.Number-correct.Number)/likertSpread)
}

func scoreRanking(correct, answer Answer) float64 {
	if correct.Kind != AnswerList || answer.Kind != AnswerList || len(correct.List) == 0 {
		return 0
	}
	overlap := min(len(answer.List), len(correct.List))
	matches := 0
	for i := 0; i < overlap; i++ {
		if answer.List[i] == correct.List[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(correct.List))
}

// ScoreQuestion returns the unweighted 0-1 credit for answer. Questions
// without a correct answer, text questions and shape mismatches score 0.
func ScoreQuestion(q Question, answer Answer) float64 {
	if !q.HasCorrectAnswer() {
		return 0
	}
	scorer, ok := questionScorers[q.Type]
	if !ok {
		return 0
	}
	return scorer(*q.CorrectAnswer, answer)
}

// Score computes weighted totals over answered questions only; unanswered
// questions add to neither the score nor the maximum. It does not mutate a.
func (a *Assessment) Score() Results {
	var total, maxScore float64
	for _, q := range a.Questions {
		resp, ok := a.Response(q.ID)
		if !ok {
			continue
		}
		total += ScoreQuestion(q, resp.Answer) * q.Weight
		maxScore += q.Weight
	}

	percentage := 0
	if maxScore > 0 {
		percentage = int(math.Round(total / maxScore * 100))
	}
	return Results{
		TotalScore: total,
		MaxScore:   maxScore,
		Percentage: percentage,
		Grade:      GradeFor(percentage),
	}
}

// CalculateScore writes the computed totals into the results of a completed
// assessment. Other result fields are left untouched.
func (a *Assessment) CalculateScore() (*Results, error) {
	if a.Status != StatusCompleted {
		return nil, NewInvalidStateTransitionError("score", a.Status)
	}
	score := a.Score()
	if a.Results == nil {
		a.Results = &Results{}
	}
	a.Results.TotalScore = score.TotalScore
	a.Results.MaxScore = score.MaxScore
	a.Results.Percentage = score.Percentage
	a.Results.Grade = score.Grade
	return a.Results, nil
}
