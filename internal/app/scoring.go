package app

import "ultimate-quiz-service/internal/domain"

// Score grades a submitted answer set positionally against the session's
// question list. Missing trailing answers grade as unanswered and incorrect;
// extra answers beyond the question count are ignored for grading but still
// count toward the accuracy denominator. Grading is deterministic: identical
// inputs produce identical results.
func Score(questions []domain.Question, answers []int) domain.Result {
	totalAnswered := len(answers)
	graded := answers
	if len(graded) > len(questions) {
		graded = graded[:len(questions)]
	}

	result := domain.Result{
		TotalQuestions: len(questions),
		PerQuestion:    make([]domain.QuestionResult, 0, len(questions)),
	}

	for i, question := range questions {
		answer := domain.Unanswered
		if i < len(graded) {
			answer = graded[i]
		}

		correct := answer == question.CorrectIndex
		points := 0
		if correct {
			points = domain.PointsFor(question.Difficulty)
			result.Score += points
			result.CorrectCount++
		}

		result.PerQuestion = append(result.PerQuestion, domain.QuestionResult{
			QuestionID:    i,
			UserAnswer:    answer,
			CorrectAnswer: question.CorrectIndex,
			IsCorrect:     correct,
			Points:        points,
			Explanation:   question.Explanation,
		})
	}

	if totalAnswered > 0 {
		result.Accuracy = float64(result.CorrectCount) / float64(totalAnswered) * 100
	}
	result.Grade = domain.GradeFor(result.Accuracy)
	return result
}
