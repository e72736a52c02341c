package quizapi

import (
	"encoding/json"

	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

type questionRequest struct {
	Category string `json:"category"`
}

type wireQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// questionResponse covers both the list shape and the older single-question shape,
// where the question fields sit at the top level of the body.
type questionResponse struct {
	Questions json.RawMessage `json:"questions"`
	wireQuestion
}

type scoreRequest struct {
	User     string   `json:"user"`
	Category string   `json:"category"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
	Correct  string   `json:"correct"`
}

type scoreResponse struct {
	IsCorrect *bool    `json:"isCorrect"`
	Score     *float64 `json:"score"`
}

type resultEntry struct {
	Question  string  `json:"question"`
	Selected  string  `json:"selected"`
	Correct   string  `json:"correct"`
	IsCorrect bool    `json:"isCorrect"`
	Score     float64 `json:"score"`
}

type sessionRequest struct {
	User       string         `json:"user"`
	Category   string         `json:"category"`
	Questions  []wireQuestion `json:"questions"`
	Results    []resultEntry  `json:"results"`
	TotalScore float64        `json:"totalScore"`
}

func (w wireQuestion) toDomain() quiz.Question {
	return quiz.Question{
		Prompt:        w.Question,
		Options:       w.Options,
		CorrectOption: w.Answer,
	}
}

func fromDomain(q quiz.Question) wireQuestion {
	return wireQuestion{
		Question: q.Prompt,
		Options:  q.Options,
		Answer:   q.CorrectOption,
	}
}

func newSessionRequest(s quiz.SessionSummary) sessionRequest {
	req := sessionRequest{
		User:       s.UserName,
		Category:   s.Category,
		Questions:  make([]wireQuestion, len(s.Questions)),
		Results:    make([]resultEntry, len(s.Results)),
		TotalScore: s.TotalScore,
	}
	for i, q := range s.Questions {
		req.Questions[i] = fromDomain(q)
	}
	for i, r := range s.Results {
		req.Results[i] = resultEntry{
			Question:  r.Question.Prompt,
			Selected:  r.SelectedOption,
			Correct:   r.CorrectOption,
			IsCorrect: r.IsCorrect,
			Score:     r.PointsAwarded,
		}
	}
	return req
}
