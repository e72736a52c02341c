package quiz

import (
	"strings"
	"time"
)

// Question is immutable once fetched. CorrectOption holds a label ("A", "B", ...).
type Question struct {
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"answer"`
}

// Labels returns the option labels of q in display order.
func (q Question) Labels() []string {
	labels := make([]string, len(q.Options))
	for i := range q.Options {
		labels[i] = OptionLabel(i)
	}
	return labels
}

func (q Question) HasOption(label string) bool {
	i, ok := OptionIndex(label)
	return ok && i < len(q.Options)
}

type AnswerRecord struct {
	Question       Question `json:"question"`
	SelectedOption string   `json:"selected"`
	CorrectOption  string   `json:"correct"`
	IsCorrect      bool     `json:"isCorrect"`
	PointsAwarded  float64  `json:"score"`
}

type AnswerRequest struct {
	UserName string
	Category string
	Question string
	Options  []string
	Selected string
	Correct  string
}

type AnswerResult struct {
	IsCorrect bool
	Score     float64
}

type SessionSummary struct {
	UserName   string
	Category   string
	Questions  []Question
	Results    []AnswerRecord
	TotalScore float64
}

// Acknowledgement is whatever body the backend returns after saving a session.
type Acknowledgement map[string]interface{}

// Outcome describes a finished session, whether or not the backend kept it.
type Outcome struct {
	SessionID    string
	Summary      SessionSummary
	Persisted    bool
	PersistError string
	StartedAt    time.Time
	CompletedAt  time.Time
}

type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var categories = []Category{
	{Key: "moda", Label: "Moda"},
	{Key: "historia", Label: "Historia"},
	{Key: "ciencia", Label: "Ciencia"},
	{Key: "deporte", Label: "Deporte"},
	{Key: "arte", Label: "Arte"},
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func LookupCategory(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// OptionLabel maps an option position to its letter: 0 -> "A", 1 -> "B".
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// OptionIndex is the inverse of OptionLabel. Lowercase letters are accepted.
func OptionIndex(label string) (int, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) != 1 || label[0] < 'A' || label[0] > 'Z' {
		return -1, false
	}
	return int(label[0] - 'A'), true
}
