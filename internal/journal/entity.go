package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

// SessionRecord is the local copy of a finished quiz session.
type SessionRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserName       string         `gorm:"type:text;not null;index" json:"user_name"`
	Category       string         `gorm:"type:text;not null;index" json:"category"`
	TotalQuestions int            `gorm:"not null;default:0" json:"total_questions"`
	CorrectCount   int            `gorm:"not null;default:0" json:"correct_count"`
	TotalScore     float64        `gorm:"not null;default:0" json:"total_score"`
	Persisted      bool           `gorm:"not null;default:false" json:"persisted"`
	PersistError   string         `gorm:"type:text" json:"persist_error,omitempty"`
	Questions      datatypes.JSON `gorm:"not null" json:"questions"`
	Results        datatypes.JSON `gorm:"not null" json:"results"`
	StartedAt      time.Time      `json:"started_at"`
	CompletedAt    time.Time      `gorm:"index" json:"completed_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (SessionRecord) TableName() string {
	return "quiz_sessions"
}

// CategoryStats aggregates the journal per category.
type CategoryStats struct {
	Category   string  `json:"category"`
	Sessions   int     `json:"sessions"`
	Answered   int     `json:"answered"`
	Correct    int     `json:"correct"`
	TotalScore float64 `json:"total_score"`
}

func (s CategoryStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

func newRecord(o quiz.Outcome) (*SessionRecord, error) {
	id, err := uuid.Parse(o.SessionID)
	if err != nil {
		id = uuid.New()
	}

	questions, err := json.Marshal(o.Summary.Questions)
	if err != nil {
		return nil, err
	}
	results, err := json.Marshal(o.Summary.Results)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, r := range o.Summary.Results {
		if r.IsCorrect {
			correct++
		}
	}

	return &SessionRecord{
		ID:             id,
		UserName:       o.Summary.UserName,
		Category:       o.Summary.Category,
		TotalQuestions: len(o.Summary.Questions),
		CorrectCount:   correct,
		TotalScore:     o.Summary.TotalScore,
		Persisted:      o.Persisted,
		PersistError:   o.PersistError,
		Questions:      datatypes.JSON(questions),
		Results:        datatypes.JSON(results),
		StartedAt:      o.StartedAt,
		CompletedAt:    o.CompletedAt,
	}, nil
}

// AnswerRecords decodes the stored per-question results.
func (r *SessionRecord) AnswerRecords() ([]quiz.AnswerRecord, error) {
	var out []quiz.AnswerRecord
	if len(r.Results) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.Results, &out); err != nil {
		return nil, err
	}
	return out, nil
}
