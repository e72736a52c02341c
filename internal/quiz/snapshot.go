package quiz

import "strconv"

// Snapshot is a flat copy of the controller state for views and tests.
type Snapshot struct {
	SessionID      string         `json:"sessionId,omitempty"`
	Phase          Phase          `json:"phase"`
	Category       string         `json:"category,omitempty"`
	Questions      []Question     `json:"questions"`
	CurrentIndex   int            `json:"currentIndex"`
	SelectedOption string         `json:"selectedOption,omitempty"`
	AnswerHistory  []AnswerRecord `json:"answerHistory"`
	TotalScore     *float64       `json:"totalScore"`
	Persisted      bool           `json:"persisted"`
	UserName       string         `json:"userName"`
	Loading        bool           `json:"loading"`
	LastError      string         `json:"lastError,omitempty"`
}

type Summary struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	TotalScore float64 `json:"totalScore"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		SessionID:     c.sessionID,
		Phase:         c.stage.Phase(),
		Questions:     []Question{},
		AnswerHistory: []AnswerRecord{},
		UserName:      c.userName,
		Loading:       c.loading,
		LastError:     c.lastError,
	}

	switch st := c.stage.(type) {
	case Loading:
		s.Category = st.Category
	case Answering:
		s.Category = st.Category
		s.Questions = cloneQuestions(st.Questions)
		s.CurrentIndex = st.Index
		s.SelectedOption = st.Selected
		s.AnswerHistory = cloneHistory(st.History)
	case Scoring:
		s.fill(st.Category, st.Questions, st.History, st.TotalScore)
	case Completed:
		s.fill(st.Category, st.Questions, st.History, st.TotalScore)
		s.Persisted = st.Persisted
	}
	return s
}

func (s *Snapshot) fill(category string, questions []Question, history []AnswerRecord, total float64) {
	s.Category = category
	s.Questions = cloneQuestions(questions)
	s.CurrentIndex = len(questions) - 1
	s.AnswerHistory = cloneHistory(history)
	s.TotalScore = &total
}

// CurrentQuestion returns the question waiting for an answer, if any.
func (s Snapshot) CurrentQuestion() (Question, bool) {
	if s.Phase != PhaseAnswering || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

func (s Snapshot) IsLastQuestion() bool {
	return s.CurrentIndex+1 >= len(s.Questions)
}

func (s Snapshot) Finished() bool {
	return s.Phase == PhaseCompleted
}

func (s Snapshot) Summary() Summary {
	sum := Summary{Total: len(s.Questions)}
	for _, r := range s.AnswerHistory {
		if r.IsCorrect {
			sum.Correct++
		}
	}
	if s.TotalScore != nil {
		sum.TotalScore = *s.TotalScore
	} else {
		sum.TotalScore = sumPoints(s.AnswerHistory)
	}
	return sum
}

func cloneQuestions(in []Question) []Question {
	out := make([]Question, len(in))
	for i, q := range in {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

func cloneHistory(in []AnswerRecord) []AnswerRecord {
	out := make([]AnswerRecord, len(in))
	copy(out, in)
	return out
}

// FormatScore renders whole scores without decimals and anything else with two.
func FormatScore(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
