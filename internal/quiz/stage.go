package quiz

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseAnswering Phase = "answering"
	PhaseScoring   Phase = "scoring"
	PhaseCompleted Phase = "completed"
)

// Stage is one of Idle, Loading, Answering, Scoring or Completed. Each variant only
// carries the fields that are valid in that phase.
type Stage interface {
	Phase() Phase
}

// Idle waits for a category to be chosen.
type Idle struct{}

// Loading holds the category whose questions are being fetched.
type Loading struct {
	Category string
}

// Answering walks the fetched questions; Selected is the pending choice for Index.
type Answering struct {
	Category  string
	Questions []Question
	Index     int
	Selected  string
	History   []AnswerRecord
}

// Scoring is transient: the last answer is recorded and the session is being saved.
type Scoring struct {
	Category   string
	Questions  []Question
	History    []AnswerRecord
	TotalScore float64
}

// Completed holds the final result; Persisted reports whether the backend saved it.
type Completed struct {
	Category   string
	Questions  []Question
	History    []AnswerRecord
	TotalScore float64
	Persisted  bool
}

func (Idle) Phase() Phase      { return PhaseIdle }
func (Loading) Phase() Phase   { return PhaseLoading }
func (Answering) Phase() Phase { return PhaseAnswering }
func (Scoring) Phase() Phase   { return PhaseScoring }
func (Completed) Phase() Phase { return PhaseCompleted }

func (a Answering) Current() Question {
	return a.Questions[a.Index]
}

func (a Answering) IsLast() bool {
	return a.Index+1 >= len(a.Questions)
}

func sumPoints(history []AnswerRecord) float64 {
	var total float64
	for _, r := range history {
		total += r.PointsAwarded
	}
	return total
}
