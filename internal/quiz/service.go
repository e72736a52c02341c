package quiz

import (
	"context"
	"errors"
)

// ErrUnexpectedFormat is returned by a Service when the backend answers with a body
// that has none of the expected fields.
var ErrUnexpectedFormat = errors.New("unexpected response format")

// Service is the remote backend that owns question selection, scoring and storage.
type Service interface {
	FetchQuestions(ctx context.Context, category string) ([]Question, error)
	SubmitAnswer(ctx context.Context, req AnswerRequest) (AnswerResult, error)
	PersistSession(ctx context.Context, summary SessionSummary) (Acknowledgement, error)
}

// Recorder keeps a local copy of finished sessions.
type Recorder interface {
	Record(ctx context.Context, outcome Outcome) error
}
