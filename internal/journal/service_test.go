package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quiz-categorias/internal/journal"
	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

func newJournal(t *testing.T) journal.JournalService {
	t.Helper()
	db, err := journal.Open(journal.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return journal.NewJournalContainer(db).Service
}

func outcome(user, category string, correct []bool, persisted bool, completed time.Time) quiz.Outcome {
	var (
		questions []quiz.Question
		results   []quiz.AnswerRecord
		total     float64
	)
	for i, ok := range correct {
		q := quiz.Question{Prompt: "p" + quiz.OptionLabel(i), Options: []string{"x", "y"}, CorrectOption: "A"}
		questions = append(questions, q)
		rec := quiz.AnswerRecord{Question: q, SelectedOption: "B", CorrectOption: "A"}
		if ok {
			rec.SelectedOption = "A"
			rec.IsCorrect = true
			rec.PointsAwarded = 1
			total++
		}
		results = append(results, rec)
	}
	o := quiz.Outcome{
		SessionID: uuid.NewString(),
		Summary: quiz.SessionSummary{
			UserName:   user,
			Category:   category,
			Questions:  questions,
			Results:    results,
			TotalScore: total,
		},
		Persisted:   persisted,
		StartedAt:   completed.Add(-time.Minute),
		CompletedAt: completed,
	}
	if !persisted {
		o.PersistError = "Error 500: Internal Server Error"
	}
	return o
}

func TestOpen(t *testing.T) {
	_, err := journal.Open("mongo", "whatever")
	require.Error(t, err)
}

func TestRecordAndGet(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()
	now := time.Now().UTC()

	o := outcome("ana", "ciencia", []bool{true, false}, false, now)
	require.NoError(t, svc.Record(ctx, o))

	rec, err := svc.Get(ctx, o.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "ana", rec.UserName)
	assert.Equal(t, "ciencia", rec.Category)
	assert.Equal(t, 2, rec.TotalQuestions)
	assert.Equal(t, 1, rec.CorrectCount)
	assert.Equal(t, 1.0, rec.TotalScore)
	assert.False(t, rec.Persisted)
	assert.Equal(t, "Error 500: Internal Server Error", rec.PersistError)

	answers, err := rec.AnswerRecords()
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.True(t, answers[0].IsCorrect)
	assert.Equal(t, "B", answers[1].SelectedOption)

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, journal.ErrSessionNotFound)
	})
}

func TestList(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Record(ctx, outcome("ana", "arte", []bool{true}, true, base)))
	require.NoError(t, svc.Record(ctx, outcome("luis", "moda", []bool{false}, true, base.Add(time.Hour))))
	require.NoError(t, svc.Record(ctx, outcome("ana", "moda", []bool{true, true}, true, base.Add(2*time.Hour))))

	t.Run("NewestFirst", func(t *testing.T) {
		records, err := svc.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "moda", records[0].Category)
		assert.Equal(t, "ana", records[0].UserName)
		assert.Equal(t, "arte", records[2].Category)
	})

	t.Run("Limit", func(t *testing.T) {
		records, err := svc.List(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("ByUser", func(t *testing.T) {
		records, err := svc.ListByUser(ctx, "ana", 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, r := range records {
			assert.Equal(t, "ana", r.UserName)
		}
	})
}

func TestStats(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, svc.Record(ctx, outcome("ana", "moda", []bool{true, false}, true, now)))
	require.NoError(t, svc.Record(ctx, outcome("ana", "moda", []bool{true}, false, now)))
	require.NoError(t, svc.Record(ctx, outcome("luis", "arte", []bool{false, false, true}, true, now)))

	stats, err := svc.Stats(ctx, "")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "arte", stats[0].Category)
	assert.Equal(t, 1, stats[0].Sessions)
	assert.Equal(t, 3, stats[0].Answered)
	assert.Equal(t, 1, stats[0].Correct)

	assert.Equal(t, "moda", stats[1].Category)
	assert.Equal(t, 2, stats[1].Sessions)
	assert.Equal(t, 3, stats[1].Answered)
	assert.Equal(t, 2, stats[1].Correct)
	assert.Equal(t, 2.0, stats[1].TotalScore)
	assert.InDelta(t, 2.0/3.0, stats[1].Accuracy(), 0.0001)

	t.Run("ByUser", func(t *testing.T) {
		stats, err := svc.Stats(ctx, "luis")
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, "arte", stats[0].Category)
	})
}

func TestRecordFromController(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()

	qs := []quiz.Question{{Prompt: "¿Mona Lisa?", Options: []string{"Da Vinci", "Goya"}, CorrectOption: "A"}}
	c := quiz.NewController(stubService{questions: qs}, quiz.WithRecorder(svc))
	require.NoError(t, c.SelectCategory(ctx, "arte"))
	require.NoError(t, c.SelectOption("A"))
	require.NoError(t, c.SubmitCurrentAnswer(ctx))

	rec, err := svc.Get(ctx, c.Snapshot().SessionID)
	require.NoError(t, err)
	assert.True(t, rec.Persisted)
	assert.Equal(t, 1, rec.CorrectCount)
	assert.False(t, rec.CompletedAt.IsZero())
}

type stubService struct {
	questions []quiz.Question
}

func (s stubService) FetchQuestions(context.Context, string) ([]quiz.Question, error) {
	return s.questions, nil
}

func (s stubService) SubmitAnswer(_ context.Context, req quiz.AnswerRequest) (quiz.AnswerResult, error) {
	if req.Selected == req.Correct {
		return quiz.AnswerResult{IsCorrect: true, Score: 1}, nil
	}
	return quiz.AnswerResult{}, nil
}

func (s stubService) PersistSession(context.Context, quiz.SessionSummary) (quiz.Acknowledgement, error) {
	return quiz.Acknowledgement{"ok": true}, nil
}
