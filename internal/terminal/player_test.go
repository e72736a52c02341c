package terminal_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quiz-categorias/internal/journal"
	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
	"github.com/saulo-duarte/quiz-categorias/internal/terminal"
)

type backend struct {
	submitFailures int
	categories     []string
	users          []string
}

func (b *backend) FetchQuestions(_ context.Context, category string) ([]quiz.Question, error) {
	b.categories = append(b.categories, category)
	return []quiz.Question{
		{Prompt: "¿Año de la Revolución Francesa?", Options: []string{"1789", "1810", "1914"}, CorrectOption: "A"},
		{Prompt: "¿Primer emperador romano?", Options: []string{"César", "Augusto"}, CorrectOption: "B"},
	}, nil
}

func (b *backend) SubmitAnswer(_ context.Context, req quiz.AnswerRequest) (quiz.AnswerResult, error) {
	b.users = append(b.users, req.UserName)
	if b.submitFailures > 0 {
		b.submitFailures--
		return quiz.AnswerResult{}, errors.New("Error 504: Gateway Timeout")
	}
	if req.Selected == req.Correct {
		return quiz.AnswerResult{IsCorrect: true, Score: 1}, nil
	}
	return quiz.AnswerResult{}, nil
}

func (b *backend) PersistSession(context.Context, quiz.SessionSummary) (quiz.Acknowledgement, error) {
	return quiz.Acknowledgement{}, nil
}

func play(t *testing.T, b *backend, input string) (string, *quiz.Controller) {
	t.Helper()
	c := quiz.NewController(b)
	var out bytes.Buffer
	p := terminal.NewPlayer(c, strings.NewReader(input), &out, terminal.WithColor(false))
	require.NoError(t, p.Run(context.Background()))
	return out.String(), c
}

func TestPlayerRun(t *testing.T) {
	t.Run("FullSession", func(t *testing.T) {
		b := &backend{}
		out, c := play(t, b, "elena\n2\nA\nA\nn\n")

		assert.Equal(t, []string{"historia"}, b.categories)
		assert.Equal(t, []string{"elena", "elena"}, b.users)
		assert.Contains(t, out, "Pregunta 1 de 2")
		assert.Contains(t, out, "A) 1789")
		assert.Contains(t, out, "¡Correcto!")
		assert.Contains(t, out, "Incorrecto.")
		assert.Contains(t, out, "Respuesta correcta: B")
		assert.Contains(t, out, "Puntaje: 1 de 2 (1 correctas)")
		assert.Contains(t, out, "Sesión guardada.")
		assert.Equal(t, quiz.PhaseIdle, c.Snapshot().Phase)
		assert.Equal(t, "elena", c.Snapshot().UserName)
	})

	t.Run("CategoryByKey", func(t *testing.T) {
		b := &backend{}
		play(t, b, "\narte\nA\nB\nn\n")
		assert.Equal(t, []string{"arte"}, b.categories)
		assert.Equal(t, []string{"anonimo", "anonimo"}, b.users)
	})

	t.Run("InvalidInputs", func(t *testing.T) {
		b := &backend{}
		out, _ := play(t, b, "\n9\ncocina\n1\nZ\nA\nB\nn\n")

		assert.Equal(t, []string{"moda"}, b.categories)
		assert.Equal(t, 2, strings.Count(out, "Categoría no válida."))
		assert.Contains(t, out, "Opción no válida, usa A/B/C.")
	})

	t.Run("RetryAfterSubmitFailure", func(t *testing.T) {
		b := &backend{submitFailures: 1}
		out, _ := play(t, b, "\n3\nA\n\nB\nn\n")

		assert.Contains(t, out, "Error: Error enviando respuesta: Error 504: Gateway Timeout")
		assert.Len(t, b.users, 3)
		assert.Contains(t, out, "Puntaje: 2 de 2 (2 correctas)")
	})

	t.Run("PlayAgain", func(t *testing.T) {
		b := &backend{}
		play(t, b, "\n1\nA\nB\ns\n5\nB\nA\nn\n")
		assert.Equal(t, []string{"moda", "arte"}, b.categories)
	})

	t.Run("Quit", func(t *testing.T) {
		b := &backend{}
		out, _ := play(t, b, "\nq\n")
		assert.Empty(t, b.categories)
		assert.Contains(t, out, "Elige una categoría:")
	})

	t.Run("InputEnds", func(t *testing.T) {
		b := &backend{}
		_, c := play(t, b, "\n4\n")
		assert.Equal(t, quiz.PhaseAnswering, c.Snapshot().Phase)
	})
}

func TestPrintHistory(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, terminal.PrintHistory(&out, nil, nil))
		assert.Equal(t, "No hay sesiones registradas.\n", out.String())
	})

	t.Run("Table", func(t *testing.T) {
		sessions := []*journal.SessionRecord{{
			ID:             uuid.New(),
			UserName:       "ana",
			Category:       "ciencia",
			TotalQuestions: 4,
			CorrectCount:   3,
			TotalScore:     3,
			Persisted:      false,
			CompletedAt:    time.Date(2025, 5, 4, 10, 30, 0, 0, time.Local),
		}}
		stats := []journal.CategoryStats{{Category: "ciencia", Sessions: 1, Answered: 4, Correct: 3, TotalScore: 3}}

		var out bytes.Buffer
		require.NoError(t, terminal.PrintHistory(&out, sessions, stats))
		s := out.String()
		assert.Contains(t, s, "2025-05-04 10:30")
		assert.Contains(t, s, "3/4")
		assert.Contains(t, s, "no")
		assert.Contains(t, s, "75%")
	})
}
