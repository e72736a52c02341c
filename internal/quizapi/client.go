package quizapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/saulo-duarte/quiz-categorias/internal/config"
	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

const (
	questionPath = "/question"
	scorePath    = "/score"
	sessionPath  = "/save-quiz-session"
)

var ErrUnexpectedFormat = quiz.ErrUnexpectedFormat

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Code, e.Text)
}

// Client talks to the quiz backend. It holds no state besides the base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ quiz.Service = (*Client)(nil)

// NewClient builds a client for baseURL. A zero timeout means no client-side limit.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) FetchQuestions(ctx context.Context, category string) ([]quiz.Question, error) {
	log := config.WithContext(ctx)

	body, err := c.post(ctx, questionPath, questionRequest{Category: category})
	if err != nil {
		return nil, err
	}

	var resp questionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.WithError(err).Error("Error al decodificar la respuesta de preguntas")
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	if len(resp.Questions) > 0 && resp.Questions[0] == '[' {
		var list []wireQuestion
		if err := json.Unmarshal(resp.Questions, &list); err != nil {
			log.WithError(err).Error("Error al decodificar la lista de preguntas")
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		questions := make([]quiz.Question, len(list))
		for i, q := range list {
			questions[i] = q.toDomain()
		}
		log.Debugf("Recibidas %d preguntas", len(questions))
		return questions, nil
	}

	if resp.Question != "" {
		log.Debug("Recibida una sola pregunta")
		return []quiz.Question{resp.wireQuestion.toDomain()}, nil
	}

	log.Warnf("Respuesta de preguntas inesperada: %s", truncate(body, 200))
	return nil, ErrUnexpectedFormat
}

func (c *Client) SubmitAnswer(ctx context.Context, req quiz.AnswerRequest) (quiz.AnswerResult, error) {
	log := config.WithContext(ctx)

	body, err := c.post(ctx, scorePath, scoreRequest{
		User:     req.UserName,
		Category: req.Category,
		Question: req.Question,
		Options:  req.Options,
		Selected: req.Selected,
		Correct:  req.Correct,
	})
	if err != nil {
		return quiz.AnswerResult{}, err
	}

	var resp scoreResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.WithError(err).Error("Error al decodificar la respuesta de puntaje")
		return quiz.AnswerResult{}, fmt.Errorf("decode score: %w", err)
	}
	if resp.IsCorrect == nil && resp.Score == nil {
		log.Warnf("Respuesta de puntaje inesperada: %s", truncate(body, 200))
		return quiz.AnswerResult{}, ErrUnexpectedFormat
	}

	var result quiz.AnswerResult
	if resp.IsCorrect != nil {
		result.IsCorrect = *resp.IsCorrect
	}
	if resp.Score != nil {
		result.Score = *resp.Score
	}
	return result, nil
}

func (c *Client) PersistSession(ctx context.Context, summary quiz.SessionSummary) (quiz.Acknowledgement, error) {
	log := config.WithContext(ctx)

	body, err := c.post(ctx, sessionPath, newSessionRequest(summary))
	if err != nil {
		return nil, err
	}

	ack := quiz.Acknowledgement{}
	if len(bytes.TrimSpace(body)) == 0 {
		return ack, nil
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		log.WithError(err).Error("Error al decodificar la confirmación de la sesión")
		return nil, fmt.Errorf("decode session acknowledgement: %w", err)
	}
	if m, ok := raw.(map[string]interface{}); ok {
		return quiz.Acknowledgement(m), nil
	}
	ack["response"] = raw
	return ack, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	log := config.WithContext(ctx).WithField("path", path)

	reqJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Error("Falló la petición al backend del quiz")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Error("Error al leer la respuesta del backend del quiz")
		return nil, fmt.Errorf("read response: %w", err)
	}

	log = log.WithField("status", resp.StatusCode).WithField("elapsed", time.Since(start).String())
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("El backend del quiz rechazó la petición: %s", truncate(body, 200))
		return nil, &StatusError{Code: resp.StatusCode, Text: statusText(resp)}
	}
	log.Debug("El backend del quiz respondió")
	return body, nil
}

// statusText returns the reason phrase sent by the backend, falling back to the
// standard text when the status line has none.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// IsStatus reports whether err carries the given backend status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
