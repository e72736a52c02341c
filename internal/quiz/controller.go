package quiz

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quiz-categorias/internal/config"
)

var (
	ErrBusy            = errors.New("a request is already in progress")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoSelection     = errors.New("no option selected")
	ErrInvalidOption   = errors.New("option does not belong to the current question")
	ErrNotAnswering    = errors.New("no active question")
)

const (
	fetchErrorPrefix   = "Error obteniendo preguntas: "
	submitErrorPrefix  = "Error enviando respuesta: "
	persistErrorPrefix = "Error al guardar sesión: "
	formatErrorMessage = "Formato de respuesta inesperado del servidor"
)

type Option func(*Controller)

func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

func WithDefaultUser(name string) Option {
	return func(c *Controller) {
		if name = strings.TrimSpace(name); name != "" {
			c.defaultUser = name
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller owns the state of the single quiz session of the process. Mutating
// operations are rejected with ErrBusy while a backend request is in flight, so at
// most one request runs at a time. The lock is never held across a network call.
type Controller struct {
	service     Service
	recorder    Recorder
	defaultUser string
	now         func() time.Time

	mu        sync.RWMutex
	stage     Stage
	userName  string
	loading   bool
	lastError string
	sessionID string
	startedAt time.Time
}

func NewController(service Service, opts ...Option) *Controller {
	c := &Controller{
		service:     service,
		defaultUser: config.DefaultUser,
		now:         time.Now,
		stage:       Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.userName = c.defaultUser
	return c
}

func (c *Controller) SetUserName(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return ErrBusy
	}
	if name = strings.TrimSpace(name); name == "" {
		name = c.defaultUser
	}
	c.userName = name
	return nil
}

// SelectCategory starts a new session for key, discarding whatever the previous
// session held except the user name.
func (c *Controller) SelectCategory(ctx context.Context, key string) error {
	if _, ok := LookupCategory(key); !ok {
		return ErrUnknownCategory
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.loading = true
	c.lastError = ""
	c.sessionID = uuid.NewString()
	c.startedAt = c.now()
	c.stage = Loading{Category: key}
	ctx = detach(ctx, c.sessionID)
	c.mu.Unlock()

	defer c.release()

	log := config.WithContext(ctx).WithField("category", key)
	log.Info("Obteniendo preguntas")

	questions, err := c.service.FetchQuestions(ctx, key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil && len(questions) == 0 {
		err = ErrUnexpectedFormat
	}
	if err != nil {
		if errors.Is(err, ErrUnexpectedFormat) {
			c.lastError = formatErrorMessage
		} else {
			c.lastError = fetchErrorPrefix + err.Error()
		}
		log.WithError(err).Error("Error al obtener preguntas")
		c.stage = Idle{}
		return err
	}

	c.stage = Answering{
		Category:  key,
		Questions: questions,
	}
	log.WithField("questions", len(questions)).Info("Preguntas cargadas")
	return nil
}

func (c *Controller) SelectOption(label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return ErrBusy
	}
	ans, ok := c.stage.(Answering)
	if !ok {
		return ErrNotAnswering
	}
	label = strings.ToUpper(strings.TrimSpace(label))
	if !ans.Current().HasOption(label) {
		return ErrInvalidOption
	}
	ans.Selected = label
	c.stage = ans
	return nil
}

// SubmitCurrentAnswer sends the selected option for the active question. After the
// last question it computes the total and saves the session; a failed save is
// reported in LastError but keeps the computed result.
func (c *Controller) SubmitCurrentAnswer(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	ans, ok := c.stage.(Answering)
	if !ok {
		c.mu.Unlock()
		return ErrNotAnswering
	}
	if ans.Selected == "" {
		c.mu.Unlock()
		return ErrNoSelection
	}
	c.loading = true
	c.lastError = ""
	userName := c.userName
	sessionID := c.sessionID
	startedAt := c.startedAt
	c.mu.Unlock()

	defer c.release()

	ctx = detach(ctx, sessionID)
	log := config.WithContext(ctx).WithField("question_index", ans.Index)

	q := ans.Current()
	result, err := c.service.SubmitAnswer(ctx, AnswerRequest{
		UserName: userName,
		Category: ans.Category,
		Question: q.Prompt,
		Options:  q.Options,
		Selected: ans.Selected,
		Correct:  q.CorrectOption,
	})
	if err != nil {
		log.WithError(err).Error("Error al enviar la respuesta")
		c.mu.Lock()
		c.lastError = submitErrorPrefix + err.Error()
		c.mu.Unlock()
		return err
	}

	history := make([]AnswerRecord, len(ans.History), len(ans.History)+1)
	copy(history, ans.History)
	history = append(history, AnswerRecord{
		Question:       q,
		SelectedOption: ans.Selected,
		CorrectOption:  q.CorrectOption,
		IsCorrect:      result.IsCorrect,
		PointsAwarded:  result.Score,
	})
	log.WithField("correct", result.IsCorrect).Debug("Respuesta registrada")

	if !ans.IsLast() {
		c.mu.Lock()
		c.stage = Answering{
			Category:  ans.Category,
			Questions: ans.Questions,
			Index:     ans.Index + 1,
			History:   history,
		}
		c.mu.Unlock()
		return nil
	}

	total := sumPoints(history)
	c.mu.Lock()
	c.stage = Scoring{
		Category:   ans.Category,
		Questions:  ans.Questions,
		History:    history,
		TotalScore: total,
	}
	c.mu.Unlock()

	summary := SessionSummary{
		UserName:   userName,
		Category:   ans.Category,
		Questions:  ans.Questions,
		Results:    history,
		TotalScore: total,
	}
	outcome := Outcome{
		SessionID: sessionID,
		Summary:   summary,
		StartedAt: startedAt,
	}

	ack, perr := c.service.PersistSession(ctx, summary)
	if perr != nil {
		log.WithError(perr).Error("Error al guardar la sesión del quiz")
		outcome.PersistError = perr.Error()
	} else {
		log.WithField("ack", ack).Info("Sesión del quiz guardada")
		outcome.Persisted = true
	}

	c.mu.Lock()
	if perr != nil {
		c.lastError = persistErrorPrefix + perr.Error()
	}
	c.stage = Completed{
		Category:   ans.Category,
		Questions:  ans.Questions,
		History:    history,
		TotalScore: total,
		Persisted:  outcome.Persisted,
	}
	outcome.CompletedAt = c.now()
	c.mu.Unlock()

	c.record(ctx, outcome)
	return nil
}

func (c *Controller) ResetSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return ErrBusy
	}
	c.stage = Idle{}
	c.lastError = ""
	c.sessionID = ""
	c.startedAt = time.Time{}
	return nil
}

// detach keeps the request values of ctx but drops its cancellation: a backend
// call that has started always runs until it succeeds or fails.
func detach(ctx context.Context, sessionID string) context.Context {
	return context.WithoutCancel(config.ContextWithSession(ctx, sessionID))
}

func (c *Controller) release() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

func (c *Controller) record(ctx context.Context, outcome Outcome) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(ctx, outcome); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Error al registrar la sesión en el historial")
	}
}
