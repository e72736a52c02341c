package container

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/quiz-categorias/internal/config"
	"github.com/saulo-duarte/quiz-categorias/internal/journal"
	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
	"github.com/saulo-duarte/quiz-categorias/internal/quizapi"
	"github.com/saulo-duarte/quiz-categorias/internal/web"
)

type Container struct {
	Settings         config.Settings
	DB               *gorm.DB
	JournalContainer *journal.JournalContainer
	QuizContainer    *quiz.QuizContainer
	WebHandler       *web.Handler
}

// New wires every component from settings. The journal is only opened when a
// driver is configured.
func New(settings config.Settings) (*Container, error) {
	c := &Container{Settings: settings}

	var recorder quiz.Recorder
	var history journal.JournalService
	if settings.JournalDriver != "" {
		db, err := journal.Open(settings.JournalDriver, settings.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.JournalContainer = journal.NewJournalContainer(db)
		history = c.JournalContainer.Service
		recorder = history
	}

	client := quizapi.NewClient(settings.APIURL, settings.APITimeout)
	c.QuizContainer = quiz.NewQuizContainer(client, recorder, settings.UserName)
	c.WebHandler = web.NewHandler(c.QuizContainer.Controller, history)

	return c, nil
}

func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
