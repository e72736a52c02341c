package journal

import (
	"context"

	"github.com/saulo-duarte/quiz-categorias/internal/config"
	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

type JournalService interface {
	Record(ctx context.Context, outcome quiz.Outcome) error
	List(ctx context.Context, limit int) ([]*SessionRecord, error)
	ListByUser(ctx context.Context, userName string, limit int) ([]*SessionRecord, error)
	Get(ctx context.Context, id string) (*SessionRecord, error)
	Stats(ctx context.Context, userName string) ([]CategoryStats, error)
}

type journalService struct {
	repo SessionRepository
}

var _ quiz.Recorder = (*journalService)(nil)

func NewService(repo SessionRepository) JournalService {
	return &journalService{repo: repo}
}

func (s *journalService) Record(ctx context.Context, outcome quiz.Outcome) error {
	log := config.WithContext(ctx)

	rec, err := newRecord(outcome)
	if err != nil {
		log.WithError(err).Error("Error al codificar la sesión para el historial")
		return err
	}
	if err := s.repo.Create(rec); err != nil {
		log.WithError(err).Error("Error al guardar la sesión en el historial")
		return err
	}

	log.WithField("journal_id", rec.ID.String()).Info("Sesión guardada en el historial")
	return nil
}

func (s *journalService) List(ctx context.Context, limit int) ([]*SessionRecord, error) {
	log := config.WithContext(ctx)

	records, err := s.repo.List(limit)
	if err != nil {
		log.WithError(err).Error("Error al listar las sesiones del historial")
		return nil, err
	}
	return records, nil
}

func (s *journalService) ListByUser(ctx context.Context, userName string, limit int) ([]*SessionRecord, error) {
	log := config.WithContext(ctx).WithField("user", userName)

	records, err := s.repo.ListByUser(userName, limit)
	if err != nil {
		log.WithError(err).Error("Error al listar las sesiones del usuario")
		return nil, err
	}
	return records, nil
}

func (s *journalService) Get(ctx context.Context, id string) (*SessionRecord, error) {
	log := config.WithContext(ctx).WithField("journal_id", id)

	rec, err := s.repo.GetByID(id)
	if err != nil {
		log.WithError(err).Warn("Error al buscar la sesión en el historial")
		return nil, err
	}
	return rec, nil
}

func (s *journalService) Stats(ctx context.Context, userName string) ([]CategoryStats, error) {
	log := config.WithContext(ctx)

	stats, err := s.repo.StatsByCategory(userName)
	if err != nil {
		log.WithError(err).Error("Error al calcular las estadísticas del historial")
		return nil, err
	}
	return stats, nil
}
