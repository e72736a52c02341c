package journal

import (
	"errors"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(r *SessionRecord) error
	List(limit int) ([]*SessionRecord, error)
	ListByUser(userName string, limit int) ([]*SessionRecord, error)
	GetByID(id string) (*SessionRecord, error)
	StatsByCategory(userName string) ([]CategoryStats, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(rec *SessionRecord) error {
	return r.db.Create(rec).Error
}

func (r *sessionRepository) List(limit int) ([]*SessionRecord, error) {
	var records []*SessionRecord
	q := r.db.Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sessionRepository) ListByUser(userName string, limit int) ([]*SessionRecord, error) {
	var records []*SessionRecord
	q := r.db.Where("user_name = ?", userName).Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sessionRepository) GetByID(id string) (*SessionRecord, error) {
	var rec SessionRecord
	if err := r.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// StatsByCategory sums answered and correct questions per category. An empty
// userName aggregates every user.
func (r *sessionRepository) StatsByCategory(userName string) ([]CategoryStats, error) {
	var stats []CategoryStats
	q := r.db.Model(&SessionRecord{}).
		Select("category, COUNT(*) AS sessions, COALESCE(SUM(total_questions), 0) AS answered, COALESCE(SUM(correct_count), 0) AS correct, COALESCE(SUM(total_score), 0) AS total_score")
	if userName != "" {
		q = q.Where("user_name = ?", userName)
	}
	if err := q.Group("category").Order("category ASC").Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
