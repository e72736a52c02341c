package journal

import "gorm.io/gorm"

type JournalContainer struct {
	Repo    SessionRepository
	Service JournalService
}

func NewJournalContainer(db *gorm.DB) *JournalContainer {
	repo := NewRepository(db)
	service := NewService(repo)

	return &JournalContainer{
		Repo:    repo,
		Service: service,
	}
}
