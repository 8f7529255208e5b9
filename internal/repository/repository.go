package repository

import (
	"fmt"

	"github.com/yourusername/bet-insight/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Record         RecordRepository
	Recommendation RecommendationRepository
	Reconciliation ReconciliationRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Record:         NewPostgresRecordRepository(db),
		Recommendation: NewPostgresRecommendationRepository(db),
		Reconciliation: NewPostgresReconciliationRepository(db),
	}, nil
}
