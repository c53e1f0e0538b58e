package catalog

import (
	"context"
	"fmt"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"

	log "github.com/sirupsen/logrus"
)

// ImportStats counts the outcome of an import.
type ImportStats struct {
	Created int
	Updated int
}

// Import validates the exercises and upserts them by external id. It stops
// at the first repository error; exercises written before it stay written.
func Import(ctx context.Context, repo repository.ExerciseRepository, exercises []domain.Exercise) (ImportStats, error) {
	var stats ImportStats
	if err := Validate(exercises); err != nil {
		return stats, err
	}
	for i := range exercises {
		ex := exercises[i]
		created, err := repo.UpsertByExternalID(ctx, &ex)
		if err != nil {
			return stats, fmt.Errorf("upsert %q: %w", ex.ExternalID, err)
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}
	log.WithFields(log.Fields{
		"created": stats.Created,
		"updated": stats.Updated,
	}).Info("exercise catalog imported")
	return stats, nil
}
