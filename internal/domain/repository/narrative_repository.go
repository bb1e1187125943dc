package repository

import (
	"context"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
)

// NarrativeRepository defines the interface for the external text generator.
type NarrativeRepository interface {
	GenerateNarrative(ctx context.Context, prompt string, insight entity.InsightContext) (string, error)
}
