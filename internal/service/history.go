package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-wizard/backend/internal/model"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// DefaultHistoryLimit bounds List when the caller passes no limit.
const DefaultHistoryLimit = 20

// HistoryService keeps generated full recipes per session.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record stores fr for sessionID.
func (s *HistoryService) Record(ctx context.Context, sessionID string, fr *recipe.FullRecipe) (*model.Recipe, error) {
	row := model.NewRecipe(sessionID, fr)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to record recipe history: %w", err)
	}
	return row, nil
}

// List returns the session's recipes, newest first.
func (s *HistoryService) List(ctx context.Context, sessionID string, limit int) ([]model.Recipe, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var rows []model.Recipe
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe history: %w", err)
	}
	return rows, nil
}
