package service

import (
	"context"
	"fmt"

	app_errors "reasonchat/backend/internal/errors"
	"reasonchat/backend/internal/llm"
)

// ModelService exposes the models visible to the configured API key.
type ModelService struct {
	llm llm.Provider
}

// NewModelService creates a new ModelService.
func NewModelService(provider llm.Provider) *ModelService {
	return &ModelService{llm: provider}
}

// List returns the models the hosted API reports.
func (s *ModelService) List(ctx context.Context) ([]llm.ModelInfo, error) {
	models, err := s.llm.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not list models: %v", app_errors.ErrUpstream, err)
	}
	return models, nil
}
