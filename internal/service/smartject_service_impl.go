package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/repository"
)

type smartjectService struct {
	smartjects repository.SmartjectRepo
}

func NewSmartjectService(smartjects repository.SmartjectRepo) SmartjectService {
	return &smartjectService{smartjects: smartjects}
}

func (s *smartjectService) Create(ctx context.Context, sj *domain.Smartject) error {
	if err := sj.ValidateRef(); err != nil {
		return err
	}
	if sj.Title == "" {
		return fmt.Errorf("listing title is required")
	}
	if sj.ID == "" {
		sj.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sj.CreatedAt = now
	sj.UpdatedAt = now
	if sj.Status == "" {
		sj.Status = domain.SmartjectOpen
	}
	return s.smartjects.Create(ctx, sj)
}

func (s *smartjectService) GetByID(ctx context.Context, id string) (*domain.Smartject, error) {
	return s.smartjects.GetByID(ctx, id)
}

func (s *smartjectService) List(ctx context.Context, includeArchived bool) ([]*domain.Smartject, error) {
	return s.smartjects.List(ctx, includeArchived)
}

func (s *smartjectService) Update(ctx context.Context, sj *domain.Smartject) error {
	sj.UpdatedAt = time.Now().UTC()
	return s.smartjects.Update(ctx, sj)
}

func (s *smartjectService) Archive(ctx context.Context, id string) error {
	return s.smartjects.Archive(ctx, id)
}

func (s *smartjectService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		sj, err := s.smartjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sj.Status != domain.SmartjectArchived {
			return fmt.Errorf("listing must be archived before deletion (use --force to override)")
		}
	}
	return s.smartjects.Delete(ctx, id)
}
