package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
)

var (
	errPartNameRequired = apperr.NewValidation("Part name is required.")
	errNegativePrice    = apperr.NewValidation("Part price cannot be negative.")
)

// PartUpdate carries the edited fields. A nil field keeps its stored value.
type PartUpdate struct {
	Name  *string
	Size  *string
	Price *decimal.Decimal
}

type Parts struct {
	repo PartStore
}

func NewParts(repo PartStore) *Parts {
	return &Parts{repo: repo}
}

// List returns every part by name.
func (s *Parts) List(ctx context.Context) ([]models.Part, error) {
	parts, err := s.repo.ListParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return parts, nil
}

func (s *Parts) Get(ctx context.Context, partID int64) (*models.Part, error) {
	part, err := s.repo.GetPart(ctx, partID)
	if err != nil {
		return nil, notFound(err, "Part not found.")
	}
	return part, nil
}

func (s *Parts) Create(ctx context.Context, name, size string, price decimal.Decimal) (*models.Part, error) {
	part := &models.Part{
		Name:  strings.TrimSpace(name),
		Size:  strings.TrimSpace(size),
		Price: price,
	}
	if err := validatePart(part); err != nil {
		return nil, err
	}

	id, err := s.repo.CreatePart(ctx, part)
	if err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	part.ID = id
	slog.Info("Part created", "part_id", id, "name", part.Name)
	return part, nil
}

func (s *Parts) Update(ctx context.Context, partID int64, upd PartUpdate) (*models.Part, error) {
	part, err := s.Get(ctx, partID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		part.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Size != nil {
		part.Size = strings.TrimSpace(*upd.Size)
	}
	if upd.Price != nil {
		part.Price = *upd.Price
	}
	if err := validatePart(part); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePart(ctx, part); err != nil {
		return nil, notFound(err, "Part not found.")
	}
	slog.Info("Part updated", "part_id", part.ID)
	return part, nil
}

func validatePart(p *models.Part) error {
	if p.Name == "" {
		return errPartNameRequired
	}
	if p.Price.IsNegative() {
		return errNegativePrice
	}
	return nil
}
