package store

import (
	"context"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
)

func (s *Store) CreatePart(ctx context.Context, p *models.Part) (int64, error) {
	query := `INSERT INTO parts (name, size, price) VALUES (?, ?, ?) RETURNING id`
	var id int64
	if err := s.get(ctx, &id, query, p.Name, p.Size, p.Price); err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (s *Store) GetPart(ctx context.Context, id int64) (*models.Part, error) {
	var p models.Part
	if err := s.get(ctx, &p, `SELECT id, name, size, price FROM parts WHERE id = ?`, id); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// GetPartByName returns the first part with the given name.
func (s *Store) GetPartByName(ctx context.Context, name string) (*models.Part, error) {
	var p models.Part
	query := `SELECT id, name, size, price FROM parts WHERE name = ? ORDER BY id LIMIT 1`
	if err := s.get(ctx, &p, query, name); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// ListParts returns every part ordered by name.
func (s *Store) ListParts(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	if err := s.selectAll(ctx, &parts, `SELECT id, name, size, price FROM parts ORDER BY name ASC, id ASC`); err != nil {
		return nil, translate(err)
	}
	return parts, nil
}

func (s *Store) UpdatePart(ctx context.Context, p *models.Part) error {
	query := `
		UPDATE parts
		SET name = ?, size = ?, price = ?
		WHERE id = ?
	`
	res, err := s.exec(ctx, query, p.Name, p.Size, p.Price, p.ID)
	if err != nil {
		return translate(err)
	}
	return expectRow(res)
}

func (s *Store) CountParts(ctx context.Context) (int, error) {
	var n int
	if err := s.get(ctx, &n, `SELECT COUNT(*) FROM parts`); err != nil {
		return 0, err
	}
	return n, nil
}
