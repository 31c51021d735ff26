package store

import (
	"context"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
)

type DashboardStats struct {
	TotalParts      int
	TotalOrders     int
	OrdersByStatus  map[models.Status]int
	PartOrderCounts []PartOrderCount
}

type PartOrderCount struct {
	PartID     int64  `db:"part_id"`
	Name       string `db:"name"`
	OrderCount int    `db:"order_count"`
}

func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[models.Status]int),
	}

	var err error
	if stats.TotalParts, err = s.CountParts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.CountOrders(ctx); err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status models.Status `db:"status"`
		Count  int           `db:"n"`
	}
	if err := s.selectAll(ctx, &byStatus, `SELECT status, COUNT(*) AS n FROM orders GROUP BY status`); err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.OrdersByStatus[row.Status] = row.Count
	}

	query := `
		SELECT p.id AS part_id, p.name, COUNT(o.id) AS order_count
		FROM parts p
		LEFT JOIN orders o ON p.id = o.part_id
		GROUP BY p.id, p.name
		ORDER BY order_count DESC, p.name ASC
	`
	if err := s.selectAll(ctx, &stats.PartOrderCounts, query); err != nil {
		return nil, err
	}

	return stats, nil
}
