package employee

import (
	"context"
	"maps"
	"slices"
)

// Dashboard summarises the directory for the landing page.
type Dashboard struct {
	TotalEmployees   int              `json:"total_employees"`
	Departments      []string         `json:"departments"`
	Positions        []string         `json:"positions"`
	DepartmentCounts map[string]int64 `json:"department_counts"`
}

// GetDashboard builds every figure from one scan, so the totals agree with
// each other.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dash := &Dashboard{DepartmentCounts: make(map[string]int64)}
	positions := make(map[string]struct{})

	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		all, err := s.repo.GetAll(txCtx)
		if err != nil {
			return err
		}
		dash.TotalEmployees = len(all)
		for _, emp := range all {
			dash.DepartmentCounts[emp.Department]++
			positions[emp.Position] = struct{}{}
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to build dashboard", err)
		return nil, err
	}

	dash.Departments = slices.Sorted(maps.Keys(dash.DepartmentCounts))
	dash.Positions = slices.Sorted(maps.Keys(positions))
	return dash, nil
}
