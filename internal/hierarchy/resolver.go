package hierarchy

import (
	"fmt"
	"log/slog"
)

// Directory answers who reports to whom. The user store implements it by
// querying the manager_id column.
type Directory interface {
	TeamIDs(managerID int64) ([]int64, error)
}

// Resolver maps a manager to the employees they may approve claims for.
type Resolver struct {
	dir    Directory
	logger *slog.Logger
}

func NewResolver(dir Directory, logger *slog.Logger) *Resolver {
	return &Resolver{
		dir:    dir,
		logger: logger,
	}
}

// TeamOf returns the identifiers of the manager's direct reports. A manager
// with no reports gets an empty slice, not an error.
func (r *Resolver) TeamOf(managerID int64) ([]int64, error) {
	ids, err := r.dir.TeamIDs(managerID)
	if err != nil {
		r.logger.Error("failed to resolve team", "error", err, "manager_id", managerID)
		return nil, fmt.Errorf("failed to resolve team for manager %d: %w", managerID, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// Manages reports whether employeeID is a direct report of managerID.
func (r *Resolver) Manages(managerID, employeeID int64) (bool, error) {
	team, err := r.TeamOf(managerID)
	if err != nil {
		return false, err
	}
	for _, id := range team {
		if id == employeeID {
			return true, nil
		}
	}
	return false, nil
}
