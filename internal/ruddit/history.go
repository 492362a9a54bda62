package ruddit

import "ruddit-go/internal/database/sqlc"

// GetHistory returns the most recent operations, newest first.
func (s *Service) GetHistory(limit int) ([]*sqlc.Operation, error) {
	return s.database.ListOperations(limit)
}
