package sqlite

import (
	"context"
	"fmt"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

// SaveMembers replaces the persisted roster with the given list. The
// replace is transactional so a failure never leaves a partial roster.
func (s *SQLiteStore) SaveMembers(ctx context.Context, members []models.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM members"); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}

	for _, member := range members {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO members (id, name, makers_mark, pos) VALUES (?, ?, ?, ?)",
			member.ID, member.Name, member.MakersMark, member.Pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListMembers returns the persisted roster ordered by pos.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, makers_mark, pos FROM members ORDER BY pos, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.MakersMark, &m.Pos); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
