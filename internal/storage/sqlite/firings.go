package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

// CreateFiring archives a priced firing, including its crew lists and
// every maker's pieces.
func (s *SQLiteStore) CreateFiring(ctx context.Context, firing *models.Firing) error {
	if firing.ID == "" {
		firing.ID = uuid.New().String()
	}
	if firing.CreatedAt == 0 {
		firing.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO firings (id, firing_date, firing_type, firing_temp, firing_cost, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		firing.ID, firing.Date, firing.Type, firing.Temp, firing.Cost, firing.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert firing: %w", err)
	}

	if err := insertCrew(ctx, tx, firing.ID, "packed", firing.PackedBy); err != nil {
		return err
	}
	if err := insertCrew(ctx, tx, firing.ID, "priced", firing.PricedBy); err != nil {
		return err
	}

	for i, maker := range firing.Work {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO work_entries
				(firing_id, member_id, member_name, makers_mark, member_pos, position, total, adjusted_total, prepaid)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			firing.ID, maker.ID, maker.Member.Name, maker.Member.MakersMark, maker.Member.Pos,
			i, maker.Total, maker.AdjustedTotal, boolToInt(maker.Prepaid),
		)
		if err != nil {
			return fmt.Errorf("failed to insert work entry: %w", err)
		}

		for idx, price := range maker.Pieces {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO pieces (firing_id, member_id, idx, price) VALUES (?, ?, ?, ?)",
				firing.ID, maker.ID, idx, price,
			)
			if err != nil {
				return fmt.Errorf("failed to insert piece: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertCrew(ctx context.Context, tx *sql.Tx, firingID, role string, crew []models.Member) error {
	for i, member := range crew {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO firing_crew
				(firing_id, member_id, role, position, member_name, makers_mark, member_pos)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			firingID, member.ID, role, i, member.Name, member.MakersMark, member.Pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s-by crew member: %w", role, err)
		}
	}
	return nil
}

// GetFiring retrieves an archived firing by ID, including crew lists,
// work entries, and pieces.
func (s *SQLiteStore) GetFiring(ctx context.Context, firingID string) (*models.Firing, error) {
	firing := &models.Firing{
		PackedBy: []models.Member{},
		PricedBy: []models.Member{},
		Work:     []models.Maker{},
	}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, firing_date, firing_type, firing_temp, firing_cost, created_at FROM firings WHERE id = ?",
		firingID,
	).Scan(&firing.ID, &firing.Date, &firing.Type, &firing.Temp, &firing.Cost, &firing.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("firing not found: %s", firingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get firing: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, role, member_name, makers_mark, member_pos FROM firing_crew WHERE firing_id = ? ORDER BY role, position",
		firingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get crew: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Member
		var role string
		if err := rows.Scan(&member.ID, &role, &member.Name, &member.MakersMark, &member.Pos); err != nil {
			return nil, fmt.Errorf("failed to scan crew member: %w", err)
		}
		switch role {
		case "packed":
			firing.PackedBy = append(firing.PackedBy, member)
		case "priced":
			firing.PricedBy = append(firing.PricedBy, member)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crew: %w", err)
	}

	workRows, err := s.db.QueryContext(ctx,
		`SELECT member_id, member_name, makers_mark, member_pos, total, adjusted_total, prepaid
		 FROM work_entries WHERE firing_id = ? ORDER BY position`,
		firingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get work entries: %w", err)
	}
	defer workRows.Close()

	for workRows.Next() {
		maker := models.Maker{Pieces: []float64{}}
		var prepaid int
		if err := workRows.Scan(&maker.ID, &maker.Member.Name, &maker.Member.MakersMark,
			&maker.Member.Pos, &maker.Total, &maker.AdjustedTotal, &prepaid); err != nil {
			return nil, fmt.Errorf("failed to scan work entry: %w", err)
		}
		maker.Member.ID = maker.ID
		maker.Prepaid = prepaid != 0

		pieceRows, err := s.db.QueryContext(ctx,
			"SELECT price FROM pieces WHERE firing_id = ? AND member_id = ? ORDER BY idx",
			firingID, maker.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get pieces: %w", err)
		}
		for pieceRows.Next() {
			var price float64
			if err := pieceRows.Scan(&price); err != nil {
				pieceRows.Close()
				return nil, fmt.Errorf("failed to scan piece: %w", err)
			}
			maker.Pieces = append(maker.Pieces, price)
		}
		pieceRows.Close()
		if err := pieceRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate pieces: %w", err)
		}

		firing.Work = append(firing.Work, maker)
	}
	if err := workRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work entries: %w", err)
	}

	return firing, nil
}

// ListFirings returns all archived firings, newest first. Crew, work, and
// piece details are loaded for each.
func (s *SQLiteStore) ListFirings(ctx context.Context) ([]*models.Firing, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM firings ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list firings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan firing id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate firings: %w", err)
	}

	firings := make([]*models.Firing, 0, len(ids))
	for _, id := range ids {
		firing, err := s.GetFiring(ctx, id)
		if err != nil {
			return nil, err
		}
		firings = append(firings, firing)
	}

	return firings, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
