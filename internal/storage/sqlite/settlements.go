package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/budgetwise/internal/models"
	"github.com/mmynk/budgetwise/internal/storage"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, friend_id, bill, user_expense, friend_expense, payer, delta, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.FriendID, settlement.Bill, settlement.UserExpense,
		settlement.FriendExpense, string(settlement.Payer), settlement.Delta, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// RecordSplit updates a friend's balance and inserts the settlement in one transaction.
func (s *SQLiteStore) RecordSplit(ctx context.Context, friendID string, balance float64, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE friends SET balance = ? WHERE id = ?",
		balance, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("friend %s: %w", friendID, storage.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, friend_id, bill, user_expense, friend_expense, payer, delta, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, friendID, settlement.Bill, settlement.UserExpense,
		settlement.FriendExpense, string(settlement.Payer), settlement.Delta, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListSettlementsByFriend retrieves all settlements for a friend, newest first.
func (s *SQLiteStore) ListSettlementsByFriend(ctx context.Context, friendID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, friend_id, bill, user_expense, friend_expense, payer, delta, created_at
		 FROM settlements WHERE friend_id = ? ORDER BY created_at DESC, rowid DESC`,
		friendID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by friend: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var payer string

		if err := rows.Scan(&settlement.ID, &settlement.FriendID, &settlement.Bill, &settlement.UserExpense,
			&settlement.FriendExpense, &payer, &settlement.Delta, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.Payer = models.Payer(payer)

		settlements = append(settlements, settlement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}
