// Package storage provides abstractions for ledger data storage.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/budgetwise/internal/models"
)

// ErrNotFound is wrapped by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for friend and settlement storage.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateFriend persists a new friend. The ID must already be set.
	CreateFriend(ctx context.Context, friend *models.Friend) error

	// GetFriend retrieves a friend by ID.
	// Returns an error wrapping ErrNotFound if the friend does not exist.
	GetFriend(ctx context.Context, friendID string) (*models.Friend, error)

	// ListFriends returns all friends in insertion order.
	ListFriends(ctx context.Context) ([]models.Friend, error)

	// UpdateFriendBalance overwrites a friend's balance.
	// Returns an error wrapping ErrNotFound if the friend does not exist.
	UpdateFriendBalance(ctx context.Context, friendID string, balance float64) error

	// CreateSettlement records an applied split.
	// ID and CreatedAt are generated when empty.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// RecordSplit sets a friend's balance and records the settlement that
	// produced it in one transaction.
	// Returns an error wrapping ErrNotFound if the friend does not exist.
	RecordSplit(ctx context.Context, friendID string, balance float64, settlement *models.Settlement) error

	// ListSettlementsByFriend returns a friend's settlements, newest first.
	ListSettlementsByFriend(ctx context.Context, friendID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}

// SeedIfEmpty inserts friends when the store has none and returns the
// resulting friend list.
func SeedIfEmpty(ctx context.Context, store Store, friends []models.Friend) ([]models.Friend, error) {
	existing, err := store.ListFriends(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	for i := range friends {
		if err := store.CreateFriend(ctx, &friends[i]); err != nil {
			return nil, fmt.Errorf("failed to seed friend %s: %w", friends[i].Name, err)
		}
	}
	return store.ListFriends(ctx)
}
