package models

import "fmt"

// Payer identifies who paid the bill being split.
type Payer string

const (
	// PayerYou means the user paid the bill.
	PayerYou Payer = "you"
	// PayerFriend means the selected friend paid the bill.
	PayerFriend Payer = "friend"
)

// ParsePayer converts a raw payer value, rejecting anything but "you" or "friend".
func ParsePayer(s string) (Payer, error) {
	switch Payer(s) {
	case PayerYou, PayerFriend:
		return Payer(s), nil
	}
	return "", fmt.Errorf("invalid payer %q: must be %q or %q", s, PayerYou, PayerFriend)
}

// Settlement represents one bill split applied to a friend's balance.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// FriendID is the friend whose balance was adjusted.
	FriendID string

	// Bill is the total bill value.
	Bill float64

	// UserExpense is the user's share of the bill.
	UserExpense float64

	// FriendExpense is the friend's share (Bill - UserExpense).
	FriendExpense float64

	// Payer is who paid the bill.
	Payer Payer

	// Delta is the signed amount added to the friend's balance.
	Delta float64

	// CreatedAt is the Unix timestamp when the split was applied.
	CreatedAt int64
}
