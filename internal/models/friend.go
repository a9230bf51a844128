package models

import (
	"fmt"
	"math"
)

// DefaultImage is the avatar URL the add-friend form starts with.
const DefaultImage = "https://i.pravatar.cc/48"

// Friend represents a person the user splits bills with.
type Friend struct {
	// ID is the unique identifier for the friend.
	// Generated once at creation and never reused.
	ID string

	// Name is the display name. Never empty.
	Name string

	// Image is the avatar URL or path. Reachability is not checked.
	Image string

	// Balance is the running total between the user and this friend.
	// Positive = friend owes the user, negative = user owes the friend.
	Balance float64
}

// Standing classifies a balance by who owes whom.
type Standing string

const (
	StandingOwesYou Standing = "owes_you"
	StandingYouOwe  Standing = "you_owe"
	StandingEven    Standing = "even"
)

// Standing reports who owes whom for this friend.
func (f Friend) Standing() Standing {
	switch {
	case f.Balance > 0:
		return StandingOwesYou
	case f.Balance < 0:
		return StandingYouOwe
	default:
		return StandingEven
	}
}

// Describe renders the balance as a sentence, e.g. "Sarah owes you 20".
func (f Friend) Describe() string {
	switch f.Standing() {
	case StandingOwesYou:
		return fmt.Sprintf("%s owes you %s", f.Name, formatAmount(f.Balance))
	case StandingYouOwe:
		return fmt.Sprintf("You owe %s %s", f.Name, formatAmount(math.Abs(f.Balance)))
	default:
		return fmt.Sprintf("You and %s are even", f.Name)
	}
}

// formatAmount drops the fraction for whole amounts.
func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// InitialFriends returns the friends a fresh ledger starts with.
func InitialFriends() []Friend {
	return []Friend{
		{ID: "118836", Name: "Clark", Image: DefaultImage + "?u=118836", Balance: -7},
		{ID: "933372", Name: "Sarah", Image: DefaultImage + "?u=933372", Balance: 20},
		{ID: "499476", Name: "Anthony", Image: DefaultImage + "?u=499476", Balance: 0},
	}
}
