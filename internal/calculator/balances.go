package calculator

import "github.com/mmynk/budgetwise/internal/models"

// Summary aggregates balances across all friends.
type Summary struct {
	Owed    float64 // Total friends owe the user
	Owing   float64 // Total the user owes friends (positive)
	Net     float64 // Owed - Owing
	Settled int     // Number of friends with a zero balance
}

// Summarize computes the overall balance summary for a friend list.
func Summarize(friends []models.Friend) Summary {
	var s Summary
	for _, f := range friends {
		switch {
		case f.Balance > 0:
			s.Owed += f.Balance
		case f.Balance < 0:
			s.Owing -= f.Balance
		default:
			s.Settled++
		}
	}
	s.Net = s.Owed - s.Owing
	return s
}
