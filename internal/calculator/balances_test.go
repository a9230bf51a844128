package calculator

import (
	"testing"

	"github.com/mmynk/budgetwise/internal/models"
)

func TestSummarize(t *testing.T) {
	got := Summarize(models.InitialFriends())

	// Clark -7, Sarah 20, Anthony 0
	if got.Owed != 20 {
		t.Errorf("Owed = %v, want 20", got.Owed)
	}
	if got.Owing != 7 {
		t.Errorf("Owing = %v, want 7", got.Owing)
	}
	if got.Net != 13 {
		t.Errorf("Net = %v, want 13", got.Net)
	}
	if got.Settled != 1 {
		t.Errorf("Settled = %d, want 1", got.Settled)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}
