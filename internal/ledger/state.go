// Package ledger owns the friend list, the selection and the forms that
// change them. State is a plain value; every update function returns a new
// State and leaves its input untouched.
package ledger

import (
	"errors"
	"slices"

	"github.com/mmynk/budgetwise/internal/models"
)

var (
	// ErrNotFound is returned when a friend ID is not in the collection.
	ErrNotFound = errors.New("friend not found")
	// ErrFormClosed is returned for add-friend form actions while the form is closed.
	ErrFormClosed = errors.New("add-friend form is not open")
	// ErrNoSelection is returned for split form actions while no friend is selected.
	ErrNoSelection = errors.New("no friend selected")
)

// State is the full ledger view state.
type State struct {
	// Friends in insertion order.
	Friends []models.Friend

	// SelectedID is the friend targeted for a bill split, empty when none.
	SelectedID string

	// AddingFriend is true while the add-friend form is open.
	AddingFriend bool
}

// Friend looks up a friend by ID.
func (s State) Friend(id string) (models.Friend, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Friend{}, false
	}
	return s.Friends[i], true
}

// Selected returns the selected friend, if any.
func (s State) Selected() (models.Friend, bool) {
	if s.SelectedID == "" {
		return models.Friend{}, false
	}
	return s.Friend(s.SelectedID)
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.Friends, func(f models.Friend) bool { return f.ID == id })
}

// AddFriend appends friend and closes the add-friend form.
// The selection is left as is.
func AddFriend(s State, friend models.Friend) State {
	s.Friends = append(slices.Clip(s.Friends), friend)
	s.AddingFriend = false
	return s
}

// ApplySplit adds delta to the balance of friendID and clears the selection.
// Every call applies again. If the friend is absent the selection is still
// cleared and ErrNotFound is returned.
func ApplySplit(s State, friendID string, delta float64) (State, error) {
	s.SelectedID = ""
	i := s.index(friendID)
	if i < 0 {
		return s, ErrNotFound
	}
	s.Friends = slices.Clone(s.Friends)
	s.Friends[i].Balance += delta
	return s, nil
}

// ToggleSelect deselects friendID if it is selected and selects it
// otherwise. Either way the add-friend form is closed.
func ToggleSelect(s State, friendID string) State {
	if s.SelectedID == friendID {
		s.SelectedID = ""
	} else {
		s.SelectedID = friendID
	}
	s.AddingFriend = false
	return s
}

// ToggleAddFriend opens or closes the add-friend form.
func ToggleAddFriend(s State) State {
	s.AddingFriend = !s.AddingFriend
	return s
}
