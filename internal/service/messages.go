package service

import (
	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/ledger"
	"github.com/mmynk/budgetwise/internal/models"
)

// Friend is the wire form of a friend with its rendered standing.
type Friend struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Balance     float64 `json:"balance"`
	Standing    string  `json:"standing"`
	Description string  `json:"description"`
}

// AddFriendForm is the wire form of the open add-friend form.
type AddFriendForm struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// SplitForm is the wire form of the split form for the selected friend.
type SplitForm struct {
	FriendID      string  `json:"friend_id"`
	Bill          float64 `json:"bill"`
	UserExpense   float64 `json:"user_expense"`
	FriendExpense float64 `json:"friend_expense"`
	Payer         string  `json:"payer"`
}

// Summary totals balances across friends.
type Summary struct {
	Owed    float64 `json:"owed"`
	Owing   float64 `json:"owing"`
	Net     float64 `json:"net"`
	Settled int     `json:"settled"`
}

// State is everything a client needs to render the ledger.
type State struct {
	Friends          []*Friend      `json:"friends"`
	SelectedFriendID string         `json:"selected_friend_id,omitempty"`
	AddingFriend     bool           `json:"adding_friend"`
	AddFriendForm    *AddFriendForm `json:"add_friend_form,omitempty"`
	SplitForm        *SplitForm     `json:"split_form,omitempty"`
	Summary          Summary        `json:"summary"`
}

// Settlement is the wire form of an applied split.
type Settlement struct {
	ID            string  `json:"id"`
	FriendID      string  `json:"friend_id"`
	Bill          float64 `json:"bill"`
	UserExpense   float64 `json:"user_expense"`
	FriendExpense float64 `json:"friend_expense"`
	Payer         string  `json:"payer"`
	Delta         float64 `json:"delta"`
	CreatedAt     int64   `json:"created_at"`
}

type GetStateRequest struct{}

type GetStateResponse struct {
	State *State `json:"state"`
}

type ToggleAddFriendRequest struct{}

type ToggleAddFriendResponse struct {
	State *State `json:"state"`
}

// UpdateAddFriendFormRequest sets the fields that are present.
type UpdateAddFriendFormRequest struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
}

type UpdateAddFriendFormResponse struct {
	State *State `json:"state"`
}

type SubmitAddFriendRequest struct{}

// SubmitAddFriendResponse reports Added=false when a field was missing.
type SubmitAddFriendResponse struct {
	Added  bool    `json:"added"`
	Friend *Friend `json:"friend,omitempty"`
	State  *State  `json:"state"`
}

type ToggleSelectRequest struct {
	FriendID string `json:"friend_id"`
}

type ToggleSelectResponse struct {
	State *State `json:"state"`
}

// UpdateSplitFormRequest sets the fields that are present, bill first.
type UpdateSplitFormRequest struct {
	Bill        *float64 `json:"bill,omitempty"`
	UserExpense *float64 `json:"user_expense,omitempty"`
	Payer       *string  `json:"payer,omitempty"`
}

// UpdateSplitFormResponse reports UserExpenseAccepted=false when the user
// expense exceeded the bill and the previous value was kept.
type UpdateSplitFormResponse struct {
	UserExpenseAccepted bool   `json:"user_expense_accepted"`
	State               *State `json:"state"`
}

type SubmitSplitRequest struct{}

// SubmitSplitResponse reports Applied=false when the bill or the user
// expense was missing.
type SubmitSplitResponse struct {
	Applied    bool        `json:"applied"`
	Friend     *Friend     `json:"friend,omitempty"`
	Settlement *Settlement `json:"settlement,omitempty"`
	State      *State      `json:"state"`
}

type ListSettlementsRequest struct {
	FriendID string `json:"friend_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

func toFriend(f models.Friend) *Friend {
	return &Friend{
		ID:          f.ID,
		Name:        f.Name,
		Image:       f.Image,
		Balance:     f.Balance,
		Standing:    string(f.Standing()),
		Description: f.Describe(),
	}
}

func toSettlement(s *models.Settlement) *Settlement {
	return &Settlement{
		ID:            s.ID,
		FriendID:      s.FriendID,
		Bill:          s.Bill,
		UserExpense:   s.UserExpense,
		FriendExpense: s.FriendExpense,
		Payer:         string(s.Payer),
		Delta:         s.Delta,
		CreatedAt:     s.CreatedAt,
	}
}

func toState(v ledger.View) *State {
	friends := make([]*Friend, len(v.State.Friends))
	for i, f := range v.State.Friends {
		friends[i] = toFriend(f)
	}

	summary := calculator.Summarize(v.State.Friends)
	state := &State{
		Friends:          friends,
		SelectedFriendID: v.State.SelectedID,
		AddingFriend:     v.State.AddingFriend,
		Summary: Summary{
			Owed:    summary.Owed,
			Owing:   summary.Owing,
			Net:     summary.Net,
			Settled: summary.Settled,
		},
	}
	if v.AddFriendForm != nil {
		state.AddFriendForm = &AddFriendForm{Name: v.AddFriendForm.Name, Image: v.AddFriendForm.Image}
	}
	if v.SplitForm != nil {
		state.SplitForm = &SplitForm{
			FriendID:      v.SplitForm.FriendID,
			Bill:          v.SplitForm.Bill,
			UserExpense:   v.SplitForm.UserExpense,
			FriendExpense: v.SplitForm.FriendExpense(),
			Payer:         string(v.SplitForm.Payer),
		}
	}
	return state
}
