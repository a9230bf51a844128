// Package calculator holds the bill-splitting arithmetic: the split form
// state machine and balance aggregation.
package calculator

import "github.com/mmynk/budgetwise/internal/models"

// SplitForm is the state of a bill being split with one friend.
// A zero Bill or UserExpense means the field has not been entered.
type SplitForm struct {
	FriendID    string
	Bill        float64
	UserExpense float64
	Payer       models.Payer
}

// NewSplitForm returns an empty form for the given friend, with the user as payer.
func NewSplitForm(friendID string) *SplitForm {
	return &SplitForm{FriendID: friendID, Payer: models.PayerYou}
}

// FriendExpense is the friend's share of the bill.
// It goes negative if Bill is lowered below UserExpense after the fact.
func (f *SplitForm) FriendExpense() float64 {
	return f.Bill - f.UserExpense
}

// SetBill sets the total bill value.
func (f *SplitForm) SetBill(v float64) {
	f.Bill = v
}

// SetUserExpense sets the user's share. Values above the current bill are
// rejected and the previous value is kept; the return value reports whether
// v was accepted.
func (f *SplitForm) SetUserExpense(v float64) bool {
	if v > f.Bill {
		return false
	}
	f.UserExpense = v
	return true
}

// SetPayer sets who paid the bill.
func (f *SplitForm) SetPayer(p models.Payer) {
	f.Payer = p
}

// Delta computes the signed amount to add to the friend's balance.
// ok is false when the bill or the user's expense is missing.
//
// When the user paid, the friend owes their share: +FriendExpense.
// When the friend paid, the balance drops by the user's share: -UserExpense.
func (f *SplitForm) Delta() (delta float64, ok bool) {
	if f.Bill == 0 || f.UserExpense == 0 {
		return 0, false
	}
	if f.Payer == models.PayerFriend {
		return -f.UserExpense, true
	}
	return f.FriendExpense(), true
}

// Settlement builds the settlement record for the current form values.
func (f *SplitForm) Settlement(delta float64) models.Settlement {
	return models.Settlement{
		FriendID:      f.FriendID,
		Bill:          f.Bill,
		UserExpense:   f.UserExpense,
		FriendExpense: f.FriendExpense(),
		Payer:         f.Payer,
		Delta:         delta,
	}
}
