package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/budgetwise/internal/models"
)

func TestSplitFormDelta(t *testing.T) {
	tests := []struct {
		name        string
		bill        float64
		userExpense float64
		payer       models.Payer
		wantOK      bool
		wantDelta   float64
	}{
		{
			name:        "user pays - friend owes their share",
			bill:        100,
			userExpense: 40,
			payer:       models.PayerYou,
			wantOK:      true,
			wantDelta:   60,
		},
		{
			name:        "friend pays - balance drops by user's share",
			bill:        50,
			userExpense: 10,
			payer:       models.PayerFriend,
			wantOK:      true,
			wantDelta:   -10,
		},
		{
			name:        "user covers the whole bill",
			bill:        30,
			userExpense: 30,
			payer:       models.PayerYou,
			wantOK:      true,
			wantDelta:   0,
		},
		{
			name:        "missing bill is skipped",
			userExpense: 0,
			payer:       models.PayerYou,
			wantOK:      false,
		},
		{
			name:   "missing user expense is skipped",
			bill:   20,
			payer:  models.PayerFriend,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewSplitForm("f1")
			form.SetBill(tt.bill)
			form.SetUserExpense(tt.userExpense)
			form.SetPayer(tt.payer)

			delta, ok := form.Delta()
			if ok != tt.wantOK {
				t.Fatalf("Delta() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(delta-tt.wantDelta) > 0.001 {
				t.Errorf("Delta() = %v, want %v", delta, tt.wantDelta)
			}
		})
	}
}

func TestSplitFormFriendExpense(t *testing.T) {
	pairs := [][2]float64{{100, 40}, {50, 10}, {10, 10}, {0.3, 0.1}, {75, 0}}
	for _, p := range pairs {
		form := NewSplitForm("f1")
		form.SetBill(p[0])
		if !form.SetUserExpense(p[1]) {
			t.Fatalf("SetUserExpense(%v) rejected with bill %v", p[1], p[0])
		}
		if got, want := form.FriendExpense(), p[0]-p[1]; got != want {
			t.Errorf("FriendExpense() = %v, want %v", got, want)
		}
	}
}

func TestSplitFormClampsUserExpense(t *testing.T) {
	form := NewSplitForm("f1")
	form.SetBill(50)
	if !form.SetUserExpense(20) {
		t.Fatal("SetUserExpense(20) should be accepted")
	}

	if form.SetUserExpense(80) {
		t.Error("SetUserExpense(80) should be rejected when bill is 50")
	}
	if form.UserExpense != 20 {
		t.Errorf("UserExpense = %v, want previous value 20", form.UserExpense)
	}

	// Lowering the bill afterwards is allowed and drives the friend's share negative.
	form.SetBill(10)
	if got := form.FriendExpense(); got != -10 {
		t.Errorf("FriendExpense() = %v, want -10", got)
	}
}

func TestNewSplitFormDefaults(t *testing.T) {
	form := NewSplitForm("abc")
	if form.FriendID != "abc" {
		t.Errorf("FriendID = %q, want abc", form.FriendID)
	}
	if form.Payer != models.PayerYou {
		t.Errorf("Payer = %q, want you", form.Payer)
	}
	if _, ok := form.Delta(); ok {
		t.Error("empty form should not produce a delta")
	}
}

func TestSplitFormSettlement(t *testing.T) {
	form := NewSplitForm("f2")
	form.SetBill(100)
	form.SetUserExpense(40)
	form.SetPayer(models.PayerFriend)

	s := form.Settlement(-40)
	if s.FriendID != "f2" || s.Bill != 100 || s.UserExpense != 40 || s.FriendExpense != 60 {
		t.Errorf("unexpected settlement %+v", s)
	}
	if s.Payer != models.PayerFriend || s.Delta != -40 {
		t.Errorf("unexpected payer/delta %+v", s)
	}
}
