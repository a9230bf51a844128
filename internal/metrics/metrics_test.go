package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/budgetwise/internal/ledger"
	"github.com/mmynk/budgetwise/internal/models"
)

func TestObserveSessionEvents(t *testing.T) {
	m := New()

	s := ledger.NewSession([]models.Friend{{ID: "1", Name: "Clark", Balance: -7}})
	s.Subscribe(m.Observe)

	// Skipped add
	s.ToggleAddFriend()
	s.SubmitAddFriend(context.Background())

	// Added
	name := "Sam"
	s.UpdateAddFriendForm(&name, nil)
	s.SubmitAddFriend(context.Background())

	// Applied split: Clark -7 + 60 = 53
	bill, mine := 100.0, 40.0
	s.ToggleSelect("1")
	s.UpdateSplitForm(&bill, &mine, nil)
	s.SubmitSplit(context.Background())

	if got := testutil.ToFloat64(m.friendsAdded); got != 1 {
		t.Errorf("friends_added_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.submitsSkipped.WithLabelValues(ledger.FormAddFriend)); got != 1 {
		t.Errorf("submits_skipped_total{form=add_friend} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.splitsApplied.WithLabelValues("you")); got != 1 {
		t.Errorf("splits_applied_total{payer=you} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.owed); got != 53 {
		t.Errorf("balance_owed = %v, want 53", got)
	}
	if got := testutil.ToFloat64(m.owing); got != 0 {
		t.Errorf("balance_owing = %v, want 0", got)
	}
}

func TestSetBalances(t *testing.T) {
	m := New()
	m.SetBalances(models.InitialFriends())

	if got := testutil.ToFloat64(m.owed); got != 20 {
		t.Errorf("balance_owed = %v, want 20", got)
	}
	if got := testutil.ToFloat64(m.owing); got != 7 {
		t.Errorf("balance_owing = %v, want 7", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRPC("/budgetwise.v1.LedgerService/GetState", "ok", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`budgetwise_rpc_requests_total{code="ok",procedure="/budgetwise.v1.LedgerService/GetState"} 1`,
		"budgetwise_rpc_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
