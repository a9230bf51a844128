package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/models"
)

// EventKind identifies what changed in a session.
type EventKind string

const (
	EventFriendAdded      EventKind = "friend_added"
	EventSelectionChanged EventKind = "selection_changed"
	EventSplitApplied     EventKind = "split_applied"
	EventSubmitSkipped    EventKind = "submit_skipped"
)

// Form names used in EventSubmitSkipped events.
const (
	FormAddFriend = "add_friend"
	FormSplitBill = "split_bill"
)

// Event describes one change to a session.
type Event struct {
	Kind EventKind

	// Friend is the friend added, selected or adjusted. Zero for
	// deselection and skipped submits.
	Friend models.Friend

	// Settlement is set for EventSplitApplied.
	Settlement *models.Settlement

	// Form is set for EventSubmitSkipped.
	Form string

	// State is the state after the change.
	State State
}

// ErrPersist wraps failures of the session's Persister. The change that
// failed to persist is not applied.
var ErrPersist = errors.New("persist ledger change")

// Persister writes ledger changes through to durable storage. It is called
// while the session is locked, before the change becomes visible, so writes
// happen in the same order as the changes.
type Persister interface {
	// CreateFriend stores a newly added friend.
	CreateFriend(ctx context.Context, friend *models.Friend) error

	// RecordSplit stores a friend's new balance together with the
	// settlement that produced it.
	RecordSplit(ctx context.Context, friendID string, balance float64, settlement *models.Settlement) error
}

// Observer receives session events. Observers run synchronously while the
// session is locked and must not call back into it.
type Observer func(Event)

// View is a copy of everything a client renders.
type View struct {
	State State

	// AddFriendForm is nil while the form is closed.
	AddFriendForm *AddFriendForm

	// SplitForm is nil while no friend is selected.
	SplitForm *calculator.SplitForm
}

// AddResult is the outcome of submitting the add-friend form.
type AddResult struct {
	Added  bool
	Friend models.Friend
	View   View
}

// SplitResult is the outcome of submitting the split form.
type SplitResult struct {
	Applied    bool
	Friend     models.Friend
	Settlement *models.Settlement
	View       View
}

// Session is the single owner of a ledger State and its open forms.
// All actions are serialized.
type Session struct {
	mu        sync.Mutex
	state     State
	addForm   *AddFriendForm
	splitForm *calculator.SplitForm
	observers []Observer
	persister Persister

	newID        func() string
	now          func() time.Time
	defaultImage string
}

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator overrides the UUID generator used for new friends and settlements.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithClock overrides the time source for settlement timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Session) { s.now = fn }
}

// WithPersister writes every added friend and applied split through p.
func WithPersister(p Persister) Option {
	return func(s *Session) { s.persister = p }
}

// WithDefaultImage sets the image the add-friend form starts with.
func WithDefaultImage(image string) Option {
	return func(s *Session) { s.defaultImage = image }
}

// NewSession creates a session over the given friends with nothing selected.
func NewSession(friends []models.Friend, opts ...Option) *Session {
	s := &Session{
		state:        State{Friends: append([]models.Friend(nil), friends...)},
		newID:        uuid.NewString,
		now:          time.Now,
		defaultImage: models.DefaultImage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer for all subsequent events.
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Session) publish(ev Event) {
	ev.State = s.state
	for _, o := range s.observers {
		o(ev)
	}
}

// Snapshot returns the current view.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	v := View{State: s.state}
	v.State.Friends = append([]models.Friend(nil), s.state.Friends...)
	if s.addForm != nil {
		form := *s.addForm
		v.AddFriendForm = &form
	}
	if s.splitForm != nil {
		form := *s.splitForm
		v.SplitForm = &form
	}
	return v
}

// ToggleAddFriend opens a fresh add-friend form, or closes the open one.
func (s *Session) ToggleAddFriend() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = ToggleAddFriend(s.state)
	if s.state.AddingFriend {
		s.addForm = NewAddFriendForm(s.defaultImage)
	} else {
		s.addForm = nil
	}
	return s.view()
}

// UpdateAddFriendForm sets the non-nil fields of the open add-friend form.
func (s *Session) UpdateAddFriendForm(name, image *string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addForm == nil {
		return s.view(), ErrFormClosed
	}
	if name != nil {
		s.addForm.SetName(*name)
	}
	if image != nil {
		s.addForm.SetImage(*image)
	}
	return s.view(), nil
}

// SubmitAddFriend adds the friend described by the open form and closes
// it. Missing fields skip the submit without error. If the persister fails
// the ledger and the form are left as they were.
func (s *Session) SubmitAddFriend(ctx context.Context) (AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addForm == nil {
		return AddResult{View: s.view()}, ErrFormClosed
	}

	before := *s.addForm
	friend, ok := s.addForm.Submit(s.newID)
	if !ok {
		slog.Debug("Add friend skipped: missing fields")
		s.publish(Event{Kind: EventSubmitSkipped, Form: FormAddFriend})
		return AddResult{View: s.view()}, nil
	}

	if s.persister != nil {
		if err := s.persister.CreateFriend(ctx, &friend); err != nil {
			*s.addForm = before
			return AddResult{View: s.view()}, fmt.Errorf("%w: friend %s: %w", ErrPersist, friend.ID, err)
		}
	}

	s.state = AddFriend(s.state, friend)
	s.addForm = nil
	s.publish(Event{Kind: EventFriendAdded, Friend: friend})

	return AddResult{Added: true, Friend: friend, View: s.view()}, nil
}

// ToggleSelect selects friendID, or deselects it if already selected.
// The split form is recreated for every new selection and the add-friend
// form is closed.
func (s *Session) ToggleSelect(friendID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	friend, found := s.state.Friend(friendID)
	if !found && s.state.SelectedID != friendID {
		return s.view(), ErrNotFound
	}

	s.state = ToggleSelect(s.state, friendID)
	s.addForm = nil
	if s.state.SelectedID == "" {
		s.splitForm = nil
		friend = models.Friend{}
	} else {
		s.splitForm = calculator.NewSplitForm(s.state.SelectedID)
	}
	s.publish(Event{Kind: EventSelectionChanged, Friend: friend})

	return s.view(), nil
}

// UpdateSplitForm sets the non-nil fields of the split form, bill first.
// accepted is false when userExpense exceeded the bill and was rejected.
func (s *Session) UpdateSplitForm(bill, userExpense *float64, payer *models.Payer) (view View, accepted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.splitForm == nil {
		return s.view(), false, ErrNoSelection
	}

	accepted = true
	if bill != nil {
		s.splitForm.SetBill(*bill)
	}
	if userExpense != nil {
		accepted = s.splitForm.SetUserExpense(*userExpense)
	}
	if payer != nil {
		s.splitForm.SetPayer(*payer)
	}
	return s.view(), accepted, nil
}

// SubmitSplit applies the split form to the selected friend's balance and
// clears the selection. A missing bill or user expense skips the submit
// without error. If the persister fails, balance, selection and form are
// left as they were so the submit can be retried.
func (s *Session) SubmitSplit(ctx context.Context) (SplitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := s.splitForm
	if form == nil {
		return SplitResult{View: s.view()}, ErrNoSelection
	}

	delta, ok := form.Delta()
	if !ok {
		slog.Debug("Split skipped: missing bill or expense", "friend_id", form.FriendID)
		s.publish(Event{Kind: EventSubmitSkipped, Form: FormSplitBill})
		return SplitResult{View: s.view()}, nil
	}

	state, err := ApplySplit(s.state, form.FriendID, delta)
	if err != nil {
		s.state = state
		s.splitForm = nil
		slog.Warn("Split target missing, selection cleared", "friend_id", form.FriendID, "error", err)
		return SplitResult{View: s.view()}, err
	}

	friend, _ := state.Friend(form.FriendID)
	settlement := form.Settlement(delta)
	settlement.ID = s.newID()
	settlement.CreatedAt = s.now().Unix()

	if s.persister != nil {
		if err := s.persister.RecordSplit(ctx, friend.ID, friend.Balance, &settlement); err != nil {
			return SplitResult{View: s.view()}, fmt.Errorf("%w: split for friend %s: %w", ErrPersist, friend.ID, err)
		}
	}

	s.state = state
	s.splitForm = nil
	s.publish(Event{Kind: EventSplitApplied, Friend: friend, Settlement: &settlement})

	return SplitResult{Applied: true, Friend: friend, Settlement: &settlement, View: s.view()}, nil
}
