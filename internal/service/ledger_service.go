// Package service exposes the ledger session over Connect RPC.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetwise/internal/ledger"
	"github.com/mmynk/budgetwise/internal/models"
	"github.com/mmynk/budgetwise/internal/storage"
)

// LedgerServiceName is the fully-qualified name of the ledger service.
const LedgerServiceName = "budgetwise.v1.LedgerService"

// Procedure paths of the ledger service.
const (
	LedgerServiceGetStateProcedure            = "/" + LedgerServiceName + "/GetState"
	LedgerServiceToggleAddFriendProcedure     = "/" + LedgerServiceName + "/ToggleAddFriend"
	LedgerServiceUpdateAddFriendFormProcedure = "/" + LedgerServiceName + "/UpdateAddFriendForm"
	LedgerServiceSubmitAddFriendProcedure     = "/" + LedgerServiceName + "/SubmitAddFriend"
	LedgerServiceToggleSelectProcedure        = "/" + LedgerServiceName + "/ToggleSelect"
	LedgerServiceUpdateSplitFormProcedure     = "/" + LedgerServiceName + "/UpdateSplitForm"
	LedgerServiceSubmitSplitProcedure         = "/" + LedgerServiceName + "/SubmitSplit"
	LedgerServiceListSettlementsProcedure     = "/" + LedgerServiceName + "/ListSettlements"
)

// LedgerService implements the ledger RPCs on top of a session. The
// session writes changes through to storage; the store here serves
// settlement history.
type LedgerService struct {
	session *ledger.Session
	store   storage.Store
}

// NewLedgerService creates a new LedgerService. session should be created
// with ledger.WithPersister(store) so changes reach the store.
func NewLedgerService(session *ledger.Session, store storage.Store) *LedgerService {
	return &LedgerService{session: session, store: store}
}

// NewLedgerServiceHandler builds an HTTP handler for every ledger procedure.
// It returns the path prefix to mount the handler on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceGetStateProcedure,
		connect.NewUnaryHandler(LedgerServiceGetStateProcedure, svc.GetState, opts...))
	mux.Handle(LedgerServiceToggleAddFriendProcedure,
		connect.NewUnaryHandler(LedgerServiceToggleAddFriendProcedure, svc.ToggleAddFriend, opts...))
	mux.Handle(LedgerServiceUpdateAddFriendFormProcedure,
		connect.NewUnaryHandler(LedgerServiceUpdateAddFriendFormProcedure, svc.UpdateAddFriendForm, opts...))
	mux.Handle(LedgerServiceSubmitAddFriendProcedure,
		connect.NewUnaryHandler(LedgerServiceSubmitAddFriendProcedure, svc.SubmitAddFriend, opts...))
	mux.Handle(LedgerServiceToggleSelectProcedure,
		connect.NewUnaryHandler(LedgerServiceToggleSelectProcedure, svc.ToggleSelect, opts...))
	mux.Handle(LedgerServiceUpdateSplitFormProcedure,
		connect.NewUnaryHandler(LedgerServiceUpdateSplitFormProcedure, svc.UpdateSplitForm, opts...))
	mux.Handle(LedgerServiceSubmitSplitProcedure,
		connect.NewUnaryHandler(LedgerServiceSubmitSplitProcedure, svc.SubmitSplit, opts...))
	mux.Handle(LedgerServiceListSettlementsProcedure,
		connect.NewUnaryHandler(LedgerServiceListSettlementsProcedure, svc.ListSettlements, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// toConnectError maps ledger and storage errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrPersist):
		return connect.NewError(connect.CodeInternal, err)
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrFormClosed), errors.Is(err, ledger.ErrNoSelection):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// GetState returns the current ledger view.
func (s *LedgerService) GetState(ctx context.Context, req *connect.Request[GetStateRequest]) (*connect.Response[GetStateResponse], error) {
	return connect.NewResponse(&GetStateResponse{State: toState(s.session.Snapshot())}), nil
}

// ToggleAddFriend opens or closes the add-friend form.
func (s *LedgerService) ToggleAddFriend(ctx context.Context, req *connect.Request[ToggleAddFriendRequest]) (*connect.Response[ToggleAddFriendResponse], error) {
	view := s.session.ToggleAddFriend()
	slog.Debug("Add-friend form toggled", "open", view.State.AddingFriend)
	return connect.NewResponse(&ToggleAddFriendResponse{State: toState(view)}), nil
}

// UpdateAddFriendForm edits the open add-friend form.
func (s *LedgerService) UpdateAddFriendForm(ctx context.Context, req *connect.Request[UpdateAddFriendFormRequest]) (*connect.Response[UpdateAddFriendFormResponse], error) {
	view, err := s.session.UpdateAddFriendForm(req.Msg.Name, req.Msg.Image)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&UpdateAddFriendFormResponse{State: toState(view)}), nil
}

// SubmitAddFriend adds a friend from the open form. The session persists
// it before the friend becomes visible.
func (s *LedgerService) SubmitAddFriend(ctx context.Context, req *connect.Request[SubmitAddFriendRequest]) (*connect.Response[SubmitAddFriendResponse], error) {
	result, err := s.session.SubmitAddFriend(ctx)
	if err != nil {
		if errors.Is(err, ledger.ErrPersist) {
			slog.Error("SubmitAddFriend failed", "error", err)
		}
		return nil, toConnectError(err)
	}
	if !result.Added {
		return connect.NewResponse(&SubmitAddFriendResponse{State: toState(result.View)}), nil
	}

	slog.Info("Friend added", "friend_id", result.Friend.ID, "name", result.Friend.Name)

	return connect.NewResponse(&SubmitAddFriendResponse{
		Added:  true,
		Friend: toFriend(result.Friend),
		State:  toState(result.View),
	}), nil
}

// ToggleSelect selects or deselects a friend for splitting.
func (s *LedgerService) ToggleSelect(ctx context.Context, req *connect.Request[ToggleSelectRequest]) (*connect.Response[ToggleSelectResponse], error) {
	if req.Msg.FriendID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("friend_id is required"))
	}

	view, err := s.session.ToggleSelect(req.Msg.FriendID)
	if err != nil {
		return nil, toConnectError(err)
	}
	slog.Debug("Selection toggled", "friend_id", req.Msg.FriendID, "selected", view.State.SelectedID)

	return connect.NewResponse(&ToggleSelectResponse{State: toState(view)}), nil
}

// UpdateSplitForm edits the split form of the selected friend.
func (s *LedgerService) UpdateSplitForm(ctx context.Context, req *connect.Request[UpdateSplitFormRequest]) (*connect.Response[UpdateSplitFormResponse], error) {
	var payer *models.Payer
	if req.Msg.Payer != nil {
		p, err := models.ParsePayer(*req.Msg.Payer)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		payer = &p
	}

	view, accepted, err := s.session.UpdateSplitForm(req.Msg.Bill, req.Msg.UserExpense, payer)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !accepted {
		slog.Debug("User expense above bill rejected", "user_expense", *req.Msg.UserExpense)
	}

	return connect.NewResponse(&UpdateSplitFormResponse{
		UserExpenseAccepted: accepted,
		State:               toState(view),
	}), nil
}

// SubmitSplit applies the split form to the selected friend. The session
// persists the new balance and the settlement before applying them.
func (s *LedgerService) SubmitSplit(ctx context.Context, req *connect.Request[SubmitSplitRequest]) (*connect.Response[SubmitSplitResponse], error) {
	result, err := s.session.SubmitSplit(ctx)
	if err != nil {
		if errors.Is(err, ledger.ErrPersist) {
			slog.Error("SubmitSplit failed", "error", err)
		}
		return nil, toConnectError(err)
	}
	if !result.Applied {
		return connect.NewResponse(&SubmitSplitResponse{State: toState(result.View)}), nil
	}

	slog.Info("Split applied",
		"friend_id", result.Friend.ID,
		"payer", result.Settlement.Payer,
		"delta", result.Settlement.Delta,
		"balance", result.Friend.Balance,
	)

	return connect.NewResponse(&SubmitSplitResponse{
		Applied:    true,
		Friend:     toFriend(result.Friend),
		Settlement: toSettlement(result.Settlement),
		State:      toState(result.View),
	}), nil
}

// ListSettlements returns the split history of a friend, newest first.
func (s *LedgerService) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	if req.Msg.FriendID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("friend_id is required"))
	}
	if _, ok := s.session.Snapshot().State.Friend(req.Msg.FriendID); !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("friend %s: %w", req.Msg.FriendID, ledger.ErrNotFound))
	}

	settlements, err := s.store.ListSettlementsByFriend(ctx, req.Msg.FriendID)
	if err != nil {
		slog.Error("ListSettlements failed", "friend_id", req.Msg.FriendID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toSettlement(st)
	}
	return connect.NewResponse(&ListSettlementsResponse{Settlements: out}), nil
}
