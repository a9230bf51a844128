package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// LedgerClient calls the ledger procedures of a remote server.
type LedgerClient struct {
	getState            *connect.Client[GetStateRequest, GetStateResponse]
	toggleAddFriend     *connect.Client[ToggleAddFriendRequest, ToggleAddFriendResponse]
	updateAddFriendForm *connect.Client[UpdateAddFriendFormRequest, UpdateAddFriendFormResponse]
	submitAddFriend     *connect.Client[SubmitAddFriendRequest, SubmitAddFriendResponse]
	toggleSelect        *connect.Client[ToggleSelectRequest, ToggleSelectResponse]
	updateSplitForm     *connect.Client[UpdateSplitFormRequest, UpdateSplitFormResponse]
	submitSplit         *connect.Client[SubmitSplitRequest, SubmitSplitResponse]
	listSettlements     *connect.Client[ListSettlementsRequest, ListSettlementsResponse]
}

// NewLedgerClient constructs a client for the ledger service at baseURL
// (e.g. http://localhost:8080).
func NewLedgerClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)

	return &LedgerClient{
		getState: connect.NewClient[GetStateRequest, GetStateResponse](
			httpClient, baseURL+LedgerServiceGetStateProcedure, opts...),
		toggleAddFriend: connect.NewClient[ToggleAddFriendRequest, ToggleAddFriendResponse](
			httpClient, baseURL+LedgerServiceToggleAddFriendProcedure, opts...),
		updateAddFriendForm: connect.NewClient[UpdateAddFriendFormRequest, UpdateAddFriendFormResponse](
			httpClient, baseURL+LedgerServiceUpdateAddFriendFormProcedure, opts...),
		submitAddFriend: connect.NewClient[SubmitAddFriendRequest, SubmitAddFriendResponse](
			httpClient, baseURL+LedgerServiceSubmitAddFriendProcedure, opts...),
		toggleSelect: connect.NewClient[ToggleSelectRequest, ToggleSelectResponse](
			httpClient, baseURL+LedgerServiceToggleSelectProcedure, opts...),
		updateSplitForm: connect.NewClient[UpdateSplitFormRequest, UpdateSplitFormResponse](
			httpClient, baseURL+LedgerServiceUpdateSplitFormProcedure, opts...),
		submitSplit: connect.NewClient[SubmitSplitRequest, SubmitSplitResponse](
			httpClient, baseURL+LedgerServiceSubmitSplitProcedure, opts...),
		listSettlements: connect.NewClient[ListSettlementsRequest, ListSettlementsResponse](
			httpClient, baseURL+LedgerServiceListSettlementsProcedure, opts...),
	}
}

func (c *LedgerClient) GetState(ctx context.Context, req *connect.Request[GetStateRequest]) (*connect.Response[GetStateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}

func (c *LedgerClient) ToggleAddFriend(ctx context.Context, req *connect.Request[ToggleAddFriendRequest]) (*connect.Response[ToggleAddFriendResponse], error) {
	return c.toggleAddFriend.CallUnary(ctx, req)
}

func (c *LedgerClient) UpdateAddFriendForm(ctx context.Context, req *connect.Request[UpdateAddFriendFormRequest]) (*connect.Response[UpdateAddFriendFormResponse], error) {
	return c.updateAddFriendForm.CallUnary(ctx, req)
}

func (c *LedgerClient) SubmitAddFriend(ctx context.Context, req *connect.Request[SubmitAddFriendRequest]) (*connect.Response[SubmitAddFriendResponse], error) {
	return c.submitAddFriend.CallUnary(ctx, req)
}

func (c *LedgerClient) ToggleSelect(ctx context.Context, req *connect.Request[ToggleSelectRequest]) (*connect.Response[ToggleSelectResponse], error) {
	return c.toggleSelect.CallUnary(ctx, req)
}

func (c *LedgerClient) UpdateSplitForm(ctx context.Context, req *connect.Request[UpdateSplitFormRequest]) (*connect.Response[UpdateSplitFormResponse], error) {
	return c.updateSplitForm.CallUnary(ctx, req)
}

func (c *LedgerClient) SubmitSplit(ctx context.Context, req *connect.Request[SubmitSplitRequest]) (*connect.Response[SubmitSplitResponse], error) {
	return c.submitSplit.CallUnary(ctx, req)
}

func (c *LedgerClient) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}
