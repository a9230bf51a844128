// Package models defines the core domain models for BudgetWise.
//
// # Models
//
//   - Friend: someone the user splits bills with, carrying a running balance
//   - Payer: who paid a bill being split (the user or the friend)
//   - Settlement: one applied bill split, kept as history
//
// # Balance Sign
//
// A friend's Balance is signed from the user's point of view:
//   - positive: the friend owes the user
//   - negative: the user owes the friend
//   - zero: settled
//
// Balances are only changed by applying a bill split. Settlements record
// what was applied but balances are never recomputed from them.
//
// # Identifiers
//
// IDs are opaque strings (UUIDs for new friends, numeric strings for the
// seeded ones). Use ID strings instead of pointers for relationships.
package models
