// Package models defines the core domain models for the CircleCare ledger.
//
// # Models
//
//   - Circle: a named group of members sharing expenses, with running totals
//   - Member: a principal's membership in one circle
//   - Expense: a shared cost paid by one member and split equally among participants
//   - Settlement: an append-only record of a debt payment
//   - CircleStats, DebtEdge: read-side projections
//
// Principals are Stacks addresses (strings). Amounts are uint64 microSTX
// (1 STX = 1,000,000 microSTX). Time is a block height supplied by the host.
//
// # Design Principles
//
// 1. **Integer money**: no floating point anywhere in the ledger
// 2. **Avoid circular references**: relationships are ids and principal strings
// 3. **Soft lifecycle**: circles are deactivated, never destroyed; settlements are never deleted
package models
