// Package mononomics provides a single-user personal finance ledger: a cash
// balance, dated income and expense transactions, and savings goals with
// tracked progress.
//
// The core functionalities include:
//   - Ledger Management: adding, updating and removing transactions while
//     keeping the balance equal to the opening balance plus the signed sum of
//     all transactions.
//   - Savings Goals: allocations to a goal are taken from the balance and
//     refunds are given back, each mirrored by a synthetic transaction so the
//     balance stays auditable.
//   - Data Persistence: the whole ledger is one human-readable JSON document,
//     rewritten atomically after every change.
//   - Access Control: a configured username and bcrypt password hash.
//
// This package serves as the foundational logic for the `mono` command-line
// tool.
package mononomics
