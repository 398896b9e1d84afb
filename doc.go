// Package networth computes a person's net worth from heterogeneous,
// manually- and automatically-priced holdings, and reports it broken
// down by account and by asset type.
//
// The core functionalities include:
//   - Price Providers: adapters for external price services (crypto
//     tokens, securities, precious metals), each backed by a per-provider
//     on-disk cache with a time-to-live.
//   - Value Resolution: turning a raw per-account field (a number, an
//     arithmetic expression, a token count, or a mortgage descriptor)
//     into a normalized dollar-denominated quantity.
//   - Mortgage Balances: closed-form amortized balance computation from
//     a compact key=value descriptor.
//   - Aggregation: folding resolved holdings across all accounts into
//     per-account, per-type, and gross (assets, debt, net) totals, with
//     staleness bookkeeping and display ordering.
//   - History: append-only snapshot records consumed by an external
//     plotting tool.
//
// This package serves as the foundational logic for the `nw` command-line
// tool; command-line parsing and report rendering live in the cmd and
// renderer packages.
package networth
