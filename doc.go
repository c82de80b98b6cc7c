// Package acctsync reconciles two independently-edited account ledgers
// belonging to the same user: a portfolio ledger of hand-entered balance
// snapshots, and a performance ledger of per-year tracking entries with
// balance and cash-flow detail.
//
// The two ledgers identify what is conceptually the same account through
// different, human-entered fields (owner, tax treatment, account type,
// investment company, free-text description). The package's job is account
// identity resolution: deciding, from those fuzzy partial keys, which
// performance record a portfolio balance update belongs to, and keeping a
// denormalized directory of known accounts in sync as either side changes.
//
// The engine exposes two passes. The push pass propagates current portfolio
// amounts into the performance ledger, per account or per manual group. The
// prune/merge pass drops performance sub-records for accounts no longer in
// the latest snapshot and rebuilds the directory projection. Both are whole
// document read-compute-write transactions over a [docstore.Store], whose
// revision check serializes competing passes.
package acctsync
