package acctsync

import (
	"log"
	"slices"
	"strings"
)

// PruneSummary reports what a prune/merge pass did.
type PruneSummary struct {
	Skipped          bool `json:"skipped"`
	RemovedAccounts  int  `json:"removedAccounts"`
	DirectoryEntries int  `json:"directoryEntries"`
	Year             int  `json:"year"`
}

// snapshotIdentity is the resolved identity of one account of the latest
// portfolio snapshot, used both to decide which performance sub-records
// survive and to rebuild the directory.
type snapshotIdentity struct {
	AccountName       string
	Owner             string
	AccountType       AccountType
	InvestmentCompany string
	TaxType           TaxType
	Matched           bool
}

// prunePass drops current-year performance sub-records for accounts no
// longer present in the latest snapshot and rebuilds the directory rows the
// engine controls. It creates no balances: pure pruning plus projection.
func prunePass(perf PerformanceStore, latest *PortfolioRecord, directory []DirectoryEntry, year int) (PruneSummary, []DirectoryEntry) {
	summary := PruneSummary{Year: year}

	// A stale snapshot from a previous year says nothing about this year's
	// accounts, so there is nothing safe to prune.
	if latest == nil || latest.UpdateDate.Year() < year {
		summary.Skipped = true
		return summary, directory
	}

	candidates := CandidateAccounts(perf, year)

	// Resolve every snapshot account to an identity key. The resolved key
	// is the authoritative identity for the remainder of the pass; an
	// unmatched account fabricates its key from its own generated name.
	identities := make(map[string]snapshotIdentity)
	var keys []string
	for _, account := range latest.Accounts {
		var id snapshotIdentity
		if match := FindMatch(account, candidates); match != nil {
			id = snapshotIdentity{
				AccountName:       match.Account.AccountName,
				Owner:             match.Owner,
				AccountType:       match.Account.AccountType,
				InvestmentCompany: match.Account.InvestmentCompany,
				TaxType:           account.TaxType,
				Matched:           true,
			}
		} else {
			id = snapshotIdentity{
				AccountName:       account.CanonicalName(),
				Owner:             account.Owner,
				AccountType:       account.AccountType,
				InvestmentCompany: account.InvestmentCompany,
				TaxType:           account.TaxType,
			}
		}
		key := identityKey(id.AccountName, id.AccountType, id.Owner, id.InvestmentCompany)
		if _, seen := identities[key]; !seen {
			identities[key] = id
			keys = append(keys, key)
		}
	}

	// Delete every current-year sub-record whose identity is gone. The
	// parent entry itself always survives.
	for _, view := range candidates {
		key := identityKey(view.Account.AccountName, view.Account.AccountType, view.Owner, view.Account.InvestmentCompany)
		if _, present := identities[key]; present {
			continue
		}
		delete(view.Entry.Users, view.Owner)
		summary.RemovedAccounts++
		log.Printf("prune: removed %d record %q owned by %q", year, view.Account.AccountName, view.Owner)
	}

	// Rebuild the directory projection: drop every row the engine controls,
	// keep the rest untouched, then emit one row per resolved identity.
	rebuilt := make([]DirectoryEntry, 0, len(directory)+len(keys))
	seen := make(map[string]bool)
	for _, entry := range directory {
		if entry.Source == SourcePortfolio || entry.Source == SourcePerformance {
			continue
		}
		rebuilt = append(rebuilt, entry)
		seen[directoryKey(entry.AccountName, entry.Owner)] = true
	}
	slices.Sort(keys)
	for _, key := range keys {
		id := identities[key]
		dk := directoryKey(id.AccountName, id.Owner)
		if seen[dk] {
			continue
		}
		seen[dk] = true
		sources := []string{SourcePortfolio}
		if id.Matched {
			sources = append(sources, SourcePerformance)
		}
		rebuilt = append(rebuilt, DirectoryEntry{
			AccountName:       id.AccountName,
			Owner:             id.Owner,
			AccountType:       id.AccountType,
			InvestmentCompany: id.InvestmentCompany,
			TaxType:           id.TaxType,
			Source:            SourcePerformance,
			Sources:           sources,
		})
	}
	summary.DirectoryEntries = len(rebuilt)
	return summary, rebuilt
}

// directoryKey uniquely identifies a directory row.
func directoryKey(accountName, owner string) string {
	return norm(accountName) + "|" + norm(owner)
}

// SyncPerformanceAccountsFromLatestPortfolio runs the prune/merge pass
// against the most recent committed portfolio record. Idempotent while the
// latest snapshot is unchanged.
func (e *Engine) SyncPerformanceAccountsFromLatestPortfolio() (PruneSummary, error) {
	records, _, err := loadDocument[[]PortfolioRecord](e.Store, DocPortfolioRecords)
	if err != nil {
		return PruneSummary{}, err
	}
	perf, perfRev, err := loadDocument[PerformanceStore](e.Store, DocPerformanceStore)
	if err != nil {
		return PruneSummary{}, err
	}
	if perf == nil {
		perf = PerformanceStore{}
	}
	directory, dirRev, err := loadDocument[[]DirectoryEntry](e.Store, DocDirectory)
	if err != nil {
		return PruneSummary{}, err
	}

	summary, rebuilt := prunePass(perf, LatestPortfolioRecord(records), directory, e.year())
	if summary.Skipped {
		return summary, nil
	}

	if summary.RemovedAccounts > 0 {
		if err := saveDocument(e.Store, DocPerformanceStore, perf, perfRev); err != nil {
			return summary, err
		}
	}
	if err := saveDocument(e.Store, DocDirectory, rebuilt, dirRev); err != nil {
		return summary, err
	}
	return summary, nil
}

// DirectoryRows returns the directory sorted for display: engine-controlled
// rows after foreign rows are already in rebuild order, so sort the whole
// set by owner then account name.
func DirectoryRows(entries []DirectoryEntry) []DirectoryEntry {
	rows := slices.Clone(entries)
	slices.SortFunc(rows, func(a, b DirectoryEntry) int {
		if c := strings.Compare(norm(a.Owner), norm(b.Owner)); c != 0 {
			return c
		}
		return strings.Compare(norm(a.AccountName), norm(b.AccountName))
	})
	return rows
}
