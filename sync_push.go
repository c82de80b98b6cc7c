package acctsync

import (
	"log"
	"strings"
	"time"
)

// Sync methods reported in a push summary.
const (
	SyncMethodIndividual   = "individual-fallback"
	SyncMethodManualGroups = "manual-groups"
)

// SyncSummary reports what a push pass did.
type SyncSummary struct {
	HasChanges                 bool   `json:"hasChanges"`
	PortfolioAccountsProcessed int    `json:"portfolioAccountsProcessed"`
	ManualGroupsProcessed      int    `json:"manualGroupsProcessed"`
	SyncMethod                 string `json:"syncMethod"`
	Year                       int    `json:"year"`
}

// identityResolver decides which performance account a balance write goes
// to. The automatic matcher and the manual-group resolver are the two
// implementations; exactly one of {match, create} happens for every write,
// whichever resolver is in charge.
type identityResolver interface {
	resolve(candidate PortfolioAccountInput) *PerformanceAccountView
}

// matcherResolver resolves through the tiered account matcher.
type matcherResolver struct{ existing []PerformanceAccountView }

func (r matcherResolver) resolve(candidate PortfolioAccountInput) *PerformanceAccountView {
	return FindMatch(candidate, r.existing)
}

// exactNameResolver resolves a user-assigned target name, nothing else.
type exactNameResolver struct{ existing []PerformanceAccountView }

func (r exactNameResolver) resolve(candidate PortfolioAccountInput) *PerformanceAccountView {
	return FindByExactName(candidate.AccountName, r.existing)
}

// pushPass propagates the current portfolio amounts into the performance
// store, in place. It never fails: malformed rows are skipped, unmatched
// rows create new entries.
func pushPass(inputs []PortfolioAccountInput, perf PerformanceStore, groups ManualGroups, year int, now time.Time) SyncSummary {
	summary := SyncSummary{Year: year}
	candidates := CandidateAccounts(perf, year)

	if len(groups) == 0 {
		summary.SyncMethod = SyncMethodIndividual
		resolver := matcherResolver{existing: candidates}
		for _, input := range inputs {
			if strings.TrimSpace(input.Owner) == "" || strings.TrimSpace(string(input.AccountType)) == "" {
				// Malformed row: no identity to resolve. Skip, never abort.
				continue
			}
			summary.PortfolioAccountsProcessed++
			if writeBalance(resolver, input, perf, year, now, BalanceFromIndividual, nil) {
				summary.HasChanges = true
			}
		}
		return summary
	}

	summary.SyncMethod = SyncMethodManualGroups
	resolver := exactNameResolver{existing: candidates}
	for _, group := range groups.All() {
		if strings.TrimSpace(group.PerformanceAccountName) == "" {
			// Unbound group: no write, no metadata refresh.
			continue
		}
		summary.ManualGroupsProcessed++

		groupBalance := groups.ComputeBalance(group.ID, inputs)
		pseudo := PortfolioAccountInput{
			Owner:             group.Owner,
			AccountType:       CombinedAccountType,
			InvestmentCompany: "Multiple",
			AccountName:       group.PerformanceAccountName,
			Amount:            groupBalance,
		}
		if writeBalance(resolver, pseudo, perf, year, now, BalanceFromManualGroup, group) {
			summary.HasChanges = true
		}

		// The group's own display metadata is refreshed whether or not the
		// performance write changed anything.
		group.TotalBalance = groupBalance
		at := now
		group.LastSync = &at
	}
	return summary
}

// writeBalance resolves the target account and overwrites its balance,
// creating a new entry when nothing matches. Returns true if the
// performance store was modified; an unchanged balance is left untouched so
// that re-running a pass on identical input writes nothing.
func writeBalance(resolver identityResolver, input PortfolioAccountInput, perf PerformanceStore, year int, now time.Time, from string, group *ManualAccountGroup) bool {
	if match := resolver.resolve(input); match != nil {
		changed := !match.Account.Balance.Equal(input.Amount) || !match.Entry.Balance.Equal(input.Amount)
		if changed {
			match.Entry.setBalance(match.Owner, input.Amount, from, now)
			log.Printf("sync: %s balance %s for %q", from, input.Amount, match.Account.AccountName)
		}
		if group != nil && (match.Account.ManualGroupID != group.ID || match.Account.ManualGroupName != group.Name) {
			match.Account.ManualGroupID = group.ID
			match.Account.ManualGroupName = group.Name
			changed = true
		}
		return changed
	}

	// No match: create a fresh entry for the current year holding exactly
	// one owner record, entry-level balance mirroring it.
	name := input.AccountName
	if name == "" {
		name = input.CanonicalName()
	}
	ua := &PerformanceUserAccount{
		AccountName:       name,
		AccountType:       input.AccountType,
		InvestmentCompany: input.InvestmentCompany,
	}
	if group != nil {
		ua.ManualGroupID = group.ID
		ua.ManualGroupName = group.Name
	}
	entry := &PerformanceEntry{
		EntryID: newID(),
		Year:    year,
		Users:   map[string]*PerformanceUserAccount{input.Owner: ua},
	}
	entry.setBalance(input.Owner, input.Amount, from, now)
	perf[entry.EntryID] = entry
	log.Printf("sync: created %d entry for %q with balance %s", year, name, input.Amount)
	return true
}

// SyncPortfolioBalanceToPerformance runs the push pass over the given
// portfolio inputs: one read-compute-write transaction against the
// performance document, plus a group metadata save when manual groups were
// processed. The notifier is told once if the performance document was
// rewritten.
func (e *Engine) SyncPortfolioBalanceToPerformance(inputs []PortfolioAccountInput) (SyncSummary, error) {
	perf, perfRev, err := loadDocument[PerformanceStore](e.Store, DocPerformanceStore)
	if err != nil {
		return SyncSummary{}, err
	}
	if perf == nil {
		perf = PerformanceStore{}
	}
	groups, groupsRev, err := loadDocument[ManualGroups](e.Store, DocManualGroups)
	if err != nil {
		return SyncSummary{}, err
	}
	if groups == nil {
		groups = ManualGroups{}
	}

	now := e.now()
	summary := pushPass(inputs, perf, groups, now.Year(), now)

	if summary.HasChanges {
		if err := saveDocument(e.Store, DocPerformanceStore, perf, perfRev); err != nil {
			return summary, err
		}
	}
	if summary.ManualGroupsProcessed > 0 {
		if err := saveDocument(e.Store, DocManualGroups, groups, groupsRev); err != nil {
			return summary, err
		}
	}
	if summary.HasChanges && e.Notifier != nil {
		e.Notifier.PerformanceChanged(PerformanceChange{Source: "portfolio", Year: summary.Year})
	}
	return summary, nil
}
