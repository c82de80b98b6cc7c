package acctsync

import (
	"slices"
	"strings"
)

// norm is the comparison form of every human-entered identity field:
// case-insensitive, whitespace-trimmed.
func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func normEqual(a, b string) bool { return norm(a) == norm(b) }

// PerformanceAccountView is one owner sub-record of the performance ledger
// together with its parent entry. The matcher works on these flat views so
// it never needs to know how entries are keyed.
type PerformanceAccountView struct {
	EntryID string
	Owner   string
	Entry   *PerformanceEntry
	Account *PerformanceUserAccount
}

// CandidateAccounts flattens every owner sub-record of the given year into
// a candidate list for matching. A sub-record qualifies as soon as it has an
// account type, even with an empty name.
//
// The list order is a pinned contract: ascending entry ID, then owner name.
// Tier-2 matching returns the first hit in this order, so the order must be
// deterministic across runs.
func CandidateAccounts(store PerformanceStore, year int) []PerformanceAccountView {
	entryIDs := make([]string, 0, len(store))
	for id, entry := range store {
		if entry != nil && entry.Year == year {
			entryIDs = append(entryIDs, id)
		}
	}
	slices.Sort(entryIDs)

	var views []PerformanceAccountView
	for _, id := range entryIDs {
		entry := store[id]
		owners := make([]string, 0, len(entry.Users))
		for owner := range entry.Users {
			owners = append(owners, owner)
		}
		slices.Sort(owners)
		for _, owner := range owners {
			ua := entry.Users[owner]
			if ua == nil || ua.AccountType == "" {
				continue
			}
			views = append(views, PerformanceAccountView{
				EntryID: id,
				Owner:   owner,
				Entry:   entry,
				Account: ua,
			})
		}
	}
	return views
}

// FindMatch decides which existing performance account (if any) the
// candidate portfolio row refers to. At most one view is returned.
//
// Tier 1 matches on the canonical name plus owner. Tier 2 falls back to
// component matching on owner, account type and investment company, but
// never when the candidate carries a description: a described account must
// not be silently merged into an undescribed one. The rules deliberately
// favor a false negative (a duplicate record gets created) over a false
// positive (an erroneous merge overwrites financial data).
func FindMatch(candidate PortfolioAccountInput, existing []PerformanceAccountView) *PerformanceAccountView {
	expectedName := candidate.CanonicalName()

	// Tier 1: exact canonical name, same owner. First hit wins.
	for i := range existing {
		if normEqual(existing[i].Account.AccountName, expectedName) &&
			normEqual(existing[i].Owner, candidate.Owner) {
			return &existing[i]
		}
	}

	// Tier 2: component match.
	hasDescription := strings.TrimSpace(candidate.Description) != ""
	if hasDescription {
		return nil
	}
	companyless := strings.TrimSpace(candidate.InvestmentCompany) == ""
	for i := range existing {
		if !normEqual(existing[i].Owner, candidate.Owner) {
			continue
		}
		if !normEqual(string(existing[i].Account.AccountType), string(candidate.AccountType)) {
			continue
		}
		if companyless {
			return &existing[i]
		}
		if normEqual(existing[i].Account.InvestmentCompany, candidate.InvestmentCompany) {
			return &existing[i]
		}
	}
	return nil
}

// FindByExactName resolves an account by canonical name only, with no owner
// check and no component fallback. Manual group targets are resolved this
// way: the user picked the name, the engine does not second-guess it.
func FindByExactName(accountName string, existing []PerformanceAccountView) *PerformanceAccountView {
	for i := range existing {
		if normEqual(existing[i].Account.AccountName, accountName) {
			return &existing[i]
		}
	}
	return nil
}

// identityKey is the authoritative identity of an account during a prune
// pass: canonical name plus the components that generated it, normalized.
func identityKey(accountName string, accountType AccountType, owner, investmentCompany string) string {
	return norm(accountName) + "|" + norm(string(accountType)) + "|" + norm(owner) + "|" + norm(investmentCompany)
}
