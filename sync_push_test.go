package acctsync

import (
	"testing"
	"time"

	"github.com/nholm/acctsync/docstore"
)

// testClock pins the engine to a known instant so "current year" is stable.
var testClock = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func testEngine(t *testing.T) (*Engine, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	engine := NewEngine(docstore.NewMemStore())
	engine.Notifier = notifier
	engine.Now = func() time.Time { return testClock }
	return engine, notifier
}

type recordingNotifier struct{ changes []PerformanceChange }

func (n *recordingNotifier) PerformanceChanged(c PerformanceChange) {
	n.changes = append(n.changes, c)
}

func TestPushPass_CreatesEntryInEmptyStore(t *testing.T) {
	engine, notifier := testEngine(t)

	inputs := []PortfolioAccountInput{{
		ID: "acc-1", Owner: "Jordan", TaxType: TaxFree, AccountType: IRA,
		InvestmentCompany: "Vanguard", Amount: M(25000, ""),
	}}

	summary, err := engine.SyncPortfolioBalanceToPerformance(inputs)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	want := SyncSummary{HasChanges: true, PortfolioAccountsProcessed: 1, SyncMethod: SyncMethodIndividual, Year: 2026}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}

	perf, err := engine.PerformanceEntries()
	if err != nil {
		t.Fatalf("load performance: %v", err)
	}
	if len(perf) != 1 {
		t.Fatalf("performance store holds %d entries, want 1", len(perf))
	}
	for _, entry := range perf {
		if entry.Year != 2026 {
			t.Errorf("entry year = %d, want 2026", entry.Year)
		}
		ua := entry.Users["Jordan"]
		if ua == nil {
			t.Fatal("entry has no record for Jordan")
		}
		if ua.AccountName != "Jordan's Vanguard IRA (Roth)" {
			t.Errorf("account name = %q, want %q", ua.AccountName, "Jordan's Vanguard IRA (Roth)")
		}
		if !ua.Balance.Equal(M(25000, "")) {
			t.Errorf("owner balance = %s, want 25000", ua.Balance)
		}
		if !entry.Balance.Equal(ua.Balance) {
			t.Errorf("entry balance %s is not mirroring owner balance %s", entry.Balance, ua.Balance)
		}
		if ua.BalanceUpdatedFrom != BalanceFromIndividual {
			t.Errorf("balanceUpdatedFrom = %q, want %q", ua.BalanceUpdatedFrom, BalanceFromIndividual)
		}
		if ua.BalanceUpdatedAt == nil || !ua.BalanceUpdatedAt.Equal(testClock) {
			t.Errorf("balanceUpdatedAt = %v, want %v", ua.BalanceUpdatedAt, testClock)
		}
	}

	if len(notifier.changes) != 1 || notifier.changes[0] != (PerformanceChange{Source: "portfolio", Year: 2026}) {
		t.Errorf("notifier saw %v, want one portfolio/2026 change", notifier.changes)
	}
}

func TestPushPass_Idempotent(t *testing.T) {
	engine, notifier := testEngine(t)
	inputs := []PortfolioAccountInput{{
		ID: "acc-1", Owner: "Jordan", TaxType: TaxFree, AccountType: IRA,
		InvestmentCompany: "Vanguard", Amount: M(25000, ""),
	}}

	if _, err := engine.SyncPortfolioBalanceToPerformance(inputs); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	second, err := engine.SyncPortfolioBalanceToPerformance(inputs)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if second.HasChanges {
		t.Error("second run reports changes, want none")
	}
	perf, _ := engine.PerformanceEntries()
	if len(perf) != 1 {
		t.Errorf("second run grew the store to %d entries, want 1", len(perf))
	}
	if len(notifier.changes) != 1 {
		t.Errorf("notifier called %d times, want once", len(notifier.changes))
	}
}

func TestPushPass_UpdatesMatchedBalance(t *testing.T) {
	engine, _ := testEngine(t)
	inputs := []PortfolioAccountInput{{
		ID: "acc-1", Owner: "Jordan", TaxType: TaxFree, AccountType: IRA,
		InvestmentCompany: "Vanguard", Amount: M(25000, ""),
	}}
	if _, err := engine.SyncPortfolioBalanceToPerformance(inputs); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	inputs[0].Amount = M(26500, "")
	summary, err := engine.SyncPortfolioBalanceToPerformance(inputs)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if !summary.HasChanges {
		t.Error("changed amount reported no changes")
	}

	perf, _ := engine.PerformanceEntries()
	if len(perf) != 1 {
		t.Fatalf("update created a duplicate: %d entries, want 1", len(perf))
	}
	for _, entry := range perf {
		if !entry.Balance.Equal(M(26500, "")) {
			t.Errorf("entry balance = %s, want 26500", entry.Balance)
		}
		if !entry.Users["Jordan"].Balance.Equal(M(26500, "")) {
			t.Errorf("owner balance = %s, want 26500", entry.Users["Jordan"].Balance)
		}
	}
}

func TestPushPass_SkipsMalformedRows(t *testing.T) {
	engine, notifier := testEngine(t)
	inputs := []PortfolioAccountInput{
		{ID: "acc-1", AccountType: IRA, Amount: M(100, "")},       // no owner
		{ID: "acc-2", Owner: "Alex", Amount: M(100, "")},          // no account type
		{ID: "acc-3", Owner: "  ", AccountType: IRA, Amount: M(1, "")}, // blank owner
	}

	summary, err := engine.SyncPortfolioBalanceToPerformance(inputs)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if summary.HasChanges || summary.PortfolioAccountsProcessed != 0 {
		t.Errorf("summary = %+v, want nothing processed", summary)
	}
	perf, _ := engine.PerformanceEntries()
	if len(perf) != 0 {
		t.Errorf("malformed rows created %d entries, want 0", len(perf))
	}
	if len(notifier.changes) != 0 {
		t.Errorf("notifier called for a pass with no writes")
	}
}

func TestPushPass_ManualGroups(t *testing.T) {
	engine, _ := testEngine(t)

	// Seed an existing performance account that will be the group target.
	seed := []PortfolioAccountInput{{
		ID: "seed", Owner: "Alex", TaxType: TaxDeferred, AccountType: Account401k,
		InvestmentCompany: "Fidelity", Amount: M(10000, ""),
	}}
	if _, err := engine.SyncPortfolioBalanceToPerformance(seed); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	var targeted, unbound, unmatched *ManualAccountGroup
	err := engine.UpdateGroups(func(groups ManualGroups) error {
		targeted = groups.Create()
		groups.Rename(targeted.ID, "Alex retirement")
		groups.SetTarget(targeted.ID, "Alex's Fidelity 401k (Traditional)")
		groups.AddMember(targeted.ID, "acc-1")
		groups.AddMember(targeted.ID, "acc-2")

		unbound = groups.Create()
		groups.Rename(unbound.ID, "no target yet")
		groups.AddMember(unbound.ID, "acc-1")

		unmatched = groups.Create()
		groups.Rename(unmatched.ID, "new pot")
		groups.SetTarget(unmatched.ID, "Family Combined Savings")
		groups.AddMember(unmatched.ID, "acc-3")
		return nil
	})
	if err != nil {
		t.Fatalf("setup groups: %v", err)
	}

	inputs := []PortfolioAccountInput{
		{ID: "acc-1", Owner: "Alex", AccountType: Account401k, Amount: M(7000, "")},
		{ID: "acc-2", Owner: "Alex", AccountType: IRA, Amount: M(3500, "")},
		{ID: "acc-3", Owner: "Alex", AccountType: HSA, Amount: M(1200, "")},
	}
	summary, err := engine.SyncPortfolioBalanceToPerformance(inputs)
	if err != nil {
		t.Fatalf("group sync: %v", err)
	}

	if summary.SyncMethod != SyncMethodManualGroups {
		t.Errorf("syncMethod = %q, want %q", summary.SyncMethod, SyncMethodManualGroups)
	}
	if summary.ManualGroupsProcessed != 2 {
		t.Errorf("manualGroupsProcessed = %d, want 2 (unbound group skipped)", summary.ManualGroupsProcessed)
	}

	perf, _ := engine.PerformanceEntries()
	views := CandidateAccounts(perf, 2026)

	target := FindByExactName("Alex's Fidelity 401k (Traditional)", views)
	if target == nil {
		t.Fatal("target account disappeared")
	}
	if !target.Account.Balance.Equal(M(10500, "")) {
		t.Errorf("target balance = %s, want 10500 (7000+3500)", target.Account.Balance)
	}
	if !target.Entry.Balance.Equal(target.Account.Balance) {
		t.Errorf("entry balance %s does not mirror owner balance %s", target.Entry.Balance, target.Account.Balance)
	}
	if target.Account.BalanceUpdatedFrom != BalanceFromManualGroup {
		t.Errorf("balanceUpdatedFrom = %q, want %q", target.Account.BalanceUpdatedFrom, BalanceFromManualGroup)
	}
	if target.Account.ManualGroupID != targeted.ID || target.Account.ManualGroupName != "Alex retirement" {
		t.Errorf("group annotation = %q/%q, want %q/%q",
			target.Account.ManualGroupID, target.Account.ManualGroupName, targeted.ID, "Alex retirement")
	}

	created := FindByExactName("Family Combined Savings", views)
	if created == nil {
		t.Fatal("unmatched group target did not create an entry")
	}
	if created.Account.AccountType != CombinedAccountType || created.Account.InvestmentCompany != "Multiple" {
		t.Errorf("created record = %q/%q, want Combined/Multiple",
			created.Account.AccountType, created.Account.InvestmentCompany)
	}
	if !created.Account.Balance.Equal(M(1200, "")) {
		t.Errorf("created balance = %s, want 1200", created.Account.Balance)
	}

	groups, _ := engine.Groups()
	if got := groups[targeted.ID]; !got.TotalBalance.Equal(M(10500, "")) || got.LastSync == nil {
		t.Errorf("targeted group metadata = %+v, want balance 10500 and lastSync set", got)
	}
	if got := groups[unmatched.ID]; !got.TotalBalance.Equal(M(1200, "")) || got.LastSync == nil {
		t.Errorf("unmatched group metadata = %+v, want balance 1200 and lastSync set", got)
	}
	if got := groups[unbound.ID]; got.LastSync != nil || !got.TotalBalance.IsZero() {
		t.Errorf("unbound group metadata = %+v, want untouched", got)
	}
}
