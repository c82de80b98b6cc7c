package acctsync

import (
	"reflect"
	"testing"
)

func TestPrunePass_RemovesStaleAccounts(t *testing.T) {
	engine, _ := testEngine(t)

	// Two accounts tracked this year.
	session := []PortfolioAccountInput{
		{ID: "acc-1", Owner: "Alex", TaxType: TaxDeferred, AccountType: Account401k, InvestmentCompany: "Fidelity", Amount: M(10000, "")},
		{ID: "acc-2", Owner: "Alex", AccountType: HSA, InvestmentCompany: "Fidelity", Amount: M(2000, "")},
	}
	if _, err := engine.SyncPortfolioBalanceToPerformance(session); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	// The latest snapshot only carries the 401k: the HSA was closed.
	if _, err := engine.CommitPortfolioUpdate(session[:1], BalanceOnly, NewDate(2026, 3, 14)); err != nil {
		t.Fatalf("commit: %v", err)
	}

	summary, err := engine.SyncPerformanceAccountsFromLatestPortfolio()
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if summary.Skipped {
		t.Fatal("prune skipped a current-year snapshot")
	}
	if summary.RemovedAccounts != 1 {
		t.Errorf("removedAccounts = %d, want 1", summary.RemovedAccounts)
	}

	perf, _ := engine.PerformanceEntries()
	views := CandidateAccounts(perf, 2026)
	if len(views) != 1 {
		t.Fatalf("after prune %d sub-records remain, want 1", len(views))
	}
	if views[0].Account.AccountName != "Alex's Fidelity 401k (Traditional)" {
		t.Errorf("survivor = %q, want the 401k", views[0].Account.AccountName)
	}
	// The parent entry of the pruned sub-record still exists, emptied.
	if len(perf) != 2 {
		t.Errorf("prune deleted a parent entry: %d entries, want 2", len(perf))
	}
}

func TestPrunePass_RebuildsDirectory(t *testing.T) {
	engine, _ := testEngine(t)

	// A foreign directory row must survive every rebuild.
	foreign := DirectoryEntry{AccountName: "Pension", Owner: "Alex", Source: "manual", Sources: []string{"manual"}}
	stale := DirectoryEntry{AccountName: "Closed account", Owner: "Alex", Source: SourcePerformance}
	if err := saveDocument(engine.Store, DocDirectory, []DirectoryEntry{foreign, stale}, 0); err != nil {
		t.Fatalf("seed directory: %v", err)
	}

	session := []PortfolioAccountInput{
		{ID: "acc-1", Owner: "Jordan", TaxType: TaxFree, AccountType: IRA, InvestmentCompany: "Vanguard", Amount: M(25000, "")},
	}
	if _, err := engine.SyncPortfolioBalanceToPerformance(session); err != nil {
		t.Fatalf("seed sync: %v", err)
	}
	if _, err := engine.CommitPortfolioUpdate(session, BalanceOnly, NewDate(2026, 3, 14)); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if _, err := engine.SyncPerformanceAccountsFromLatestPortfolio(); err != nil {
		t.Fatalf("prune: %v", err)
	}

	directory, err := engine.Directory()
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if len(directory) != 2 {
		t.Fatalf("directory holds %d rows, want 2 (foreign + rebuilt)", len(directory))
	}
	if !reflect.DeepEqual(directory[0], foreign) {
		t.Errorf("foreign row = %+v, want untouched %+v", directory[0], foreign)
	}
	rebuilt := directory[1]
	if rebuilt.AccountName != "Jordan's Vanguard IRA (Roth)" || rebuilt.Source != SourcePerformance {
		t.Errorf("rebuilt row = %+v, want the IRA with source performance", rebuilt)
	}
	if rebuilt.TaxType != TaxFree || rebuilt.Owner != "Jordan" {
		t.Errorf("rebuilt row = %+v, want owner Jordan, tax-free", rebuilt)
	}
}

func TestPrunePass_SkipsStaleSnapshot(t *testing.T) {
	engine, _ := testEngine(t)

	session := []PortfolioAccountInput{
		{ID: "acc-1", Owner: "Alex", AccountType: IRA, Amount: M(100, "")},
	}
	if _, err := engine.SyncPortfolioBalanceToPerformance(session); err != nil {
		t.Fatalf("seed sync: %v", err)
	}
	// The only committed record predates the current year.
	if _, err := engine.CommitPortfolioUpdate(session, BalanceOnly, NewDate(2025, 12, 31)); err != nil {
		t.Fatalf("commit: %v", err)
	}

	summary, err := engine.SyncPerformanceAccountsFromLatestPortfolio()
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if !summary.Skipped {
		t.Error("prune did not skip a previous-year snapshot")
	}
	perf, _ := engine.PerformanceEntries()
	if views := CandidateAccounts(perf, 2026); len(views) != 1 {
		t.Errorf("stale snapshot pruned records: %d remain, want 1", len(views))
	}
}

func TestPrunePass_NoSnapshotIsNoop(t *testing.T) {
	engine, _ := testEngine(t)
	summary, err := engine.SyncPerformanceAccountsFromLatestPortfolio()
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if !summary.Skipped {
		t.Error("prune with no records did not skip")
	}
}

func TestPrunePass_Idempotent(t *testing.T) {
	engine, _ := testEngine(t)

	session := []PortfolioAccountInput{
		{ID: "acc-1", Owner: "Alex", TaxType: TaxDeferred, AccountType: Account401k, InvestmentCompany: "Fidelity", Amount: M(10000, "")},
		{ID: "acc-2", Owner: "Joint", AccountType: Brokerage, InvestmentCompany: "Schwab", Amount: M(5000, "")},
	}
	if _, err := engine.SyncPortfolioBalanceToPerformance(session); err != nil {
		t.Fatalf("seed sync: %v", err)
	}
	if _, err := engine.CommitPortfolioUpdate(session, BalanceOnly, NewDate(2026, 3, 14)); err != nil {
		t.Fatalf("commit: %v", err)
	}

	first, err := engine.SyncPerformanceAccountsFromLatestPortfolio()
	if err != nil {
		t.Fatalf("first prune: %v", err)
	}
	directoryAfterFirst, _ := engine.Directory()

	second, err := engine.SyncPerformanceAccountsFromLatestPortfolio()
	if err != nil {
		t.Fatalf("second prune: %v", err)
	}
	directoryAfterSecond, _ := engine.Directory()

	if second.RemovedAccounts != 0 {
		t.Errorf("second prune removed %d accounts, want 0", second.RemovedAccounts)
	}
	if first.DirectoryEntries != second.DirectoryEntries {
		t.Errorf("directory size changed between runs: %d then %d", first.DirectoryEntries, second.DirectoryEntries)
	}
	if !reflect.DeepEqual(directoryAfterFirst, directoryAfterSecond) {
		t.Errorf("directory content changed between runs:\n%+v\n%+v", directoryAfterFirst, directoryAfterSecond)
	}

	// Both ways of the reconciliation property: every surviving sub-record
	// is represented in the snapshot, every snapshot account in the
	// directory projection.
	perf, _ := engine.PerformanceEntries()
	views := CandidateAccounts(perf, 2026)
	if len(views) != len(session) {
		t.Errorf("%d sub-records survive, want %d", len(views), len(session))
	}
	if first.DirectoryEntries != len(session) {
		t.Errorf("%d directory rows, want %d", first.DirectoryEntries, len(session))
	}
}
