package acctsync

import (
	"time"

	"github.com/teris-io/shortid"
)

// TaxType is the tax treatment of an account, as entered by the user.
type TaxType string

const (
	TaxFree     TaxType = "Tax-Free"
	TaxDeferred TaxType = "Tax-Deferred"
	AfterTax    TaxType = "After-Tax"
)

// AccountType is the kind of account, as entered by the user.
type AccountType string

const (
	IRA         AccountType = "IRA"
	Brokerage   AccountType = "Brokerage"
	Account401k AccountType = "401k"
	ESPP        AccountType = "ESPP"
	HSA         AccountType = "HSA"

	// CombinedAccountType marks a performance record created for a manual
	// group rather than a single portfolio account.
	CombinedAccountType AccountType = "Combined"
)

// SyncMode selects how much detail a portfolio update carries.
type SyncMode string

const (
	BalanceOnly SyncMode = "balance-only"
	Detailed    SyncMode = "detailed"
)

// Origins stamped on a performance balance by the push pass.
const (
	BalanceFromIndividual  = "portfolio-individual"
	BalanceFromManualGroup = "portfolio-manual-group"
)

// PortfolioAccountInput is one row of a portfolio update session.
//
// The setup fields (Owner, TaxType, AccountType, InvestmentCompany,
// Description) are retained between sessions; the financial values are
// re-entered every time. AccountName and UpdateDate are annotations added
// when the row is committed into a PortfolioRecord.
type PortfolioAccountInput struct {
	ID                string      `json:"id"`
	Owner             string      `json:"owner"`
	TaxType           TaxType     `json:"taxType,omitempty"`
	AccountType       AccountType `json:"accountType"`
	InvestmentCompany string      `json:"investmentCompany,omitempty"`
	Description       string      `json:"description,omitempty"`

	Amount        Money `json:"amount"`
	Contributions Money `json:"contributions,omitzero"`
	EmployerMatch Money `json:"employerMatch,omitzero"`
	Gains         Money `json:"gains,omitzero"`
	Fees          Money `json:"fees,omitzero"`
	Withdrawals   Money `json:"withdrawals,omitzero"`

	AccountName string `json:"accountName,omitempty"`
	UpdateDate  Date   `json:"updateDate,omitzero"`
}

// PortfolioTotals breaks a portfolio update's total down by tax bucket.
type PortfolioTotals struct {
	TaxFree     Money `json:"taxFree"`
	TaxDeferred Money `json:"taxDeferred"`
	Brokerage   Money `json:"brokerage"`
	HSA         Money `json:"hsa"`
	ESPP        Money `json:"espp"`
}

// PortfolioRecord is one committed portfolio update. Records are append
// only: once committed they are never modified, only deleted by explicit
// user action.
type PortfolioRecord struct {
	ID            string                  `json:"id"`
	UpdateDate    Date                    `json:"updateDate"`
	Accounts      []PortfolioAccountInput `json:"accounts"`
	AccountsCount int                     `json:"accountsCount"`
	TotalAmount   Money                   `json:"totalAmount"`
	Totals        PortfolioTotals         `json:"totals"`
	SyncMode      SyncMode                `json:"syncMode"`
}

// AccuracyRecord attests whether the non-balance data of an (owner,
// account-type) pair is accurate, and when that was last checked.
type AccuracyRecord struct {
	LastUpdated time.Time `json:"lastUpdated"`
	IsAccurate  bool      `json:"isAccurate"`
	Source      string    `json:"source,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// PerformanceUserAccount is the per-owner record nested in a
// PerformanceEntry.
type PerformanceUserAccount struct {
	AccountName       string      `json:"accountName"`
	AccountType       AccountType `json:"accountType"`
	InvestmentCompany string      `json:"investmentCompany,omitempty"`

	Balance       Money `json:"balance"`
	Contributions Money `json:"contributions"`
	EmployerMatch Money `json:"employerMatch"`
	Gains         Money `json:"gains"`
	Fees          Money `json:"fees"`
	Withdrawals   Money `json:"withdrawals"`

	BalanceUpdatedFrom string     `json:"balanceUpdatedFrom,omitempty"`
	BalanceUpdatedAt   *time.Time `json:"balanceUpdatedAt,omitempty"`

	ManualGroupID   string `json:"manualGroupId,omitempty"`
	ManualGroupName string `json:"manualGroupName,omitempty"`

	DataAccuracy map[AccountType]AccuracyRecord `json:"dataAccuracy,omitempty"`
}

// PerformanceEntry is one per-year tracking entry of the performance
// ledger, holding a balance plus detailed flow fields for each owner.
type PerformanceEntry struct {
	EntryID string `json:"entryId"`
	Year    int    `json:"year"`

	Balance       Money `json:"balance"`
	Contributions Money `json:"contributions,omitzero"`
	EmployerMatch Money `json:"employerMatch,omitzero"`
	Gains         Money `json:"gains,omitzero"`
	Fees          Money `json:"fees,omitzero"`
	Withdrawals   Money `json:"withdrawals,omitzero"`

	Users map[string]*PerformanceUserAccount `json:"users"`
}

// setBalance writes a new balance on the owner's sub-record and mirrors it
// on the entry-level field. This is the only place both assignments exist:
// entries created by the engine represent a single owner, and the
// entry-level balance is a display mirror of that owner's balance.
func (e *PerformanceEntry) setBalance(owner string, balance Money, from string, at time.Time) {
	ua := e.Users[owner]
	if ua == nil {
		return
	}
	ua.Balance = balance
	ua.BalanceUpdatedFrom = from
	ua.BalanceUpdatedAt = &at
	e.Balance = balance
}

// PerformanceStore is the full performance ledger document, keyed by entry ID.
type PerformanceStore map[string]*PerformanceEntry

// Directory row sources under the engine's control.
const (
	SourcePortfolio   = "portfolio"
	SourcePerformance = "performance"
)

// DirectoryEntry is one row of the shared account directory, the
// denormalized read-model of every account known to either ledger.
type DirectoryEntry struct {
	AccountName       string      `json:"accountName"`
	Owner             string      `json:"owner"`
	AccountType       AccountType `json:"accountType,omitempty"`
	InvestmentCompany string      `json:"investmentCompany,omitempty"`
	TaxType           TaxType     `json:"taxType,omitempty"`
	Source            string      `json:"source"`
	Sources           []string    `json:"sources,omitempty"`
}

// ManualAccountGroup fuses several portfolio accounts into one performance
// target. Membership is by portfolio input ID only; the balance is always
// recomputed from the current inputs, TotalBalance is a last-sync display
// cache.
type ManualAccountGroup struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	PerformanceAccountName string     `json:"performanceAccountName,omitempty"`
	Owner                  string     `json:"owner,omitempty"`
	PortfolioAccounts      []string   `json:"portfolioAccounts"`
	TotalBalance           Money      `json:"totalBalance,omitzero"`
	LastSync               *time.Time `json:"lastSync,omitempty"`
}

// ids generates short unique identifiers for groups, records and
// engine-created performance entries.
var ids = shortid.MustNew(1, shortid.DefaultABC, 2342)

func newID() string { return ids.MustGenerate() }
