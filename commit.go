package acctsync

import (
	"fmt"
	"strings"
)

// buildPortfolioRecord assembles an immutable record from an update
// session: each row is annotated with its canonical name and the update
// date, and the totals are computed once at commit time.
func buildPortfolioRecord(inputs []PortfolioAccountInput, mode SyncMode, on Date) PortfolioRecord {
	record := PortfolioRecord{
		ID:         newID(),
		UpdateDate: on,
		SyncMode:   mode,
		Accounts:   make([]PortfolioAccountInput, 0, len(inputs)),
	}
	for _, input := range inputs {
		if input.ID == "" {
			input.ID = newID()
		}
		input.AccountName = input.CanonicalName()
		input.UpdateDate = on
		record.Accounts = append(record.Accounts, input)

		record.TotalAmount = record.TotalAmount.Add(input.Amount)
		switch bucket := &record.Totals; input.AccountType {
		case HSA:
			bucket.HSA = bucket.HSA.Add(input.Amount)
		case ESPP:
			bucket.ESPP = bucket.ESPP.Add(input.Amount)
		case Brokerage:
			bucket.Brokerage = bucket.Brokerage.Add(input.Amount)
		default:
			// Retirement accounts bucket by tax treatment; an after-tax or
			// unknown treatment counts with taxable brokerage money.
			switch input.TaxType {
			case TaxFree:
				bucket.TaxFree = bucket.TaxFree.Add(input.Amount)
			case TaxDeferred:
				bucket.TaxDeferred = bucket.TaxDeferred.Add(input.Amount)
			default:
				bucket.Brokerage = bucket.Brokerage.Add(input.Amount)
			}
		}
	}
	record.AccountsCount = len(record.Accounts)
	return record
}

// CommitPortfolioUpdate appends a new portfolio record built from the given
// update session. Records are append-only; committing never rewrites
// history. The committed record is returned.
func (e *Engine) CommitPortfolioUpdate(inputs []PortfolioAccountInput, mode SyncMode, on Date) (PortfolioRecord, error) {
	if mode == "" {
		mode = BalanceOnly
	}
	if mode != BalanceOnly && mode != Detailed {
		return PortfolioRecord{}, fmt.Errorf("unknown sync mode %q", mode)
	}
	if on.IsZero() {
		now := e.now()
		on = NewDate(now.Date())
	}

	// Setup fields may be padded from hand entry; committed rows are
	// stored trimmed so every later comparison starts clean.
	for i := range inputs {
		inputs[i].Owner = strings.TrimSpace(inputs[i].Owner)
		inputs[i].InvestmentCompany = strings.TrimSpace(inputs[i].InvestmentCompany)
		inputs[i].Description = strings.TrimSpace(inputs[i].Description)
	}

	records, rev, err := loadDocument[[]PortfolioRecord](e.Store, DocPortfolioRecords)
	if err != nil {
		return PortfolioRecord{}, err
	}

	record := buildPortfolioRecord(inputs, mode, on)
	records = append(records, record)

	if err := saveDocument(e.Store, DocPortfolioRecords, records, rev); err != nil {
		return PortfolioRecord{}, err
	}
	return record, nil
}
