package acctsync

import (
	"bytes"
	"strings"
	"testing"
)

func TestImportPortfolioCSV_BalanceOnly(t *testing.T) {
	csv := `owner,taxType,accountType,investmentCompany,description,amount,updateDate
Alex,Tax-Deferred,401k,Fidelity,,"$10,000.50",2026-03-14
Joint,After-Tax,Brokerage,Schwab,house fund,7500,2026-03-14
Sam,,HSA,,,not-a-number,
`
	inputs, mode, err := ImportPortfolioCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if mode != BalanceOnly {
		t.Errorf("mode = %q, want balance-only", mode)
	}
	if len(inputs) != 3 {
		t.Fatalf("imported %d rows, want 3", len(inputs))
	}

	if !inputs[0].Amount.Equal(M(10000.50, "")) {
		t.Errorf("row 0 amount = %s, want 10000.50 (currency symbol stripped)", inputs[0].Amount)
	}
	if inputs[0].UpdateDate != NewDate(2026, 3, 14) {
		t.Errorf("row 0 updateDate = %s, want 2026-03-14", inputs[0].UpdateDate)
	}
	if inputs[1].Description != "house fund" {
		t.Errorf("row 1 description = %q, want %q", inputs[1].Description, "house fund")
	}
	// A garbage amount coerces to zero, it never aborts the import.
	if !inputs[2].Amount.IsZero() {
		t.Errorf("row 2 amount = %s, want zero", inputs[2].Amount)
	}
	if inputs[0].ID == "" || inputs[0].ID == inputs[1].ID {
		t.Error("imported rows did not get distinct IDs")
	}
}

func TestImportPortfolioCSV_DetectsDetailedMode(t *testing.T) {
	csv := `owner,taxType,accountType,investmentCompany,description,amount,updateDate,contributions,employerMatch,gains,fees,withdrawals
Alex,Tax-Deferred,401k,Fidelity,,10000,2026-03-14,500,250,1200,-15,0
`
	inputs, mode, err := ImportPortfolioCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if mode != Detailed {
		t.Errorf("mode = %q, want detailed", mode)
	}
	row := inputs[0]
	if !row.Contributions.Equal(M(500, "")) || !row.EmployerMatch.Equal(M(250, "")) {
		t.Errorf("flows = %s/%s, want 500/250", row.Contributions, row.EmployerMatch)
	}
	if !row.Fees.Equal(M(-15, "")) {
		t.Errorf("fees = %s, want -15", row.Fees)
	}
}

func TestImportPortfolioCSV_Empty(t *testing.T) {
	inputs, mode, err := ImportPortfolioCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(inputs) != 0 || mode != BalanceOnly {
		t.Errorf("empty import = %d rows, mode %q", len(inputs), mode)
	}
}

func TestExportPortfolioCSV_RoundTrip(t *testing.T) {
	record := buildPortfolioRecord([]PortfolioAccountInput{
		{ID: "acc-1", Owner: "Alex", TaxType: TaxDeferred, AccountType: Account401k, InvestmentCompany: "Fidelity", Amount: M(10000.50, "")},
		{ID: "acc-2", Owner: "Joint", AccountType: Brokerage, InvestmentCompany: "Schwab", Description: "house fund", Amount: M(7500, "")},
	}, BalanceOnly, NewDate(2026, 3, 14))

	var buf bytes.Buffer
	if err := ExportPortfolioCSV(&buf, record); err != nil {
		t.Fatalf("export: %v", err)
	}

	// The header order is part of the format.
	firstLine, _, _ := strings.Cut(buf.String(), "\n")
	if want := "owner,taxType,accountType,investmentCompany,description,amount,updateDate"; firstLine != want {
		t.Errorf("header = %q, want %q", firstLine, want)
	}

	inputs, mode, err := ImportPortfolioCSV(&buf)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if mode != BalanceOnly {
		t.Errorf("re-imported mode = %q, want balance-only", mode)
	}
	if len(inputs) != 2 {
		t.Fatalf("re-imported %d rows, want 2", len(inputs))
	}
	for i, input := range inputs {
		original := record.Accounts[i]
		if input.Owner != original.Owner ||
			input.TaxType != original.TaxType ||
			input.AccountType != original.AccountType ||
			input.InvestmentCompany != original.InvestmentCompany ||
			input.Description != original.Description {
			t.Errorf("row %d setup fields = %+v, want %+v", i, input, original)
		}
		if !input.Amount.Equal(original.Amount) {
			t.Errorf("row %d amount = %s, want %s", i, input.Amount, original.Amount)
		}
		if input.UpdateDate != original.UpdateDate {
			t.Errorf("row %d updateDate = %s, want %s", i, input.UpdateDate, original.UpdateDate)
		}
	}
}
