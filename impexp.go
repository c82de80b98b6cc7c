package acctsync

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// this file handles the import/export format for portfolio update rows.
// It is a plain CSV with a header, easy to produce from any spreadsheet.

// csv columns, in pinned order. The flow columns are only present in
// detailed mode.
var csvBaseHeader = []string{"owner", "taxType", "accountType", "investmentCompany", "description", "amount", "updateDate"}
var csvFlowHeader = []string{"contributions", "employerMatch", "gains", "fees", "withdrawals"}

// parseCSVAmount reads a human-entered amount cell. Currency symbols and
// thousands separators are tolerated; anything that still does not parse
// coerces to zero rather than failing the import.
func parseCSVAmount(cell string) Money {
	cell = strings.TrimSpace(cell)
	cell = strings.ReplaceAll(cell, "$", "")
	cell = strings.ReplaceAll(cell, ",", "")
	if cell == "" {
		return Money{}
	}
	value, err := decimal.NewFromString(cell)
	if err != nil {
		return Money{}
	}
	return M(value, "")
}

// ImportPortfolioCSV reads portfolio update rows from r. The sync mode is
// detected from the header: a file carrying the flow columns is a detailed
// update. Unknown columns are ignored; missing identity cells leave the
// field empty (the sync pass decides what to skip).
func ImportPortfolioCSV(r io.Reader) ([]PortfolioAccountInput, SyncMode, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, BalanceOnly, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("could not read csv header: %w", err)
	}

	column := make(map[string]int, len(header))
	for i, name := range header {
		column[strings.TrimSpace(name)] = i
	}
	cell := func(row []string, name string) string {
		i, ok := column[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	mode := BalanceOnly
	if _, ok := column["contributions"]; ok {
		mode = Detailed
	}

	var inputs []PortfolioAccountInput
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, mode, fmt.Errorf("could not read csv row: %w", err)
		}
		input := PortfolioAccountInput{
			ID:                newID(),
			Owner:             cell(row, "owner"),
			TaxType:           TaxType(cell(row, "taxType")),
			AccountType:       AccountType(cell(row, "accountType")),
			InvestmentCompany: cell(row, "investmentCompany"),
			Description:       cell(row, "description"),
			Amount:            parseCSVAmount(cell(row, "amount")),
		}
		if date := cell(row, "updateDate"); date != "" {
			if on, err := ParseDate(date); err == nil {
				input.UpdateDate = on
			}
		}
		if mode == Detailed {
			input.Contributions = parseCSVAmount(cell(row, "contributions"))
			input.EmployerMatch = parseCSVAmount(cell(row, "employerMatch"))
			input.Gains = parseCSVAmount(cell(row, "gains"))
			input.Fees = parseCSVAmount(cell(row, "fees"))
			input.Withdrawals = parseCSVAmount(cell(row, "withdrawals"))
		}
		inputs = append(inputs, input)
	}
	return inputs, mode, nil
}

// ExportPortfolioCSV writes a committed portfolio record to w in the
// import format, so an exported file can be re-imported as the next update
// session's starting point.
func ExportPortfolioCSV(w io.Writer, record PortfolioRecord) error {
	writer := csv.NewWriter(w)

	header := csvBaseHeader
	if record.SyncMode == Detailed {
		header = append(append([]string{}, csvBaseHeader...), csvFlowHeader...)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("could not write csv header: %w", err)
	}

	for _, account := range record.Accounts {
		row := []string{
			account.Owner,
			string(account.TaxType),
			string(account.AccountType),
			account.InvestmentCompany,
			account.Description,
			account.Amount.Decimal().String(),
			account.UpdateDate.String(),
		}
		if record.SyncMode == Detailed {
			row = append(row,
				account.Contributions.Decimal().String(),
				account.EmployerMatch.Decimal().String(),
				account.Gains.Decimal().String(),
				account.Fees.Decimal().String(),
				account.Withdrawals.Decimal().String(),
			)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("could not write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
