package acctsync

import "strings"

// taxLabel maps a tax treatment to the label conventionally used in an
// account's display name.
func taxLabel(taxType TaxType) string {
	switch taxType {
	case TaxFree:
		return "Roth"
	case TaxDeferred:
		return "Traditional"
	case AfterTax:
		return "Taxable"
	default:
		// Unknown treatments pass through verbatim.
		return string(taxType)
	}
}

// GenerateAccountName builds the canonical display name of an account from
// its structured setup fields. The name doubles as the primary matching key
// between the two ledgers, so it must be deterministic: same inputs, same
// string, on every call.
//
// Missing fields degrade gracefully; an all-empty input yields "".
func GenerateAccountName(owner string, taxType TaxType, accountType AccountType, investmentCompany, description string) string {
	var b strings.Builder

	owner = strings.TrimSpace(owner)
	if owner != "" {
		if strings.EqualFold(owner, "joint") {
			b.WriteString("Joint ")
		} else {
			b.WriteString(owner)
			b.WriteString("'s ")
		}
	}

	if company := strings.TrimSpace(investmentCompany); company != "" {
		b.WriteString(company)
		b.WriteString(" ")
	}

	if accountType != "" {
		b.WriteString(string(accountType))
	}

	// The tax treatment only disambiguates retirement accounts: a Roth vs
	// Traditional IRA is a different account, a "Taxable Brokerage" is noise.
	if taxType != "" && (accountType == IRA || accountType == Account401k) {
		b.WriteString(" (")
		b.WriteString(taxLabel(taxType))
		b.WriteString(")")
	}

	if description := strings.TrimSpace(description); description != "" {
		b.WriteString(" - ")
		b.WriteString(description)
	}

	return strings.TrimSpace(b.String())
}

// CanonicalName returns the canonical name of a portfolio input row.
func (a PortfolioAccountInput) CanonicalName() string {
	return GenerateAccountName(a.Owner, a.TaxType, a.AccountType, a.InvestmentCompany, a.Description)
}
