package acctsync

import (
	"time"
)

// DefaultAccuracyMaxAgeHours is how long an attestation stays trustworthy:
// 30 days.
const DefaultAccuracyMaxAgeHours = 720

// AccuracyAttestation is the user's statement about an (owner,
// account-type) pair's non-balance data.
type AccuracyAttestation struct {
	IsAccurate bool
	Source     string
	Notes      string
}

// AccuracyStatus is the answer to an accuracy check.
type AccuracyStatus struct {
	IsAccurate  bool      `json:"isAccurate"`
	Reason      string    `json:"reason,omitempty"`
	LastUpdated time.Time `json:"lastUpdated,omitzero"`
	Source      string    `json:"source,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// accuracyTarget finds the current-year sub-record that owns the accuracy
// data for (owner, accountType): the owner's record of that account type if
// one exists, else the owner's first record.
func accuracyTarget(perf PerformanceStore, year int, owner string, accountType AccountType) *PerformanceUserAccount {
	var fallback *PerformanceUserAccount
	for _, view := range CandidateAccounts(perf, year) {
		if !normEqual(view.Owner, owner) {
			continue
		}
		if normEqual(string(view.Account.AccountType), string(accountType)) {
			return view.Account
		}
		if fallback == nil {
			fallback = view.Account
		}
	}
	return fallback
}

// MarkAccuracy records an attestation for (owner, accountType) on the
// current-year performance record. It returns false without creating
// anything when the current-year entry or the owner's sub-record does not
// exist: accuracy cannot be recorded for an account that isn't tracked yet.
func (e *Engine) MarkAccuracy(owner string, accountType AccountType, attestation AccuracyAttestation) (bool, error) {
	perf, rev, err := loadDocument[PerformanceStore](e.Store, DocPerformanceStore)
	if err != nil {
		return false, err
	}

	target := accuracyTarget(perf, e.year(), owner, accountType)
	if target == nil {
		return false, nil
	}

	if target.DataAccuracy == nil {
		target.DataAccuracy = make(map[AccountType]AccuracyRecord)
	}
	target.DataAccuracy[accountType] = AccuracyRecord{
		LastUpdated: e.now(),
		IsAccurate:  attestation.IsAccurate,
		Source:      attestation.Source,
		Notes:       attestation.Notes,
	}

	if err := saveDocument(e.Store, DocPerformanceStore, perf, rev); err != nil {
		return false, err
	}
	return true, nil
}

// CheckAccuracy reports whether the (owner, accountType) data is currently
// attested accurate. Records older than maxAgeHours are stale regardless of
// the stored flag; maxAgeHours <= 0 uses the default. The check never
// fails, even when the current-year entry itself doesn't exist.
func (e *Engine) CheckAccuracy(owner string, accountType AccountType, maxAgeHours int) (AccuracyStatus, error) {
	if maxAgeHours <= 0 {
		maxAgeHours = DefaultAccuracyMaxAgeHours
	}

	perf, _, err := loadDocument[PerformanceStore](e.Store, DocPerformanceStore)
	if err != nil {
		return AccuracyStatus{}, err
	}

	target := accuracyTarget(perf, e.year(), owner, accountType)
	if target == nil {
		return AccuracyStatus{IsAccurate: false, Reason: "no data"}, nil
	}
	record, ok := target.DataAccuracy[accountType]
	if !ok {
		return AccuracyStatus{IsAccurate: false, Reason: "no data"}, nil
	}

	age := e.now().Sub(record.LastUpdated)
	if age > time.Duration(maxAgeHours)*time.Hour {
		return AccuracyStatus{IsAccurate: false, Reason: "stale", LastUpdated: record.LastUpdated}, nil
	}
	return AccuracyStatus{
		IsAccurate:  record.IsAccurate,
		LastUpdated: record.LastUpdated,
		Source:      record.Source,
		Notes:       record.Notes,
	}, nil
}
