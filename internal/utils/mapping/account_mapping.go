package mapping

import (
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Code:           d.Code,
		Name:           d.Name,
		AccountType:    string(d.AccountType),
		NormalBalance:  string(d.NormalBalance),
		SubType:        string(d.SubType),
		Description:    d.Description,
		OpeningBalance: d.OpeningBalance,
		Balance:        d.Balance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Code:           m.Code,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		NormalBalance:  domain.NormalBalance(m.NormalBalance),
		SubType:        domain.AccountSubType(m.SubType),
		Description:    m.Description,
		OpeningBalance: m.OpeningBalance,
		Balance:        m.Balance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	return toDomainSlice(ms, ToDomainAccount)
}

// ToDomainAccountMap indexes converted accounts by code.
func ToDomainAccountMap(ms []models.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		out[m.Code] = ToDomainAccount(m)
	}
	return out
}

// ToDomainAccountActivity converts an activity row.
func ToDomainAccountActivity(m models.AccountActivity) domain.AccountActivity {
	return domain.AccountActivity{
		Account:     ToDomainAccount(m.Account),
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
	}
}

// ToDomainAccountActivitySlice converts activity rows.
func ToDomainAccountActivitySlice(ms []models.AccountActivity) []domain.AccountActivity {
	return toDomainSlice(ms, ToDomainAccountActivity)
}
