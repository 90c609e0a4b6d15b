// Package chart reads the default chart of accounts from YAML.
package chart

import (
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Entry is one account in the chart file.
type Entry struct {
	Code           string `yaml:"code"`
	Name           string `yaml:"name"`
	SubType        string `yaml:"subType"`
	Description    string `yaml:"description"`
	OpeningBalance string `yaml:"openingBalance"`
}

// File groups entries by account type; the section decides the type.
type File struct {
	Assets      []Entry `yaml:"assets"`
	Liabilities []Entry `yaml:"liabilities"`
	Equity      []Entry `yaml:"equity"`
	Revenue     []Entry `yaml:"revenue"`
	Expenses    []Entry `yaml:"expenses"`
}

// Load reads and parses the chart at path.
func Load(path string) ([]domain.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart of accounts: %w", err)
	}
	return Parse(data)
}

// Parse converts chart YAML into accounts. Normal balances are left for the account service to derive.
func Parse(data []byte) ([]domain.Account, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse chart of accounts: %w", err)
	}

	sections := []struct {
		accountType domain.AccountType
		entries     []Entry
	}{
		{domain.Asset, f.Assets},
		{domain.Liability, f.Liabilities},
		{domain.Equity, f.Equity},
		{domain.Revenue, f.Revenue},
		{domain.Expense, f.Expenses},
	}

	var accounts []domain.Account
	for _, s := range sections {
		for _, e := range s.entries {
			opening := decimal.Zero
			if e.OpeningBalance != "" {
				d, err := decimal.NewFromString(e.OpeningBalance)
				if err != nil {
					return nil, fmt.Errorf("account %s: invalid openingBalance %q", e.Code, e.OpeningBalance)
				}
				opening = d
			}
			accounts = append(accounts, domain.Account{
				Code:           strings.TrimSpace(e.Code),
				Name:           strings.TrimSpace(e.Name),
				AccountType:    s.accountType,
				SubType:        domain.AccountSubType(strings.ToUpper(e.SubType)),
				Description:    e.Description,
				OpeningBalance: opening,
			})
		}
	}
	return accounts, nil
}
