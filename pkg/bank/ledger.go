package bank

import (
	"fmt"
	"strings"
	"sync"
)

// Ledger is the registry of accounts keyed by account number.
// It is the system of record for which accounts exist.
// Listing follows insertion order so reports are stable.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*Account
	order    []string

	idGen IDGenerator
	now   NowService
}

// LedgerOpt is an option of a ledger
type LedgerOpt func(l *Ledger)

// WithIDGenerator will set generator used for numbers of new accounts
func WithIDGenerator(gen IDGenerator) LedgerOpt {
	return func(l *Ledger) {
		l.idGen = gen
	}
}

// WithNowService will set the clock used for creation dates
// and transaction timestamps
func WithNowService(now NowService) LedgerOpt {
	return func(l *Ledger) {
		l.now = now
	}
}

// NewLedger returns an empty ledger
func NewLedger(opts ...LedgerOpt) *Ledger {
	l := &Ledger{
		accounts: map[string]*Account{},
		idGen:    uuidGenerator,
		now:      systemNowService{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateAccount constructs an account and registers it under its number.
// Construction failures are converted to a failure message at this boundary
// and yield a nil account. Deposit and withdrawal failures never are, those
// stay with the caller.
func (l *Ledger) CreateAccount(holderName string, initialBalance float64, accountType AccountType) (string, *Account) {
	account, err := NewAccount(holderName, initialBalance, accountType,
		WithNumberGenerator(l.idGen),
		WithAccountNow(l.now),
	)
	if err != nil {
		return fmt.Sprintf("Account creation failed: %v", err), nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[account.Number()] = account
	l.order = append(l.order, account.Number())
	return fmt.Sprintf("Account created successfully. Account number: %v", account.Number()), account
}

// GetAccount is a pure lookup. Returns nil when number is unknown,
// an unknown number is not an error condition.
func (l *Ledger) GetAccount(number string) *Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[number]
}

// DeleteAccount removes the account if present. A second delete of the
// same number yields the not-found message.
func (l *Ledger) DeleteAccount(number string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[number]; !ok {
		return fmt.Sprintf("Account %v not found.", number)
	}
	delete(l.accounts, number)
	for i, n := range l.order {
		if n == number {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return fmt.Sprintf("Account %v deleted successfully.", number)
}

// ListAccounts returns a bordered report with details of every account
// in insertion order
func (l *Ledger) ListAccounts() string {
	l.mu.Lock()
	accounts := make([]*Account, 0, len(l.order))
	for _, number := range l.order {
		accounts = append(accounts, l.accounts[number])
	}
	l.mu.Unlock()

	if len(accounts) == 0 {
		return "No accounts in the system."
	}

	var report strings.Builder
	report.WriteString(reportBorder + "\nList of All Accounts:\n" + reportBorder + "\n")
	for _, account := range accounts {
		report.WriteString(account.Details())
		report.WriteString(reportBorder + "\n")
	}
	return report.String()
}
