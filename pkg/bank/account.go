package bank

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

// AccountType is a type of a bank account
type AccountType string

// Supported account types
const (
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeChecking AccountType = "Checking"
)

// TransactionType identifies the direction of a transaction
type TransactionType string

// Supported transaction types
const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
)

// Transaction is a single balance changing event.
// Amount is signed: positive for deposits, negative for withdrawals.
// Never mutated once recorded.
type Transaction struct {
	Timestamp time.Time
	Type      TransactionType
	Amount    float64
}

// NowService provides current time
type NowService interface {
	Now() time.Time
}

type systemNowService struct{}

func (systemNowService) Now() time.Time {
	return time.Now()
}

// IDGenerator produces collision-free opaque account numbers
type IDGenerator func() string

func uuidGenerator() string {
	return uuid.NewV4().String()
}

const reportBorder = "------------------------------"

// Account holds a single holder's balance and its transaction log.
// Balance never goes negative and always equals the initial balance
// plus the sum of all signed transaction amounts.
type Account struct {
	mu           sync.Mutex
	number       string
	holderName   string
	accountType  AccountType
	balance      float64
	creationDate time.Time
	transactions []Transaction
	now          NowService
}

// AccountOpt is an option of an account
type AccountOpt func(a *Account)

// WithNumberGenerator will set generator used to assign the account number
func WithNumberGenerator(gen IDGenerator) AccountOpt {
	return func(a *Account) {
		a.number = gen()
	}
}

// WithAccountNow will set the clock used for the creation date
// and transaction timestamps
func WithAccountNow(now NowService) AccountOpt {
	return func(a *Account) {
		a.now = now
	}
}

// NewAccount returns an account with a fresh unique number and an empty
// transaction log. An empty accountType defaults to Savings.
func NewAccount(holderName string, initialBalance float64, accountType AccountType, opts ...AccountOpt) (*Account, error) {
	if math.IsNaN(initialBalance) || math.IsInf(initialBalance, 0) {
		return nil, errInvalidArgument("Initial balance must be a number.")
	}
	if initialBalance < 0 {
		return nil, errInvalidArgument("Initial balance cannot be negative.")
	}
	if accountType == "" {
		accountType = AccountTypeSavings
	}
	account := &Account{
		holderName:  holderName,
		accountType: accountType,
		balance:     initialBalance,
		now:         systemNowService{},
	}
	for _, opt := range opts {
		opt(account)
	}
	if account.number == "" {
		account.number = uuidGenerator()
	}
	account.creationDate = account.now.Now()
	return account, nil
}

// Deposit increases the balance and records a Deposit transaction
func (a *Account) Deposit(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", errInvalidArgument("Deposit amount must be a number.")
	}
	if amount <= 0 {
		return "", errInvalidArgument("Deposit amount must be positive.")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance += amount
	a.addTransaction(TransactionTypeDeposit, amount)
	return fmt.Sprintf("Deposited $%.2f. New balance: $%.2f", amount, a.balance), nil
}

// Withdraw decreases the balance and records a Withdrawal transaction.
// Fails with ErrInsufficientFunds when amount exceeds the balance leaving
// the account untouched.
func (a *Account) Withdraw(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", errInvalidArgument("Withdrawal amount must be a number.")
	}
	if amount <= 0 {
		return "", errInvalidArgument("Withdrawal amount must be positive.")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if amount > a.balance {
		return "", ErrInsufficientFunds
	}
	a.balance -= amount
	a.addTransaction(TransactionTypeWithdrawal, -amount)
	return fmt.Sprintf("Withdrew $%.2f. New balance: $%.2f", amount, a.balance), nil
}

// addTransaction must be called with mu held
func (a *Account) addTransaction(trxType TransactionType, amount float64) {
	a.transactions = append(a.transactions, Transaction{
		Timestamp: a.now.Now(),
		Type:      trxType,
		Amount:    amount,
	})
}

// Number returns the opaque unique account number
func (a *Account) Number() string {
	return a.number
}

// HolderName returns the account holder name
func (a *Account) HolderName() string {
	return a.holderName
}

// Type returns the account type
func (a *Account) Type() AccountType {
	return a.accountType
}

// CreationDate returns the date the account was created
func (a *Account) CreationDate() time.Time {
	return a.creationDate
}

// Balance returns the current balance
func (a *Account) Balance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Transactions returns a copy of the transaction log in append order
func (a *Account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	transactions := make([]Transaction, len(a.transactions))
	copy(transactions, a.transactions)
	return transactions
}

// Details returns a fixed-format multi-line account summary
func (a *Account) Details() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var details strings.Builder
	details.WriteString(fmt.Sprintf("Account Number: %v\n", a.number))
	details.WriteString(fmt.Sprintf("Account Holder: %v\n", a.holderName))
	details.WriteString(fmt.Sprintf("Account Type: %v\n", a.accountType))
	details.WriteString(fmt.Sprintf("Balance: $%.2f\n", a.balance))
	details.WriteString(fmt.Sprintf("Creation Date: %v\n", a.creationDate.Format("2006-01-02")))
	return details.String()
}

// FormatTransactionHistory returns a bordered report with one line per
// transaction in chronological order
func (a *Account) FormatTransactionHistory() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.transactions) == 0 {
		return "No transactions yet."
	}

	var history strings.Builder
	history.WriteString(reportBorder + "\nTransaction History:\n" + reportBorder + "\n")
	for _, trx := range a.transactions {
		history.WriteString(fmt.Sprintf("%v - %-10s: $%8.2f\n",
			trx.Timestamp.Format("2006-01-02 15:04:05"), string(trx.Type), trx.Amount))
	}
	history.WriteString(reportBorder)
	return history.String()
}
