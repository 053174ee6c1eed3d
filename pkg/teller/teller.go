package teller

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/ymatsepa/banking-system/pkg/bank"
	"github.com/ymatsepa/banking-system/pkg/dal"
	"github.com/ymatsepa/banking-system/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

// ResultKind tells the front end how to style a message
type ResultKind string

// Supported result kinds
const (
	ResultSuccess ResultKind = "success"
	ResultWarning ResultKind = "warning"
	ResultText    ResultKind = "text"
)

// Result is a rendered operation outcome
type Result struct {
	Kind    ResultKind
	Message string
}

var accountNotFound = Result{Kind: ResultWarning, Message: "Account not found."}

// Service routes front end actions to the ledger. Completed balance
// changing operations are recorded to the audit storage. Deposit and
// withdrawal failures are returned as errors, never converted to
// messages here.
type Service interface {
	CreateAccount(ctx context.Context, holderName string, initialBalance float64, accountType bank.AccountType) (Result, error)
	Deposit(ctx context.Context, number string, amount float64) (Result, error)
	Withdraw(ctx context.Context, number string, amount float64) (Result, error)
	Balance(ctx context.Context, number string) (Result, error)
	Details(ctx context.Context, number string) (Result, error)
	History(ctx context.Context, number string) (Result, error)
	ListAccounts(ctx context.Context) (Result, error)
	DeleteAccount(ctx context.Context, number string) (Result, error)
	ListAuditTrail(ctx context.Context, number string) ([]dal.OperationDTO, error)
}

type systemNow struct{}

func (systemNow) Now() time.Time { return time.Now() }

type service struct {
	ledger  *bank.Ledger
	storage dal.Storage
	now     bank.NowService
}

func (svc *service) CreateAccount(ctx context.Context, holderName string, initialBalance float64, accountType bank.AccountType) (Result, error) {
	logger.Debug(ctx, "Creating account for holder %v", holderName)
	msg, account := svc.ledger.CreateAccount(holderName, initialBalance, accountType)
	if account != nil {
		if err := svc.recordOperation(ctx, "Create Account", account.Number(), initialBalance, msg); err != nil {
			return Result{}, err
		}
	}
	return Result{Kind: ResultSuccess, Message: msg}, nil
}

func (svc *service) Deposit(ctx context.Context, number string, amount float64) (Result, error) {
	account := svc.ledger.GetAccount(number)
	if account == nil {
		logger.Warn(ctx, "Deposit to unknown account %v", number)
		return accountNotFound, nil
	}
	msg, err := account.Deposit(amount)
	if err != nil {
		return Result{}, err
	}
	if err := svc.recordOperation(ctx, "Deposit", number, amount, msg); err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultSuccess, Message: msg}, nil
}

func (svc *service) Withdraw(ctx context.Context, number string, amount float64) (Result, error) {
	account := svc.ledger.GetAccount(number)
	if account == nil {
		logger.Warn(ctx, "Withdrawal from unknown account %v", number)
		return accountNotFound, nil
	}
	msg, err := account.Withdraw(amount)
	if err != nil {
		return Result{}, err
	}
	if err := svc.recordOperation(ctx, "Withdraw", number, amount, msg); err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultSuccess, Message: msg}, nil
}

func (svc *service) Balance(ctx context.Context, number string) (Result, error) {
	account := svc.ledger.GetAccount(number)
	if account == nil {
		return accountNotFound, nil
	}
	return Result{
		Kind:    ResultSuccess,
		Message: fmt.Sprintf("Current balance: $%.2f", account.Balance()),
	}, nil
}

func (svc *service) Details(ctx context.Context, number string) (Result, error) {
	account := svc.ledger.GetAccount(number)
	if account == nil {
		return accountNotFound, nil
	}
	return Result{Kind: ResultText, Message: account.Details()}, nil
}

func (svc *service) History(ctx context.Context, number string) (Result, error) {
	account := svc.ledger.GetAccount(number)
	if account == nil {
		return accountNotFound, nil
	}
	return Result{Kind: ResultText, Message: account.FormatTransactionHistory()}, nil
}

func (svc *service) ListAccounts(ctx context.Context) (Result, error) {
	return Result{Kind: ResultText, Message: svc.ledger.ListAccounts()}, nil
}

func (svc *service) DeleteAccount(ctx context.Context, number string) (Result, error) {
	msg := svc.ledger.DeleteAccount(number)
	if err := svc.recordOperation(ctx, "Delete Account", number, 0, msg); err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultSuccess, Message: msg}, nil
}

func (svc *service) ListAuditTrail(ctx context.Context, number string) ([]dal.OperationDTO, error) {
	if svc.storage == nil {
		return nil, errors.New("Audit storage is not configured")
	}
	operations, err := svc.storage.ListOperationsByAccount(ctx, number)
	return operations, errors.Wrap(err, "Failed to list audit trail")
}

func (svc *service) recordOperation(ctx context.Context, operation string, number string, amount float64, message string) error {
	if svc.storage == nil {
		return nil
	}
	err := svc.storage.RecordOperation(ctx, &dal.OperationDTO{
		Operation:     operation,
		AccountNumber: number,
		Amount:        amount,
		Message:       message,
		CreatedAt:     svc.now.Now(),
	})
	return errors.Wrap(err, "Failed to record operation")
}

// ServiceOpt is an option of a teller service
type ServiceOpt func(*service)

// WithLedger will init the service with a ledger
func WithLedger(ledger *bank.Ledger) ServiceOpt {
	return func(svc *service) {
		svc.ledger = ledger
	}
}

// WithStorage will init the service with an audit storage
func WithStorage(storage dal.Storage) ServiceOpt {
	return func(svc *service) {
		svc.storage = storage
	}
}

// WithNowService will set the clock used for audit timestamps
func WithNowService(now bank.NowService) ServiceOpt {
	return func(svc *service) {
		svc.now = now
	}
}

// NewService returns an instance of a teller service
func NewService(opts ...ServiceOpt) Service {
	svc := &service{now: systemNow{}}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.ledger == nil {
		svc.ledger = bank.NewLedger()
	}
	return Service(svc)
}
