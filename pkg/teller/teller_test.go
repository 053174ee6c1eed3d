package teller

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"

	"github.com/ymatsepa/banking-system/pkg/bank"
	"github.com/ymatsepa/banking-system/pkg/dal"
	tst "github.com/ymatsepa/banking-system/pkg/internal/testing"
)

type recordingStorage struct {
	recorded []dal.OperationDTO
}

func (s *recordingStorage) Setup(ctx context.Context) error {
	return nil
}

func (s *recordingStorage) RecordOperation(ctx context.Context, op *dal.OperationDTO) error {
	s.recorded = append(s.recorded, *op)
	return nil
}

func (s *recordingStorage) ListOperationsByAccount(ctx context.Context, accountNumber string) ([]dal.OperationDTO, error) {
	var operations []dal.OperationDTO
	for _, op := range s.recorded {
		if op.AccountNumber == accountNumber {
			operations = append(operations, op)
		}
	}
	return operations, nil
}

func newTestService() (Service, *recordingStorage) {
	storage := &recordingStorage{}
	now := tst.NewMockNowService(time.Date(2019, 7, 15, 10, 30, 0, 0, time.UTC))
	ledger := bank.NewLedger(
		bank.WithIDGenerator(tst.NewSequentialIDGenerator("acc")),
		bank.WithNowService(now),
	)
	svc := NewService(
		WithLedger(ledger),
		WithStorage(storage),
		WithNowService(now),
	)
	return svc, storage
}

func createTestAccount(t *testing.T, svc Service, initialBalance float64) string {
	t.Helper()
	res, err := svc.CreateAccount(context.Background(), faker.Name(), initialBalance, bank.AccountTypeSavings)
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return strings.TrimPrefix(res.Message, "Account created successfully. Account number: ")
}

func Test_Service_CreateAccount(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T, svc Service, storage *recordingStorage)
	}
	tests := []func() testCase{
		func() testCase {
			holder := faker.Name()
			return testCase{
				name: "valid account",
				run: func(t *testing.T, svc Service, storage *recordingStorage) {
					got, err := svc.CreateAccount(context.Background(), holder, 100, bank.AccountTypeChecking)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, ResultSuccess, got.Kind)
					assert.Equal(t, "Account created successfully. Account number: acc-1", got.Message)
					if !assert.Len(t, storage.recorded, 1) {
						return
					}
					assert.Equal(t, "Create Account", storage.recorded[0].Operation)
					assert.Equal(t, "acc-1", storage.recorded[0].AccountNumber)
					assert.Equal(t, float64(100), storage.recorded[0].Amount)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "invalid initial balance becomes a failure message",
				run: func(t *testing.T, svc Service, storage *recordingStorage) {
					got, err := svc.CreateAccount(context.Background(), faker.Name(), -1, bank.AccountTypeSavings)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, ResultSuccess, got.Kind)
					assert.Equal(t, "Account creation failed: Initial balance cannot be negative.", got.Message)
					assert.Empty(t, storage.recorded, "failed creations should not be recorded")
				},
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			svc, storage := newTestService()
			tt.run(t, svc, storage)
		})
	}
}

func Test_Service_Deposit(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T, svc Service, storage *recordingStorage)
	}
	tests := []func() testCase{
		func() testCase {
			return testCase{
				name: "valid deposit",
				run: func(t *testing.T, svc Service, storage *recordingStorage) {
					number := createTestAccount(t, svc, 100)
					got, err := svc.Deposit(context.Background(), number, 50)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, ResultSuccess, got.Kind)
					assert.Equal(t, "Deposited $50.00. New balance: $150.00", got.Message)

					operations, err := svc.ListAuditTrail(context.Background(), number)
					if !assert.NoError(t, err) {
						return
					}
					if !assert.Len(t, operations, 2) {
						return
					}
					assert.Equal(t, "Create Account", operations[0].Operation)
					assert.Equal(t, "Deposit", operations[1].Operation)
					assert.Equal(t, float64(50), operations[1].Amount)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "unknown account",
				run: func(t *testing.T, svc Service, storage *recordingStorage) {
					got, err := svc.Deposit(context.Background(), "acc-"+faker.Word(), 50)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, ResultWarning, got.Kind)
					assert.Equal(t, "Account not found.", got.Message)
					assert.Empty(t, storage.recorded)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "invalid amount propagates",
				run: func(t *testing.T, svc Service, storage *recordingStorage) {
					number := createTestAccount(t, svc, 100)
					_, err := svc.Deposit(context.Background(), number, -1)
					assert.True(t, bank.IsInvalidArgument(err))

					operations, err := svc.ListAuditTrail(context.Background(), number)
					if !assert.NoError(t, err) {
						return
					}
					if !assert.Len(t, operations, 1, "failed deposits should not be recorded") {
						return
					}
					assert.Equal(t, "Create Account", operations[0].Operation)
				},
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			svc, storage := newTestService()
			tt.run(t, svc, storage)
		})
	}
}

func Test_Service_Withdraw(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T, svc Service, storage *recordingStorage)
	}
	tests := []func() testCase{
		func() testCase {
			return testCase{
				name: "valid withdrawal",
				run: func(t *testing.T, svc Service, storage *recordingStorage) {
					number := createTestAccount(t, svc, 100)
					got, err := svc.Withdraw(context.Background(), number, 30)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, ResultSuccess, got.Kind)
					assert.Equal(t, "Withdrew $30.00. New balance: $70.00", got.Message)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "insufficient funds propagates",
				run: func(t *testing.T, svc Service, storage *recordingStorage) {
					number := createTestAccount(t, svc, 100)
					_, err := svc.Withdraw(context.Background(), number, 1000)
					assert.True(t, bank.IsInsufficientFunds(err))

					got, err := svc.Balance(context.Background(), number)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, "Current balance: $100.00", got.Message)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "unknown account",
				run: func(t *testing.T, svc Service, storage *recordingStorage) {
					got, err := svc.Withdraw(context.Background(), "acc-"+faker.Word(), 10)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, ResultWarning, got.Kind)
				},
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			svc, storage := newTestService()
			tt.run(t, svc, storage)
		})
	}
}

func Test_Service_Balance(t *testing.T) {
	svc, _ := newTestService()
	number := createTestAccount(t, svc, 120)

	got, err := svc.Balance(context.Background(), number)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, ResultSuccess, got.Kind)
	assert.Equal(t, "Current balance: $120.00", got.Message)

	got, err = svc.Balance(context.Background(), "acc-"+faker.Word())
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, ResultWarning, got.Kind)
}

func Test_Service_DetailsAndHistory(t *testing.T) {
	svc, _ := newTestService()
	number := createTestAccount(t, svc, 100)

	details, err := svc.Details(context.Background(), number)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, ResultText, details.Kind)
	assert.Contains(t, details.Message, "Account Number: "+number)
	assert.Contains(t, details.Message, "Balance: $100.00")

	history, err := svc.History(context.Background(), number)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, ResultText, history.Kind)
	assert.Equal(t, "No transactions yet.", history.Message)

	missing, err := svc.Details(context.Background(), "acc-"+faker.Word())
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, ResultWarning, missing.Kind)
}

func Test_Service_ListAccounts(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.ListAccounts(context.Background())
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, ResultText, got.Kind)
	assert.Equal(t, "No accounts in the system.", got.Message)

	holder := faker.Name()
	if _, err := svc.CreateAccount(context.Background(), holder, 10, bank.AccountTypeSavings); !assert.NoError(t, err) {
		return
	}
	got, err = svc.ListAccounts(context.Background())
	if !assert.NoError(t, err) {
		return
	}
	assert.Contains(t, got.Message, "Account Holder: "+holder)
}

func Test_Service_DeleteAccount(t *testing.T) {
	svc, _ := newTestService()
	number := createTestAccount(t, svc, 100)

	got, err := svc.DeleteAccount(context.Background(), number)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, ResultSuccess, got.Kind)
	assert.Equal(t, "Account "+number+" deleted successfully.", got.Message)

	got, err = svc.DeleteAccount(context.Background(), number)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "Account "+number+" not found.", got.Message)
}

func Test_Service_ListAuditTrail(t *testing.T) {
	svc, _ := newTestService()
	number := createTestAccount(t, svc, 100)
	if _, err := svc.Deposit(context.Background(), number, 25); !assert.NoError(t, err) {
		return
	}

	operations, err := svc.ListAuditTrail(context.Background(), number)
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, operations, 2) {
		return
	}
	assert.Equal(t, "Create Account", operations[0].Operation, "creation should be listed for the account")
	assert.Equal(t, number, operations[0].AccountNumber)
	assert.Equal(t, float64(100), operations[0].Amount)
	assert.Equal(t, "Deposit", operations[1].Operation)
}

func Test_Service_ListAuditTrail_NoStorage(t *testing.T) {
	svc := NewService(WithLedger(bank.NewLedger()))
	_, err := svc.ListAuditTrail(context.Background(), "acc-"+faker.Word())
	assert.EqualError(t, err, "Audit storage is not configured")
}
