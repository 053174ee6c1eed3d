package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	uuid "github.com/satori/go.uuid"

	"github.com/ymatsepa/banking-system/config"
	"github.com/ymatsepa/banking-system/pkg/app"
	"github.com/ymatsepa/banking-system/pkg/bank"
	"github.com/ymatsepa/banking-system/pkg/dal"
	"github.com/ymatsepa/banking-system/pkg/lib-core-golang/diag"
	"github.com/ymatsepa/banking-system/pkg/teller"
)

var logger = diag.CreateLogger()

const menu = `
Menu:
 1) Create Account
 2) Deposit
 3) Withdraw
 4) Check Balance
 5) Account Details
 6) Transaction History
 7) List All Accounts
 8) Delete Account
 9) Audit Trail
 0) Exit`

type ui struct {
	svc                teller.Service
	defaultAccountType bank.AccountType
	in                 *bufio.Reader
	out                io.Writer
}

func (u *ui) readLine(prompt string) (string, error) {
	fmt.Fprint(u.out, prompt)
	line, err := u.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (u *ui) readAmount(prompt string) (float64, bool, error) {
	line, err := u.readLine(prompt)
	if err != nil {
		return 0, false, err
	}
	amount, parseErr := strconv.ParseFloat(line, 64)
	if parseErr != nil {
		u.render(teller.Result{Kind: teller.ResultWarning, Message: "Amount must be a number."})
		return 0, false, nil
	}
	return amount, true, nil
}

func (u *ui) render(res teller.Result) {
	switch res.Kind {
	case teller.ResultSuccess:
		fmt.Fprintln(u.out, "[success]", res.Message)
	case teller.ResultWarning:
		fmt.Fprintln(u.out, "[warning]", res.Message)
	default:
		fmt.Fprintln(u.out, res.Message)
	}
}

// renderOutcome displays the operation result. Deposit and withdrawal
// validation failures arrive as errors and are shown as warnings here,
// the teller never converts them itself.
func (u *ui) renderOutcome(res teller.Result, err error) {
	if err != nil {
		if bank.IsInvalidArgument(err) || bank.IsInsufficientFunds(err) {
			u.render(teller.Result{Kind: teller.ResultWarning, Message: err.Error()})
			return
		}
		logger.WithError(err).Error(nil, "Operation failed")
		u.render(teller.Result{Kind: teller.ResultWarning, Message: "Operation failed."})
		return
	}
	u.render(res)
}

func (u *ui) run() error {
	for {
		fmt.Fprintln(u.out, menu)
		choice, err := u.readLine("> ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		ctx := diag.ContextWithRequestID(context.Background(), uuid.NewV4().String())
		done, err := u.dispatch(ctx, choice)
		if err == io.EOF || done {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (u *ui) dispatch(ctx context.Context, choice string) (bool, error) {
	switch choice {
	case "1":
		holder, err := u.readLine("Account Holder Name: ")
		if err != nil {
			return false, err
		}
		amount, ok, err := u.readAmount("Initial Balance: ")
		if err != nil || !ok {
			return false, err
		}
		accountType, err := u.readLine("Account Type (Savings/Checking): ")
		if err != nil {
			return false, err
		}
		if accountType == "" {
			accountType = string(u.defaultAccountType)
		}
		res, err := u.svc.CreateAccount(ctx, holder, amount, bank.AccountType(accountType))
		u.renderOutcome(res, err)

	case "2":
		number, err := u.readLine("Account Number: ")
		if err != nil {
			return false, err
		}
		amount, ok, err := u.readAmount("Amount: ")
		if err != nil || !ok {
			return false, err
		}
		res, err := u.svc.Deposit(ctx, number, amount)
		u.renderOutcome(res, err)

	case "3":
		number, err := u.readLine("Account Number: ")
		if err != nil {
			return false, err
		}
		amount, ok, err := u.readAmount("Amount: ")
		if err != nil || !ok {
			return false, err
		}
		res, err := u.svc.Withdraw(ctx, number, amount)
		u.renderOutcome(res, err)

	case "4":
		number, err := u.readLine("Account Number: ")
		if err != nil {
			return false, err
		}
		res, err := u.svc.Balance(ctx, number)
		u.renderOutcome(res, err)

	case "5":
		number, err := u.readLine("Account Number: ")
		if err != nil {
			return false, err
		}
		res, err := u.svc.Details(ctx, number)
		u.renderOutcome(res, err)

	case "6":
		number, err := u.readLine("Account Number: ")
		if err != nil {
			return false, err
		}
		res, err := u.svc.History(ctx, number)
		u.renderOutcome(res, err)

	case "7":
		res, err := u.svc.ListAccounts(ctx)
		u.renderOutcome(res, err)

	case "8":
		number, err := u.readLine("Account Number: ")
		if err != nil {
			return false, err
		}
		res, err := u.svc.DeleteAccount(ctx, number)
		u.renderOutcome(res, err)

	case "9":
		number, err := u.readLine("Account Number: ")
		if err != nil {
			return false, err
		}
		operations, err := u.svc.ListAuditTrail(ctx, number)
		if err != nil {
			u.renderOutcome(teller.Result{}, err)
			return false, nil
		}
		if len(operations) == 0 {
			u.render(teller.Result{Kind: teller.ResultText, Message: "No operations recorded."})
			return false, nil
		}
		for _, op := range operations {
			fmt.Fprintf(u.out, "%v - %-14s: %v\n",
				op.CreatedAt.Format("2006-01-02 15:04:05"), op.Operation, op.Message)
		}

	case "0":
		return true, nil

	default:
		u.render(teller.Result{Kind: teller.ResultWarning, Message: "Unknown menu option."})
	}
	return false, nil
}

func main() {
	appCfg := config.LoadAppConfig()

	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogLevel(appCfg.Log.Level.Value())
	})

	injector := app.BootstrapServices(appCfg)
	ctx := diag.ContextWithRequestID(context.Background(), uuid.NewV4().String())

	if err := injector(func(storage dal.Storage) error {
		return storage.Setup(ctx)
	}); err != nil {
		logger.WithError(err).Error(ctx, "Failed to setup audit storage")
		os.Exit(1)
	}

	if err := injector(func(svc teller.Service) error {
		u := &ui{
			svc:                svc,
			defaultAccountType: bank.AccountType(appCfg.Bank.DefaultAccountType.Value()),
			in:                 bufio.NewReader(os.Stdin),
			out:                os.Stdout,
		}
		return u.run()
	}); err != nil {
		logger.WithError(err).Error(ctx, "Banking system failed")
		os.Exit(1)
	}
}
