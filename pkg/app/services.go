package app

import (
	"database/sql"

	"go.uber.org/dig"

	"github.com/ymatsepa/banking-system/config"
	"github.com/ymatsepa/banking-system/pkg/bank"
	"github.com/ymatsepa/banking-system/pkg/dal"
	"github.com/ymatsepa/banking-system/pkg/teller"
)

// Injector is a function that will inject desired services
// to a target function
type Injector func(function interface{}) error

// BootstrapServices setup di container with all app services
func BootstrapServices(appCfg *config.AppConfig) Injector {
	c := dig.New()

	c.Provide(func() (*sql.DB, error) {
		return sql.Open(appCfg.Storage.Driver.Value(), appCfg.Storage.DSN.Value())
	})

	c.Provide(func(db *sql.DB) (dal.Storage, error) {
		return dal.NewSQLStorage(dal.WithSQLDb(db))
	})

	c.Provide(func() *bank.Ledger {
		return bank.NewLedger()
	})

	c.Provide(func(ledger *bank.Ledger, storage dal.Storage) teller.Service {
		return teller.NewService(
			teller.WithLedger(ledger),
			teller.WithStorage(storage),
		)
	})

	return func(function interface{}) error {
		return c.Invoke(function)
	}
}
