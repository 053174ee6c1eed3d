package dal

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// This has to be here to let go mods work
	_ "github.com/mattn/go-sqlite3"

	"github.com/ymatsepa/banking-system/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

type sqlStorage struct {
	db *sql.DB
}

func (s *sqlStorage) Setup(ctx context.Context) error {
	logger.Info(ctx, "Setup SQL storage")
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS operations(
	id integer NOT NULL PRIMARY KEY AUTOINCREMENT,
	operation nvarchar(30) NOT NULL,
	account_number nvarchar(255) NOT NULL,
	amount real NOT NULL,
	message ntext NOT NULL,
	created_at timestamp NOT NULL
);
`)
	return errors.Wrap(err, "Failed to setup storage")
}

func (s *sqlStorage) RecordOperation(ctx context.Context, op *OperationDTO) error {
	if _, err := s.db.ExecContext(ctx, `
	INSERT INTO operations(
		operation,
		account_number,
		amount,
		message,
		created_at
	)
	VALUES($1, $2, $3, $4, $5)
	`, op.Operation, op.AccountNumber, op.Amount, op.Message, op.CreatedAt); err != nil {
		return errors.Wrap(err, "Failed to record operation")
	}
	return nil
}

func (s *sqlStorage) ListOperationsByAccount(ctx context.Context, accountNumber string) ([]OperationDTO, error) {
	res, err := s.db.QueryContext(ctx, `
	SELECT
		id, operation, account_number, amount, message, created_at
	FROM operations WHERE account_number = $1
	ORDER BY id`, accountNumber)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var operations []OperationDTO
	for res.Next() {
		var op OperationDTO
		if err := res.Scan(
			&op.ID,
			&op.Operation,
			&op.AccountNumber,
			&op.Amount,
			&op.Message,
			&op.CreatedAt,
		); err != nil {
			return nil, err
		}
		operations = append(operations, op)
	}
	return operations, res.Err()
}

// SQLStorageOpt is an option of SQL storage
type SQLStorageOpt func(s *sqlStorage)

// WithSQLDb will set an explicit db instance for a storage
func WithSQLDb(db *sql.DB) SQLStorageOpt {
	return func(s *sqlStorage) {
		s.db = db
	}
}

// NewSQLStorage returns an instance of an audit storage
func NewSQLStorage(opts ...SQLStorageOpt) (Storage, error) {
	storage := &sqlStorage{}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}
