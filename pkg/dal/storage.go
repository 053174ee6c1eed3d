package dal

import (
	"context"
	"time"
)

// OperationDTO is a DTO of a single recorded teller operation
type OperationDTO struct {
	ID            int64
	Operation     string
	AccountNumber string
	Amount        float64
	Message       string
	CreatedAt     time.Time
}

// Storage is an audit trail of completed operations. Backed by an
// in-memory database by default so nothing survives the process.
type Storage interface {
	Setup(ctx context.Context) error
	RecordOperation(ctx context.Context, op *OperationDTO) error
	ListOperationsByAccount(ctx context.Context, accountNumber string) ([]OperationDTO, error)
}
