// Package repository is the Store: transactional persistence for
// products, customers, orders, items, payments, idempotency records, and
// audit logs, built around one pgxpool and a single WithTx primitive
// rather than ambient transaction state scattered across call sites.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// DBPool is the subset of *pgxpool.Pool the store and its repositories
// depend on. It exists so tests can substitute pgxmock's pool fake
// without the store caring which one it was handed.
type DBPool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Store owns the connection pool and the transaction boundary every
// higher-level service call runs inside.
type Store struct {
	Pool   DBPool
	Logger zerolog.Logger

	Orders      OrderRepository
	Products    ProductRepository
	Customers   CustomerRepository
	Payments    PaymentRepository
	Idempotency IdempotencyRepository
	Audit       AuditRepository
	Outbox      OutboxRepository
}

// New wires a Store and its sub-repositories around a shared pool.
func New(pool DBPool, logger zerolog.Logger) *Store {
	return &Store{
		Pool:        pool,
		Logger:      logger,
		Orders:      &PostgresOrderRepository{pool: pool, logger: logger.With().Str("repo", "orders").Logger()},
		Products:    &PostgresProductRepository{pool: pool, logger: logger.With().Str("repo", "products").Logger()},
		Customers:   &PostgresCustomerRepository{pool: pool, logger: logger.With().Str("repo", "customers").Logger()},
		Payments:    &PostgresPaymentRepository{pool: pool, logger: logger.With().Str("repo", "payments").Logger()},
		Idempotency: &PostgresIdempotencyRepository{pool: pool, logger: logger.With().Str("repo", "idempotency").Logger()},
		Audit:       &PostgresAuditRepository{pool: pool, logger: logger.With().Str("repo", "audit").Logger()},
		Outbox:      &PostgresOutboxRepository{pool: pool, logger: logger.With().Str("repo", "outbox").Logger()},
	}
}

// WithTx runs fn inside one serializable-or-equivalent transaction,
// committing on success and rolling back on any error or panic. Every
// mutating endpoint runs its writes through exactly one call to this;
// this is that scope.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.Logger.Error().Err(rbErr).Msg("rollback failed after handler error")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
