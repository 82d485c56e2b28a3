// Package archive keeps a Postgres ledger of exported invoices. Only issued
// documents are recorded; editing sessions are never stored.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/invoice-builder/pkg/export"
	"github.com/invoice-builder/pkg/invoice"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id               BIGSERIAL PRIMARY KEY,
	invoice_number   TEXT NOT NULL,
	cashier_name     TEXT NOT NULL,
	customer_name    TEXT NOT NULL,
	invoice_date     TIMESTAMPTZ NOT NULL,
	discount_percent TEXT NOT NULL DEFAULT '',
	tax_percent      TEXT NOT NULL DEFAULT '',
	sub_total        DOUBLE PRECISION NOT NULL,
	discount_amount  DOUBLE PRECISION NOT NULL,
	tax_amount       DOUBLE PRECISION NOT NULL,
	total            DOUBLE PRECISION NOT NULL,
	file_name        TEXT NOT NULL,
	location         TEXT NOT NULL DEFAULT '',
	exported_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS invoice_items (
	invoice_id  BIGINT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
	position    INT NOT NULL,
	description TEXT NOT NULL,
	quantity    BIGINT NOT NULL,
	unit_cost   DOUBLE PRECISION NOT NULL,
	amount      DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (invoice_id, position)
);
CREATE INDEX IF NOT EXISTS invoices_invoice_number_idx ON invoices (invoice_number);
`

const insertInvoice = `INSERT INTO invoices
	(invoice_number, cashier_name, customer_name, invoice_date, discount_percent, tax_percent,
	 sub_total, discount_amount, tax_amount, total, file_name, location)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id`

const insertItem = `INSERT INTO invoice_items
	(invoice_id, position, description, quantity, unit_cost, amount)
	VALUES ($1, $2, $3, $4, $5, $6)`

// Ledger records exported invoices. It satisfies export.Recorder.
type Ledger struct {
	db *sql.DB
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*Ledger, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping ledger: %w", err)
	}
	return New(db), nil
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Migrate creates the ledger tables when they are missing.
func (l *Ledger) Migrate(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate ledger: %w", err)
	}
	return nil
}

// Record writes the invoice and its items in one transaction.
func (l *Ledger) Record(ctx context.Context, inv invoice.Invoice, res export.Result) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, insertInvoice,
		inv.InvoiceNumber, inv.CashierName, inv.CustomerName, inv.InvoiceDate,
		inv.DiscountPercent, inv.TaxPercent,
		inv.SubTotal, inv.DiscountAmount, inv.TaxAmount, inv.Total,
		res.FileName, res.Location,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert invoice %s: %w", inv.InvoiceNumber, err)
	}

	for i, it := range inv.Items {
		if _, err := tx.ExecContext(ctx, insertItem, id, i, it.Description, it.Quantity, it.UnitCost, it.Amount); err != nil {
			return fmt.Errorf("insert item %d of invoice %s: %w", i, inv.InvoiceNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log.Printf("[Archive] recorded invoice %s as #%d", inv.InvoiceNumber, id)
	return nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}
