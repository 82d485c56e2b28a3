package archive

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/invoice-builder/pkg/export"
	"github.com/invoice-builder/pkg/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice() invoice.Invoice {
	return invoice.Invoice{
		InvoiceNumber: "5",
		CashierName:   "Asha",
		CustomerName:  "Ravi",
		InvoiceDate:   time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{Description: "Pen", UnitCost: 10, Quantity: 3, Amount: 30},
			{Description: "Ink", UnitCost: 2.5, Quantity: 2, Amount: 5},
		},
		SubTotal: 35,
		Total:    35,
	}
}

func TestRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	inv := testInvoice()
	res := export.Result{FileName: "invoice-5.pdf", Location: "/tmp/invoice-5.pdf"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertInvoice)).
		WithArgs("5", "Asha", "Ravi", inv.InvoiceDate, "", "", 35.0, 0.0, 0.0, 35.0, "invoice-5.pdf", "/tmp/invoice-5.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta(insertItem)).
		WithArgs(int64(11), 0, "Pen", 3, 10.0, 30.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertItem)).
		WithArgs(int64(11), 1, "Ink", 2, 2.5, 5.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, New(db).Record(context.Background(), inv, res))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRollsBackOnItemFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertInvoice)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(regexp.QuoteMeta(insertItem)).
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err = New(db).Record(context.Background(), testInvoice(), export.Result{FileName: "invoice-5.pdf"})
	assert.ErrorContains(t, err, "insert item 0 of invoice 5")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS invoices")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, New(db).Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
