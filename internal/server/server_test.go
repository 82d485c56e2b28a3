package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/invoice-builder/pkg/export"
	"github.com/invoice-builder/pkg/invoice"
	"github.com/stretchr/testify/suite"
)

type flakyStore struct {
	fail  bool
	calls int
}

func (f *flakyStore) Put(_ context.Context, name, _ string, _ []byte) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	return "mem://" + name, nil
}

type ServerSuite struct {
	suite.Suite
	store   *flakyStore
	handler http.Handler
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	seq := 0
	sess := invoice.NewSession(
		invoice.WithInvoiceNumber("5"),
		invoice.WithIDSupplier(invoice.IDSupplierFunc(func() string {
			seq++
			return fmt.Sprintf("row%d", seq)
		})),
	)
	s.store = &flakyStore{}
	exp := &export.Exporter{Renderer: export.PDFRenderer{}, Store: s.store}
	s.handler = New(sess, exp, Options{CurrencySymbol: "₹"}).Handler()
}

func (s *ServerSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) view(rec *httptest.ResponseRecorder) sessionView {
	var v sessionView
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (s *ServerSuite) state(rec *httptest.ResponseRecorder) string {
	return s.view(rec).State.String()
}

func (s *ServerSuite) fill() {
	rec := s.do("PUT", "/api/session/header", map[string]string{
		"cashier_name":     "Asha",
		"customer_name":    "Ravi",
		"discount_percent": "10",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	for field, value := range map[string]string{"name": "Pen", "qty": "3", "price": "10.00"} {
		rec = s.do("PATCH", "/api/session/items/row1", editItemRequest{Field: field, Value: value})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}
}

func (s *ServerSuite) TestGetSession() {
	rec := s.do("GET", "/api/session", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("editing", s.state(rec))

	v := s.view(rec)
	s.Equal("5", v.InvoiceNumber)
	s.Equal([]invoice.Item{{ID: "row1", Qty: "1", Price: "1.00"}}, v.Items)
	s.Equal("₹0.00", v.Display.SubTotal)
	s.Equal("₹0", v.Display.Total)
}

func (s *ServerSuite) TestEditAndTotals() {
	s.fill()
	v := s.view(s.do("GET", "/api/session", nil))
	s.Equal(30.0, v.Totals.SubTotal)
	s.Equal("₹30.00", v.Display.SubTotal)
	s.Equal("₹3.00", v.Display.Discount)
	s.Equal("₹27", v.Display.Total)
	s.Empty(v.Display.Tax)
}

func (s *ServerSuite) TestAddAndDeleteItems() {
	rec := s.do("POST", "/api/session/items", nil)
	s.Equal(http.StatusCreated, rec.Code)
	s.Len(s.view(rec).Items, 2)

	rec = s.do("DELETE", "/api/session/items/row1", nil)
	s.Equal(http.StatusOK, rec.Code)
	items := s.view(rec).Items
	s.Require().Len(items, 1)
	s.Equal("row2", items[0].ID)

	rec = s.do("DELETE", "/api/session/items/row1", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestBadRequests() {
	rec := s.do("PATCH", "/api/session/items/row1", editItemRequest{Field: "colour", Value: "red"})
	s.Equal(http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest("PUT", "/api/session/header", strings.NewReader("{"))
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerSuite) TestReviewReportsFields() {
	rec := s.do("POST", "/api/session/review", nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var appErr AppError
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &appErr))
	s.Equal("Validation failed", appErr.Message)
	s.Equal([]invoice.FieldError{
		{Field: "cashierName", Message: "is required"},
		{Field: "customerName", Message: "is required"},
		{Field: "name", ItemID: "row1", Message: "is required"},
	}, appErr.Errors)

	s.Equal("editing", s.state(s.do("GET", "/api/session", nil)))
}

func (s *ServerSuite) TestReviewCloseNext() {
	s.fill()
	rec := s.do("POST", "/api/session/review", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("reviewing", s.state(rec))

	rec = s.do("PATCH", "/api/session/items/row1", editItemRequest{Field: "name", Value: "Ink"})
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do("POST", "/api/session/close", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("editing", s.state(rec))
	s.Equal("Pen", s.view(rec).Items[0].Name)

	s.Equal(http.StatusConflict, s.do("POST", "/api/session/next", nil).Code)

	s.Require().Equal(http.StatusOK, s.do("POST", "/api/session/review", nil).Code)
	rec = s.do("POST", "/api/session/next", nil)
	s.Equal(http.StatusOK, rec.Code)
	v := s.view(rec)
	s.Equal("6", v.InvoiceNumber)
	s.Equal("Asha", v.CashierName)
	s.Equal("Ravi", v.CustomerName)
	s.Equal([]invoice.Item{{ID: "row2", Qty: "1", Price: "1.00"}}, v.Items)
}

func (s *ServerSuite) TestPreview() {
	s.Equal(http.StatusConflict, s.do("GET", "/api/session/preview", nil).Code)

	s.fill()
	s.Require().Equal(http.StatusOK, s.do("POST", "/api/session/review", nil).Code)
	rec := s.do("GET", "/api/session/preview", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/html")
	s.Contains(rec.Body.String(), "₹30.00")
}

func (s *ServerSuite) TestExport() {
	s.Equal(http.StatusConflict, s.do("GET", "/api/session/export", nil).Code)

	s.fill()
	s.Require().Equal(http.StatusOK, s.do("POST", "/api/session/review", nil).Code)
	rec := s.do("GET", "/api/session/export", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("application/pdf", rec.Header().Get("Content-Type"))
	s.Equal(`attachment; filename="invoice-5.pdf"`, rec.Header().Get("Content-Disposition"))
	s.Equal("mem://invoice-5.pdf", rec.Header().Get("X-Invoice-Location"))
	s.True(bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func (s *ServerSuite) TestExportFailureLeavesSessionForRetry() {
	s.fill()
	s.Require().Equal(http.StatusOK, s.do("POST", "/api/session/review", nil).Code)

	s.store.fail = true
	rec := s.do("GET", "/api/session/export", nil)
	s.Equal(http.StatusBadGateway, rec.Code)
	s.Contains(rec.Body.String(), "bucket unavailable")

	v := s.do("GET", "/api/session", nil)
	s.Equal("reviewing", s.state(v))
	s.Equal("Pen", s.view(v).Items[0].Name)

	s.store.fail = false
	rec = s.do("GET", "/api/session/export", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(2, s.store.calls)
}

func (s *ServerSuite) TestHealthAndMetrics() {
	s.Equal(http.StatusOK, s.do("GET", "/healthz", nil).Code)

	s.do("POST", "/api/session/items", nil)
	rec := s.do("GET", "/metrics", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `invoice_session_actions_total{action="add_item",result="ok"} 1`)
}
