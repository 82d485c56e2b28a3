package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/invoice-builder/internal/preview"
	"github.com/invoice-builder/pkg/invoice"
)

type displayTotals struct {
	SubTotal string `json:"sub_total"`
	Discount string `json:"discount"`
	Tax      string `json:"tax,omitempty"`
	Total    string `json:"total"`
}

type sessionView struct {
	State           invoice.State  `json:"state"`
	InvoiceNumber   string         `json:"invoice_number"`
	CashierName     string         `json:"cashier_name"`
	CustomerName    string         `json:"customer_name"`
	DiscountPercent string         `json:"discount_percent"`
	TaxPercent      string         `json:"tax_percent"`
	Items           []invoice.Item `json:"items"`
	Totals          invoice.Totals `json:"totals"`
	Display         displayTotals  `json:"display"`
}

type headerRequest struct {
	InvoiceNumber   *string `json:"invoice_number"`
	CashierName     *string `json:"cashier_name"`
	CustomerName    *string `json:"customer_name"`
	DiscountPercent *string `json:"discount_percent"`
	TaxPercent      *string `json:"tax_percent"`
}

type editItemRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// view must be called with s.mu held.
func (s *Server) view() sessionView {
	t := s.session.Totals()
	sym := s.opts.CurrencySymbol
	d := displayTotals{
		SubTotal: invoice.Money(sym, invoice.FormatAmount(t.SubTotal)),
		Discount: invoice.Money(sym, invoice.FormatAmount(t.DiscountAmount)),
		Total:    invoice.Money(sym, invoice.FormatTotal(t.Total)),
	}
	if s.opts.ShowTax {
		d.Tax = invoice.Money(sym, invoice.FormatAmount(t.TaxAmount))
	}
	return sessionView{
		State:           s.session.State(),
		InvoiceNumber:   s.session.InvoiceNumber(),
		CashierName:     s.session.CashierName(),
		CustomerName:    s.session.CustomerName(),
		DiscountPercent: s.session.DiscountPercent(),
		TaxPercent:      s.session.TaxPercent(),
		Items:           s.session.Items(),
		Totals:          t,
		Display:         d,
	}
}

// mutate runs fn under the session lock and answers with the resulting view.
func (s *Server) mutate(w http.ResponseWriter, action string, status int, fn func() error) {
	s.mu.Lock()
	err := fn()
	v := s.view()
	s.mu.Unlock()

	s.metrics.observe(action, err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, v)
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return newAppError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// getSession godoc
// @Summary  Current session
// @Tags     session
// @Produce  json
// @Success  200 {object} sessionView
// @Router   /api/session [get]
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	v := s.view()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

// updateHeader godoc
// @Summary  Update header fields and percentages
// @Tags     session
// @Accept   json
// @Produce  json
// @Param    body body headerRequest true "fields to change"
// @Success  200 {object} sessionView
// @Failure  409 {object} AppError
// @Router   /api/session/header [put]
func (s *Server) updateHeader(w http.ResponseWriter, r *http.Request) {
	var req headerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.mutate(w, "header", http.StatusOK, func() error {
		sets := []struct {
			v   *string
			set func(string) error
		}{
			{req.InvoiceNumber, s.session.SetInvoiceNumber},
			{req.CashierName, s.session.SetCashierName},
			{req.CustomerName, s.session.SetCustomerName},
			{req.DiscountPercent, s.session.SetDiscountPercent},
			{req.TaxPercent, s.session.SetTaxPercent},
		}
		for _, f := range sets {
			if f.v == nil {
				continue
			}
			if err := f.set(*f.v); err != nil {
				return err
			}
		}
		return nil
	})
}

// addItem godoc
// @Summary  Append a blank row
// @Tags     items
// @Produce  json
// @Success  201 {object} sessionView
// @Failure  409 {object} AppError
// @Router   /api/session/items [post]
func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, "add_item", http.StatusCreated, func() error {
		_, err := s.session.AddItem()
		return err
	})
}

// editItem godoc
// @Summary  Set one field of a row
// @Tags     items
// @Accept   json
// @Produce  json
// @Param    id   path string          true "item id"
// @Param    body body editItemRequest true "field is name, qty or price"
// @Success  200 {object} sessionView
// @Failure  400 {object} AppError
// @Failure  404 {object} AppError
// @Router   /api/session/items/{id} [patch]
func (s *Server) editItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req editItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	field, err := invoice.ParseItemField(req.Field)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mutate(w, "edit_item", http.StatusOK, func() error {
		return s.session.EditItem(id, field, req.Value)
	})
}

// deleteItem godoc
// @Summary  Remove a row
// @Tags     items
// @Produce  json
// @Param    id path string true "item id"
// @Success  200 {object} sessionView
// @Failure  404 {object} AppError
// @Router   /api/session/items/{id} [delete]
func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mutate(w, "delete_item", http.StatusOK, func() error {
		return s.session.DeleteItem(id)
	})
}

// review godoc
// @Summary  Validate and enter review
// @Tags     session
// @Produce  json
// @Success  200 {object} sessionView
// @Failure  422 {object} AppError
// @Router   /api/session/review [post]
func (s *Server) review(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, "review", http.StatusOK, s.session.Review)
}

// closeReview godoc
// @Summary  Leave review without changes
// @Tags     session
// @Produce  json
// @Success  200 {object} sessionView
// @Failure  409 {object} AppError
// @Router   /api/session/close [post]
func (s *Server) closeReview(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, "close", http.StatusOK, s.session.Close)
}

// nextInvoice godoc
// @Summary  Start the next invoice
// @Tags     session
// @Produce  json
// @Success  200 {object} sessionView
// @Failure  409 {object} AppError
// @Router   /api/session/next [post]
func (s *Server) nextInvoice(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, "next", http.StatusOK, s.session.AdvanceToNext)
}

// showPreview godoc
// @Summary  HTML preview of the reviewed invoice
// @Tags     export
// @Produce  html
// @Success  200 {string} string
// @Failure  409 {object} AppError
// @Router   /api/session/preview [get]
func (s *Server) showPreview(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap, err := s.session.Snapshot()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	opts := preview.Options{CurrencySymbol: s.opts.CurrencySymbol, ShowTax: s.opts.ShowTax}
	if err := preview.Render(&buf, snap, opts); err != nil {
		writeError(w, fmt.Errorf("render preview: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// downloadPDF godoc
// @Summary  Download the reviewed invoice as PDF
// @Tags     export
// @Produce  application/pdf
// @Success  200 {file} file
// @Failure  409 {object} AppError
// @Failure  502 {object} AppError
// @Router   /api/session/export [get]
func (s *Server) downloadPDF(w http.ResponseWriter, r *http.Request) {
	// The snapshot is taken under the lock; rendering works on the copy.
	s.mu.Lock()
	snap, err := s.session.Snapshot()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	res, err := s.exporter.Export(r.Context(), snap)
	s.metrics.exportDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.exports.WithLabelValues("error").Inc()
		log.Printf("[Server] export of invoice %s failed: %v", snap.InvoiceNumber, err)
		writeError(w, newAppError(http.StatusBadGateway, "Export failed: "+err.Error()))
		return
	}
	s.metrics.exports.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(res.FileName))
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Document)))
	if res.Location != "" {
		w.Header().Set("X-Invoice-Location", res.Location)
	}
	w.Write(res.Document)
}
