// Package draft loads invoice drafts from YAML files so invoices can be
// issued from the command line.
package draft

import (
	"fmt"
	"io"

	"github.com/invoice-builder/pkg/invoice"
	"gopkg.in/yaml.v3"
)

// Draft mirrors the invoice form.
type Draft struct {
	InvoiceNumber   string         `yaml:"invoice_number"`
	CashierName     string         `yaml:"cashier"`
	CustomerName    string         `yaml:"customer"`
	DiscountPercent string         `yaml:"discount_percent"`
	TaxPercent      string         `yaml:"tax_percent"`
	Items           []invoice.Item `yaml:"items"`
}

// Decode reads a single YAML draft.
func Decode(r io.Reader) (*Draft, error) {
	var d Draft
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

// Apply fills s from the draft through the regular session operations. The
// session must be in the Editing state; its existing rows are replaced.
// Every row field is written as given, so a row without qty or price fails
// review instead of taking the blank-row defaults.
func (d *Draft) Apply(s *invoice.Session) error {
	if d.InvoiceNumber != "" {
		if err := s.SetInvoiceNumber(d.InvoiceNumber); err != nil {
			return err
		}
	}
	for _, set := range []struct {
		fn func(string) error
		v  string
	}{
		{s.SetCashierName, d.CashierName},
		{s.SetCustomerName, d.CustomerName},
		{s.SetDiscountPercent, d.DiscountPercent},
		{s.SetTaxPercent, d.TaxPercent},
	} {
		if err := set.fn(set.v); err != nil {
			return err
		}
	}

	for _, it := range s.Items() {
		if err := s.DeleteItem(it.ID); err != nil {
			return err
		}
	}
	for _, src := range d.Items {
		row, err := s.AddItem()
		if err != nil {
			return err
		}
		edits := []struct {
			field invoice.ItemField
			value string
		}{
			{invoice.FieldName, src.Name},
			{invoice.FieldQty, src.Qty},
			{invoice.FieldPrice, src.Price},
		}
		for _, e := range edits {
			if err := s.EditItem(row.ID, e.field, e.value); err != nil {
				return err
			}
		}
	}
	return nil
}
