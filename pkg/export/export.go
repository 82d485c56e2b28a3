// pkg/export/export.go

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/invoice-builder/pkg/invoice"
)

// Renderer turns an invoice into a document.
type Renderer interface {
	Render(w io.Writer, inv invoice.Invoice) error
	ContentType() string
	Extension() string
}

// Recorder keeps a ledger of issued documents.
type Recorder interface {
	Record(ctx context.Context, inv invoice.Invoice, res Result) error
}

// Result describes one exported document.
type Result struct {
	FileName    string
	ContentType string
	Location    string
	Size        int
	Document    []byte
}

var ErrNoRenderer = errors.New("export: no renderer configured")

// Exporter renders an invoice once and hands the document to the optional
// store and recorder. It never touches the session the invoice came from.
type Exporter struct {
	Renderer Renderer
	Store    Store
	Recorder Recorder
}

// FileName returns the download name for an invoice number, e.g.
// invoice-INV-0007.pdf.
func FileName(number, ext string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, number)
	return "invoice-" + safe + ext
}

func (e *Exporter) Export(ctx context.Context, inv invoice.Invoice) (Result, error) {
	if e.Renderer == nil {
		return Result{}, ErrNoRenderer
	}

	var buf bytes.Buffer
	if err := e.Renderer.Render(&buf, inv); err != nil {
		return Result{}, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}

	res := Result{
		FileName:    FileName(inv.InvoiceNumber, e.Renderer.Extension()),
		ContentType: e.Renderer.ContentType(),
		Size:        buf.Len(),
		Document:    buf.Bytes(),
	}

	if e.Store != nil {
		loc, err := e.Store.Put(ctx, res.FileName, res.ContentType, res.Document)
		if err != nil {
			return Result{}, fmt.Errorf("store invoice %s: %w", inv.InvoiceNumber, err)
		}
		res.Location = loc
	}

	if e.Recorder != nil {
		if err := e.Recorder.Record(ctx, inv, res); err != nil {
			return Result{}, fmt.Errorf("record invoice %s: %w", inv.InvoiceNumber, err)
		}
	}

	log.Printf("[Export] %s (%d bytes) %s", res.FileName, res.Size, res.Location)
	return res, nil
}
