// pkg/invoice/session.go

package invoice

import (
	"fmt"
	"strings"
	"time"
)

// State is the editing state of a Session.
type State int

const (
	Editing State = iota
	Reviewing
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Reviewing:
		return "reviewing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "editing":
		*s = Editing
	case "reviewing":
		*s = Reviewing
	default:
		return fmt.Errorf("invoice: unknown state %q", b)
	}
	return nil
}

// ItemField names the editable fields of a line item.
type ItemField int

const (
	FieldName ItemField = iota + 1
	FieldQty
	FieldPrice
)

func (f ItemField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldQty:
		return "qty"
	case FieldPrice:
		return "price"
	default:
		return fmt.Sprintf("ItemField(%d)", int(f))
	}
}

// ParseItemField maps "name", "qty" or "price" to its ItemField.
func ParseItemField(s string) (ItemField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "qty", "quantity":
		return FieldQty, nil
	case "price":
		return FieldPrice, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// DefaultInvoiceNumber seeds a session when no number is supplied.
const DefaultInvoiceNumber = "1"

// Session is the editable state of one invoice. It is owned by a single
// caller and is not safe for concurrent use.
type Session struct {
	invoiceNumber   string
	cashierName     string
	customerName    string
	discountPercent string
	taxPercent      string
	items           []Item
	state           State
	issuedAt        time.Time

	ids IDSupplier
	now func() time.Time
}

// Option configures a new Session.
type Option func(*Session)

// WithInvoiceNumber seeds the invoice number.
func WithInvoiceNumber(number string) Option {
	return func(s *Session) { s.invoiceNumber = number }
}

// WithIDSupplier replaces the UUID based row identifiers.
func WithIDSupplier(ids IDSupplier) Option {
	return func(s *Session) { s.ids = ids }
}

// WithClock sets the time source used for the invoice date.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession returns a session in the Editing state holding one blank row.
func NewSession(opts ...Option) *Session {
	s := &Session{
		invoiceNumber: DefaultInvoiceNumber,
		ids:           UUIDSupplier{},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = []Item{blankItem(s.ids.NewID())}
	return s
}

func (s *Session) State() State            { return s.state }
func (s *Session) InvoiceNumber() string   { return s.invoiceNumber }
func (s *Session) CashierName() string     { return s.cashierName }
func (s *Session) CustomerName() string    { return s.customerName }
func (s *Session) DiscountPercent() string { return s.discountPercent }
func (s *Session) TaxPercent() string      { return s.taxPercent }

// Items returns a copy of the rows in insertion order.
func (s *Session) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Totals aggregates the current rows and percentages.
func (s *Session) Totals() Totals {
	return Aggregate(s.items, s.discountPercent, s.taxPercent)
}

func (s *Session) editable() error {
	if s.state != Editing {
		return ErrReviewing
	}
	return nil
}

func (s *Session) SetInvoiceNumber(v string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.invoiceNumber = v
	return nil
}

func (s *Session) SetCashierName(v string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.cashierName = v
	return nil
}

func (s *Session) SetCustomerName(v string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.customerName = v
	return nil
}

func (s *Session) SetDiscountPercent(v string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.discountPercent = v
	return nil
}

func (s *Session) SetTaxPercent(v string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.taxPercent = v
	return nil
}

// AddItem appends a blank row and returns it.
func (s *Session) AddItem() (Item, error) {
	if err := s.editable(); err != nil {
		return Item{}, err
	}
	it := blankItem(s.ids.NewID())
	s.items = append(s.items, it)
	return it, nil
}

func (s *Session) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// DeleteItem removes the row with the given id. Removing the last remaining
// row is allowed.
func (s *Session) DeleteItem(id string) error {
	if err := s.editable(); err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	items := make([]Item, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	s.items = append(items, s.items[i+1:]...)
	return nil
}

// EditItem sets one field of one row and leaves everything else untouched.
func (s *Session) EditItem(id string, field ItemField, value string) error {
	if err := s.editable(); err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	switch field {
	case FieldName:
		s.items[i].Name = value
	case FieldQty:
		s.items[i].Qty = value
	case FieldPrice:
		s.items[i].Price = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Validate checks the fields required for review. Every violation is
// reported separately.
func (s *Session) Validate() error {
	var fields []FieldError
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			fields = append(fields, FieldError{Field: field, Message: "is required"})
		}
	}
	required("invoiceNumber", s.invoiceNumber)
	required("cashierName", s.cashierName)
	required("customerName", s.customerName)

	for _, it := range s.items {
		if !it.Active() {
			fields = append(fields, FieldError{Field: "name", ItemID: it.ID, Message: "is required"})
		}
		switch {
		case strings.TrimSpace(it.Qty) == "":
			fields = append(fields, FieldError{Field: "qty", ItemID: it.ID, Message: "is required"})
		case ParseAmount(it.Qty) < 1:
			fields = append(fields, FieldError{Field: "qty", ItemID: it.ID, Message: "must be at least 1"})
		}
		switch {
		case strings.TrimSpace(it.Price) == "":
			fields = append(fields, FieldError{Field: "price", ItemID: it.ID, Message: "is required"})
		case ParseAmount(it.Price) < 0.01:
			fields = append(fields, FieldError{Field: "price", ItemID: it.ID, Message: "must be at least 0.01"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Review moves the session into Reviewing. A session that fails validation
// stays in Editing and the *ValidationError is returned.
func (s *Session) Review() error {
	if s.state != Editing {
		return fmt.Errorf("%w: review from %s", ErrInvalidTransition, s.state)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	s.state = Reviewing
	s.issuedAt = s.now()
	return nil
}

// Close leaves Reviewing without touching any data.
func (s *Session) Close() error {
	if s.state != Reviewing {
		return fmt.Errorf("%w: close from %s", ErrInvalidTransition, s.state)
	}
	s.state = Editing
	return nil
}

// AdvanceToNext starts the next invoice: the number is incremented, the rows
// are replaced by one blank row, and names and percentages are kept.
func (s *Session) AdvanceToNext() error {
	if s.state != Reviewing {
		return fmt.Errorf("%w: next from %s", ErrInvalidTransition, s.state)
	}
	s.invoiceNumber = IncrementString(s.invoiceNumber)
	s.items = []Item{blankItem(s.ids.NewID())}
	s.state = Editing
	return nil
}

// Snapshot copies the reviewed invoice for export. It is only available
// while the session is in Reviewing. The invoice date is the time Review
// succeeded, so every snapshot of one review carries the same date.
func (s *Session) Snapshot() (Invoice, error) {
	if s.state != Reviewing {
		return Invoice{}, fmt.Errorf("%w: snapshot from %s", ErrInvalidTransition, s.state)
	}
	t := s.Totals()
	lines := make([]LineItem, 0, len(s.items))
	for _, it := range s.items {
		lines = append(lines, LineItem{
			Description: it.Name,
			UnitCost:    it.UnitPrice(),
			Quantity:    wholeUnits(it.Quantity()),
			Amount:      it.Amount(),
		})
	}
	return Invoice{
		InvoiceNumber:   s.invoiceNumber,
		CashierName:     s.cashierName,
		CustomerName:    s.customerName,
		InvoiceDate:     s.issuedAt,
		Items:           lines,
		DiscountPercent: s.discountPercent,
		TaxPercent:      s.taxPercent,
		SubTotal:        t.SubTotal,
		DiscountAmount:  t.DiscountAmount,
		TaxAmount:       t.TaxAmount,
		Total:           t.Total,
	}, nil
}
