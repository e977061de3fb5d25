package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/maltedev/depop-deal-finder/internal/models"
)

const (
	NotAvailable = "N/A"
	Separator    = "--------------------"
	DateLayout   = "02-01-2006 15:04:05"
)

// Appender persists a report block. storage.AppendLog satisfies it.
type Appender interface {
	Append(data []byte) error
}

type Reporter struct {
	out      io.Writer
	log      Appender
	currency string
	now      func() time.Time
}

type Option func(*Reporter)

func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

func WithCurrencySymbol(symbol string) Option {
	return func(r *Reporter) {
		r.currency = symbol
	}
}

func New(out io.Writer, log Appender, opts ...Option) *Reporter {
	r := &Reporter{
		out:      out,
		log:      log,
		currency: "$",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Write prints products to the output and appends a dated block to the log.
func (r *Reporter) Write(products []models.Product) error {
	if _, err := io.WriteString(r.out, r.Format(products)); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if err := r.log.Append([]byte(r.LogBlock(products))); err != nil {
		return err
	}

	return nil
}

// Format renders the console report.
func (r *Reporter) Format(products []models.Product) string {
	var b strings.Builder
	for _, p := range products {
		r.writeFields(&b, p)
		b.WriteString(Separator)
		b.WriteString("\n\n")
	}
	return b.String()
}

// LogBlock renders the block appended to the log file for one run.
func (r *Reporter) LogBlock(products []models.Product) string {
	var b strings.Builder
	b.WriteString("Date: ")
	b.WriteString(r.now().Format(DateLayout))
	b.WriteByte('\n')
	for _, p := range products {
		r.writeFields(&b, p)
	}
	return b.String()
}

func (r *Reporter) writeFields(b *strings.Builder, p models.Product) {
	fmt.Fprintf(b, "Link: %s\n", p.Link)
	fmt.Fprintf(b, "Price: %s\n", r.formatPrice(p))
	fmt.Fprintf(b, "Size: %s\n", formatSize(p))
}

func (r *Reporter) formatPrice(p models.Product) string {
	price, ok := p.PriceValue()
	if !ok {
		return NotAvailable
	}
	return r.currency + strconv.FormatFloat(price, 'f', 2, 64)
}

func formatSize(p models.Product) string {
	size, ok := p.SizeValue()
	if !ok {
		return NotAvailable
	}
	return size
}
