package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/depop-deal-finder/internal/models"
)

const (
	DefaultDomain         = "https://www.depop.com"
	DefaultCurrencySymbol = "$"
)

type DepopParser struct {
	signatures     Signatures
	domain         *url.URL
	currencySymbol string
	logger         *slog.Logger
}

type Option func(*DepopParser)

func WithSignatures(s Signatures) Option {
	return func(p *DepopParser) {
		p.signatures = s
	}
}

func WithCurrencySymbol(symbol string) Option {
	return func(p *DepopParser) {
		p.currencySymbol = symbol
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *DepopParser) {
		p.logger = logger.With("component", "parser")
	}
}

// NewDepopParser builds a parser resolving card links against domain.
func NewDepopParser(domain string, opts ...Option) (*DepopParser, error) {
	if domain == "" {
		domain = DefaultDomain
	}
	base, err := url.Parse(domain)
	if err != nil {
		return nil, fmt.Errorf("invalid domain %q: %w", domain, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("domain must be an absolute URL, got %q", domain)
	}

	p := &DepopParser{
		signatures:     DefaultSignatures(),
		domain:         base,
		currencySymbol: DefaultCurrencySymbol,
		logger:         slog.Default().With("component", "parser"),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.signatures.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *DepopParser) Extract(html string) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &Extraction{Products: []models.Product{}}

	doc.Find(p.signatures.selector(KindCard)).Each(func(i int, card *goquery.Selection) {
		link, err := p.resolveLink(i, card)
		if err != nil {
			p.recordFault(result, err)
			return
		}

		price, err := p.resolvePrice(i, card)
		if err != nil {
			p.recordFault(result, err)
		}

		result.Products = append(result.Products, models.NewProduct(link, price, p.resolveSize(card)))
	})

	p.logger.Debug("extracted products", "count", len(result.Products), "faults", len(result.Faults))

	return result, nil
}

func (p *DepopParser) recordFault(result *Extraction, err error) {
	var pe *ParseError
	if !errors.As(err, &pe) {
		pe = &ParseError{Card: -1, Err: err}
	}
	p.logger.Warn("skipping malformed card field", "card", pe.Card, "field", pe.Field, "value", pe.Value, "error", pe.Err)
	result.Faults = append(result.Faults, pe)
}

func (p *DepopParser) resolveLink(card int, s *goquery.Selection) (string, error) {
	anchor := s.Find(p.signatures.selector(KindLink)).First()
	href, exists := anchor.Attr("href")
	href = strings.TrimSpace(href)
	if anchor.Length() == 0 || !exists || href == "" {
		return "", &ParseError{Card: card, Field: "link", Err: errors.New("anchor not found")}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", &ParseError{Card: card, Field: "link", Value: href, Err: err}
	}

	return p.domain.ResolveReference(ref).String(), nil
}

// resolvePrice prefers the discounted price and falls back to the full price.
// A nil result with a nil error means the card has no price.
func (p *DepopParser) resolvePrice(card int, s *goquery.Selection) (*float64, error) {
	for _, kind := range []NodeKind{KindDiscountPrice, KindFullPrice} {
		node := s.Find(p.signatures.selector(kind)).First()
		if node.Length() == 0 {
			continue
		}

		text := p.stripCurrency(node.Text())
		if text == "" {
			continue
		}

		amount, err := parseAmount(text)
		if err != nil {
			return nil, &ParseError{Card: card, Field: "price", Value: strings.TrimSpace(node.Text()), Err: err}
		}
		return &amount, nil
	}

	return nil, nil
}

func (p *DepopParser) resolveSize(s *goquery.Selection) *string {
	node := s.Find(p.signatures.selector(KindSize)).First()
	if node.Length() == 0 {
		return nil
	}

	size := strings.TrimSpace(node.Text())
	if size == "" {
		return nil
	}
	return &size
}

func (p *DepopParser) stripCurrency(text string) string {
	text = strings.TrimSpace(text)
	if p.currencySymbol != "" {
		text = strings.ReplaceAll(text, p.currencySymbol, "")
	}
	return strings.TrimSpace(text)
}

func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.New("not a finite amount")
	}
	if amount < 0 {
		return 0, errors.New("negative amount")
	}
	return amount, nil
}
