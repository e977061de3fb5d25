package parser

import (
	"fmt"
	"sort"
	"strings"
)

type NodeKind string

const (
	KindCard          NodeKind = "card"
	KindLink          NodeKind = "link"
	KindDiscountPrice NodeKind = "discount_price"
	KindFullPrice     NodeKind = "full_price"
	KindSize          NodeKind = "size"
)

var kinds = []NodeKind{KindCard, KindLink, KindDiscountPrice, KindFullPrice, KindSize}

// Matcher identifies one kind of node in the listing markup. CSS, when set,
// replaces the selector built from Tag and Classes.
type Matcher struct {
	Tag     string
	Classes []string
	CSS     string
}

func (m Matcher) Selector() string {
	if m.CSS != "" {
		return m.CSS
	}

	var b strings.Builder
	b.WriteString(m.Tag)
	for _, class := range m.Classes {
		b.WriteByte('.')
		b.WriteString(class)
	}
	return b.String()
}

// Signatures maps every node kind the extractor needs to its matcher.
type Signatures map[NodeKind]Matcher

// DefaultSignatures returns the matchers for the current depop.com listing markup.
func DefaultSignatures() Signatures {
	return Signatures{
		KindCard: {
			Tag:     "li",
			Classes: []string{"styles__ProductCardContainer-sc-4aad5806-7", "kDwiaz"},
		},
		KindLink: {
			Tag:     "a",
			Classes: []string{"styles__ProductCard-sc-4aad5806-4", "ffvUlI"},
		},
		KindDiscountPrice: {
			Tag:     "p",
			Classes: []string{"sc-eDnWTT", "Price-styles__DiscountPrice-sc-f7c1dfcc-1", "fRxqiS", "KMEBr"},
		},
		KindFullPrice: {
			Tag:     "p",
			Classes: []string{"sc-eDnWTT", "Price-styles__FullPrice-sc-f7c1dfcc-0", "fRxqiS", "hmFDou"},
		},
		KindSize: {
			Tag:     "p",
			Classes: []string{"sc-eDnWTT", "styles__StyledSizeText-sc-4aad5806-12", "kcKICQ", "cuCvzt"},
		},
	}
}

// Override returns a copy of s with raw CSS selectors applied per kind.
func (s Signatures) Override(css map[string]string) (Signatures, error) {
	out := make(Signatures, len(s))
	for k, m := range s {
		out[k] = m
	}

	for raw, selector := range css {
		kind := NodeKind(strings.ToLower(strings.TrimSpace(raw)))
		if !isKnownKind(kind) {
			return nil, fmt.Errorf("unknown node kind %q", raw)
		}
		selector = strings.TrimSpace(selector)
		if selector == "" {
			continue
		}
		m := out[kind]
		m.CSS = selector
		out[kind] = m
	}

	return out, nil
}

// Validate reports kinds without a usable selector.
func (s Signatures) Validate() error {
	var missing []string
	for _, kind := range kinds {
		if s[kind].Selector() == "" {
			missing = append(missing, string(kind))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing selectors for: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s Signatures) selector(kind NodeKind) string {
	return s[kind].Selector()
}

func isKnownKind(kind NodeKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// KnownKinds lists the node kinds accepted by Override.
func KnownKinds() []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
