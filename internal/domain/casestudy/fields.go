package casestudy

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// Attribute names a canonical record attribute.
type Attribute string

const (
	AttrID          Attribute = "id"
	AttrTitle       Attribute = "title"
	AttrDescription Attribute = "description"
	AttrAbstract    Attribute = "abstract"
	AttrMethodology Attribute = "methodology"
	AttrOutcomes    Attribute = "outcomes"
	AttrDimensions  Attribute = "dimensions"
	AttrKeywords    Attribute = "keywords"
	AttrCountry     Attribute = "country"
	AttrDate        Attribute = "date"
)

// FieldTable maps each canonical attribute to an ordered list of candidate
// document keys. The first candidate holding a non-empty value wins. Dotted
// keys address nested objects.
type FieldTable map[Attribute][]string

// DefaultFieldTable covers the document shapes the content stores emit.
var DefaultFieldTable = FieldTable{
	AttrID:          {"id", "_id", "uuid", "slug"},
	AttrTitle:       {"title", "name", "headline"},
	AttrDescription: {"description", "summary", "body", "content"},
	AttrAbstract:    {"abstract", "excerpt", "overview"},
	AttrMethodology: {"methodology", "methods", "research_methods", "approach"},
	AttrOutcomes:    {"outcomes", "results", "impact", "findings"},
	AttrDimensions:  {"dimensions", "resilience_dimensions", "categories", "tags"},
	AttrKeywords:    {"keywords", "key_terms", "topics"},
	AttrCountry:     {"country", "location.country", "geography.country", "region_country"},
	AttrDate:        {"date", "published_at", "publication_date", "created_at", "year"},
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"January 2006",
	"2006",
}

// Resolve returns the first non-empty candidate value for attr.
func (t FieldTable) Resolve(doc map[string]any, attr Attribute) (any, bool) {
	for _, key := range t[attr] {
		v, ok := lookup(doc, key)
		if ok && !isEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

// String resolves attr as a trimmed string.
func (t FieldTable) String(doc map[string]any, attr Attribute) string {
	v, ok := t.Resolve(doc, attr)
	if !ok {
		return ""
	}
	return strings.TrimSpace(toString(v))
}

// Strings resolves attr as a list of labels. Arrays of strings, arrays of
// {name|label} objects and comma-separated strings are accepted.
func (t FieldTable) Strings(doc map[string]any, attr Attribute) []string {
	v, ok := t.Resolve(doc, attr)
	if !ok {
		return nil
	}
	var out []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	switch x := v.(type) {
	case []string:
		for _, s := range x {
			add(s)
		}
	case []any:
		for _, item := range x {
			switch it := item.(type) {
			case map[string]any:
				if name, ok := it["name"]; ok {
					add(toString(name))
				} else if label, ok := it["label"]; ok {
					add(toString(label))
				}
			default:
				add(toString(it))
			}
		}
	case string:
		for _, s := range strings.Split(x, ",") {
			add(s)
		}
	default:
		add(toString(x))
	}
	return dedupe(out)
}

// Time resolves attr as a date. Bare numeric years are accepted.
func (t FieldTable) Time(doc map[string]any, attr Attribute) (*time.Time, bool) {
	v, ok := t.Resolve(doc, attr)
	if !ok {
		return nil, false
	}
	switch x := v.(type) {
	case float64:
		return yearDate(int(x))
	case int:
		return yearDate(x)
	case int64:
		return yearDate(int(x))
	case time.Time:
		return &x, true
	}
	s := strings.TrimSpace(toString(v))
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			ts = ts.UTC()
			return &ts, true
		}
	}
	return nil, false
}

// FromDocument maps a raw content-store document onto a Record using t.
func (t FieldTable) FromDocument(doc map[string]any) (Record, error) {
	r := Record{
		ID:          t.String(doc, AttrID),
		Title:       t.String(doc, AttrTitle),
		Description: t.String(doc, AttrDescription),
		Abstract:    t.String(doc, AttrAbstract),
		Methodology: t.String(doc, AttrMethodology),
		Outcomes:    t.String(doc, AttrOutcomes),
		Dimensions:  t.Strings(doc, AttrDimensions),
		Keywords:    t.Strings(doc, AttrKeywords),
		Country:     t.String(doc, AttrCountry),
	}
	if d, ok := t.Time(doc, AttrDate); ok {
		r.Date = d
	}
	if err := r.Validate(); err != nil {
		return Record{}, errors.Wrap(err, errors.ErrCodeInputInvalid, "document has no usable id").
			WithDetail(fmt.Sprintf("title=%q", r.Title))
	}
	return r, nil
}

func yearDate(y int) (*time.Time, bool) {
	if y < 1000 || y > 9999 {
		return nil, false
	}
	ts := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &ts, true
}

func lookup(doc map[string]any, key string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case fmt.Stringer:
		return x.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

//Personal.AI order the ending
