package casestudy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

func date(y int) *time.Time {
	ts := time.Date(y, time.March, 1, 0, 0, 0, 0, time.UTC)
	return &ts
}

func TestRecord_Year(t *testing.T) {
	y, ok := Record{ID: "a", Date: date(2021)}.Year()
	assert.True(t, ok)
	assert.Equal(t, 2021, y)

	_, ok = Record{ID: "b"}.Year()
	assert.False(t, ok)
}

func TestRecord_Text_SkipsEmptyFields(t *testing.T) {
	r := Record{ID: "a", Title: "Flood plan", Abstract: "  ", Outcomes: "Trust rose."}
	assert.Equal(t, "Flood plan Trust rose.", r.Text())
}

func TestRecord_OutcomeText_FallsBack(t *testing.T) {
	assert.Equal(t, "o", Record{Outcomes: "o", Description: "d"}.OutcomeText())
	assert.Equal(t, "d a", Record{Description: "d", Abstract: "a"}.OutcomeText())
}

func TestValidateCorpus(t *testing.T) {
	err := ValidateCorpus(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInputError(err))

	err = ValidateCorpus([]Record{{ID: "a"}, {ID: "a"}})
	require.Error(t, err)
	assert.True(t, errors.IsInputError(err))

	err = ValidateCorpus([]Record{{ID: "a"}, {ID: ""}})
	require.Error(t, err)
	assert.True(t, errors.IsInputError(err))

	assert.NoError(t, ValidateCorpus([]Record{{ID: "a"}, {ID: "b"}}))
}

func TestLimit(t *testing.T) {
	rs := []Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	assert.Len(t, Limit(rs, 2), 2)
	assert.Len(t, Limit(rs, 0), 3)
	assert.Len(t, Limit(rs, 10), 3)
}

func TestYears(t *testing.T) {
	rs := []Record{{ID: "a", Date: date(2022)}, {ID: "b", Date: date(2020)}, {ID: "c", Date: date(2022)}, {ID: "d"}}
	assert.Equal(t, []int{2020, 2022}, Years(rs))
}

func TestStaticStore(t *testing.T) {
	store := StaticStore{Records: []Record{{ID: "a"}, {ID: "b"}}}
	got, err := store.FetchCaseStudies(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []Record{{ID: "a"}}, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.FetchCaseStudies(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

// ─────────────────────────────────────────────────────────────────────────────
// FieldTable
// ─────────────────────────────────────────────────────────────────────────────

func TestFieldTable_FirstNonEmptyCandidateWins(t *testing.T) {
	doc := map[string]any{
		"_id":     "cs-7",
		"id":      "",
		"name":    "Coastal Recovery",
		"summary": "Community-led recovery.",
		"results": "Trust improved by 12%.",
	}
	assert.Equal(t, "cs-7", DefaultFieldTable.String(doc, AttrID))
	assert.Equal(t, "Coastal Recovery", DefaultFieldTable.String(doc, AttrTitle))
	assert.Equal(t, "Community-led recovery.", DefaultFieldTable.String(doc, AttrDescription))
	assert.Equal(t, "Trust improved by 12%.", DefaultFieldTable.String(doc, AttrOutcomes))
}

func TestFieldTable_NestedKeys(t *testing.T) {
	doc := map[string]any{"location": map[string]any{"country": "Kenya"}}
	assert.Equal(t, "Kenya", DefaultFieldTable.String(doc, AttrCountry))
}

func TestFieldTable_Strings(t *testing.T) {
	doc := map[string]any{
		"tags":     []any{"Governance", map[string]any{"name": "Infrastructure"}, "Governance", ""},
		"keywords": "flood, early warning ,",
	}
	assert.Equal(t, []string{"Governance", "Infrastructure"}, DefaultFieldTable.Strings(doc, AttrDimensions))
	assert.Equal(t, []string{"flood", "early warning"}, DefaultFieldTable.Strings(doc, AttrKeywords))
}

func TestFieldTable_Time(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
		year int
		ok   bool
	}{
		{"rfc3339", map[string]any{"date": "2021-06-01T10:00:00Z"}, 2021, true},
		{"iso date", map[string]any{"published_at": "2019-02-03"}, 2019, true},
		{"numeric year", map[string]any{"year": float64(2018)}, 2018, true},
		{"year string", map[string]any{"year": "2017"}, 2017, true},
		{"garbage", map[string]any{"date": "last spring"}, 0, false},
		{"absent", map[string]any{}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, ok := DefaultFieldTable.Time(tc.doc, AttrDate)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				require.NotNil(t, ts)
				assert.Equal(t, tc.year, ts.Year())
			}
		})
	}
}

func TestFieldTable_FromDocument(t *testing.T) {
	doc := map[string]any{
		"id":          "cs-1",
		"title":       "Health Hubs",
		"methodology": "Mixed-methods survey",
		"dimensions":  []any{"Healthcare Systems"},
		"country":     "Chile",
		"date":        "2020-05-05",
	}
	r, err := DefaultFieldTable.FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "cs-1", r.ID)
	assert.Equal(t, []string{"Healthcare Systems"}, r.Dimensions)
	assert.Equal(t, "Chile", r.Country)
	y, _ := r.Year()
	assert.Equal(t, 2020, y)
	assert.Equal(t, "", r.Abstract, "absent text fields are empty strings")

	_, err = DefaultFieldTable.FromDocument(map[string]any{"title": "no id"})
	require.Error(t, err)
	assert.True(t, errors.IsInputError(err))
}

//Personal.AI order the ending
