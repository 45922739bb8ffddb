package casestudy

import "context"

// ContentStore supplies the corpus snapshot for one analysis run. Implementations
// honour ctx cancellation; the caller bounds the call with a timeout.
type ContentStore interface {
	// FetchCaseStudies returns at most limit records in store order.
	// limit ≤ 0 means the store default.
	FetchCaseStudies(ctx context.Context, limit int) ([]Record, error)
}

// HealthChecker is implemented by stores that can probe their backend.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// StaticStore serves a fixed in-memory corpus. Used by the CLI when records are
// piped in and by tests.
type StaticStore struct {
	Records []Record
}

// FetchCaseStudies implements ContentStore.
func (s StaticStore) FetchCaseStudies(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Record, len(Limit(s.Records, limit)))
	copy(out, Limit(s.Records, limit))
	return out, nil
}

//Personal.AI order the ending
