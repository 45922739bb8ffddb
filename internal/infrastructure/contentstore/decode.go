// Package contentstore adapts external case-study sources to
// casestudy.ContentStore.
package contentstore

import (
	"bufio"
	"bytes"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// envelopeKeys are the wrapper keys accepted around a document array.
var envelopeKeys = []string{"items", "data", "results", "case_studies"}

// decodeDocuments accepts a JSON array of documents or an object wrapping
// one under an envelope key.
func decodeDocuments(data []byte) ([]map[string]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '[':
		var docs []map[string]any
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeContentStoreDecoding, "malformed document array")
		}
		return docs, nil
	case '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeContentStoreDecoding, "malformed response object")
		}
		for _, k := range envelopeKeys {
			raw, ok := env[k]
			if !ok {
				continue
			}
			var docs []map[string]any
			if err := json.Unmarshal(raw, &docs); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeContentStoreDecoding, "malformed document array").WithDetail("key=" + k)
			}
			return docs, nil
		}
		return nil, errors.New(errors.ErrCodeContentStoreDecoding, "response object has no document array")
	default:
		return nil, errors.New(errors.ErrCodeContentStoreDecoding, "response is neither an array nor an object")
	}
}

// decodeLines reads one JSON document per non-blank line.
func decodeLines(data []byte) ([]map[string]any, error) {
	var docs []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeContentStoreDecoding, "malformed json line").
				WithDetail("line=" + strconv.Itoa(line))
		}
		docs = append(docs, doc)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeContentStoreDecoding, "failed to read json lines")
	}
	return docs, nil
}

// ParseRecords decodes an in-memory export: a JSON array, an enveloped
// array or JSON lines.
func ParseRecords(data []byte, log logging.Logger) ([]casestudy.Record, error) {
	docs, err := decodeDocuments(data)
	if err != nil {
		var lineErr error
		if docs, lineErr = decodeLines(data); lineErr != nil {
			return nil, err
		}
	}
	return toRecords(docs, casestudy.DefaultFieldTable, 0, log), nil
}

// toRecords maps documents through table, skipping those without a usable
// id, and stops at limit when limit > 0.
func toRecords(docs []map[string]any, table casestudy.FieldTable, limit int, log logging.Logger) []casestudy.Record {
	records := make([]casestudy.Record, 0, len(docs))
	skipped := 0
	for i, doc := range docs {
		if limit > 0 && len(records) == limit {
			break
		}
		r, err := table.FromDocument(doc)
		if err != nil {
			skipped++
			log.Debug("skipping document", logging.Int("index", i), logging.Err(err))
			continue
		}
		records = append(records, r)
	}
	if skipped > 0 {
		log.Warn("documents skipped", logging.Int("skipped", skipped), logging.Int("kept", len(records)))
	}
	return records
}

//Personal.AI order the ending
