// Package repositories persists analysis artefacts in Neo4j.
package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	driver "github.com/turtacn/Resilience-Insights/internal/infrastructure/database/neo4j"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/knowledgegraph"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const defaultBatchSize = 500

var nodeLabels = map[knowledgegraph.NodeType]string{
	knowledgegraph.NodeCaseStudy: "CaseStudy",
	knowledgegraph.NodeDimension: "Dimension",
	knowledgegraph.NodeKeyword:   "Keyword",
}

type relShape struct {
	relType     string
	sourceLabel string
	targetLabel string
}

var relShapes = map[knowledgegraph.EdgeType]relShape{
	knowledgegraph.EdgeHasDimension: {"HAS_DIMENSION", "CaseStudy", "Dimension"},
	knowledgegraph.EdgeHasKeyword:   {"HAS_KEYWORD", "CaseStudy", "Keyword"},
	knowledgegraph.EdgeSimilarTo:    {"SIMILAR_TO", "CaseStudy", "CaseStudy"},
}

// nodeOrder and edgeOrder fix write order so nodes exist before edges.
var (
	nodeOrder = []knowledgegraph.NodeType{knowledgegraph.NodeCaseStudy, knowledgegraph.NodeDimension, knowledgegraph.NodeKeyword}
	edgeOrder = []knowledgegraph.EdgeType{knowledgegraph.EdgeHasDimension, knowledgegraph.EdgeHasKeyword, knowledgegraph.EdgeSimilarTo}
)

// GraphRepository stores knowledge graphs idempotently with MERGE.
type GraphRepository struct {
	driver    driver.DriverInterface
	logger    logging.Logger
	batchSize int
}

var _ insights.GraphExporter = (*GraphRepository)(nil)

// NewGraphRepository writes in batches of batchSize (default 500).
func NewGraphRepository(d driver.DriverInterface, log logging.Logger, batchSize int) *GraphRepository {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &GraphRepository{driver: d, logger: log, batchSize: batchSize}
}

// EnsureConstraints creates a uniqueness constraint on id per label.
func (r *GraphRepository) EnsureConstraints(ctx context.Context) error {
	_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
		for _, t := range nodeOrder {
			label := nodeLabels[t]
			cypher := fmt.Sprintf("CREATE CONSTRAINT %s_id IF NOT EXISTS FOR (n:%s) REQUIRE n.id IS UNIQUE", strings.ToLower(label), label)
			if _, err := tx.Run(ctx, cypher, nil); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeGraphExportFailed, "failed to create graph constraints")
	}
	return nil
}

// SaveGraph merges every node and edge of g in one write transaction.
func (r *GraphRepository) SaveGraph(ctx context.Context, g *knowledgegraph.Graph) error {
	if g == nil {
		return errors.InvalidParam("graph is required")
	}
	nodes, err := groupNodes(g.Nodes)
	if err != nil {
		return err
	}
	edges, err := groupEdges(g.Edges)
	if err != nil {
		return err
	}

	_, err = r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
		for _, t := range nodeOrder {
			cypher := fmt.Sprintf("UNWIND $rows AS row MERGE (n:%s {id: row.id}) SET n.label = row.label", nodeLabels[t])
			if err := r.runBatched(ctx, tx, cypher, nodes[t]); err != nil {
				return nil, err
			}
		}
		for _, t := range edgeOrder {
			s := relShapes[t]
			cypher := fmt.Sprintf(
				"UNWIND $rows AS row MATCH (a:%s {id: row.source}) MATCH (b:%s {id: row.target}) MERGE (a)-[e:%s]->(b) SET e.weight = row.weight",
				s.sourceLabel, s.targetLabel, s.relType)
			if err := r.runBatched(ctx, tx, cypher, edges[t]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeGraphExportFailed, "failed to save knowledge graph")
	}

	r.logger.Info("knowledge graph saved",
		logging.Int("nodes", len(g.Nodes)),
		logging.Int("edges", len(g.Edges)))
	return nil
}

func (r *GraphRepository) runBatched(ctx context.Context, tx driver.Transaction, cypher string, rows []map[string]any) error {
	for start := 0; start < len(rows); start += r.batchSize {
		end := start + r.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		res, err := tx.Run(ctx, cypher, map[string]any{"rows": rows[start:end]})
		if err != nil {
			return err
		}
		if _, err := res.Consume(ctx); err != nil {
			return err
		}
	}
	return nil
}

// CountNodes returns stored node counts per label.
func (r *GraphRepository) CountNodes(ctx context.Context) (map[string]int64, error) {
	out, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (n) WHERE n:CaseStudy OR n:Dimension OR n:Keyword RETURN labels(n)[0] AS label, count(n) AS total", nil)
		if err != nil {
			return nil, err
		}
		type row struct {
			label string
			total int64
		}
		rows, err := driver.CollectRecords(ctx, res, func(rec *neo4j.Record) (row, error) {
			label, _, err := neo4j.GetRecordValue[string](rec, "label")
			if err != nil {
				return row{}, err
			}
			total, _, err := neo4j.GetRecordValue[int64](rec, "total")
			if err != nil {
				return row{}, err
			}
			return row{label, total}, nil
		})
		if err != nil {
			return nil, err
		}
		counts := make(map[string]int64, len(rows))
		for _, rw := range rows {
			counts[rw.label] = rw.total
		}
		return counts, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string]int64), nil
}

func groupNodes(nodes []knowledgegraph.Node) (map[knowledgegraph.NodeType][]map[string]any, error) {
	out := make(map[knowledgegraph.NodeType][]map[string]any)
	for _, n := range nodes {
		if _, ok := nodeLabels[n.Type]; !ok {
			return nil, errors.InvalidParam("unknown node type").WithDetail(string(n.Type))
		}
		out[n.Type] = append(out[n.Type], map[string]any{"id": n.ID, "label": n.Label})
	}
	return out, nil
}

func groupEdges(edges []knowledgegraph.Edge) (map[knowledgegraph.EdgeType][]map[string]any, error) {
	out := make(map[knowledgegraph.EdgeType][]map[string]any)
	for _, e := range edges {
		if _, ok := relShapes[e.Type]; !ok {
			return nil, errors.InvalidParam("unknown edge type").WithDetail(string(e.Type))
		}
		out[e.Type] = append(out[e.Type], map[string]any{"source": e.Source, "target": e.Target, "weight": e.Weight})
	}
	return out, nil
}

//Personal.AI order the ending
