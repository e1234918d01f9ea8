// Package vector owns all Qdrant operations for the catalog index.
package vector

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rcsuperstore/partspro/internal/config"
	"github.com/rcsuperstore/partspro/internal/core"
)

// idPayloadField is the payload key carrying the catalog record identifier,
// the join key between the relational store and the index.
const idPayloadField = "id"

type Qdrant struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
}

// NewQdrant connects to Qdrant at the configured gRPC address. The index is
// populated by external ingestion jobs; this client only reads.
func NewQdrant(cfg *config.QdrantConfig) (*Qdrant, error) {
	conn, err := grpc.NewClient(cfg.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("vector: dial qdrant %s: %w", cfg.Addr, err)
	}
	return &Qdrant{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  cfg.Collection,
	}, nil
}

// Close closes the underlying gRPC connection.
func (q *Qdrant) Close() error {
	return q.conn.Close()
}

// Dimensions reads the collection's configured vector width. Used once at
// startup to refuse a mismatched embedding model.
func (q *Qdrant) Dimensions(ctx context.Context) (int, error) {
	info, err := q.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: q.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("vector: describe collection %s: %w", q.collection, err)
	}

	params := info.GetResult().GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0, fmt.Errorf("vector: collection %s has no vector params", q.collection)
	}
	return int(params.GetSize()), nil
}

// Search runs a top-K similarity query with full payload. A non-empty
// idFilter restricts the search to points whose id payload field is in the
// set. This is an index-level IN condition, not a post-filter.
func (q *Qdrant) Search(ctx context.Context, vector []float32, topK int, idFilter []string) ([]core.SemanticMatch, error) {
	req := &pb.SearchPoints{
		CollectionName: q.collection,
		Vector:         vector,
		Limit:          uint64(topK),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	}

	if len(idFilter) > 0 {
		req.Filter = &pb.Filter{
			Must: []*pb.Condition{idIn(idFilter)},
		}
	}

	resp, err := q.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vector: search: %w", err)
	}

	matches := make([]core.SemanticMatch, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		m := core.SemanticMatch{
			ID:       r.GetId().GetUuid(),
			Score:    r.GetScore(),
			Metadata: make(map[string]string, len(r.GetPayload())),
		}
		for k, val := range r.GetPayload() {
			s := payloadString(val)
			if k == idPayloadField && s != "" {
				m.ID = s
			}
			m.Metadata[k] = s
		}
		matches[i] = m
	}
	return matches, nil
}

func idIn(ids []string) *pb.Condition {
	return &pb.Condition{
		ConditionOneOf: &pb.Condition_Field{
			Field: &pb.FieldCondition{
				Key: idPayloadField,
				Match: &pb.Match{
					MatchValue: &pb.Match_Keywords{
						Keywords: &pb.RepeatedStrings{Strings: ids},
					},
				},
			},
		},
	}
}

func payloadString(v *pb.Value) string {
	switch kind := v.GetKind().(type) {
	case *pb.Value_StringValue:
		return kind.StringValue
	case *pb.Value_IntegerValue:
		return fmt.Sprintf("%d", kind.IntegerValue)
	case *pb.Value_DoubleValue:
		return fmt.Sprintf("%g", kind.DoubleValue)
	case *pb.Value_BoolValue:
		return fmt.Sprintf("%t", kind.BoolValue)
	default:
		return v.String()
	}
}
