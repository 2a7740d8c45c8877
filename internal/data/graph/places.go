package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"placegraph-backend/internal/domain"
	"placegraph-backend/internal/platform/logger"
	"placegraph-backend/internal/platform/neo4jdb"
)

// PlaceStore owns every write the ingestion pipeline makes to the graph:
// schema setup, batched Place/Region upserts, and the opt-in reset. The
// pipeline never deletes data outside Reset.
type PlaceStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewPlaceStore(client *neo4jdb.Client, log *logger.Logger) *PlaceStore {
	return &PlaceStore{client: client, log: log.With("store", "PlaceStore")}
}

const (
	placeURLConstraint   = `CREATE CONSTRAINT place_google_maps_url_unique IF NOT EXISTS FOR (p:Place) REQUIRE p.google_maps_url IS UNIQUE`
	regionNameConstraint = `CREATE CONSTRAINT region_name_unique IF NOT EXISTS FOR (r:Region) REQUIRE r.name IS UNIQUE`
)

// EnsureSchema creates the two uniqueness constraints the upsert queries
// depend on. Safe to run on every import; a failure aborts the run before
// any batch is written.
func (s *PlaceStore) EnsureSchema(ctx context.Context) error {
	session := s.newSession(ctx)
	defer session.Close(ctx)

	for _, stmt := range []string{placeURLConstraint, regionNameConstraint} {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return fmt.Errorf("graph: ensure schema: %w", err)
		}
		if _, err := res.Consume(ctx); err != nil {
			return fmt.Errorf("graph: ensure schema: %w", err)
		}
	}
	return nil
}

// WriteBatch upserts one batch of places in a single transaction. Place
// attributes are replaced wholesale on every run: an absent value becomes a
// Cypher null, which removes the property, so edits made directly in the
// store do not survive re-ingestion. Region nodes and HAS_PLACE edges are
// MERGEd only for records that carry a prefecture.
func (s *PlaceStore) WriteBatch(ctx context.Context, batch []domain.Place) error {
	if len(batch) == 0 {
		return nil
	}
	rows := placeRows(batch, time.Now().UTC())
	links := regionLinks(batch)

	session := s.newSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
UNWIND $rows AS r
MERGE (p:Place {google_maps_url: r.google_maps_url})
SET p += r.props
`, map[string]any{"rows": rows})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}

		if len(links) > 0 {
			res, err := tx.Run(ctx, `
UNWIND $links AS l
MATCH (p:Place {google_maps_url: l.google_maps_url})
MERGE (reg:Region {name: l.region})
MERGE (reg)-[:HAS_PLACE]->(p)
`, map[string]any{"links": links})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("graph: write batch: %w", err)
	}
	s.log.Debug("batch committed", "places", len(rows), "region_links", len(links))
	return nil
}

// Reset deletes previously ingested Place and Region data, nothing else.
func (s *PlaceStore) Reset(ctx context.Context) error {
	session := s.newSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, stmt := range []string{
			`MATCH (:Region)-[rel:HAS_PLACE]->(:Place) DELETE rel`,
			`MATCH (p:Place) DETACH DELETE p`,
			`MATCH (r:Region) DETACH DELETE r`,
		} {
			res, err := tx.Run(ctx, stmt, nil)
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("graph: reset: %w", err)
	}
	return nil
}

func (s *PlaceStore) newSession(ctx context.Context) neo4j.SessionWithContext {
	return s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.client.Database,
	})
}

// placeRows builds the UNWIND payload. Every Place property key is present
// in every row; optional values degrade to nil rather than being omitted,
// which is what makes the upsert a whole-record overwrite.
func placeRows(batch []domain.Place, syncedAt time.Time) []map[string]any {
	stamp := syncedAt.Format(time.RFC3339Nano)
	rows := make([]map[string]any, 0, len(batch))
	for _, p := range batch {
		props := map[string]any{
			"google_maps_url": p.GoogleMapsURL,
			"name":            p.Name,
			"type":            p.Type,
			"description":     strValue(p.Description),
			"address":         strValue(p.Address),
			"latitude":        floatValue(p.Latitude),
			"longitude":       floatValue(p.Longitude),
			"prefecture":      strValue(p.Prefecture),
			"saved_list":      strValue(p.SavedList),
			"visited":         boolValue(p.Visited),
			"visited_date":    strValue(p.VisitedDate),
			"tabelog_rating":  floatValue(p.Rating),
			"date":            strValue(p.SavedDate),
			"synced_at":       stamp,
		}
		rows = append(rows, map[string]any{
			"google_maps_url": p.GoogleMapsURL,
			"props":           props,
		})
	}
	return rows
}

// regionLinks keeps only records that name a prefecture; region-less places
// get no relationship at all.
func regionLinks(batch []domain.Place) []map[string]any {
	links := make([]map[string]any, 0, len(batch))
	for _, p := range batch {
		if p.Prefecture == nil || *p.Prefecture == "" {
			continue
		}
		links = append(links, map[string]any{
			"google_maps_url": p.GoogleMapsURL,
			"region":          *p.Prefecture,
		})
	}
	return links
}

func strValue(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolValue(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}
