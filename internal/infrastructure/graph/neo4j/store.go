// Package neo4j mirrors derived entity relationships into a graph
// database so entities can be explored across documents.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

type Store struct {
	driver neo4j.DriverWithContext
}

func New(uri, user, password string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Store{driver: driver}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// SyncRelationships replaces the document's subgraph with the latest
// analysis output. Entities are shared across documents; mention and
// relation edges are scoped to the document so re-analysis stays
// idempotent.
func (s *Store) SyncRelationships(ctx context.Context, documentID string, entities []domain.Entity, rels []domain.Relationship) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, `
MERGE (d:Document {id: $id})
WITH d
OPTIONAL MATCH (d)-[m:MENTIONS]->()
DELETE m
`, map[string]any{"id": documentID}); err != nil {
			return nil, fmt.Errorf("reset document node: %w", err)
		}

		if _, err := tx.Run(ctx, `
MATCH ()-[r:RELATED {document_id: $id}]->()
DELETE r
`, map[string]any{"id": documentID}); err != nil {
			return nil, fmt.Errorf("reset document relations: %w", err)
		}

		for _, entity := range entities {
			if _, err := tx.Run(ctx, `
MERGE (e:Entity {text: $text, label: $label})
WITH e
MATCH (d:Document {id: $id})
MERGE (d)-[:MENTIONS]->(e)
`, map[string]any{"text": entity.Text, "label": entity.Label, "id": documentID}); err != nil {
				return nil, fmt.Errorf("merge entity %q: %w", entity.Text, err)
			}
		}

		for _, rel := range rels {
			if _, err := tx.Run(ctx, `
MATCH (a:Entity {text: $entity1}), (b:Entity {text: $entity2})
MERGE (a)-[:RELATED {type: $type, document_id: $id}]->(b)
`, map[string]any{
				"entity1": rel.Entity1,
				"entity2": rel.Entity2,
				"type":    rel.Type,
				"id":      documentID,
			}); err != nil {
				return nil, fmt.Errorf("merge relation %s: %w", rel.Type, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("sync relationships for %s: %w", documentID, err)
	}
	return nil
}
