// Package store persists transformed race documents into Postgres as jsonb
// rows, one document per athlete, tagged with the run's batch ID.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyroxlab/hyrox-data/internal/pipeline"
)

// insertChunk bounds the size of a single pgx batch.
const insertChunk = 500

// EnsureSchema creates the race_results table when it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS race_results (
			id         BIGSERIAL PRIMARY KEY,
			batch_id   UUID        NOT NULL,
			doc        JSONB       NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create race_results table: %w", err)
	}
	return nil
}

// InsertDocuments writes the full collection inside one transaction, tagged
// with a fresh batch ID. Either every document lands or none do.
func InsertDocuments(ctx context.Context, pool *pgxpool.Pool, docs []pipeline.Document, logger *slog.Logger) (uuid.UUID, error) {
	batchID := uuid.New()

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	for start := 0; start < len(docs); start += insertChunk {
		end := start + insertChunk
		if end > len(docs) {
			end = len(docs)
		}

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			payload, err := json.Marshal(&docs[i])
			if err != nil {
				return uuid.Nil, fmt.Errorf("marshal document %d: %w", i, err)
			}
			batch.Queue("insert_result_document", batchID, payload)
		}

		results := tx.SendBatch(ctx, batch)
		for i := start; i < end; i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return uuid.Nil, fmt.Errorf("insert document %d: %w", i, err)
			}
		}
		if err := results.Close(); err != nil {
			return uuid.Nil, fmt.Errorf("close batch: %w", err)
		}

		logger.Debug("Batch inserted", "batch_id", batchID, "from", start, "to", end)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit transaction: %w", err)
	}
	return batchID, nil
}

// CountDocuments returns the total number of stored documents.
func CountDocuments(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var n int64
	if err := pool.QueryRow(ctx, "count_documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// CountBatch returns the number of documents stored under one batch ID.
func CountBatch(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID) (int64, error) {
	var n int64
	if err := pool.QueryRow(ctx, "count_batch_documents", batchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batch documents: %w", err)
	}
	return n, nil
}
