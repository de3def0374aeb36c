package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minho-jung/kidlearn/internal/logger"
)

// DefaultCollection is the collection all learning documents live in.
const DefaultCollection = "learning"

// Document is one entry in the similarity collection: a piece of lesson or
// assessment text together with its embedding vector and metadata.
type Document struct {
	ID         string         `gorm:"primaryKey"`
	Collection string         `gorm:"index;not null"`
	Text       string         `gorm:"not null"`
	Embedding  datatypes.JSON `gorm:"not null"`
	Meta       datatypes.JSONMap
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ScoredDocument is a query hit with its cosine similarity to the query
// vector.
type ScoredDocument struct {
	Document
	Score float64
}

// DocumentRepo stores and queries similarity documents.
type DocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// Upsert inserts the document or replaces an existing one with the same ID.
// Re-submitting the same document is not an error.
func (r *DocumentRepo) Upsert(ctx context.Context, id, collection, text string, embedding []float32, meta map[string]any) error {
	raw, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("encode embedding: %w", err)
	}

	doc := Document{
		ID:         id,
		Collection: collection,
		Text:       text,
		Embedding:  raw,
		Meta:       meta,
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"collection", "text", "embedding", "meta", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", id, err)
	}
	return nil
}

// QueryNearest returns up to k documents in the collection ordered by
// cosine similarity to the query vector, most similar first. Documents
// whose stored vector has a different dimension are skipped.
//
// The collection stays small (one entry per lesson plus one per
// submission), so scoring in memory beats shipping vectors to a
// dedicated index.
func (r *DocumentRepo) QueryNearest(ctx context.Context, collection string, query []float32, k int) ([]ScoredDocument, error) {
	if k <= 0 {
		return nil, nil
	}

	var docs []Document
	if err := r.db.WithContext(ctx).Where("collection = ?", collection).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("load collection %s: %w", collection, err)
	}

	scored := make([]ScoredDocument, 0, len(docs))
	for _, d := range docs {
		var vec []float32
		if err := json.Unmarshal(d.Embedding, &vec); err != nil {
			r.log.Warn("skipping document with bad embedding", "id", d.ID, "error", err.Error())
			continue
		}
		score, ok := cosineSimilarity(query, vec)
		if !ok {
			continue
		}
		scored = append(scored, ScoredDocument{Document: d, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// LatestByFilter returns the newest document in the collection whose
// metadata contains every key/value in filter, or nil if none matches.
func (r *DocumentRepo) LatestByFilter(ctx context.Context, collection string, filter map[string]any) (*Document, error) {
	var docs []Document
	// rowid breaks created_at ties in insertion order.
	err := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at DESC, rowid DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", collection, err)
	}

	for i := range docs {
		if metaMatches(docs[i].Meta, filter) {
			return &docs[i], nil
		}
	}
	return nil, nil
}

func metaMatches(meta map[string]any, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := meta[k]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// cosineSimilarity returns the cosine of the angle between a and b. The
// second return is false when the vectors cannot be compared (dimension
// mismatch or a zero vector).
func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
