package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

const journalCollection = "journal_entries"

// Journals stores private journal entries in MongoDB.
type Journals struct {
	db *mongo.Database
}

func NewJournals(db *mongo.Database) *Journals {
	return &Journals{db: db}
}

// Insert stores a new journal entry; id and dates are assigned here so the
// stored record is authoritative.
func (r *Journals) Insert(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	out := *entry
	now := time.Now().UTC()
	out.ID = primitive.NewObjectID()
	out.EntryDate = now
	out.CreatedAt = now

	if _, err := r.db.Collection(journalCollection).InsertOne(ctx, out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByOwner returns a user's journal entries, newest entry date first.
func (r *Journals) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.JournalEntry, error) {
	filter := bson.M{"user_id": ownerID.String()}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "entry_date", Value: -1}, {Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(journalCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.JournalEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureJournalIndexes creates the owner + entry date index used by the
// dashboard read path.
func EnsureJournalIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(journalCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "entry_date", Value: -1}},
	})
	return err
}
