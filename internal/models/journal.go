package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry is a private journaling entry, created and read only by its
// owner. Entries live in MongoDB; UserID holds the owner's Postgres UUID as
// a string.
type JournalEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Content   string             `bson:"content" json:"content"`
	EntryDate time.Time          `bson:"entry_date" json:"entry_date"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
