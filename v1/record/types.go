package record

import (
	"time"

	"github.com/google/uuid"
)

// TableType selects which record schema a collection holds and which
// constructor is used when rebuilding records from backend rows.
type TableType string

const (
	// TableMessages holds conversation messages (recall memory).
	TableMessages TableType = "messages"

	// TableArchivalMemory holds embedded passages written by the agent.
	TableArchivalMemory TableType = "archival_memory"

	// TablePassages holds embedded passages loaded from data sources.
	TablePassages TableType = "passages"
)

// Kind is the record subtype a table stores.
type Kind int

const (
	// KindMessage - records carrying a conversational role.
	KindMessage Kind = iota
	// KindPassage - records carrying a data-source reference.
	KindPassage
)

// KindOf returns the record subtype stored by a table type.
func (t TableType) KindOf() Kind {
	if t == TableMessages {
		return KindMessage
	}
	return KindPassage
}

// Record is a persisted unit of text with an optional vector embedding.
//
// ID, Text and Embedding are the primary columns of every backend row; all
// other fields travel as row metadata under the declared keys in fields.go.
// Zero-valued fields are omitted from metadata (backends reject nulls), and
// a zero CreatedAt means "unset".
type Record struct {
	ID        string
	Text      string
	Embedding []float32
	CreatedAt time.Time

	// Message fields (TableMessages).
	Role string
	Name string

	// Passage fields (TableArchivalMemory, TablePassages).
	DataSource string
	DocID      string

	// Owner scoping, present on every table type.
	UserID  string
	AgentID string

	// Metadata holds caller-defined keys. Keys must not collide with the
	// declared field keys; inserts reject colliding batches.
	Metadata map[string]any
}

// NewID returns a fresh record id. Backends that constrain point ids
// (Qdrant) require the UUID form produced here.
func NewID() string {
	return uuid.NewString()
}

// NewMessage builds a message record with a fresh id and creation time.
func NewMessage(userID, agentID, role, text string, embedding []float32) Record {
	return Record{
		ID:        NewID(),
		Text:      text,
		Embedding: embedding,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Role:      role,
		UserID:    userID,
		AgentID:   agentID,
	}
}

// NewPassage builds a passage record with a fresh id and creation time.
func NewPassage(userID, agentID, text string, embedding []float32, dataSource string) Record {
	return Record{
		ID:         NewID(),
		Text:       text,
		Embedding:  embedding,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
		DataSource: dataSource,
		UserID:     userID,
		AgentID:    agentID,
	}
}
