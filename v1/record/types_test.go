package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageDefaults(t *testing.T) {
	rec := NewMessage("user-1", "agent-1", "assistant", "hello", nil)

	require.NotEmpty(t, rec.ID)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, "agent-1", rec.AgentID)
	assert.Equal(t, "assistant", rec.Role)
	assert.Equal(t, "hello", rec.Text)
	assert.Nil(t, rec.Embedding)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Zero(t, rec.CreatedAt.Nanosecond())
}

func TestNewPassageDefaults(t *testing.T) {
	rec := NewPassage("user-1", "agent-1", "a fact", []float32{0.1, 0.2}, "wiki")

	require.NotEmpty(t, rec.ID)
	assert.Equal(t, "wiki", rec.DataSource)
	assert.Equal(t, []float32{0.1, 0.2}, rec.Embedding)
	assert.Empty(t, rec.Role)
}

func TestTableKind(t *testing.T) {
	assert.Equal(t, KindMessage, TableMessages.KindOf())
	assert.Equal(t, KindPassage, TableArchivalMemory.KindOf())
	assert.Equal(t, KindPassage, TablePassages.KindOf())
}

func TestFieldMetadataRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)
	rec := Record{
		ID:         NewID(),
		Text:       "note",
		CreatedAt:  created,
		Role:       "user",
		Name:       "alice",
		DataSource: "docs",
		DocID:      "doc-7",
		UserID:     "user-1",
		AgentID:    "agent-1",
	}

	meta := rec.FieldMetadata()
	assert.Equal(t, created.Unix(), meta[KeyCreatedAt])
	assert.Equal(t, "alice", meta[KeyName])

	var got Record
	rest := got.ApplyFieldMetadata(meta)
	assert.Nil(t, rest)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, rec.Role, got.Role)
	assert.Equal(t, rec.DocID, got.DocID)
}

func TestFieldMetadataDropsZeroFields(t *testing.T) {
	rec := Record{ID: NewID(), Text: "bare"}
	assert.Empty(t, rec.FieldMetadata())
}

func TestApplyFieldMetadataSplitsCallerKeys(t *testing.T) {
	var rec Record
	rest := rec.ApplyFieldMetadata(map[string]any{
		KeyRole:      "system",
		KeyCreatedAt: float64(1700000000),
		"topic":      "billing",
	})

	assert.Equal(t, "system", rec.Role)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), rec.CreatedAt)
	assert.Equal(t, map[string]any{"topic": "billing"}, rest)
}

func TestIsReservedKey(t *testing.T) {
	assert.True(t, IsReservedKey(KeyUserID))
	assert.False(t, IsReservedKey("topic"))
}
