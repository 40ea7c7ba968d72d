package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taddeusb90/MemGPT/v1/record"
)

func TestDefaultFiltersMessageScope(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Table = record.TableMessages
	cfg.UserID = "user-1"
	cfg.AgentID = "agent-1"

	assert.Equal(t, Filter{
		record.KeyUserID:  "user-1",
		record.KeyAgentID: "agent-1",
	}, cfg.DefaultFilters())
}

func TestDefaultFiltersPassageScope(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Table = record.TableArchivalMemory
	cfg.UserID = "user-1"
	cfg.AgentID = "agent-1"

	assert.Equal(t, Filter{record.KeyUserID: "user-1"}, cfg.DefaultFilters())
}

func TestCollectionName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UserID = "user-1"
	cfg.AgentID = "agent 1"

	cfg.Table = record.TableMessages
	assert.Equal(t, "memgpt_messages_agent_1", cfg.CollectionName())

	cfg.Table = record.TableArchivalMemory
	assert.Equal(t, "memgpt_archival_memory_user-1", cfg.CollectionName())
}

func TestEffectivePageSize(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 25, cfg.EffectivePageSize(25))
	assert.Equal(t, DefaultPageSize, cfg.EffectivePageSize(0))

	cfg.PageSize = 10
	assert.Equal(t, 10, cfg.EffectivePageSize(-1))
}

func TestParseHostPort(t *testing.T) {
	host, port, err := ParseHostPort("localhost:6334")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)
	assert.Equal(t, 6334, port)

	host, port, err = ParseHostPort("http://qdrant.internal:6334")
	require.NoError(t, err)
	assert.Equal(t, "qdrant.internal", host)
	assert.Equal(t, 6334, port)

	_, _, err = ParseHostPort("no-port")
	assert.Error(t, err)
}
