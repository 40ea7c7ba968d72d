package storage

import "testing"

func TestComposeCallerWins(t *testing.T) {
	defaults := Filter{"user_id": "user-1", "agent_id": "agent-1"}
	caller := Filter{"agent_id": "agent-2", "topic": "billing"}

	out := Compose(defaults, caller)

	if out["user_id"] != "user-1" {
		t.Errorf("user_id = %v, want user-1", out["user_id"])
	}
	if out["agent_id"] != "agent-2" {
		t.Errorf("agent_id = %v, want caller override agent-2", out["agent_id"])
	}
	if out["topic"] != "billing" {
		t.Errorf("topic = %v, want billing", out["topic"])
	}
	if len(out) != 3 {
		t.Errorf("len = %d, want 3", len(out))
	}
}

func TestComposeDoesNotMutateInputs(t *testing.T) {
	defaults := Filter{"user_id": "user-1"}
	caller := Filter{"user_id": "user-2"}

	_ = Compose(defaults, caller)

	if defaults["user_id"] != "user-1" {
		t.Error("defaults mutated")
	}
}

func TestComposeNilCaller(t *testing.T) {
	out := Compose(Filter{"user_id": "user-1"}, nil)
	if len(out) != 1 || out["user_id"] != "user-1" {
		t.Errorf("unexpected composition %v", out)
	}
}

func TestFilterMatches(t *testing.T) {
	meta := map[string]any{
		"user_id":    "user-1",
		"created_at": int64(1700000000),
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty matches anything", Filter{}, true},
		{"exact match", Filter{"user_id": "user-1"}, true},
		{"value mismatch", Filter{"user_id": "user-2"}, false},
		{"missing key", Filter{"agent_id": "agent-1"}, false},
		{"conjunction all match", Filter{"user_id": "user-1", "created_at": int64(1700000000)}, true},
		{"conjunction one fails", Filter{"user_id": "user-1", "created_at": int64(1)}, false},
		{"numeric cross-type", Filter{"created_at": float64(1700000000)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(meta); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
