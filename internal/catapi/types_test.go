package catapi

import (
	"encoding/json"
	"testing"
)

func TestBreedSummary_UnmarshalNormalizesCasing(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantID   string
		wantName string
	}{
		{"lowercase", `{"id":"abys","name":"Abyssinian"}`, "abys", "Abyssinian"},
		{"uppercase", `{"ID":"beng","Name":"Bengal"}`, "beng", "Bengal"},
		{"mixed", `{"ID":"sibe","name":"Siberian"}`, "sibe", "Siberian"},
		{"both prefer lowercase", `{"id":"a","ID":"b","name":"n","Name":"N"}`, "a", "n"},
		{"blank lowercase falls back", `{"id":"  ","ID":"up","name":"","Name":"Up"}`, "up", "Up"},
		{"missing", `{}`, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b BreedSummary
			if err := json.Unmarshal([]byte(tt.raw), &b); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if b.ID != tt.wantID || b.Name != tt.wantName {
				t.Fatalf("BreedSummary = %#v, want id=%q name=%q", b, tt.wantID, tt.wantName)
			}
		})
	}
}

func TestParseVote(t *testing.T) {
	tests := []struct {
		in   string
		want Vote
		ok   bool
	}{
		{"like", VoteLike, true},
		{" Dislike ", VoteDislike, true},
		{"LOVE", VoteLove, true},
		{"favorite", VoteLove, true},
		{"fav", VoteLove, true},
		{"meh", Vote("meh"), false},
		{"", Vote(""), false},
	}
	for _, tt := range tests {
		got, ok := ParseVote(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseVote(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEnvelope_HasData(t *testing.T) {
	cases := map[string]bool{
		`{"status":"success"}`:             false,
		`{"status":"success","data":null}`: false,
		`{"status":"success","data":[]}`:   true,
		`{"status":"success","data":{}}`:   true,
	}
	for raw, want := range cases {
		var env Envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", raw, err)
		}
		if got := env.hasData(); got != want {
			t.Fatalf("hasData(%s) = %v, want %v", raw, got, want)
		}
		if !env.OK() {
			t.Fatalf("OK(%s) = false, want true", raw)
		}
	}
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Endpoint: "/api/vote", Status: "error"}
	if got := err.Error(); got != `api /api/vote status "error": no message` {
		t.Fatalf("Error() = %q", got)
	}
}

func TestEnvelope_FailureStatus(t *testing.T) {
	if StatusFailure != "error" {
		t.Fatalf("StatusFailure = %q, want %q", StatusFailure, "error")
	}
	var env Envelope
	if err := json.Unmarshal([]byte(`{"status":"error","message":"nope"}`), &env); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if env.OK() {
		t.Fatal("OK() = true for an error envelope, want false")
	}
	if env.Status != StatusFailure || env.Message != "nope" {
		t.Fatalf("Envelope = %#v, want status error with message nope", env)
	}
}
