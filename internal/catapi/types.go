package catapi

import (
	"encoding/json"
	"strings"
)

// Envelope statuses used by the backend.
const (
	StatusSuccess = "success"
	StatusFailure = "error"
)

// Envelope wraps every backend response.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// OK reports whether the envelope carries a success status.
func (e Envelope) OK() bool {
	return e.Status == StatusSuccess
}

// hasData reports whether Data holds something other than JSON null.
func (e Envelope) hasData() bool {
	trimmed := strings.TrimSpace(string(e.Data))
	return trimmed != "" && trimmed != "null"
}

// Cat is a candidate image returned by /api/cats.
type Cat struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// BreedSummary is one entry of /api/breeds.
//
// The backend has served both `id`/`name` and `ID`/`Name`; UnmarshalJSON
// accepts either and the lowercase form wins when both are present.
type BreedSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON normalizes the field casing of a breed summary.
func (b *BreedSummary) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string `json:"id"`
		IDUpper   string `json:"ID"`
		Name      string `json:"name"`
		NameUpper string `json:"Name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID = firstNonEmpty(raw.ID, raw.IDUpper)
	b.Name = firstNonEmpty(raw.Name, raw.NameUpper)
	return nil
}

// Breed is the detail record returned by /api/breed.
type Breed struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Origin       string   `json:"origin"`
	Description  string   `json:"description"`
	WikipediaURL string   `json:"wikipedia_url"`
	Images       []string `json:"images"`
}

// Favorite is a favorited image owned by the backend.
type Favorite struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Vote is a decision submitted for a candidate.
type Vote string

const (
	VoteLike    Vote = "like"
	VoteDislike Vote = "dislike"
	VoteLove    Vote = "love"
)

// Valid reports whether v is one of the decisions the backend accepts.
func (v Vote) Valid() bool {
	switch v {
	case VoteLike, VoteDislike, VoteLove:
		return true
	}
	return false
}

// ParseVote converts user input into a Vote. "favorite" is accepted as an
// alias for love since that is what the button is labelled.
func ParseVote(value string) (Vote, bool) {
	v := Vote(strings.ToLower(strings.TrimSpace(value)))
	if v == "favorite" || v == "fav" {
		v = VoteLove
	}
	return v, v.Valid()
}

// VoteRequest is the body of POST /api/vote.
type VoteRequest struct {
	ImageID  string `json:"image_id"`
	ImageURL string `json:"image_url"`
	Vote     Vote   `json:"vote"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
