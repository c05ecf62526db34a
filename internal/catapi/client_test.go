package catapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBase {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBase)
	}

	u, err = parseBaseURL("https://cats.example.com:8443/app?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestParseBaseURL_RejectsMissingHost(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func envelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": StatusSuccess, "data": data})
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAPIKey, gotBreedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAPIKey = r.Header.Get("x-api-key")

		switch r.URL.Path {
		case "/api/cats":
			envelope(w, []Cat{{ID: "a", URL: "http://x/a.jpg"}, {ID: "b", URL: "http://x/b.jpg"}})
		case "/api/breeds":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":[{"id":"abys","name":"Abyssinian"},{"ID":"beng","Name":"Bengal"}]}`))
		case "/api/breed":
			gotBreedQuery = r.URL.Query().Get("id")
			envelope(w, Breed{ID: "abys", Name: "Abyssinian", WikipediaURL: "https://w/abys", Images: []string{"u1", "u2"}})
		case "/api/favorites":
			envelope(w, []Favorite{{ID: "f1", URL: "http://x/f1.jpg"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithAPIKey(" secret "))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	cats, err := c.FetchCats(ctx)
	if err != nil {
		t.Fatalf("FetchCats returned error: %v", err)
	}
	if len(cats) != 2 || cats[1].ID != "b" {
		t.Fatalf("FetchCats = %#v, want 2 cats", cats)
	}

	breeds, err := c.FetchBreeds(ctx)
	if err != nil {
		t.Fatalf("FetchBreeds returned error: %v", err)
	}
	if len(breeds) != 2 || breeds[1].ID != "beng" || breeds[1].Name != "Bengal" {
		t.Fatalf("FetchBreeds = %#v, want upper-case keys normalized", breeds)
	}

	breed, err := c.FetchBreedDetail(ctx, "abys")
	if err != nil {
		t.Fatalf("FetchBreedDetail returned error: %v", err)
	}
	if gotBreedQuery != "abys" {
		t.Fatalf("breed query id = %q, want abys", gotBreedQuery)
	}
	if breed.WikipediaURL != "https://w/abys" || len(breed.Images) != 2 {
		t.Fatalf("FetchBreedDetail = %#v, want wiki url and 2 images", breed)
	}

	favs, err := c.FetchFavorites(ctx)
	if err != nil {
		t.Fatalf("FetchFavorites returned error: %v", err)
	}
	if len(favs) != 1 || favs[0].ID != "f1" {
		t.Fatalf("FetchFavorites = %#v, want f1", favs)
	}

	if !strings.HasPrefix(gotUserAgent, "catvote/") {
		t.Fatalf("User-Agent = %q, want catvote/*", gotUserAgent)
	}
	if gotAPIKey != "secret" {
		t.Fatalf("x-api-key = %q, want secret", gotAPIKey)
	}
}

func TestClient_SubmitVoteSendsBodyAndSurfacesStatusError(t *testing.T) {
	t.Parallel()

	var got VoteRequest
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/vote" {
			http.NotFound(w, r)
			return
		}
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		if got.ImageID == "dup" {
			_, _ = w.Write([]byte(`{"status":"error","message":"already in favorites"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"success","message":"Vote recorded"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = c.SubmitVote(context.Background(), VoteRequest{ImageID: "x1", ImageURL: "http://x/1.jpg", Vote: VoteLove})
	if err != nil {
		t.Fatalf("SubmitVote returned error: %v", err)
	}
	if got.ImageID != "x1" || got.ImageURL != "http://x/1.jpg" || got.Vote != VoteLove {
		t.Fatalf("vote body = %#v, want x1/love", got)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}

	err = c.SubmitVote(context.Background(), VoteRequest{ImageID: "dup", Vote: VoteLove})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("SubmitVote error = %v, want *StatusError", err)
	}
	if se.Message != "already in favorites" || se.Endpoint != "/api/vote" {
		t.Fatalf("StatusError = %#v, want already in favorites on /api/vote", se)
	}
}

func TestClient_SubmitVoteValidatesLocally(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.SubmitVote(context.Background(), VoteRequest{ImageURL: "u", Vote: VoteLike}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("SubmitVote error = %v, want ErrMissingID", err)
	}
	if err := c.SubmitVote(context.Background(), VoteRequest{ImageID: "a", Vote: "meh"}); !errors.Is(err, ErrInvalidVote) {
		t.Fatalf("SubmitVote error = %v, want ErrInvalidVote", err)
	}
	if _, err := c.FetchBreedDetail(context.Background(), "  "); !errors.Is(err, ErrMissingID) {
		t.Fatalf("FetchBreedDetail error = %v, want ErrMissingID", err)
	}
	if err := c.DeleteFavorite(context.Background(), ""); !errors.Is(err, ErrMissingID) {
		t.Fatalf("DeleteFavorite error = %v, want ErrMissingID", err)
	}
	if calls != 0 {
		t.Fatalf("server saw %d requests, want 0", calls)
	}
}

func TestClient_DeleteFavoriteEscapesID(t *testing.T) {
	t.Parallel()

	var gotRawPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotRawPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","message":"Favorite removed successfully"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.DeleteFavorite(context.Background(), "a b/c"); err != nil {
		t.Fatalf("DeleteFavorite returned error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("method = %q, want DELETE", gotMethod)
	}
	if gotRawPath != "/api/favorites/a%20b%2Fc" {
		t.Fatalf("path = %q, want escaped id", gotRawPath)
	}
}

func TestClient_HTTPErrorDecodeErrorAndMissingData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cats":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/breeds":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/api/favorites":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":null}`))
		case "/api/breed":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":"error","message":"breed id is required"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchCats(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchCats error = %v, want decode response error", err)
	}

	_, err = c.FetchBreeds(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchBreeds error = %v, want status 500 error", err)
	}

	_, err = c.FetchFavorites(context.Background())
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("FetchFavorites error = %v, want ErrMissingData", err)
	}

	_, err = c.FetchBreedDetail(context.Background(), "zzz")
	if !IsStatusError(err) {
		t.Fatalf("FetchBreedDetail error = %v, want status error from envelope on 400", err)
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchCats(context.Background()); err == nil {
		t.Fatalf("FetchCats on nil client returned nil error")
	}
	if c.BaseURL() != "" {
		t.Fatalf("BaseURL on nil client = %q, want empty", c.BaseURL())
	}
}
