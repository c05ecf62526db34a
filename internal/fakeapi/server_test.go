package fakeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/catvote/internal/catapi"
)

func newTestClient(t *testing.T, store *Store) *catapi.Client {
	t.Helper()
	srv := httptest.NewServer(NewServer("", store).Handler())
	t.Cleanup(srv.Close)

	client, err := catapi.NewClient(srv.URL)
	require.NoError(t, err)
	return client
}

func TestServer_CatsCycleAndResolveURLs(t *testing.T) {
	store := NewStore([]catapi.Cat{
		{ID: "1", URL: "/img/1.png"},
		{ID: "2", URL: "/img/2.png"},
		{ID: "3", URL: "https://elsewhere.example/3.jpg"},
	}, nil, 2)
	client := newTestClient(t, store)
	ctx := context.Background()

	first, err := client.FetchCats(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "1", first[0].ID)
	assert.Contains(t, first[0].URL, "http://127.0.0.1:")
	assert.Contains(t, first[0].URL, "/img/1.png")

	second, err := client.FetchCats(ctx)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "3", second[0].ID)
	assert.Equal(t, "https://elsewhere.example/3.jpg", second[0].URL)
	assert.Equal(t, "1", second[1].ID)
}

func TestServer_LoveVoteSavesFavoriteOnce(t *testing.T) {
	store := NewStore(nil, nil, 0)
	client := newTestClient(t, store)
	ctx := context.Background()

	req := catapi.VoteRequest{ImageID: "x", ImageURL: "http://img/x.png", Vote: catapi.VoteLove}
	require.NoError(t, client.SubmitVote(ctx, req))

	err := client.SubmitVote(ctx, req)
	require.Error(t, err)
	assert.True(t, catapi.IsStatusError(err))
	assert.Contains(t, err.Error(), "already in favorites")

	require.NoError(t, client.SubmitVote(ctx, catapi.VoteRequest{ImageID: "y", Vote: catapi.VoteDislike}))

	favs, err := client.FetchFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []catapi.Favorite{{ID: "x", URL: "http://img/x.png"}}, favs)
	assert.Equal(t, map[catapi.Vote]int{catapi.VoteLove: 1, catapi.VoteDislike: 1}, store.Tally())
}

func TestServer_RemoveFavorite(t *testing.T) {
	store := NewStore(nil, nil, 0)
	require.NoError(t, store.Vote(catapi.VoteRequest{ImageID: "a", ImageURL: "u", Vote: catapi.VoteLove}))
	client := newTestClient(t, store)
	ctx := context.Background()

	require.NoError(t, client.DeleteFavorite(ctx, "a"))

	err := client.DeleteFavorite(ctx, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "favorite not found with ID: a")

	favs, err := client.FetchFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestServer_BreedDetail(t *testing.T) {
	client := newTestClient(t, DemoStore())
	ctx := context.Background()

	breeds, err := client.FetchBreeds(ctx)
	require.NoError(t, err)
	assert.Len(t, breeds, 5)

	abys, err := client.FetchBreedDetail(ctx, "abys")
	require.NoError(t, err)
	assert.Equal(t, "Abyssinian", abys.Name)
	require.Len(t, abys.Images, 4)
	assert.Contains(t, abys.Images[0], "/img/abys-1.png")

	bamb, err := client.FetchBreedDetail(ctx, "bamb")
	require.NoError(t, err)
	assert.Empty(t, bamb.Images)

	_, err = client.FetchBreedDetail(ctx, "nope")
	require.Error(t, err)
	assert.True(t, catapi.IsStatusError(err))
}

func TestServer_InvalidVoteBody(t *testing.T) {
	srv := httptest.NewServer(NewServer("", NewStore(nil, nil, 0)).Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/vote", "application/json", strings.NewReader(`{"image_id":"a","vote":"meh"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env catapi.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.OK())
	assert.Equal(t, "Invalid request format", env.Message)
}

func TestServer_FailureEnvelopeLiteral(t *testing.T) {
	srv := httptest.NewServer(NewServer("", NewStore(nil, nil, 0)).Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/breed?id=nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "error", raw["status"])
	assert.Equal(t, catapi.StatusFailure, raw["status"])
	assert.Equal(t, "breed not found: nope", raw["message"])
	assert.NotContains(t, raw, "data")
}

func TestServer_ImagesProbe(t *testing.T) {
	client := newTestClient(t, DemoStore())
	ctx := context.Background()

	cats, err := client.FetchCats(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cats)

	info, err := client.ProbeImage(ctx, cats[0].URL)
	require.NoError(t, err)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 48, info.Height)
	assert.Equal(t, "png", info.Format)

	var broken string
	for _, c := range cats {
		if c.ID == "e12" {
			broken = c.URL
		}
	}
	require.NotEmpty(t, broken)
	_, err = client.ProbeImage(ctx, broken)
	assert.Error(t, err)
}

func TestServer_StartStop(t *testing.T) {
	srv := NewServer("", DemoStore())
	require.NoError(t, srv.Start())
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	client, err := catapi.NewClient(srv.Addr())
	require.NoError(t, err)
	_, err = client.FetchBreeds(context.Background())
	require.NoError(t, err)

	require.NoError(t, srv.Stop())
}
