// Package fakeapi serves an in-memory stand-in for the cat-voting backend.
// It backs the --demo flag and the HTTP tests of the client and UI.
package fakeapi

import (
	"bytes"
	"context"
	"errors"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/five82/catvote/internal/catapi"
)

// Server exposes a Store over the same routes and envelope as the real backend.
type Server struct {
	addr     string
	store    *Store
	server   *http.Server
	listener net.Listener
}

// NewServer creates a server for store. An empty addr picks a free loopback port.
func NewServer(addr string, store *Store) *Server {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	return &Server{addr: addr, store: store}
}

// Handler builds the gin engine with every API route registered.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/cats", s.handleCats)
	api.GET("/breeds", s.handleBreeds)
	api.GET("/breed", s.handleBreed)
	api.POST("/vote", s.handleVote)
	api.GET("/favorites", s.handleFavorites)
	api.DELETE("/favorites/:id", s.handleRemoveFavorite)

	r.GET("/img/:name", handleImage)
	return r
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() { _ = s.server.Serve(listener) }()
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleCats(c *gin.Context) {
	cats := s.store.NextCats()
	for i := range cats {
		cats[i].URL = absoluteURL(c, cats[i].URL)
	}
	success(c, cats)
}

func (s *Server) handleBreeds(c *gin.Context) {
	success(c, s.store.Breeds())
}

func (s *Server) handleBreed(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		failure(c, "breed id is required")
		return
	}
	breed, err := s.store.Breed(id)
	if err != nil {
		failure(c, err.Error())
		return
	}
	for i := range breed.Images {
		breed.Images[i] = absoluteURL(c, breed.Images[i])
	}
	success(c, breed)
}

func (s *Server) handleVote(c *gin.Context) {
	var req catapi.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Vote.Valid() {
		failure(c, "Invalid request format")
		return
	}
	if err := s.store.Vote(req); err != nil {
		failure(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": catapi.StatusSuccess, "message": "Vote recorded"})
}

func (s *Server) handleFavorites(c *gin.Context) {
	favs := s.store.Favorites()
	for i := range favs {
		favs[i].URL = absoluteURL(c, favs[i].URL)
	}
	success(c, favs)
}

func (s *Server) handleRemoveFavorite(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		failure(c, "Image ID is required")
		return
	}
	if err := s.store.RemoveFavorite(id); err != nil {
		failure(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": catapi.StatusSuccess, "message": "Favorite removed successfully"})
}

// handleImage renders a small solid PNG whose color is derived from the name.
// Names starting with "missing" return 404 so broken-image paths can be exercised.
func handleImage(c *gin.Context) {
	name := c.Param("name")
	if strings.HasPrefix(name, "missing") {
		c.Status(http.StatusNotFound)
		return
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 0xff}

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"status": catapi.StatusSuccess, "data": data})
}

func failure(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": catapi.StatusFailure, "message": message})
}

func absoluteURL(c *gin.Context, ref string) string {
	if !strings.HasPrefix(ref, "/") {
		return ref
	}
	return "http://" + c.Request.Host + ref
}
