package mazeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/amazeing/api"
	apii "github.com/beka-birhanu/amazeing/api/i"
	"github.com/beka-birhanu/amazeing/api/identity"
	"github.com/beka-birhanu/amazeing/config"
	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/infrastruture/token"
	"github.com/beka-birhanu/amazeing/logger"
	"github.com/beka-birhanu/amazeing/service"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mazes map[uuid.UUID]dmn.Maze
}

func (r *memoryRepo) Save(_ context.Context, m *dmn.Maze) error {
	r.mazes[m.ID] = *m
	return nil
}

func (r *memoryRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Maze, error) {
	m, ok := r.mazes[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return &m, nil
}

func (r *memoryRepo) ByOwner(_ context.Context, owner string, _ int64) ([]dmn.Maze, error) {
	var mazes []dmn.Maze
	for _, m := range r.mazes {
		if m.Owner == owner {
			mazes = append(mazes, m)
		}
	}
	return mazes, nil
}

type testServer struct {
	engine    *gin.Engine
	tokenizer i.Tokenizer
}

func newTestServer(t *testing.T, withRepo bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l, err := logger.New("TEST", config.ColorBlue, &bytes.Buffer{})
	require.NoError(t, err)

	var repo i.MazeRepo
	if withRepo {
		repo = &memoryRepo{mazes: map[uuid.UUID]dmn.Maze{}}
	}
	svc, err := service.NewMazeService(nil, repo, encoder.NewHex(), l, &service.Options{MaxDimension: 40})
	require.NoError(t, err)

	controller, err := NewMazeController(svc, encoder.NewHex(), l)
	require.NoError(t, err)

	tokenizer := token.NewJwtService("secret", "amazeing-test")
	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []apii.Controller{controller},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
	})

	return &testServer{engine: router.Engine(), tokenizer: tokenizer}
}

func (s *testServer) do(t *testing.T, method, path string, body any, username string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		tok, err := s.tokenizer.Generate(map[string]interface{}{
			service.ClaimSubject:  uuid.NewString(),
			service.ClaimUsername: username,
		}, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestGenerateMaze(t *testing.T) {
	srv := newTestServer(t, false)

	t.Run("JSON", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/mazes?width=12&height=9&seed=7&algorithm=hak", nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "7", rec.Header().Get(headerSeed))

		var resp MazeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 12, resp.Width)
		assert.Equal(t, 9, resp.Height)
		assert.Len(t, resp.Rows, 9)
		assert.Equal(t, "hak", resp.Algorithm)
		assert.True(t, resp.Perfect)
		assert.Equal(t, 11, resp.Exit.X)
		assert.Equal(t, 8, resp.Exit.Y)
		assert.NotEmpty(t, resp.Path)
		assert.Zero(t, resp.Stats.Loops)
	})

	t.Run("Same seed same maze", func(t *testing.T) {
		path := "/api/v1/mazes?width=10&height=10&seed=3&entry=0,9&exit=9,0&perfect=false"
		first := srv.do(t, http.MethodGet, path, nil, "")
		second := srv.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, first.Code, first.Body.String())

		var a, b MazeResponse
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
		assert.Equal(t, a.Rows, b.Rows)
		assert.Equal(t, a.Path, b.Path)
		assert.False(t, a.Perfect)
	})

	t.Run("Hex", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/mazes?width=5&height=4&seed=1&format=hex", nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

		rec2, err := encoder.NewHex().Unmarshal(rec.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 5, rec2.Width)
		assert.Equal(t, 4, rec2.Height)
		_, err = rec2.Maze()
		assert.NoError(t, err)
	})

	t.Run("Bad requests", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/mazes",
			"/api/v1/mazes?width=0&height=5",
			"/api/v1/mazes?width=5&height=5&format=png",
			"/api/v1/mazes?width=5&height=5&entry=9,9",
			"/api/v1/mazes?width=5&height=5&entry=x",
			"/api/v1/mazes?width=5&height=5&algorithm=prim",
			"/api/v1/mazes?width=5&height=5&perfect=maybe",
			"/api/v1/mazes?width=41&height=5",
			"/api/v1/mazes?width=10&height=10&entry=4,5",
		} {
			rec := srv.do(t, http.MethodGet, path, nil, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		}
	})
}

func TestArchive(t *testing.T) {
	t.Run("Requires a token", func(t *testing.T) {
		srv := newTestServer(t, true)
		rec := srv.do(t, http.MethodPost, "/api/v1/mazes", MazeRequest{Width: 6, Height: 6}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me/mazes", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		w := httptest.NewRecorder()
		srv.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Archive fetch and list", func(t *testing.T) {
		srv := newTestServer(t, true)
		seed := int64(11)

		rec := srv.do(t, http.MethodPost, "/api/v1/mazes", MazeRequest{Width: 8, Height: 8, Seed: &seed}, "alice")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created ArchiveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = srv.do(t, http.MethodGet, "/api/v1/mazes/"+created.ID, nil, "bob")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var fetched MazeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "alice", fetched.Owner)
		assert.Equal(t, seed, fetched.Seed)

		rec = srv.do(t, http.MethodGet, "/api/v1/me/mazes", nil, "alice")
		require.Equal(t, http.StatusOK, rec.Code)
		var mine []MazeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
		assert.Len(t, mine, 1)

		rec = srv.do(t, http.MethodGet, "/api/v1/me/mazes", nil, "bob")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("Unknown and invalid IDs", func(t *testing.T) {
		srv := newTestServer(t, true)
		rec := srv.do(t, http.MethodGet, "/api/v1/mazes/"+uuid.NewString(), nil, "alice")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		rec = srv.do(t, http.MethodGet, "/api/v1/mazes/not-a-uuid", nil, "alice")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Archive disabled", func(t *testing.T) {
		srv := newTestServer(t, false)
		rec := srv.do(t, http.MethodPost, "/api/v1/mazes", MazeRequest{Width: 6, Height: 6}, "alice")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestMazeRequestConfig(t *testing.T) {
	perfect := false
	req := MazeRequest{Width: 9, Height: 7, Entry: "1,2", Perfect: &perfect, Algorithm: "hunt-and-kill", Probability: 0.3}
	cfg, err := req.Config()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Entry.X)
	assert.Equal(t, 2, cfg.Entry.Y)
	assert.Equal(t, 8, cfg.Exit.X)
	assert.Equal(t, 6, cfg.Exit.Y)
	assert.False(t, cfg.Perfect)
	assert.Equal(t, 0.3, cfg.LoopProbability)
	assert.Nil(t, cfg.Seed)
}
