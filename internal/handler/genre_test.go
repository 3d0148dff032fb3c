package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/testutil"
)

func TestCreateGenre_CaseInsensitiveDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs, activity, _ := observedLoggers()
	router := setupTestRouterWithRepos(gormRepos(db), logs)

	w := doRequest(t, router, http.MethodPost, "/generos/", map[string]any{"nombre": "Fiction"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp GenreResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Name != "fiction" {
		t.Errorf("expected lowercased name, got %q", resp.Data.Name)
	}
	if resp.Data.Description != nil {
		t.Errorf("expected no description, got %v", *resp.Data.Description)
	}

	w = doRequest(t, router, http.MethodPost, "/generos/", map[string]any{"nombre": "fiction"})
	expectError(t, w, http.StatusConflict, "GENRE_ALREADY_EXISTS")

	if n := len(activity.FilterMessage("genre created").All()); n != 1 {
		t.Errorf("expected 1 audit line, got %d", n)
	}
}

func TestCreateGenre_BlankName(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodPost, "/generos/", map[string]any{"nombre": "   "})
	expectError(t, w, http.StatusBadRequest, "INVALID_GENRE_NAME")

	w = doRequest(t, router, http.MethodPost, "/generos/", map[string]any{})
	expectError(t, w, http.StatusBadRequest, "VALIDATION_FAILED")
}

func TestListGenres(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodGet, "/generos/", nil)
	expectError(t, w, http.StatusNotFound, "NO_GENRES")

	testutil.SeedGenre(t, db, "poesía")
	testutil.SeedGenre(t, db, "teatro")

	w = doRequest(t, router, http.MethodGet, "/generos/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp ListGenresResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Total != 2 || resp.Data[0].Name != "poesía" {
		t.Errorf("unexpected genres %+v", resp.Data)
	}
}

func TestGetGenre(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedGenre(t, db, "ensayo")

	w := doRequest(t, router, http.MethodGet, "/generos/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/generos/nombre/ENSAYO", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/generos/nombre/terror", nil)
	expectError(t, w, http.StatusNotFound, "GENRE_NOT_FOUND")

	w = doRequest(t, router, http.MethodGet, "/generos/0", nil)
	expectError(t, w, http.StatusUnprocessableEntity, "INVALID_ID")
}

func TestUpdateGenre(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedGenre(t, db, "drama")
	testutil.SeedGenre(t, db, "comedia")

	w := doRequest(t, router, http.MethodPut, "/generos/2", map[string]any{"nombre": "DRAMA"})
	expectError(t, w, http.StatusConflict, "GENRE_ALREADY_EXISTS")

	w = doRequest(t, router, http.MethodPut, "/generos/2", map[string]any{"descripcion": "para reír"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp GenreResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Name != "comedia" || resp.Data.Description == nil || *resp.Data.Description != "para reír" {
		t.Errorf("unexpected genre %+v", resp.Data)
	}

	w = doRequest(t, router, http.MethodPut, "/generos/2", map[string]any{})
	expectError(t, w, http.StatusBadRequest, "NO_FIELDS_TO_UPDATE")

	w = doRequest(t, router, http.MethodPut, "/generos/9", map[string]any{"nombre": "x"})
	expectError(t, w, http.StatusNotFound, "GENRE_NOT_FOUND")
}

func TestDeleteGenre(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	genre := testutil.SeedGenre(t, db, "historia")
	testutil.SeedBook(t, db, testutil.ISBN1, "SPQR", nil, []model.Genre{genre})

	w := doRequest(t, router, http.MethodDelete, "/generos/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/libros/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected book to survive, got %d", w.Code)
	}
	if got := decodeBook(t, w.Body.Bytes()).Genres; len(got) != 0 {
		t.Errorf("expected genre link removed, got %+v", got)
	}

	w = doRequest(t, router, http.MethodDelete, "/generos/1", nil)
	expectError(t, w, http.StatusNotFound, "GENRE_NOT_FOUND")
}
