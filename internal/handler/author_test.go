package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/testutil"
)

func validAuthorPayload() map[string]any {
	return map[string]any{
		"nombre":           "Emilia",
		"apellidos":        "Pardo Bazán",
		"nacionalidad":     "española",
		"fecha_nacimiento": "1851-09-16",
		"biografia":        "Novelista gallega",
	}
}

func TestCreateAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs, activity, _ := observedLoggers()
	router := setupTestRouterWithRepos(gormRepos(db), logs)

	payload := validAuthorPayload()
	payload["fecha_fallecimiento"] = "12/05/1921"

	w := doRequest(t, router, http.MethodPost, "/autores/", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp AuthorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.ID == 0 || resp.Data.LastName != "Pardo Bazán" {
		t.Errorf("unexpected author %+v", resp.Data)
	}
	if resp.Data.BirthDate.Format("2006-01-02") != "1851-09-16" {
		t.Errorf("unexpected birth date %v", resp.Data.BirthDate)
	}
	if resp.Data.DeathDate == nil || resp.Data.DeathDate.Format("2006-01-02") != "1921-05-12" {
		t.Errorf("unexpected death date %v", resp.Data.DeathDate)
	}
	if resp.Data.Image != nil {
		t.Errorf("expected no image")
	}

	entries := activity.FilterMessage("author created").All()
	if len(entries) != 1 || entries[0].ContextMap()["nombre"] != "Emilia Pardo Bazán" {
		t.Errorf("unexpected audit lines %+v", entries)
	}
}

func TestCreateAuthor_Invalid(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	missing := validAuthorPayload()
	delete(missing, "biografia")
	w := doRequest(t, router, http.MethodPost, "/autores/", missing)
	expectError(t, w, http.StatusBadRequest, "VALIDATION_FAILED")

	badDate := validAuthorPayload()
	badDate["fecha_nacimiento"] = "ayer"
	w = doRequest(t, router, http.MethodPost, "/autores/", badDate)
	expectError(t, w, http.StatusBadRequest, "INVALID_BODY")

	blankDate := validAuthorPayload()
	blankDate["fecha_nacimiento"] = ""
	w = doRequest(t, router, http.MethodPost, "/autores/", blankDate)
	expectError(t, w, http.StatusBadRequest, "INVALID_BIRTH_DATE")
}

func TestAuthorBooks(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	author := testutil.SeedAuthor(t, db, "Benito", "Pérez Galdós")

	w := doRequest(t, router, http.MethodGet, "/autores/1/libros", nil)
	expectError(t, w, http.StatusNotFound, "NO_BOOKS_FOR_AUTHOR")

	testutil.SeedBook(t, db, testutil.ISBN1, "Fortunata y Jacinta", []model.Author{author}, nil)

	w = doRequest(t, router, http.MethodGet, "/autores/1/libros", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []BookSummary `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Title != "Fortunata y Jacinta" {
		t.Errorf("unexpected books %+v", resp.Data)
	}

	w = doRequest(t, router, http.MethodGet, "/autores/7/libros", nil)
	expectError(t, w, http.StatusNotFound, "AUTHOR_NOT_FOUND")
}

func TestListAuthors(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodGet, "/autores/", nil)
	expectError(t, w, http.StatusNotFound, "NO_AUTHORS")

	testutil.SeedAuthor(t, db, "Gloria", "Fuertes")

	w = doRequest(t, router, http.MethodGet, "/autores/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp ListAuthorsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Total != 1 || resp.Data[0].FirstName != "Gloria" {
		t.Errorf("unexpected authors %+v", resp.Data)
	}
}

func TestUpdateAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedAuthor(t, db, "Gloria", "Fuertes")

	w := doRequest(t, router, http.MethodPut, "/autores/1", map[string]any{
		"imagen":              "https://example.com/gloria.jpg",
		"fecha_fallecimiento": "1998-11-27",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp AuthorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.FirstName != "Gloria" || resp.Data.Image == nil || resp.Data.DeathDate == nil {
		t.Errorf("unexpected author %+v", resp.Data)
	}

	w = doRequest(t, router, http.MethodPut, "/autores/1", map[string]any{})
	expectError(t, w, http.StatusBadRequest, "NO_FIELDS_TO_UPDATE")

	w = doRequest(t, router, http.MethodPut, "/autores/2", map[string]any{"nombre": "x"})
	expectError(t, w, http.StatusNotFound, "AUTHOR_NOT_FOUND")
}

func TestDeleteAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedAuthor(t, db, "Gloria", "Fuertes")

	w := doRequest(t, router, http.MethodDelete, "/autores/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodDelete, "/autores/1", nil)
	expectError(t, w, http.StatusNotFound, "AUTHOR_NOT_FOUND")
}
