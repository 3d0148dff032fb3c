package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/testutil"
)

func decodeLoan(t *testing.T, body []byte) Loan {
	t.Helper()

	var resp LoanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp.Data
}

func TestCreateLoan(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs, activity, _ := observedLoggers()
	router := setupTestRouterWithRepos(gormRepos(db), logs)

	user := testutil.SeedUser(t, db, "ana@example.com", "11111111A")
	b1 := testutil.SeedBook(t, db, testutil.ISBN1, "Nada", nil, nil)
	b2 := testutil.SeedBook(t, db, testutil.ISBN2, "La isla", nil, nil)

	w := doRequest(t, router, http.MethodPost, "/prestamos/", map[string]any{
		"fecha_prestamo":   "2024-05-01",
		"fecha_devolucion": "2024-05-20",
		"usuario_id":       user.ID,
		"libros_id":        []uint{b1.ID, b2.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d, body=%s", w.Code, w.Body.String())
	}

	loan := decodeLoan(t, w.Body.Bytes())
	if loan.Status != model.LoanActive {
		t.Errorf("expected default estado %q, got %q", model.LoanActive, loan.Status)
	}
	if loan.UserID != user.ID || len(loan.BookIDs) != 2 || len(loan.Books) != 2 {
		t.Errorf("unexpected loan %+v", loan)
	}
	if loan.DueDate.Format("2006-01-02") != "2024-05-20" {
		t.Errorf("unexpected due date %v", loan.DueDate)
	}

	if n := len(activity.FilterMessage("loan created").All()); n != 1 {
		t.Errorf("expected 1 audit line, got %d", n)
	}
}

func TestCreateLoan_Invalid(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	user := testutil.SeedUser(t, db, "ana@example.com", "11111111A")
	book := testutil.SeedBook(t, db, testutil.ISBN1, "Nada", nil, nil)

	base := func() map[string]any {
		return map[string]any{
			"fecha_prestamo":   "2024-05-01",
			"fecha_devolucion": "2024-05-20",
			"usuario_id":       user.ID,
			"libros_id":        []uint{book.ID},
		}
	}

	cases := []struct {
		name   string
		mutate func(p map[string]any)
		status int
		code   string
	}{
		{"unknown_user", func(p map[string]any) { p["usuario_id"] = 99 }, http.StatusBadRequest, "USER_NOT_FOUND"},
		{"unknown_book", func(p map[string]any) { p["libros_id"] = []uint{book.ID, 99} }, http.StatusBadRequest, "BOOK_NOT_FOUND"},
		{"no_books", func(p map[string]any) { p["libros_id"] = []uint{} }, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"bad_status", func(p map[string]any) { p["estado"] = "perdido" }, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"due_before_start", func(p map[string]any) { p["fecha_devolucion"] = "2024-04-01" }, http.StatusBadRequest, "INVALID_LOAN_DATES"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base()
			tc.mutate(p)

			w := doRequest(t, router, http.MethodPost, "/prestamos/", p)
			expectError(t, w, tc.status, tc.code)
		})
	}

	var count int64
	db.Model(&model.Loan{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no loans, got %d", count)
	}
}

func TestUpdateLoan(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	user := testutil.SeedUser(t, db, "ana@example.com", "11111111A")
	b1 := testutil.SeedBook(t, db, testutil.ISBN1, "Nada", nil, nil)
	b2 := testutil.SeedBook(t, db, testutil.ISBN2, "La isla", nil, nil)
	testutil.SeedLoan(t, db, user, b1)

	w := doRequest(t, router, http.MethodPut, "/prestamos/1", map[string]any{"estado": "devuelto"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	loan := decodeLoan(t, w.Body.Bytes())
	if loan.Status != model.LoanReturned || len(loan.BookIDs) != 1 || loan.BookIDs[0] != b1.ID {
		t.Errorf("unexpected loan %+v", loan)
	}

	w = doRequest(t, router, http.MethodPut, "/prestamos/1", map[string]any{"libros_id": []uint{b2.ID}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	loan = decodeLoan(t, w.Body.Bytes())
	if len(loan.BookIDs) != 1 || loan.BookIDs[0] != b2.ID || loan.Status != model.LoanReturned {
		t.Errorf("unexpected loan %+v", loan)
	}

	w = doRequest(t, router, http.MethodPut, "/prestamos/1", map[string]any{"estado": "perdido"})
	expectError(t, w, http.StatusBadRequest, "VALIDATION_FAILED")

	w = doRequest(t, router, http.MethodPut, "/prestamos/1", map[string]any{"usuario_id": 42})
	expectError(t, w, http.StatusBadRequest, "USER_NOT_FOUND")

	w = doRequest(t, router, http.MethodPut, "/prestamos/1", map[string]any{"fecha_devolucion": "2020-01-01"})
	expectError(t, w, http.StatusBadRequest, "INVALID_LOAN_DATES")

	w = doRequest(t, router, http.MethodPut, "/prestamos/1", map[string]any{})
	expectError(t, w, http.StatusBadRequest, "NO_FIELDS_TO_UPDATE")
}

func TestListAndDeleteLoans(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodGet, "/prestamos/", nil)
	expectError(t, w, http.StatusNotFound, "NO_LOANS")

	user := testutil.SeedUser(t, db, "ana@example.com", "11111111A")
	book := testutil.SeedBook(t, db, testutil.ISBN1, "Nada", nil, nil)
	testutil.SeedLoan(t, db, user, book)

	w = doRequest(t, router, http.MethodGet, "/prestamos/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/prestamos/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodDelete, "/prestamos/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/prestamos/1", nil)
	expectError(t, w, http.StatusNotFound, "LOAN_NOT_FOUND")

	w = doRequest(t, router, http.MethodGet, "/libros/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected book to survive loan delete, got %d", w.Code)
	}
}
