package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/export"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/logging"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pdfFilename = "libros.pdf"

type BookHandler struct {
	repo repository.BookRepository
	log  *logging.Loggers
}

func NewBookHandler(repo repository.BookRepository, log *logging.Loggers) *BookHandler {
	return &BookHandler{repo: repo, log: log}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/libros")
	{
		books.GET("/", h.ListBooks)
		books.POST("/", h.CreateBook)
		books.GET("/pdf/download", h.DownloadPDF)
		books.GET("/isbn/:isbn", h.GetBookByISBN)
		books.GET("/autor/:autor", h.ListBooksByAuthor)
		books.GET("/:id", h.GetBookByID)
		books.PUT("/:id", h.UpdateBook)
		books.PATCH("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// writeBookLinkError answers the client-side failures shared by create and
// update. It reports whether err was one of them.
func writeBookLinkError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, repository.ErrDuplicateISBN):
		writeError(c, http.StatusConflict,
			"ISBN_ALREADY_EXISTS",
			"a book with this isbn already exists",
		)
	case errors.Is(err, repository.ErrAuthorNotFound):
		writeError(c, http.StatusBadRequest,
			"AUTHOR_NOT_FOUND",
			"one or more authors do not exist",
		)
	case errors.Is(err, repository.ErrGenreNotFound):
		writeError(c, http.StatusBadRequest,
			"GENRE_NOT_FOUND",
			"one or more genres do not exist",
		)
	default:
		return false
	}
	return true
}

func writeInvalidISBN(c *gin.Context) {
	writeError(c, http.StatusBadRequest,
		"INVALID_ISBN",
		"isbn must be a valid ISBN-10 or ISBN-13",
	)
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a book and link it to existing authors and genres. Every referenced id must exist or nothing is written.
// @Tags         libros
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ISBN, payload or references"
// @Failure      409      {object}  validation.ErrorResponse   "ISBN already exists"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libros/ [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	isbn := validation.NormalizeISBN(req.ISBN)
	if !validation.ValidISBN(isbn) {
		writeInvalidISBN(c)
		return
	}

	book := model.Book{
		ISBN:        isbn,
		Title:       req.Title,
		Description: req.Description,
		Publisher:   req.Publisher,
		Country:     req.Country,
		Language:    req.Language,
		PageCount:   req.PageCount,
		EditionYear: req.EditionYear,
		Price:       req.Price,
	}
	links := repository.BookLinks{AuthorIDs: req.AuthorIDs, GenreIDs: req.GenreIDs}

	ctx := c.Request.Context()

	if err := h.repo.Create(ctx, &book, links); err != nil {
		if writeBookLinkError(c, err) {
			return
		}

		serverError(c, h.log.Internal,
			"BOOK_CREATE_FAILED",
			"failed to create book",
			err,
		)
		return
	}

	h.log.Activity.Info("book created",
		zap.Uint("id", book.ID),
		zap.String("titulo", book.Title),
		zap.String("isbn", book.ISBN),
	)

	created, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		serverError(c, h.log.Internal,
			"BOOK_FETCH_FAILED",
			"failed to fetch created book",
			err,
		)
		return
	}

	c.JSON(http.StatusCreated, BookResponse{Data: toBook(*created)})
}

// ListBooks godoc
// @Summary      List books
// @Description  Get every book with its authors and genres. An empty catalog answers 404.
// @Tags         libros
// @Produce      json
// @Success      200  {object}  ListBooksResponse
// @Failure      404  {object}  validation.ErrorResponse   "No books"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libros/ [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.repo.List(c.Request.Context())
	if err != nil {
		serverError(c, h.log.Internal,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
			err,
		)
		return
	}

	if len(books) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_BOOKS",
			"no books registered",
		)
		return
	}

	c.JSON(http.StatusOK, toListBooksResponse(books))
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         libros
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  BookResponse
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libros/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*book)})
}

// GetBookByISBN godoc
// @Summary      Get a book by ISBN
// @Description  The ISBN checksum is verified before the lookup. Hyphens and spaces are ignored.
// @Tags         libros
// @Produce      json
// @Param        isbn  path      string  true  "ISBN-10 or ISBN-13"
// @Success      200   {object}  BookResponse
// @Failure      400   {object}  validation.ErrorResponse   "Invalid ISBN"
// @Failure      404   {object}  validation.ErrorResponse   "Book not found"
// @Failure      500   {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libros/isbn/{isbn} [get]
func (h *BookHandler) GetBookByISBN(c *gin.Context) {
	isbn := validation.NormalizeISBN(c.Param("isbn"))
	if !validation.ValidISBN(isbn) {
		writeInvalidISBN(c)
		return
	}

	book, err := h.repo.FindByISBN(c.Request.Context(), isbn)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*book)})
}

// ListBooksByAuthor godoc
// @Summary      List books by author
// @Description  Case-insensitive match on the author's first name, last name or full name.
// @Tags         libros
// @Produce      json
// @Param        autor  path      string  true  "Author name"
// @Success      200    {object}  ListBooksResponse
// @Failure      404    {object}  validation.ErrorResponse   "No books for author"
// @Failure      500    {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libros/autor/{autor} [get]
func (h *BookHandler) ListBooksByAuthor(c *gin.Context) {
	books, err := h.repo.FindByAuthorName(c.Request.Context(), c.Param("autor"))
	if err != nil {
		serverError(c, h.log.Internal,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
			err,
		)
		return
	}

	if len(books) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_BOOKS_FOR_AUTHOR",
			"no books for this author",
		)
		return
	}

	c.JSON(http.StatusOK, toListBooksResponse(books))
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Only the supplied fields change. A supplied autores or generos list replaces the current one.
// @Tags         libros
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Book ID"
// @Param        payload  body      UpdateBookRequest   true  "Fields to update"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid payload, ISBN or references"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      409      {object}  validation.ErrorResponse   "ISBN already exists"
// @Failure      422      {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libros/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	book, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.empty() {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if req.ISBN != nil && strings.TrimSpace(*req.ISBN) != "" {
		isbn := validation.NormalizeISBN(*req.ISBN)
		if !validation.ValidISBN(isbn) {
			writeInvalidISBN(c)
			return
		}
		book.ISBN = isbn
	}
	setString(&book.Title, req.Title)
	setString(&book.Description, req.Description)
	setString(&book.Publisher, req.Publisher)
	setString(&book.Country, req.Country)
	setString(&book.Language, req.Language)
	if req.PageCount != nil {
		book.PageCount = *req.PageCount
	}
	if req.EditionYear != nil {
		book.EditionYear = *req.EditionYear
	}
	if req.Price != nil {
		book.Price = *req.Price
	}

	links := repository.BookLinks{AuthorIDs: req.AuthorIDs, GenreIDs: req.GenreIDs}

	if err := h.repo.Update(ctx, book, links); err != nil {
		if writeBookLinkError(c, err) {
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		serverError(c, h.log.Internal,
			"BOOK_UPDATE_FAILED",
			"failed to update book",
			err,
		)
		return
	}

	h.log.Activity.Info("book updated",
		zap.Uint("id", book.ID),
		zap.String("titulo", book.Title),
		zap.String("isbn", book.ISBN),
	)

	updated, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		serverError(c, h.log.Internal,
			"BOOK_FETCH_FAILED",
			"failed to fetch updated book",
			err,
		)
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*updated)})
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book. Its author, genre and loan links are removed with it.
// @Tags         libros
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libros/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		serverError(c, h.log.Internal,
			"BOOK_DELETE_FAILED",
			"failed to delete book",
			err,
		)
		return
	}

	h.log.Activity.Info("book deleted", zap.Uint("id", id))

	c.Status(http.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Export the catalog as PDF
// @Description  A document titled "Lista de libros" with one line per book title.
// @Tags         libros
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      404  {object}  validation.ErrorResponse   "No books"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libros/pdf/download [get]
func (h *BookHandler) DownloadPDF(c *gin.Context) {
	books, err := h.repo.List(c.Request.Context())
	if err != nil {
		serverError(c, h.log.Internal,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
			err,
		)
		return
	}

	if len(books) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_BOOKS",
			"no books registered",
		)
		return
	}

	var buf bytes.Buffer
	if err := export.BookList(&buf, books); err != nil {
		serverError(c, h.log.Internal,
			"PDF_RENDER_FAILED",
			"failed to generate pdf",
			err,
		)
		return
	}

	h.log.Activity.Info("book list exported", zap.Int("books", len(books)))

	c.Header("Content-Disposition", `attachment; filename="`+pdfFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *BookHandler) writeFindError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, http.StatusNotFound,
			"BOOK_NOT_FOUND",
			"book not found",
		)
		return
	}

	serverError(c, h.log.Internal,
		"BOOK_FETCH_FAILED",
		"failed to fetch book",
		err,
	)
}
