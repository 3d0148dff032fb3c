package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/logging"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthorHandler struct {
	repo repository.AuthorRepository
	log  *logging.Loggers
}

func NewAuthorHandler(repo repository.AuthorRepository, log *logging.Loggers) *AuthorHandler {
	return &AuthorHandler{repo: repo, log: log}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/autores")
	{
		authors.GET("/", h.ListAuthors)
		authors.POST("/", h.CreateAuthor)
		authors.GET("/:id", h.GetAuthorByID)
		authors.GET("/:id/libros", h.ListAuthorBooks)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.PATCH("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
	}
}

// CreateAuthor godoc
// @Summary      Create an author
// @Tags         autores
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest        true  "Author to create"
// @Success      201      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /autores/ [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.BirthDate.IsZero() {
		writeError(c, http.StatusBadRequest,
			"INVALID_BIRTH_DATE",
			"fecha_nacimiento is required",
		)
		return
	}

	author := model.Author{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Nationality: req.Nationality,
		BirthDate:   req.BirthDate.Column(),
		DeathDate:   optionalDate(req.DeathDate),
		Biography:   req.Biography,
		Image:       optionalString(req.Image),
	}

	ctx := c.Request.Context()

	if err := h.repo.Create(ctx, &author); err != nil {
		serverError(c, h.log.Internal,
			"AUTHOR_CREATE_FAILED",
			"failed to create author",
			err,
		)
		return
	}

	h.log.Activity.Info("author created",
		zap.Uint("id", author.ID),
		zap.String("nombre", author.FullName()),
	)

	created, err := h.repo.FindByID(ctx, author.ID)
	if err != nil {
		serverError(c, h.log.Internal,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch created author",
			err,
		)
		return
	}

	c.JSON(http.StatusCreated, AuthorResponse{Data: toAuthor(*created)})
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Every author with the books they wrote. An empty table answers 404.
// @Tags         autores
// @Produce      json
// @Success      200  {object}  ListAuthorsResponse
// @Failure      404  {object}  validation.ErrorResponse   "No authors"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /autores/ [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.repo.List(c.Request.Context())
	if err != nil {
		serverError(c, h.log.Internal,
			"AUTHOR_LIST_FAILED",
			"failed to fetch authors",
			err,
		)
		return
	}

	if len(authors) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_AUTHORS",
			"no authors registered",
		)
		return
	}

	data := make([]Author, 0, len(authors))
	for _, a := range authors {
		data = append(data, toAuthor(a))
	}

	c.JSON(http.StatusOK, ListAuthorsResponse{Data: data, Total: len(data)})
}

// GetAuthorByID godoc
// @Summary      Get an author by ID
// @Tags         autores
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  AuthorResponse
// @Failure      404  {object}  validation.ErrorResponse   "Author not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /autores/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	author, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author)})
}

// ListAuthorBooks godoc
// @Summary      List an author's books
// @Tags         autores
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  BookSummariesResponse
// @Failure      404  {object}  validation.ErrorResponse   "Author not found or without books"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /autores/{id}/libros [get]
func (h *AuthorHandler) ListAuthorBooks(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	author, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	if len(author.Books) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_BOOKS_FOR_AUTHOR",
			"no books for this author",
		)
		return
	}

	c.JSON(http.StatusOK, BookSummariesResponse{Data: toAuthor(*author).Books})
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Only the supplied fields change.
// @Tags         autores
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Author ID"
// @Param        payload  body      UpdateAuthorRequest   true  "Fields to update"
// @Success      200      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid payload"
// @Failure      404      {object}  validation.ErrorResponse   "Author not found"
// @Failure      422      {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /autores/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	author, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	var req UpdateAuthorRequest
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

	setString(&author.FirstName, req.FirstName)
	setString(&author.LastName, req.LastName)
	setString(&author.Nationality, req.Nationality)
	setString(&author.Biography, req.Biography)
	setDate(&author.BirthDate, req.BirthDate)
	if req.DeathDate != nil {
		author.DeathDate = optionalDate(req.DeathDate)
	}
	if req.Image != nil {
		author.Image = optionalString(req.Image)
	}

	if err := h.repo.Update(ctx, author); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return
		}
		serverError(c, h.log.Internal,
			"AUTHOR_UPDATE_FAILED",
			"failed to update author",
			err,
		)
		return
	}

	h.log.Activity.Info("author updated",
		zap.Uint("id", author.ID),
		zap.String("nombre", author.FullName()),
	)

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author)})
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Books keep existing; only their link to this author is removed.
// @Tags         autores
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse   "Author not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /autores/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return
		}

		serverError(c, h.log.Internal,
			"AUTHOR_DELETE_FAILED",
			"failed to delete author",
			err,
		)
		return
	}

	h.log.Activity.Info("author deleted", zap.Uint("id", id))

	c.Status(http.StatusNoContent)
}

func (h *AuthorHandler) writeFindError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, http.StatusNotFound,
			"AUTHOR_NOT_FOUND",
			"author not found",
		)
		return
	}

	serverError(c, h.log.Internal,
		"AUTHOR_FETCH_FAILED",
		"failed to fetch author",
		err,
	)
}
