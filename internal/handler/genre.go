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

type GenreHandler struct {
	repo repository.GenreRepository
	log  *logging.Loggers
}

func NewGenreHandler(repo repository.GenreRepository, log *logging.Loggers) *GenreHandler {
	return &GenreHandler{repo: repo, log: log}
}

func (h *GenreHandler) RegisterRoutes(r *gin.RouterGroup) {
	genres := r.Group("/generos")
	{
		genres.GET("/", h.ListGenres)
		genres.POST("/", h.CreateGenre)
		genres.GET("/nombre/:nombre", h.GetGenreByName)
		genres.GET("/:id", h.GetGenreByID)
		genres.PUT("/:id", h.UpdateGenre)
		genres.PATCH("/:id", h.UpdateGenre)
		genres.DELETE("/:id", h.DeleteGenre)
	}
}

func writeDuplicateGenre(c *gin.Context) {
	writeError(c, http.StatusConflict,
		"GENRE_ALREADY_EXISTS",
		"a genre with this name already exists",
	)
}

// CreateGenre godoc
// @Summary      Create a genre
// @Description  The name is stored lowercased; names that differ only in case collide.
// @Tags         generos
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateGenreRequest         true  "Genre to create"
// @Success      201      {object}  GenreResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      409      {object}  validation.ErrorResponse   "Genre already exists"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /generos/ [post]
func (h *GenreHandler) CreateGenre(c *gin.Context) {
	var req CreateGenreRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	genre := model.Genre{
		Name:        req.Name,
		Description: optionalString(req.Description),
	}

	if model.NormalizeGenreName(genre.Name) == "" {
		writeError(c, http.StatusBadRequest,
			"INVALID_GENRE_NAME",
			"nombre must not be blank",
		)
		return
	}

	if err := h.repo.Create(c.Request.Context(), &genre); err != nil {
		if errors.Is(err, repository.ErrDuplicateGenre) {
			writeDuplicateGenre(c)
			return
		}

		serverError(c, h.log.Internal,
			"GENRE_CREATE_FAILED",
			"failed to create genre",
			err,
		)
		return
	}

	h.log.Activity.Info("genre created",
		zap.Uint("id", genre.ID),
		zap.String("nombre", genre.Name),
	)

	c.JSON(http.StatusCreated, GenreResponse{Data: toGenre(genre)})
}

// ListGenres godoc
// @Summary      List genres
// @Description  An empty table answers 404.
// @Tags         generos
// @Produce      json
// @Success      200  {object}  ListGenresResponse
// @Failure      404  {object}  validation.ErrorResponse   "No genres"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /generos/ [get]
func (h *GenreHandler) ListGenres(c *gin.Context) {
	genres, err := h.repo.List(c.Request.Context())
	if err != nil {
		serverError(c, h.log.Internal,
			"GENRE_LIST_FAILED",
			"failed to fetch genres",
			err,
		)
		return
	}

	if len(genres) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_GENRES",
			"no genres registered",
		)
		return
	}

	data := make([]Genre, 0, len(genres))
	for _, g := range genres {
		data = append(data, toGenre(g))
	}

	c.JSON(http.StatusOK, ListGenresResponse{Data: data, Total: len(data)})
}

// GetGenreByID godoc
// @Summary      Get a genre by ID
// @Tags         generos
// @Produce      json
// @Param        id   path      int  true  "Genre ID"
// @Success      200  {object}  GenreResponse
// @Failure      404  {object}  validation.ErrorResponse   "Genre not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /generos/{id} [get]
func (h *GenreHandler) GetGenreByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	genre, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenreResponse{Data: toGenre(*genre)})
}

// GetGenreByName godoc
// @Summary      Get a genre by name
// @Tags         generos
// @Produce      json
// @Param        nombre  path      string  true  "Genre name, any case"
// @Success      200     {object}  GenreResponse
// @Failure      404     {object}  validation.ErrorResponse   "Genre not found"
// @Failure      500     {object}  validation.ErrorResponse   "Internal server error"
// @Router       /generos/nombre/{nombre} [get]
func (h *GenreHandler) GetGenreByName(c *gin.Context) {
	genre, err := h.repo.FindByName(c.Request.Context(), c.Param("nombre"))
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenreResponse{Data: toGenre(*genre)})
}

// UpdateGenre godoc
// @Summary      Update a genre
// @Tags         generos
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Genre ID"
// @Param        payload  body      UpdateGenreRequest   true  "Fields to update"
// @Success      200      {object}  GenreResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid payload"
// @Failure      404      {object}  validation.ErrorResponse   "Genre not found"
// @Failure      409      {object}  validation.ErrorResponse   "Genre already exists"
// @Failure      422      {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /generos/{id} [put]
func (h *GenreHandler) UpdateGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	genre, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	var req UpdateGenreRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Name == nil && req.Description == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	setString(&genre.Name, req.Name)
	if req.Description != nil {
		genre.Description = optionalString(req.Description)
	}

	if err := h.repo.Update(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"GENRE_NOT_FOUND",
				"genre not found",
			)
			return
		}
		if errors.Is(err, repository.ErrDuplicateGenre) {
			writeDuplicateGenre(c)
			return
		}

		serverError(c, h.log.Internal,
			"GENRE_UPDATE_FAILED",
			"failed to update genre",
			err,
		)
		return
	}

	h.log.Activity.Info("genre updated",
		zap.Uint("id", genre.ID),
		zap.String("nombre", genre.Name),
	)

	c.JSON(http.StatusOK, GenreResponse{Data: toGenre(*genre)})
}

// DeleteGenre godoc
// @Summary      Delete a genre
// @Description  Books keep existing; only their link to this genre is removed.
// @Tags         generos
// @Produce      json
// @Param        id   path      int  true  "Genre ID"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse   "Genre not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /generos/{id} [delete]
func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"GENRE_NOT_FOUND",
				"genre not found",
			)
			return
		}

		serverError(c, h.log.Internal,
			"GENRE_DELETE_FAILED",
			"failed to delete genre",
			err,
		)
		return
	}

	h.log.Activity.Info("genre deleted", zap.Uint("id", id))

	c.Status(http.StatusNoContent)
}

func (h *GenreHandler) writeFindError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, http.StatusNotFound,
			"GENRE_NOT_FOUND",
			"genre not found",
		)
		return
	}

	serverError(c, h.log.Internal,
		"GENRE_FETCH_FAILED",
		"failed to fetch genre",
		err,
	)
}
