package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/auth"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/logging"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserHandler struct {
	repo  repository.UserRepository
	loans repository.LoanRepository
	log   *logging.Loggers
}

func NewUserHandler(repo repository.UserRepository, loans repository.LoanRepository, log *logging.Loggers) *UserHandler {
	return &UserHandler{repo: repo, loans: loans, log: log}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/usuarios")
	{
		users.GET("/", h.ListUsers)
		users.POST("/", h.CreateUser)
		users.GET("/email/:email", h.GetUserByEmail)
		users.GET("/:id", h.GetUserByID)
		users.GET("/:id/prestamos", h.ListUserLoans)
		users.PUT("/:id", h.UpdateUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func writeUserConflict(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(c, http.StatusConflict,
			"EMAIL_ALREADY_EXISTS",
			"a user with this email already exists",
		)
	case errors.Is(err, repository.ErrDuplicateNationalID):
		writeError(c, http.StatusConflict,
			"DNI_ALREADY_EXISTS",
			"a user with this dni already exists",
		)
	case errors.Is(err, repository.ErrConflict):
		writeError(c, http.StatusConflict,
			"USER_ALREADY_EXISTS",
			"user conflicts with an existing one",
		)
	default:
		return false
	}
	return true
}

// CreateUser godoc
// @Summary      Create a user
// @Description  The password is stored as a bcrypt hash and never returned.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateUserRequest          true  "User to create"
// @Success      201      {object}  UserResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      409      {object}  validation.ErrorResponse   "Email or dni already exists"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /usuarios/ [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
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

	hash, ok := h.hashPassword(c, req.Password)
	if !ok {
		return
	}

	user := model.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate.Column(),
		NationalID:   req.NationalID,
		Country:      req.Country,
		City:         req.City,
		Address:      req.Address,
		Phone:        req.Phone,
		PasswordHash: hash,
	}

	if err := h.repo.Create(c.Request.Context(), &user); err != nil {
		if writeUserConflict(c, err) {
			return
		}

		serverError(c, h.log.Internal,
			"USER_CREATE_FAILED",
			"failed to create user",
			err,
		)
		return
	}

	h.log.Activity.Info("user created",
		zap.Uint("id", user.ID),
		zap.String("email", user.Email),
	)

	c.JSON(http.StatusCreated, UserResponse{Data: toUser(user)})
}

// ListUsers godoc
// @Summary      List users
// @Description  An empty table answers 404.
// @Tags         usuarios
// @Produce      json
// @Success      200  {object}  ListUsersResponse
// @Failure      404  {object}  validation.ErrorResponse   "No users"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /usuarios/ [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		serverError(c, h.log.Internal,
			"USER_LIST_FAILED",
			"failed to fetch users",
			err,
		)
		return
	}

	if len(users) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_USERS",
			"no users registered",
		)
		return
	}

	data := make([]User, 0, len(users))
	for _, u := range users {
		data = append(data, toUser(u))
	}

	c.JSON(http.StatusOK, ListUsersResponse{Data: data, Total: len(data)})
}

// GetUserByID godoc
// @Summary      Get a user by ID
// @Tags         usuarios
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  UserResponse
// @Failure      404  {object}  validation.ErrorResponse   "User not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /usuarios/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: toUser(*user)})
}

// GetUserByEmail godoc
// @Summary      Get a user by email
// @Tags         usuarios
// @Produce      json
// @Param        email  path      string  true  "Email"
// @Success      200    {object}  UserResponse
// @Failure      404    {object}  validation.ErrorResponse   "User not found"
// @Failure      500    {object}  validation.ErrorResponse   "Internal server error"
// @Router       /usuarios/email/{email} [get]
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.repo.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: toUser(*user)})
}

// ListUserLoans godoc
// @Summary      List a user's loans
// @Tags         usuarios
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  ListLoansResponse
// @Failure      404  {object}  validation.ErrorResponse   "User not found or without loans"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /usuarios/{id}/prestamos [get]
func (h *UserHandler) ListUserLoans(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	loans, err := h.loans.ListByUser(c.Request.Context(), id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	if len(loans) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_LOANS",
			"no loans for this user",
		)
		return
	}

	c.JSON(http.StatusOK, toListLoansResponse(loans))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Only the supplied fields change. A new password is re-hashed.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "User ID"
// @Param        payload  body      UpdateUserRequest   true  "Fields to update"
// @Success      200      {object}  UserResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid payload"
// @Failure      404      {object}  validation.ErrorResponse   "User not found"
// @Failure      409      {object}  validation.ErrorResponse   "Email or dni already exists"
// @Failure      422      {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /usuarios/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	user, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	var req UpdateUserRequest
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

	setString(&user.Email, req.Email)
	setString(&user.FirstName, req.FirstName)
	setString(&user.LastName, req.LastName)
	setDate(&user.BirthDate, req.BirthDate)
	setString(&user.NationalID, req.NationalID)
	setString(&user.Country, req.Country)
	setString(&user.City, req.City)
	setString(&user.Address, req.Address)
	setString(&user.Phone, req.Phone)
	if req.Password != nil {
		hash, ok := h.hashPassword(c, *req.Password)
		if !ok {
			return
		}
		user.PasswordHash = hash
	}

	if err := h.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"USER_NOT_FOUND",
				"user not found",
			)
			return
		}
		if writeUserConflict(c, err) {
			return
		}

		serverError(c, h.log.Internal,
			"USER_UPDATE_FAILED",
			"failed to update user",
			err,
		)
		return
	}

	h.log.Activity.Info("user updated",
		zap.Uint("id", user.ID),
		zap.String("email", user.Email),
	)

	c.JSON(http.StatusOK, UserResponse{Data: toUser(*user)})
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Users with loans cannot be deleted.
// @Tags         usuarios
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse   "User not found"
// @Failure      409  {object}  validation.ErrorResponse   "User has loans"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /usuarios/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			writeError(c, http.StatusNotFound,
				"USER_NOT_FOUND",
				"user not found",
			)
		case errors.Is(err, repository.ErrUserHasLoans):
			writeError(c, http.StatusConflict,
				"USER_HAS_LOANS",
				"user still has loans",
			)
		default:
			serverError(c, h.log.Internal,
				"USER_DELETE_FAILED",
				"failed to delete user",
				err,
			)
		}
		return
	}

	h.log.Activity.Info("user deleted", zap.Uint("id", id))

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) hashPassword(c *gin.Context, plain string) (string, bool) {
	hash, err := auth.HashPassword(plain)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			writeError(c, http.StatusBadRequest,
				"INVALID_PASSWORD",
				err.Error(),
			)
			return "", false
		}

		serverError(c, h.log.Internal,
			"PASSWORD_HASH_FAILED",
			"failed to store password",
			err,
		)
		return "", false
	}
	return hash, true
}

func (h *UserHandler) writeFindError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, http.StatusNotFound,
			"USER_NOT_FOUND",
			"user not found",
		)
		return
	}

	serverError(c, h.log.Internal,
		"USER_FETCH_FAILED",
		"failed to fetch user",
		err,
	)
}
