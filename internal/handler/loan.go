package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/logging"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LoanHandler struct {
	repo repository.LoanRepository
	log  *logging.Loggers
}

func NewLoanHandler(repo repository.LoanRepository, log *logging.Loggers) *LoanHandler {
	return &LoanHandler{repo: repo, log: log}
}

func (h *LoanHandler) RegisterRoutes(r *gin.RouterGroup) {
	loans := r.Group("/prestamos")
	{
		loans.GET("/", h.ListLoans)
		loans.POST("/", h.CreateLoan)
		loans.GET("/:id", h.GetLoanByID)
		loans.PUT("/:id", h.UpdateLoan)
		loans.PATCH("/:id", h.UpdateLoan)
		loans.DELETE("/:id", h.DeleteLoan)
	}
}

func writeLoanReferenceError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		writeError(c, http.StatusBadRequest,
			"USER_NOT_FOUND",
			"user does not exist",
		)
	case errors.Is(err, repository.ErrBookNotFound):
		writeError(c, http.StatusBadRequest,
			"BOOK_NOT_FOUND",
			"one or more books do not exist",
		)
	default:
		return false
	}
	return true
}

// checkLoanDates rejects a loan that is due before it starts.
func checkLoanDates(c *gin.Context, loanDate, dueDate time.Time) bool {
	if loanDate.IsZero() || dueDate.IsZero() {
		writeError(c, http.StatusBadRequest,
			"INVALID_LOAN_DATES",
			"fecha_prestamo and fecha_devolucion are required",
		)
		return false
	}
	if dueDate.Before(loanDate) {
		writeError(c, http.StatusBadRequest,
			"INVALID_LOAN_DATES",
			"fecha_devolucion must not be before fecha_prestamo",
		)
		return false
	}
	return true
}

// CreateLoan godoc
// @Summary      Create a loan
// @Description  The user and every book must exist. Estado defaults to activo.
// @Tags         prestamos
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateLoanRequest          true  "Loan to create"
// @Success      201      {object}  LoanResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid payload or references"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /prestamos/ [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if !checkLoanDates(c, req.LoanDate.Time, req.DueDate.Time) {
		return
	}

	loan := model.Loan{
		LoanDate: req.LoanDate.Column(),
		DueDate:  req.DueDate.Column(),
		Status:   req.Status,
		UserID:   req.UserID,
	}

	ctx := c.Request.Context()

	if err := h.repo.Create(ctx, &loan, req.BookIDs); err != nil {
		if writeLoanReferenceError(c, err) {
			return
		}

		serverError(c, h.log.Internal,
			"LOAN_CREATE_FAILED",
			"failed to create loan",
			err,
		)
		return
	}

	h.log.Activity.Info("loan created",
		zap.Uint("id", loan.ID),
		zap.Uint("usuario_id", loan.UserID),
		zap.Uints("libros_id", req.BookIDs),
	)

	created, err := h.repo.FindByID(ctx, loan.ID)
	if err != nil {
		serverError(c, h.log.Internal,
			"LOAN_FETCH_FAILED",
			"failed to fetch created loan",
			err,
		)
		return
	}

	c.JSON(http.StatusCreated, LoanResponse{Data: toLoan(*created)})
}

// ListLoans godoc
// @Summary      List loans
// @Description  An empty table answers 404.
// @Tags         prestamos
// @Produce      json
// @Success      200  {object}  ListLoansResponse
// @Failure      404  {object}  validation.ErrorResponse   "No loans"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /prestamos/ [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.repo.List(c.Request.Context())
	if err != nil {
		serverError(c, h.log.Internal,
			"LOAN_LIST_FAILED",
			"failed to fetch loans",
			err,
		)
		return
	}

	if len(loans) == 0 {
		writeError(c, http.StatusNotFound,
			"NO_LOANS",
			"no loans registered",
		)
		return
	}

	c.JSON(http.StatusOK, toListLoansResponse(loans))
}

// GetLoanByID godoc
// @Summary      Get a loan by ID
// @Tags         prestamos
// @Produce      json
// @Param        id   path      int  true  "Loan ID"
// @Success      200  {object}  LoanResponse
// @Failure      404  {object}  validation.ErrorResponse   "Loan not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /prestamos/{id} [get]
func (h *LoanHandler) GetLoanByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	loan, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoanResponse{Data: toLoan(*loan)})
}

// UpdateLoan godoc
// @Summary      Update a loan
// @Description  Only the supplied fields change. A supplied libros_id list replaces the borrowed books.
// @Tags         prestamos
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Loan ID"
// @Param        payload  body      UpdateLoanRequest   true  "Fields to update"
// @Success      200      {object}  LoanResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid payload or references"
// @Failure      404      {object}  validation.ErrorResponse   "Loan not found"
// @Failure      422      {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /prestamos/{id} [put]
func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	loan, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.writeFindError(c, err)
		return
	}

	var req UpdateLoanRequest
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

	setDate(&loan.LoanDate, req.LoanDate)
	setDate(&loan.DueDate, req.DueDate)
	if req.Status != nil {
		loan.Status = *req.Status
	}
	if req.UserID != nil {
		loan.UserID = *req.UserID
	}

	if !checkLoanDates(c, time.Time(loan.LoanDate), time.Time(loan.DueDate)) {
		return
	}

	if err := h.repo.Update(ctx, loan, req.BookIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LOAN_NOT_FOUND",
				"loan not found",
			)
			return
		}
		if writeLoanReferenceError(c, err) {
			return
		}

		serverError(c, h.log.Internal,
			"LOAN_UPDATE_FAILED",
			"failed to update loan",
			err,
		)
		return
	}

	h.log.Activity.Info("loan updated",
		zap.Uint("id", loan.ID),
		zap.String("estado", string(loan.Status)),
	)

	updated, err := h.repo.FindByID(ctx, loan.ID)
	if err != nil {
		serverError(c, h.log.Internal,
			"LOAN_FETCH_FAILED",
			"failed to fetch updated loan",
			err,
		)
		return
	}

	c.JSON(http.StatusOK, LoanResponse{Data: toLoan(*updated)})
}

// DeleteLoan godoc
// @Summary      Delete a loan
// @Tags         prestamos
// @Produce      json
// @Param        id   path      int  true  "Loan ID"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse   "Loan not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /prestamos/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LOAN_NOT_FOUND",
				"loan not found",
			)
			return
		}

		serverError(c, h.log.Internal,
			"LOAN_DELETE_FAILED",
			"failed to delete loan",
			err,
		)
		return
	}

	h.log.Activity.Info("loan deleted", zap.Uint("id", id))

	c.Status(http.StatusNoContent)
}

func (h *LoanHandler) writeFindError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, http.StatusNotFound,
			"LOAN_NOT_FOUND",
			"loan not found",
		)
		return
	}

	serverError(c, h.log.Internal,
		"LOAN_FETCH_FAILED",
		"failed to fetch loan",
		err,
	)
}
