package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"gorm.io/datatypes"
)

// parseID reads a positive integer path parameter. Anything else is
// answered with 422.
func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)

	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		writeError(c, http.StatusUnprocessableEntity,
			"INVALID_ID",
			param+" must be a positive integer",
		)
		return 0, false
	}

	return uint(id), true
}

// setString copies v into dst unless it is absent or blank.
func setString(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = *v
	}
}

func setDate(dst *datatypes.Date, v *model.Date) {
	if v != nil && !v.IsZero() {
		*dst = v.Column()
	}
}

// optionalDate maps an empty or zero date to NULL.
func optionalDate(v *model.Date) *datatypes.Date {
	if v == nil || v.IsZero() {
		return nil
	}
	d := v.Column()
	return &d
}

func optionalString(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	s := *v
	return &s
}
