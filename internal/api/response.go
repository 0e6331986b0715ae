package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divagicha/microblog/internal/models"
)

// FailedResponse is the error payload surfaced to API callers
type FailedResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// respondError maps a domain error onto the failed payload shape.
// ValidationError -> 400, NotFound -> 404, ConstraintViolation -> 409,
// anything else -> 500.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	errs := map[string][]string{}

	switch {
	case models.IsValidation(err):
		status = http.StatusBadRequest
		var ve *models.ValidationError
		if errors.As(err, &ve) && ve.Field != "" {
			errs[ve.Field] = []string{ve.Message}
		} else {
			errs["validation_errors"] = []string{err.Error()}
		}
	case models.IsNotFound(err):
		status = http.StatusNotFound
		errs["detail"] = []string{err.Error()}
	case models.IsConstraintViolation(err):
		status = http.StatusConflict
		errs["validation_errors"] = []string{err.Error()}
	default:
		errs["detail"] = []string{"internal server error"}
	}

	c.JSON(status, FailedResponse{
		Status:  "failed",
		Message: message,
		Errors:  errs,
	})
}

// respondBindError reports a malformed request body
func respondBindError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, FailedResponse{
		Status:  "failed",
		Message: message,
		Errors:  map[string][]string{"request": {err.Error()}},
	})
}
