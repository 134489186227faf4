package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError translates sentinel errors from the service layer into
// HTTP responses. Anything unrecognized is a 500 with a generic message so raw
// collaborator errors never reach end users.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCommunityNotFound):
		RespondError(c, http.StatusNotFound, "Community not found")
	case errors.Is(err, ErrCommunityExists):
		RespondError(c, http.StatusConflict, "A community with this slug already exists")
	case errors.Is(err, ErrSessionMismatch):
		RespondError(c, http.StatusBadRequest, "Checkout session does not belong to the signed-in user")
	case errors.Is(err, ErrSessionUnpaid):
		RespondError(c, http.StatusBadRequest, "Checkout session is not paid")
	case errors.Is(err, ErrSpaceMismatch):
		RespondError(c, http.StatusBadRequest, "Space does not match the community")
	case errors.Is(err, ErrUnknownPrice):
		RespondError(c, http.StatusBadRequest, "Purchased price does not match any plan for this community")
	case errors.Is(err, ErrPlanNotOffered):
		RespondError(c, http.StatusBadRequest, "This plan is not offered for this community")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSpaceUnavailable):
		RespondError(c, http.StatusBadRequest, "Space could not be resolved on the community platform")
	case errors.Is(err, ErrMemberAccess):
		RespondError(c, http.StatusForbidden, "No platform membership for this account")
	case errors.Is(err, ErrDatabaseError):
		slog.Error("database error", "error", err, "trace_id", c.GetString("trace_id"))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		slog.Error("unhandled service error", "error", err, "trace_id", c.GetString("trace_id"))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
