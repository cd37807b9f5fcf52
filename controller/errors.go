package controller

import (
	"errors"
	"net/http"
	"strings"

	"github/itish2003/filesearch/clientstate"
	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/models"
	"github/itish2003/filesearch/services"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

const notFoundMarker = "not found"

type statusCoder interface {
	StatusCode() int
}

// statusFromError digs the HTTP-like status out of an upstream error,
// together with the message to pass through when the status has no fixed
// text. A zero status counts as absent.
func statusFromError(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code, apiMessage(apiErr, err), true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code != 0 {
		return apiErrPtr.Code, apiMessage(*apiErrPtr, err), true
	}
	var coder statusCoder
	if errors.As(err, &coder) && coder.StatusCode() != 0 {
		return coder.StatusCode(), err.Error(), true
	}
	return 0, "", false
}

func apiMessage(apiErr genai.APIError, err error) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// resolveError maps an error to the response status and the text shown to the
// user. Statuses reported by the upstream API get the fixed localized message
// when one exists; everything else keeps the original message.
func resolveError(err error, msgs *Messages) (int, string) {
	if status, message, ok := statusFromError(err); ok {
		if status < 400 || status > 599 {
			return http.StatusInternalServerError, message
		}
		if msg, found := msgs.ForStatus(status); found {
			return status, msg
		}
		return status, message
	}

	switch {
	case errors.Is(err, services.ErrInvalidMetadata):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, clientstate.ErrSessionNotFound):
		return http.StatusNotFound, err.Error()
	case strings.Contains(strings.ToLower(err.Error()), notFoundMarker):
		return http.StatusNotFound, err.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

// fail logs err and answers with the resolved status and message.
func fail(ctx *gin.Context, log logger.ILogger, msgs *Messages, message string, err error) {
	status, userMessage := resolveError(err, msgs)
	details := map[string]interface{}{
		"path":   ctx.FullPath(),
		"status": status,
		"error":  err,
	}
	if id := ctx.Param("id"); id != "" {
		details["session_id"] = id
	}
	log.Error("CONTROLLER", message, details)
	respondError(ctx, status, userMessage)
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, models.APIResponse{Success: false, Error: message})
}

func respondOK(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, models.APIResponse{Success: true, Data: data})
}
