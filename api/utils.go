package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/wikirace/game"
	"github.com/rs/zerolog/log"
)

const (
	ErrorMessage500 = "Something went wrong!"
)

type response[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func errorResponse(msg string) response[any] {
	return response[any]{Status: "error", Message: msg}
}

func successResponse[T any](msg string, data T) response[T] {
	return response[T]{Status: "success", Message: msg, Data: data}
}

// abortWithError answers with the status matching err. Errors outside the
// game taxonomy are logged and hidden behind a generic message.
func abortWithError(c *gin.Context, err error) {
	switch {
	case game.IsNotFound(err):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse(err.Error()))
	case game.IsPrecondition(err):
		c.AbortWithStatusJSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
	}
}
