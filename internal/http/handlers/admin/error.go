package admin

import (
	"github.com/gin-gonic/gin"

	handlershared "github.com/marketnest/internal/http/handlers/shared"
	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/service"
)

func respondValidationAware(c *gin.Context, err error, fallbackCode int, fallbackMsg string) {
	if verr, ok := service.AsValidationError(err); ok {
		handlershared.RespondErrorWithData(c, response.CodeUnprocessable, "validation failed", gin.H{"fields": verr.Fields}, nil)
		return
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}
