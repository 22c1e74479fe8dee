package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/packtrack/stock-api/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Message
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Message{Message: "OK"})
}

func parseID(ctx *gin.Context, param string) (uint, *response.Err) {
	raw := ctx.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s %q", param, raw))
	}

	return uint(id), nil
}

// reason returns the error in err's chain that directly wraps target. It
// carries the detail message without the call path.
func reason(err, target error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if errors.Unwrap(e) == target {
			return e
		}
	}

	return target
}
