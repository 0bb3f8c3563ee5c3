package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artesania/feria-api/internal/api/handler/v1/response"
	"github.com/artesania/feria-api/internal/api/middleware"
	"github.com/artesania/feria-api/internal/domain"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseIDParam(ctx *gin.Context, name string) (int, *response.Err) {
	raw := ctx.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw))
	}

	return id, nil
}

func currentUserID(ctx *gin.Context) (int, *response.Err) {
	id, ok := ctx.Get(middleware.CtxUserIDKey)
	if !ok {
		return 0, response.ErrWrongCredentials(errors.New("missing authentication"))
	}

	userID, ok := id.(int)
	if !ok {
		return 0, response.ErrWrongCredentials(errors.New("malformed authentication context"))
	}

	return userID, nil
}

func currentRole(ctx *gin.Context) string {
	return ctx.GetString(middleware.CtxRoleKey)
}

func requireAdmin(ctx *gin.Context) *response.Err {
	if currentRole(ctx) != domain.RoleAdmin {
		return response.ErrPermissionDenied(errors.New("administrator role required"))
	}

	return nil
}

// renderServiceErr maps the service error kinds onto HTTP statuses:
// not-found 404, capacity 409, validation 400, anything else 500.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.RenderErr(ctx, &response.Err{StatusCode: http.StatusNotFound, ErrorMsg: err.Error()})
	case errors.Is(err, domain.ErrCapacity):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, domain.ErrValidation):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
