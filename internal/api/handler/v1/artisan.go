package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artesania/feria-api/internal/api/handler/v1/request"
	"github.com/artesania/feria-api/internal/api/handler/v1/response"
	"github.com/artesania/feria-api/internal/domain"
	"github.com/artesania/feria-api/internal/service"
)

type AllocationService interface {
	Allocate(ctx context.Context, fairID int, category, name, description string) (domain.Artisan, error)
	DeleteArtisan(ctx context.Context, id int) error
	UpdateArtisan(ctx context.Context, id int, patch service.ArtisanPatch) (domain.Artisan, error)
	GetArtisan(ctx context.Context, id int) (domain.Artisan, error)
	ListArtisans(ctx context.Context) ([]domain.Artisan, error)
}

type ArtisanHandler struct {
	svc AllocationService
}

func NewArtisanHandler(svc AllocationService) *ArtisanHandler {
	return &ArtisanHandler{
		svc: svc,
	}
}

// HandleListArtisans godoc
// @Summary      List allocated artisans
// @Tags         artisans
// @Produce      json
// @Success      200  {array}   domain.Artisan
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /artisans [get]
// @Security BearerAuth
func (h *ArtisanHandler) HandleListArtisans(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	artisans, err := h.svc.ListArtisans(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListArtisans -> h.svc.ListArtisans", err)

		return
	}

	ctx.JSON(http.StatusOK, artisans)
}

// HandleGetArtisan godoc
// @Summary      Get one allocated artisan
// @Tags         artisans
// @Produce      json
// @Param        artisanID  path      int  true  "artisan id"
// @Success      200  {object}  domain.Artisan
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /artisans/{artisanID} [get]
// @Security BearerAuth
func (h *ArtisanHandler) HandleGetArtisan(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "artisanID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	artisan, err := h.svc.GetArtisan(ctx.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("artisan", "id", id))

		return
	}
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetArtisan -> h.svc.GetArtisan", err)

		return
	}

	ctx.JSON(http.StatusOK, artisan)
}

// HandleCreateArtisan godoc
// @Summary      Allocate a slot directly
// @Description  Admin shortcut past the application workflow; the quota
// @Description  check still applies.
// @Tags         artisans
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateArtisanRequest  true  "allocation"
// @Success      201    {object}  domain.Artisan
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /artisans [post]
// @Security BearerAuth
func (h *ArtisanHandler) HandleCreateArtisan(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateArtisanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	artisan, err := h.svc.Allocate(ctx.Request.Context(), req.FairID, req.Category, req.Name, req.Description)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateArtisan -> h.svc.Allocate", err)

		return
	}

	ctx.JSON(http.StatusCreated, artisan)
}

// HandleUpdateArtisan godoc
// @Summary      Edit an allocation
// @Tags         artisans
// @Accept       json
// @Produce      json
// @Param        artisanID  path      int                           true  "artisan id"
// @Param        input      body      request.UpdateArtisanRequest  true  "patch"
// @Success      200        {object}  domain.Artisan
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /artisans/{artisanID} [put]
// @Security BearerAuth
func (h *ArtisanHandler) HandleUpdateArtisan(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "artisanID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateArtisanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	artisan, err := h.svc.UpdateArtisan(ctx.Request.Context(), id, service.ArtisanPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		FairID:      req.FairID,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateArtisan -> h.svc.UpdateArtisan", err)

		return
	}

	ctx.JSON(http.StatusOK, artisan)
}

// HandleDeleteArtisan godoc
// @Summary      Free an allocated slot
// @Tags         artisans
// @Produce      json
// @Param        artisanID  path  int  true  "artisan id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /artisans/{artisanID} [delete]
// @Security BearerAuth
func (h *ArtisanHandler) HandleDeleteArtisan(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "artisanID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.DeleteArtisan(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteArtisan -> h.svc.DeleteArtisan", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}
