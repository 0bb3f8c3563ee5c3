package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artesania/feria-api/internal/api/handler/v1/request"
	"github.com/artesania/feria-api/internal/api/handler/v1/response"
	"github.com/artesania/feria-api/internal/domain"
	"github.com/artesania/feria-api/internal/service"
)

type FairService interface {
	CreateFair(ctx context.Context, fair domain.Fair) (domain.Fair, error)
	UpdateFair(ctx context.Context, id int, patch service.FairPatch) (domain.Fair, error)
	DeleteFair(ctx context.Context, id int) error
	GetFair(ctx context.Context, id int) (domain.FairDetail, error)
	ListFairs(ctx context.Context) ([]domain.FairDetail, error)
	CategoryOptions(ctx context.Context) (map[int][]domain.CategoryOccupancy, error)
}

type FairHandler struct {
	svc FairService
}

func NewFairHandler(svc FairService) *FairHandler {
	return &FairHandler{
		svc: svc,
	}
}

// HandleListFairs godoc
// @Summary      List fairs with occupancy
// @Tags         fairs
// @Produce      json
// @Success      200  {array}   domain.FairDetail
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /fairs [get]
// @Security BearerAuth
func (h *FairHandler) HandleListFairs(ctx *gin.Context) {
	fairs, err := h.svc.ListFairs(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListFairs -> h.svc.ListFairs", err)

		return
	}

	ctx.JSON(http.StatusOK, fairs)
}

// HandleGetFair godoc
// @Summary      Get one fair with occupancy
// @Tags         fairs
// @Produce      json
// @Param        fairID  path      int  true  "fair id"
// @Success      200  {object}  domain.FairDetail
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /fairs/{fairID} [get]
// @Security BearerAuth
func (h *FairHandler) HandleGetFair(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "fairID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	fair, err := h.svc.GetFair(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetFair -> h.svc.GetFair", err)

		return
	}

	ctx.JSON(http.StatusOK, fair)
}

// HandleCategoryOptions godoc
// @Summary      Map fair id to category occupancies
// @Description  Populates the application form selects.
// @Tags         fairs
// @Produce      json
// @Success      200  {object}  map[int][]domain.CategoryOccupancy
// @Failure      500  {object}  response.Err
// @Router       /fairs/options [get]
// @Security BearerAuth
func (h *FairHandler) HandleCategoryOptions(ctx *gin.Context) {
	options, err := h.svc.CategoryOptions(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCategoryOptions -> h.svc.CategoryOptions", err)

		return
	}

	ctx.JSON(http.StatusOK, options)
}

// HandleCreateFair godoc
// @Summary      Create a fair
// @Tags         fairs
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateFairRequest  true  "fair"
// @Success      201    {object}  domain.Fair
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /fairs [post]
// @Security BearerAuth
func (h *FairHandler) HandleCreateFair(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateFairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	categories := make([]domain.Category, 0, len(req.Categories))
	for _, c := range req.Categories {
		categories = append(categories, domain.Category{Name: c.Name, Quota: c.Quota})
	}

	fair, err := h.svc.CreateFair(ctx.Request.Context(), domain.Fair{
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Preferences: req.Preferences,
		Categories:  categories,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateFair -> h.svc.CreateFair", err)

		return
	}

	ctx.JSON(http.StatusCreated, fair)
}

// HandleUpdateFair godoc
// @Summary      Update a fair
// @Tags         fairs
// @Accept       json
// @Produce      json
// @Param        fairID  path      int                        true  "fair id"
// @Param        input   body      request.UpdateFairRequest  true  "patch"
// @Success      200     {object}  domain.Fair
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /fairs/{fairID} [put]
// @Security BearerAuth
func (h *FairHandler) HandleUpdateFair(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "fairID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateFairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	patch := service.FairPatch{
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Preferences: req.Preferences,
	}
	if req.Categories != nil {
		categories := make([]domain.Category, 0, len(*req.Categories))
		for _, c := range *req.Categories {
			categories = append(categories, domain.Category{Name: c.Name, Quota: c.Quota})
		}
		patch.Categories = &categories
	}

	fair, err := h.svc.UpdateFair(ctx.Request.Context(), id, patch)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateFair -> h.svc.UpdateFair", err)

		return
	}

	ctx.JSON(http.StatusOK, fair)
}

// HandleDeleteFair godoc
// @Summary      Delete a fair and everything referencing it
// @Tags         fairs
// @Produce      json
// @Param        fairID  path  int  true  "fair id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /fairs/{fairID} [delete]
// @Security BearerAuth
func (h *FairHandler) HandleDeleteFair(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "fairID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.DeleteFair(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleDeleteFair(%v) -> h.svc.DeleteFair", id), err)

		return
	}

	ctx.Status(http.StatusNoContent)
}
