package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artesania/feria-api/internal/api/handler/v1/request"
	"github.com/artesania/feria-api/internal/api/handler/v1/response"
	"github.com/artesania/feria-api/internal/domain"
)

type ApplicationService interface {
	Submit(ctx context.Context, userID, fairID int, category, name, description string) (domain.Application, error)
	Approve(ctx context.Context, id int) (domain.Application, error)
	Reject(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]domain.Application, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Application, error)
}

type ApplicationHandler struct {
	svc ApplicationService
}

func NewApplicationHandler(svc ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		svc: svc,
	}
}

// HandleSubmitApplication godoc
// @Summary      Submit an application for a fair slot
// @Description  Created pending; capacity is only checked at approval.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        input  body      request.SubmitApplicationRequest  true  "application"
// @Success      201    {object}  domain.Application
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /applications [post]
// @Security BearerAuth
func (h *ApplicationHandler) HandleSubmitApplication(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if currentRole(ctx) != domain.RoleArtisan {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("artisan role required")))

		return
	}

	var req request.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	application, err := h.svc.Submit(ctx.Request.Context(), userID, req.FairID, req.Category, req.Name, req.Description)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubmitApplication -> h.svc.Submit", err)

		return
	}

	ctx.JSON(http.StatusCreated, application)
}

// HandleListApplications godoc
// @Summary      List applications
// @Description  Administrators see everything, other users their own.
// @Tags         applications
// @Produce      json
// @Success      200  {array}   domain.Application
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /applications [get]
// @Security BearerAuth
func (h *ApplicationHandler) HandleListApplications(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var (
		applications []domain.Application
		err          error
	)
	if currentRole(ctx) == domain.RoleAdmin {
		applications, err = h.svc.ListAll(ctx.Request.Context())
	} else {
		applications, err = h.svc.ListByUser(ctx.Request.Context(), userID)
	}
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListApplications -> h.svc.List", err)

		return
	}

	ctx.JSON(http.StatusOK, applications)
}

// HandleApproveApplication godoc
// @Summary      Approve an application
// @Description  Allocates the slot; a full category answers 409 and the
// @Description  application stays pending for a later retry.
// @Tags         applications
// @Produce      json
// @Param        applicationID  path      int  true  "application id"
// @Success      200  {object}  domain.Application
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /applications/{applicationID}/approve [post]
// @Security BearerAuth
func (h *ApplicationHandler) HandleApproveApplication(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "applicationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	application, err := h.svc.Approve(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleApproveApplication -> h.svc.Approve", err)

		return
	}

	ctx.JSON(http.StatusOK, application)
}

// HandleRejectApplication godoc
// @Summary      Reject an application
// @Tags         applications
// @Produce      json
// @Param        applicationID  path  int  true  "application id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /applications/{applicationID}/reject [post]
// @Security BearerAuth
func (h *ApplicationHandler) HandleRejectApplication(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "applicationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.Reject(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleRejectApplication -> h.svc.Reject", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}
