package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artesania/feria-api/internal/api/handler/v1/request"
	"github.com/artesania/feria-api/internal/api/handler/v1/response"
	"github.com/artesania/feria-api/internal/domain"
	"github.com/artesania/feria-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id int) (domain.User, error)
	UpdateUser(ctx context.Context, id int, patch service.UserPatch) (domain.User, error)
	DeleteUser(ctx context.Context, id, actorID int) error
	ToggleFavorite(ctx context.Context, userID, fairID int) (bool, error)
	ListFavorites(ctx context.Context, userID int) ([]domain.FairDetail, error)
	GetProfile(ctx context.Context, userID int) (domain.Profile, error)
	UpdateProfile(ctx context.Context, userID int, profile domain.Profile) (domain.Profile, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Get a user
// @Description  Users read themselves; administrators read anyone.
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "user id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	actorID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if id != actorID {
		if respErr = requireAdmin(ctx); respErr != nil {
			response.RenderErr(ctx, respErr)

			return
		}
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetUser -> h.svc.GetUser", err)

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleDeleteUser godoc
// @Summary      Delete a user and their applications
// @Description  Refuses self-deletion and removing the last administrator.
// @Tags         users
// @Produce      json
// @Param        userID  path  int  true  "user id"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID} [delete]
// @Security BearerAuth
// HandleUpdateUser godoc
// @Summary      Edit a user's name, email or role
// @Description  Refuses demoting the last administrator.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID  path      int                        true  "user id"
// @Param        input   body      request.UpdateUserRequest  true  "patch"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID} [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.UpdateUser(ctx.Request.Context(), id, service.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateUser -> h.svc.UpdateUser", err)

		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	if respErr := requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	actorID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.DeleteUser(ctx.Request.Context(), id, actorID); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteUser -> h.svc.DeleteUser", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleToggleFavorite godoc
// @Summary      Toggle a fair in the user's favorites
// @Tags         users
// @Produce      json
// @Param        fairID  path      int  true  "fair id"
// @Success      200  {object}  response.FavoriteToggleResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me/favorites/{fairID} [post]
// @Security BearerAuth
func (h *UserHandler) HandleToggleFavorite(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	fairID, respErr := parseIDParam(ctx, "fairID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	favorite, err := h.svc.ToggleFavorite(ctx.Request.Context(), userID, fairID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleToggleFavorite -> h.svc.ToggleFavorite", err)

		return
	}

	ctx.JSON(http.StatusOK, response.FavoriteToggleResponse{
		FairID:   fairID,
		Favorite: favorite,
	})
}

// HandleListFavorites godoc
// @Summary      List the user's favorite fairs
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.FairDetail
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me/favorites [get]
// @Security BearerAuth
func (h *UserHandler) HandleListFavorites(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	favorites, err := h.svc.ListFavorites(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListFavorites -> h.svc.ListFavorites", err)

		return
	}

	ctx.JSON(http.StatusOK, favorites)
}

// HandleGetProfile godoc
// @Summary      Get the caller's artisan profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me/profile [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetProfile(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	profile, err := h.svc.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetProfile -> h.svc.GetProfile", err)

		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleUpdateProfile godoc
// @Summary      Replace the caller's artisan profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input  body      request.UpdateProfileRequest  true  "profile"
// @Success      200    {object}  domain.Profile
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /users/me/profile [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateProfile(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	products := make([]domain.Product, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, domain.Product{Name: p.Name, Description: p.Description})
	}

	profile, err := h.svc.UpdateProfile(ctx.Request.Context(), userID, domain.Profile{
		Name:        req.Name,
		Description: req.Description,
		Products:    products,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateProfile -> h.svc.UpdateProfile", err)

		return
	}

	ctx.JSON(http.StatusOK, profile)
}
