package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artesania/feria-api/internal/api/handler/v1/response"
	"github.com/artesania/feria-api/internal/domain"
)

type ArtisanSearcher interface {
	SearchArtisans(ctx context.Context, query string) ([]domain.Artisan, error)
}

// PublicHandler serves the unauthenticated catalogue: fairs with
// occupancy and the allocated-artisan directory.
type PublicHandler struct {
	fairs    FairService
	artisans ArtisanSearcher
}

func NewPublicHandler(fairs FairService, artisans ArtisanSearcher) *PublicHandler {
	return &PublicHandler{
		fairs:    fairs,
		artisans: artisans,
	}
}

// HandlePublicFairs godoc
// @Summary      Public fair catalogue with occupancy
// @Tags         public
// @Produce      json
// @Success      200  {array}   domain.FairDetail
// @Failure      500  {object}  response.Err
// @Router       /public/fairs [get]
func (h *PublicHandler) HandlePublicFairs(ctx *gin.Context) {
	fairs, err := h.fairs.ListFairs(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandlePublicFairs -> h.fairs.ListFairs", err)

		return
	}

	ctx.JSON(http.StatusOK, fairs)
}

// HandlePublicArtisans godoc
// @Summary      Public artisan directory
// @Description  Optional search filters by artisan name or category.
// @Tags         public
// @Produce      json
// @Param        search  query     string  false  "name or category substring"
// @Success      200  {array}   response.DirectoryArtisan
// @Failure      500  {object}  response.Err
// @Router       /public/artisans [get]
func (h *PublicHandler) HandlePublicArtisans(ctx *gin.Context) {
	artisans, err := h.artisans.SearchArtisans(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandlePublicArtisans -> h.artisans.SearchArtisans", err)

		return
	}

	fairs, err := h.fairs.ListFairs(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandlePublicArtisans -> h.fairs.ListFairs", err)

		return
	}

	summaries := make(map[int]*response.FairSummary, len(fairs))
	for _, f := range fairs {
		summaries[f.ID] = &response.FairSummary{
			ID:         f.ID,
			Name:       f.Name,
			StartDate:  f.StartDate,
			EndDate:    f.EndDate,
			Occupied:   f.Occupied,
			TotalQuota: f.TotalQuota,
		}
	}

	directory := make([]response.DirectoryArtisan, 0, len(artisans))
	for _, a := range artisans {
		directory = append(directory, response.DirectoryArtisan{
			Artisan: a,
			Fair:    summaries[a.FairID],
		})
	}

	ctx.JSON(http.StatusOK, directory)
}
