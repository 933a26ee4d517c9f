package controller

import (
	"poker_school_backend/internal/service"
	"poker_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SyncController struct {
	SyncService *service.SyncService
}

func NewSyncController(syncService *service.SyncService) *SyncController {
	return &SyncController{SyncService: syncService}
}

// @Summary Catalog change webhook
// @Description Reconciles stored progress after a CMS quiz edit and invalidates the placement cache
// @Tags internal
// @Accept json
// @Produce json
// @Param body body service.CatalogChange true "Change notification"
// @Success 200 {object} util.Response
// @Router /api/internal/catalog-sync [post]
func (c *SyncController) PostCatalogSync(ctx *gin.Context) {
	var change service.CatalogChange
	if err := ctx.ShouldBindJSON(&change); err != nil {
		util.LogBadRequest(ctx, err)
		return
	}

	if err := c.SyncService.Apply(change); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"componentId": change.ComponentID})
}
