package controller

import (
	"poker_school_backend/internal/middleware"
	"poker_school_backend/internal/service"
	"poker_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// @Summary Recommended next content
// @Description Resume the unfinished last video, else the course's remaining videos, else the feed
// @Tags recommendation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/recommendations [get]
func (c *RecommendationController) GetRecommendation(ctx *gin.Context) {
	rec, err := c.RecommendationService.Recommend(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}
