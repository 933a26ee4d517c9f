package controller

import (
	"poker_school_backend/internal/middleware"
	"poker_school_backend/internal/service"
	"poker_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EngagementController struct {
	EngagementService *service.EngagementService
}

func NewEngagementController(engagementService *service.EngagementService) *EngagementController {
	return &EngagementController{EngagementService: engagementService}
}

// @Summary Toggle bookmark
// @Description Bookmarks the item, or removes the bookmark when one exists
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/bookmarks [post]
func (c *EngagementController) ToggleBookmark(ctx *gin.Context) {
	var req struct {
		Type   string `json:"type" binding:"required,oneof=video chapter quiz"`
		ItemID string `json:"typeId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LogBadRequest(ctx, err)
		return
	}

	result, err := c.EngagementService.ToggleBookmark(middleware.UserID(ctx), req.Type, req.ItemID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Bookmarked videos
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/bookmarks/videos [get]
func (c *EngagementController) GetBookmarkedVideos(ctx *gin.Context) {
	videos, err := c.EngagementService.BookmarkedVideos(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// @Summary Bookmarked chapters
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/bookmarks/chapters [get]
func (c *EngagementController) GetBookmarkedChapters(ctx *gin.Context) {
	chapters, err := c.EngagementService.BookmarkedChapters(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}

// @Summary Bookmarked quizzes
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/bookmarks/quizzes [get]
func (c *EngagementController) GetBookmarkedQuizzes(ctx *gin.Context) {
	quizzes, err := c.EngagementService.BookmarkedQuizzes(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// @Summary Record last seen
// @Description Replaces the user's resume pointers, one slot per course and component type
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/last-seen [post]
func (c *EngagementController) PostLastSeen(ctx *gin.Context) {
	var req struct {
		LastSeenData []service.LastSeenItem `json:"lastSeenData" binding:"required,min=1,dive"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LogBadRequest(ctx, err)
		return
	}

	if err := c.EngagementService.RecordLastSeen(middleware.UserID(ctx), req.LastSeenData); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"recorded": len(req.LastSeenData)})
}

// @Summary Last seen
// @Description The user's resume pointers grouped course by chapter; empty success when none
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/last-seen [get]
func (c *EngagementController) GetLastSeen(ctx *gin.Context) {
	tree, err := c.EngagementService.LastSeen(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tree)
}
