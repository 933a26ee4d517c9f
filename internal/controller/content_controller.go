package controller

import (
	"poker_school_backend/internal/service"
	"poker_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary List banners
// @Tags content
// @Produce json
// @Param language query string false "Language filter"
// @Success 200 {object} util.Response
// @Router /api/banners [get]
func (c *ContentController) GetBanners(ctx *gin.Context) {
	banners, err := c.ContentService.Banners(ctx.Request.Context(), ctx.Query("language"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, banners)
}

// @Summary List feeds
// @Tags content
// @Produce json
// @Param language query string false "Language filter"
// @Success 200 {object} util.Response
// @Router /api/feeds [get]
func (c *ContentController) GetFeeds(ctx *gin.Context) {
	feeds, err := c.ContentService.Feeds(ctx.Request.Context(), ctx.Query("language"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, feeds)
}

// @Summary List live streams
// @Tags content
// @Produce json
// @Param streamId query string false "Single stream"
// @Param tag query string false "Tag filter"
// @Param language query string false "Language filter"
// @Success 200 {object} util.Response
// @Router /api/live-streams [get]
func (c *ContentController) GetLiveStreams(ctx *gin.Context) {
	streams, err := c.ContentService.LiveStreams(ctx.Request.Context(), ctx.Query("streamId"), ctx.Query("tag"), ctx.Query("language"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, streams)
}

// @Summary App-open popups
// @Description Published popups for a day; empty success when none
// @Tags content
// @Produce json
// @Param day query string false "Onboarding day"
// @Success 200 {object} util.Response
// @Router /api/popup [get]
func (c *ContentController) GetPopup(ctx *gin.Context) {
	popups, err := c.ContentService.Popups(ctx.Request.Context(), ctx.Query("day"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, popups)
}

// @Summary Home screen composition
// @Description Aggregated home payload over the configured section layout
// @Tags content
// @Produce json
// @Param language query string false "Language filter"
// @Success 200 {object} util.Response
// @Router /api/home [get]
func (c *ContentController) GetHome(ctx *gin.Context) {
	sections, err := c.ContentService.Home(ctx.Request.Context(), ctx.Query("language"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}
