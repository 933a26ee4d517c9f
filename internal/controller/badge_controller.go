package controller

import (
	"errors"
	"strconv"

	"poker_school_backend/internal/middleware"
	"poker_school_backend/internal/service"
	"poker_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BadgeController struct {
	BadgeService *service.BadgeService
}

func NewBadgeController(badgeService *service.BadgeService) *BadgeController {
	return &BadgeController{BadgeService: badgeService}
}

// @Summary Badge header
// @Description Earned-of-total badge ratio for the badge screen
// @Tags badges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/badges/header [get]
func (c *BadgeController) GetHeader(ctx *gin.Context) {
	header, err := c.BadgeService.Header(middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, header)
}

// @Summary Welcome badges
// @Description Badges earned since the previous login
// @Tags badges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/badges/welcome [get]
func (c *BadgeController) GetWelcomeBadges(ctx *gin.Context) {
	badges, err := c.BadgeService.WelcomeBadges(ctx.Request.Context(), middleware.UserID(ctx), middleware.Token(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// @Summary Badge details
// @Description Every streak week classified claimed/running/missed/available with time left on the open week
// @Tags badges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/badges [get]
func (c *BadgeController) GetDetails(ctx *gin.Context) {
	details, err := c.BadgeService.Details(ctx.Request.Context(), middleware.UserID(ctx), middleware.Token(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, details)
}

// @Summary Streak detail
// @Description One week's required components with the user's completion flags
// @Tags badges
// @Produce json
// @Security BearerAuth
// @Param no path int true "Streak number"
// @Success 200 {object} util.Response
// @Router /api/streaks/{no} [get]
func (c *BadgeController) GetStreakDetail(ctx *gin.Context) {
	streakNo, err := strconv.Atoi(ctx.Param("no"))
	if err != nil {
		util.BadRequest(ctx, "invalid streak number")
		return
	}

	detail, err := c.BadgeService.StreakDetailFor(middleware.UserID(ctx), streakNo)
	if err != nil {
		if errors.Is(err, util.ErrStreakNotFound) {
			util.Empty(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
