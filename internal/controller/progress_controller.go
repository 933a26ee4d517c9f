package controller

import (
	"poker_school_backend/internal/middleware"
	"poker_school_backend/internal/service"
	"poker_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary Record progress
// @Description Bulk progress write; elements succeed or fail independently and newly earned badges ride on the response
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []service.ProgressWriteItem true "Progress elements"
// @Success 200 {object} util.Response
// @Router /api/progress [post]
func (c *ProgressController) PostProgress(ctx *gin.Context) {
	var items []service.ProgressWriteItem
	if err := ctx.ShouldBindJSON(&items); err != nil {
		util.LogBadRequest(ctx, err)
		return
	}
	if len(items) == 0 {
		util.BadRequest(ctx, "empty progress batch")
		return
	}

	outcome, err := c.ProgressService.RecordProgress(
		ctx.Request.Context(),
		middleware.UserID(ctx),
		middleware.Token(ctx),
		items,
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}

// @Summary All progress
// @Description Nested course/chapter progress tree for the user
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetAllProgress(ctx *gin.Context) {
	tree, err := c.ProgressService.AllProgress(middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tree)
}

// @Summary Progress by course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 200 {object} util.Response
// @Router /api/progress/course/{id} [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	records, err := c.ProgressService.ByCourse(middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary Progress by chapter
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter id"
// @Success 200 {object} util.Response
// @Router /api/progress/chapter/{id} [get]
func (c *ProgressController) GetChapterProgress(ctx *gin.Context) {
	records, err := c.ProgressService.ByChapter(middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary Progress for one component
// @Description Single quiz or video record; empty success when none exists
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Component id"
// @Success 200 {object} util.Response
// @Router /api/progress/component/{id} [get]
func (c *ProgressController) GetComponentProgress(ctx *gin.Context) {
	record, err := c.ProgressService.ByComponent(middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if record == nil {
		util.Empty(ctx)
		return
	}
	util.Success(ctx, record)
}

// @Summary My learning
// @Description Progress tree restricted to still-published catalog entries
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/my-learning [get]
func (c *ProgressController) GetMyLearning(ctx *gin.Context) {
	tree, err := c.ProgressService.MyLearning(middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tree)
}

// @Summary Incomplete courses
// @Description Resume view: unfinished components per chapter of every started course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/incomplete-courses [get]
func (c *ProgressController) GetIncompleteCourses(ctx *gin.Context) {
	courses, err := c.ProgressService.IncompleteCourses(middleware.UserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Rate a video
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/feedback [post]
func (c *ProgressController) PostFeedback(ctx *gin.Context) {
	var req struct {
		VideoID string `json:"videoId" binding:"required"`
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LogBadRequest(ctx, err)
		return
	}

	if err := c.ProgressService.PostFeedback(middleware.UserID(ctx), req.VideoID, req.Rating); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"videoId": req.VideoID, "rating": req.Rating})
}

// @Summary Video rating
// @Description The user's own rating plus the video's global average
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video id"
// @Success 200 {object} util.Response
// @Router /api/feedback/{id} [get]
func (c *ProgressController) GetFeedback(ctx *gin.Context) {
	view, err := c.ProgressService.GetFeedback(middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
