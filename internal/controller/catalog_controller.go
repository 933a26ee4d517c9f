package controller

import (
	"errors"

	"poker_school_backend/internal/repository"
	"poker_school_backend/internal/service"
	"poker_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// @Summary List courses
// @Description Lists published courses with chapter, video and quiz counts
// @Tags catalog
// @Produce json
// @Param language query string false "Language filter"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CatalogController) GetCourses(ctx *gin.Context) {
	courses, err := c.CatalogService.Courses(ctx.Request.Context(), ctx.Query("language"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Course details
// @Description Full course tree with ordered chapter components
// @Tags catalog
// @Produce json
// @Param id path string true "Course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	course, err := c.CatalogService.CourseByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.Empty(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Chapters of a course
// @Tags catalog
// @Produce json
// @Param id path string true "Course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/chapters [get]
func (c *CatalogController) GetCourseChapters(ctx *gin.Context) {
	chapters, err := c.CatalogService.ChaptersOfCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.Empty(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}

// @Summary List free videos
// @Description Published free videos, filterable by game type, audience, language and lesson id
// @Tags catalog
// @Produce json
// @Param gameType query string false "Game type filter"
// @Param audience query string false "Audience filter"
// @Param language query string false "Language filter"
// @Param lessonId query string false "Single lesson id"
// @Success 200 {object} util.Response
// @Router /api/free-videos [get]
func (c *CatalogController) GetFreeVideos(ctx *gin.Context) {
	filter := repository.FreeVideoFilter{
		GameType: ctx.Query("gameType"),
		Audience: ctx.Query("audience"),
		Language: ctx.Query("language"),
		LessonID: ctx.Query("lessonId"),
	}
	videos, err := c.CatalogService.FreeVideos(ctx.Request.Context(), filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// @Summary List free quizzes
// @Tags catalog
// @Produce json
// @Param language query string false "Language filter"
// @Success 200 {object} util.Response
// @Router /api/free-quizzes [get]
func (c *CatalogController) GetFreeQuizzes(ctx *gin.Context) {
	quizzes, err := c.CatalogService.FreeQuizzes(ctx.Query("language"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// @Summary Free quiz details
// @Description One free quiz with its questions, empty option slots scrubbed
// @Tags catalog
// @Produce json
// @Param id path string true "Quiz id"
// @Success 200 {object} util.Response
// @Router /api/free-quizzes/{id} [get]
func (c *CatalogController) GetFreeQuiz(ctx *gin.Context) {
	quiz, err := c.CatalogService.FreeQuizByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.Empty(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}
