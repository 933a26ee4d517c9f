package util

import (
	"net/http"
	"poker_school_backend/pkg/logger"
	"reflect"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform success envelope. Count carries the number of
// elements when Data is a list; empty results are still a success.
type Response struct {
	Status string      `json:"status"`
	Count  int         `json:"count"`
	Data   interface{} `json:"data"`
}

type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FailResponse is the uniform failure envelope.
type FailResponse struct {
	Status string        `json:"status"`
	Error  []ErrorDetail `json:"error"`
}

func count(data interface{}) int {
	if data == nil {
		return 0
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len()
	default:
		return 1
	}
}

func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = []interface{}{}
	}
	c.JSON(http.StatusOK, Response{
		Status: "success",
		Count:  count(data),
		Data:   data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status: "success",
		Count:  count(data),
		Data:   data,
	})
}

// Empty reports zero results as a success, never as an error.
func Empty(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status: "success",
		Count:  0,
		Data:   []interface{}{},
	})
}

func Fail(c *gin.Context, status, code int, message string) {
	c.JSON(status, FailResponse{
		Status: "fail",
		Error:  []ErrorDetail{{Code: code, Message: message}},
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, http.StatusUnauthorized, "Unauthorized")
}

func InternalServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, http.StatusInternalServerError, "Internal server error")
}

// LogInternalError logs the specific cause and responds with the generic
// failure envelope; the error kind is never surfaced to the caller.
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// LogBadRequest logs the specific cause and responds with the generic
// bad-request envelope.
func LogBadRequest(c *gin.Context, err error) {
	logger.Log.Error("Bad request", zap.Error(err))
	Fail(c, http.StatusBadRequest, http.StatusBadRequest, "Bad request")
}
