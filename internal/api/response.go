package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xrecipe"
)

// ErrorResponse 失败时的响应体
type ErrorResponse struct {
	Error string `json:"error" example:"stage validation failed, pipeline=[Recipe Processing], stage=[technique-analyzer]"`
}

type ActorInfo struct {
	ID          string   `json:"id" example:"nutrition-analyzer"`
	Name        string   `json:"name" example:"Nutrition Analyzer"`
	Performance *float64 `json:"performance,omitempty" example:"0.98"`
}

type StageInfo struct {
	Name  string `json:"name" example:"nutrition-analyzer"`
	Actor string `json:"actor" example:"nutrition-analyzer"`
}

type PipelineInfo struct {
	Name   string       `json:"name" example:"Recipe Processing"`
	Stages []*StageInfo `json:"stages"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"v0.3.0"`
}

// statusOf 将处理错误映射为 http 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, xrecipe.ErrPipelineNotFound):
		return http.StatusNotFound
	case xpipeline.IsStageValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, xpipeline.ErrProcessTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case isStepFailure(err):
		return http.StatusBadGateway
	case xrecipe.IsRecipeValidation(err), errors.Is(err, xpipeline.ErrInvalidProvenance):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isStepFailure(err error) bool {
	var se *xpipeline.StepError
	return errors.As(err, &se) || xactor.IsActorExecution(err) || xactor.IsActorNotFound(err)
}
