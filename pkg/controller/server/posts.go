package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/utils/errutil"
)

type generatePostsRequest struct {
	User string `json:"user"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Stage types.Stage `json:"stage,omitempty"`
}

func handleGeneratePosts(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	var req generatePostsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := uc.GeneratePosts(r.Context(), &model.GeneratePostsInput{User: req.User})
	if err != nil {
		errutil.HandleError(r.Context(), "fail to generate posts", err)
	}

	// a partial run still carries the accepted posts
	if result != nil {
		writeJSON(w, http.StatusOK, model.NewRunReport(result, err))
		return
	}

	writeJSON(w, statusCodeOf(err), errorResponse{
		Error: err.Error(),
		Stage: types.StageOf(err),
	})
}

func statusCodeOf(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, types.ErrSourceUnavailable), errors.Is(err, types.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
