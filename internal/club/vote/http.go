// Copyright (c) 2026 Novella. All rights reserved.

package vote

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novellaclub/novella/internal/platform/middleware"
	requestutil "github.com/novellaclub/novella/internal/platform/request"
	"github.com/novellaclub/novella/internal/platform/respond"
	"github.com/novellaclub/novella/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the ballot endpoint on the suggestions router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.Require(sec.OpVoteCast)).Post("/{id}/votes", handler.cast)
}

type castResponse struct {
	SuggestionID string `json:"suggestion_id"`
	VoteCount    int    `json:"vote_count"`
}

func (handler *Handler) cast(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	suggestionID := requestutil.ID(request, "id")
	count, err := handler.service.Cast(request.Context(), userID, suggestionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, castResponse{SuggestionID: suggestionID, VoteCount: count})
}
