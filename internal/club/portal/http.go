// Copyright (c) 2026 Novella. All rights reserved.

package portal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novellaclub/novella/internal/club/period"
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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Members
	router.With(middleware.Require(sec.OpPortalView)).Get("/", handler.listPortals)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.Require(sec.OpPortalManage))

		adminRoute.Post("/", handler.createPortal)
		adminRoute.Patch("/{id}/nomination", handler.toggleNomination)
		adminRoute.Patch("/{id}/voting", handler.toggleVoting)
	})
}

func (handler *Handler) listPortals(writer http.ResponseWriter, request *http.Request) {
	portals, err := handler.service.ListPortals(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, portals)
}

type createPortalRequest struct {
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	Category string `json:"category"`
}

func (handler *Handler) createPortal(writer http.ResponseWriter, request *http.Request) {
	var input createPortalRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.CreatePortal(request.Context(), input.Month, input.Year, period.Category(input.Category))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, status)
}

type togglePortalRequest struct {
	Open bool `json:"open"`
}

func (handler *Handler) toggleNomination(writer http.ResponseWriter, request *http.Request) {
	var input togglePortalRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.SetNominationOpen(request.Context(), requestutil.ID(request, "id"), input.Open)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, status)
}

func (handler *Handler) toggleVoting(writer http.ResponseWriter, request *http.Request) {
	var input togglePortalRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.SetVotingOpen(request.Context(), requestutil.ID(request, "id"), input.Open)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, status)
}
