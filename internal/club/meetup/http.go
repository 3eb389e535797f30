// Copyright (c) 2026 Novella. All rights reserved.

package meetup

import (
	"net/http"
	"time"

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Members
	router.With(middleware.Require(sec.OpMeetupView)).Get("/", handler.listMeetups)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.Require(sec.OpMeetupManage))

		adminRoute.Post("/", handler.createMeetup)
		adminRoute.Patch("/{id}", handler.updateMeetup)
		adminRoute.Patch("/{id}/publish", handler.togglePublish)
		adminRoute.Delete("/{id}", handler.deleteMeetup)
	})
}

func (handler *Handler) listMeetups(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Admins also see unpublished drafts.
	meetups, err := handler.service.ListMeetups(request.Context(), claims.Role.AtLeast(sec.RoleAdmin))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, meetups)
}

type meetupRequest struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	VenueName     string     `json:"venue_name"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	GoogleMapsURL *string    `json:"google_maps_url"`
	EventDate     time.Time  `json:"event_date"`
	EndTime       *time.Time `json:"end_time"`
	Month         int        `json:"month"`
	Year          int        `json:"year"`
	ImageURL      *string    `json:"image_url"`
	IsPublished   bool       `json:"is_published"`
}

func (m meetupRequest) toInput() CreateInput {
	return CreateInput{
		Title:         m.Title,
		Description:   m.Description,
		VenueName:     m.VenueName,
		Address:       m.Address,
		City:          m.City,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		GoogleMapsURL: m.GoogleMapsURL,
		EventDate:     m.EventDate,
		EndTime:       m.EndTime,
		Month:         m.Month,
		Year:          m.Year,
		ImageURL:      m.ImageURL,
		IsPublished:   m.IsPublished,
	}
}

func (handler *Handler) createMeetup(writer http.ResponseWriter, request *http.Request) {
	var input meetupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateMeetup(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateMeetup(writer http.ResponseWriter, request *http.Request) {
	var input meetupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateMeetup(request.Context(), requestutil.ID(request, "id"), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

type togglePublishRequest struct {
	Published bool `json:"published"`
}

func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	var input togglePublishRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.SetPublished(request.Context(), requestutil.ID(request, "id"), input.Published)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteMeetup(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteMeetup(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
