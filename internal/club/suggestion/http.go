// Copyright (c) 2026 Novella. All rights reserved.

package suggestion

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/platform/middleware"
	requestutil "github.com/novellaclub/novella/internal/platform/request"
	"github.com/novellaclub/novella/internal/platform/respond"
	"github.com/novellaclub/novella/internal/platform/sec"
	"github.com/novellaclub/novella/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Members
	router.With(middleware.Require(sec.OpSuggestionView)).Get("/", handler.leaderboard)
	router.With(middleware.Require(sec.OpSuggestionSubmit)).Post("/", handler.submit)

	// Admin only
	router.With(middleware.Require(sec.OpSuggestionDelete)).Delete("/{id}", handler.deleteSuggestion)
	router.With(middleware.Require(sec.OpSuggestionSelect)).Post("/{id}/select", handler.selectWinner)
}

func (handler *Handler) leaderboard(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()
	now := time.Now()

	category := period.Category(queryParams.Get("category"))
	if category == "" {
		category = period.CategoryFiction
	}
	month := convert.ToIntD(queryParams.Get("month"), int(now.Month()))
	year := convert.ToIntD(queryParams.Get("year"), now.Year())

	suggestions, err := handler.service.Leaderboard(request.Context(), month, year, category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, suggestions)
}

type submitRequest struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Synopsis string  `json:"synopsis"`
	ImageURL *string `json:"image_url"`
	Category string  `json:"category"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Submit(request.Context(), userID, SubmitInput{
		Title:    input.Title,
		Author:   input.Author,
		Synopsis: input.Synopsis,
		ImageURL: input.ImageURL,
		Category: period.Category(input.Category),
		Month:    input.Month,
		Year:     input.Year,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) deleteSuggestion(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSuggestion(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type selectWinnerResponse struct {
	BookID string `json:"book_id"`
}

func (handler *Handler) selectWinner(writer http.ResponseWriter, request *http.Request) {
	bookID, err := handler.service.SelectWinner(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, selectWinnerResponse{BookID: bookID})
}
