// Copyright (c) 2026 Novella. All rights reserved.

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/platform/middleware"
	requestutil "github.com/novellaclub/novella/internal/platform/request"
	"github.com/novellaclub/novella/internal/platform/respond"
	"github.com/novellaclub/novella/internal/platform/sec"
	"github.com/novellaclub/novella/pkg/pagination"
	"github.com/novellaclub/novella/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listBooks)
	router.Get("/{slug}", handler.getBook)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.Require(sec.OpBookManage))

		adminRoute.Post("/", handler.createBook)
		adminRoute.Patch("/{id}", handler.updateBook)
		adminRoute.Delete("/{id}", handler.deleteBook)
	})
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:    queryParams.Get("q"),
		Category: period.Category(queryParams.Get("category")),
	}
	if queryParams.Has("selected") {
		filter.Selected = pointer.To(queryParams.Get("selected") == "true")
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBookBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

type createBookRequest struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Synopsis string  `json:"synopsis"`
	ImageURL *string `json:"image_url"`
	Category string  `json:"category"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input createBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateBook(request.Context(), CreateInput{
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

type updateBookRequest struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Synopsis string  `json:"synopsis"`
	ImageURL *string `json:"image_url"`
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	var input updateBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateBook(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Title:    input.Title,
		Author:   input.Author,
		Synopsis: input.Synopsis,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBook(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
