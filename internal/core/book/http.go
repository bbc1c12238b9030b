// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/musicbookkr/server/internal/core/ranking"
	"github.com/musicbookkr/server/internal/platform/middleware"
	requestutil "github.com/musicbookkr/server/internal/platform/request"
	"github.com/musicbookkr/server/internal/platform/respond"
	"github.com/musicbookkr/server/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listBooks)

	// ## Owner Endpoints
	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Get("/img-upload-urls", handler.issueImageUploadURLs)

		owner.Post("/me", handler.createMyBook)
		owner.Get("/me", handler.getMyBook)
		owner.Patch("/me", handler.updateMyBook)
		owner.Delete("/me", handler.deleteMyBook)
		owner.Get("/me/like", handler.getMyBookLikeCount)
	})

	// ## Public Per-Book Endpoints
	router.Get("/{id}", handler.getBook)
	router.Get("/{id}/like", handler.getLikeCount)

	// ## Like Toggles
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Post("/{id}/like", handler.createLike)
		member.Delete("/{id}/like", handler.deleteLike)
		member.Get("/{id}/like/me", handler.getMyLikeStatus)
	})

	return router
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	order, err := ranking.ParseOrder(request.URL.Query().Get("sort"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, total, err := handler.service.List(request.Context(), order, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createMyBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.CreateMyBook(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) getMyBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetMyBook(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) updateMyBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateMyBook(request.Context(), userID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteMyBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMyBook(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) issueImageUploadURLs(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	urls, err := handler.service.IssueImageUploadURLs(request.Context(), userID, middleware.RealIP(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, urls)
}

func (handler *Handler) getMyBookLikeCount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.MyBookLikeCount(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"count": count})
}

func (handler *Handler) getLikeCount(writer http.ResponseWriter, request *http.Request) {
	count, err := handler.service.LikeCount(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"count": count})
}

func (handler *Handler) createLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateLike(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLike(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getMyLikeStatus(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	liked, err := handler.service.LikeStatus(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"liked": liked})
}
