// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package track

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
	router.Get("/", handler.listTracks)

	// ## Owner Endpoints
	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Get("/img-upload-urls", handler.issueImageUploadURLs)

		owner.Post("/me", handler.createMyTrack)
		owner.Get("/me", handler.listMyTracks)
		owner.Patch("/me/{id}", handler.updateMyTrack)
		owner.Delete("/me/{id}", handler.deleteMyTrack)
	})

	// ## Public Per-Track Endpoints
	router.Get("/{id}", handler.getTrack)
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

func (handler *Handler) listTracks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	order, err := ranking.ParseOrder(queryParams.Get("sort"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		Category: queryParams.Get("category"),
		UserID:   queryParams.Get("user_id"),
		BookID:   queryParams.Get("book_id"),
	}

	tracks, total, err := handler.service.List(request.Context(), order, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tracks, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTrack(writer http.ResponseWriter, request *http.Request) {
	track, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, track)
}

func (handler *Handler) listMyTracks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tracks, err := handler.service.ListMyTracks(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tracks)
}

func (handler *Handler) createMyTrack(writer http.ResponseWriter, request *http.Request) {
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

	track, err := handler.service.CreateMyTrack(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, track)
}

func (handler *Handler) updateMyTrack(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateMyTrack(request.Context(), userID, requestutil.ID(request, "id"), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteMyTrack(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMyTrack(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
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
