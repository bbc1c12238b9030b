// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package source

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/middleware"
	requestutil "github.com/musicbookkr/server/internal/platform/request"
	"github.com/musicbookkr/server/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Post("/original", handler.createOriginal)
		member.Post("/melon", handler.createMelon)
	})

	router.Get("/original/{id}", handler.getOriginal)
	router.Get("/melon/{songID}", handler.getMelon)

	return router
}

func (handler *Handler) createOriginal(writer http.ResponseWriter, request *http.Request) {
	var input CreateOriginalInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	src, err := handler.service.CreateOriginal(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, src)
}

func (handler *Handler) getOriginal(writer http.ResponseWriter, request *http.Request) {
	src, err := handler.service.GetOriginal(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, src)
}

func (handler *Handler) createMelon(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		SongID int `json:"song_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.SongID <= 0 {
		respond.Error(writer, request, apperr.ValidationError("Invalid song ID",
			apperr.FieldError{Field: FieldSongID, Message: "Must be a positive integer"}))
		return
	}

	src, err := handler.service.CreateMelon(request.Context(), input.SongID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, src)
}

func (handler *Handler) getMelon(writer http.ResponseWriter, request *http.Request) {
	songID, err := strconv.Atoi(requestutil.ID(request, "songID"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid song ID",
			apperr.FieldError{Field: FieldSongID, Message: "Must be a positive integer"}))
		return
	}

	src, err := handler.service.GetMelon(request.Context(), songID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, src)
}
