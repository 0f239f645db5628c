package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbur-rwanda/gbur-backend/query"
	"github.com/gbur-rwanda/gbur-backend/services"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blog      *services.BlogService
}

func newBlogHandler(blog *services.BlogService, production bool) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger, production),
		logger:    logger,
		blog:      blog,
	}
}

// listPosts serves GET /blog?status=&categoryId=&limit=&offset=
func (h blogHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := query.ParseBlogListOptions(r.URL.Query())
		list, err := h.blog.List(r.Context(), opts)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, list)
	}
}

// getPost serves GET /blog/{id}, where the segment may also be a slug.
// Digits are an id, anything else a slug.
func (h blogHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.blog.Lookup(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

func (h blogHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.PostInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blog.Create(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// updatePost serves PUT /blog/{id}. Slugs are rejected with 400.
func (h blogHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.ParseID("id", chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in validation.PostInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blog.Update(r.Context(), id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

func (h blogHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.ParseID("id", chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blog.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, deletedResponse("Blog post"))
	}
}

type deleted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func deletedResponse(entity string) deleted {
	return deleted{Success: true, Message: entity + " deleted successfully"}
}
