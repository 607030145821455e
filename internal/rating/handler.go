// AngelaMos | 2026
// handler.go

package rating

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/mercadito/internal/core"
	"github.com/carterperez-dev/mercadito/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	requireActive func(http.Handler) http.Handler,
) {
	r.Route("/products/{productID}/ratings", func(r chi.Router) {
		r.Get("/", h.ListForProduct)
		r.Get("/stats", h.Stats)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(requireActive)
			r.Post("/", h.Create)
			r.Put("/mine", h.UpdateMine)
			r.Delete("/mine", h.DeleteMine)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireActive)
		r.Get("/users/me/ratings", h.ListMine)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	productID, err := parseProductID(r)
	if err != nil {
		core.NotFound(w, "product")
		return
	}

	var req CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rating, err := h.service.Create(r.Context(), userID, productID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToRatingResponse(rating))
}

func (h *Handler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		core.NotFound(w, "product")
		return
	}

	ratings, err := h.service.ListForProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRatingWithUserResponseList(ratings))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		core.NotFound(w, "product")
		return
	}

	stats, err := h.service.Stats(r.Context(), productID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	productID, err := parseProductID(r)
	if err != nil {
		core.NotFound(w, "product")
		return
	}

	var req UpdateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rating, err := h.service.UpdateMine(r.Context(), userID, productID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "rating")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRatingResponse(rating))
}

func (h *Handler) DeleteMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	productID, err := parseProductID(r)
	if err != nil {
		core.NotFound(w, "product")
		return
	}

	if err := h.service.DeleteMine(r.Context(), userID, productID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "rating")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	ratings, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRatingResponseList(ratings))
}

func parseProductID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
}
