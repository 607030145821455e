// AngelaMos | 2026
// handler.go

package messaging

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
	r.Route("/conversations", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireActive)
		r.Post("/", h.Start)
		r.Get("/", h.List)
		r.Get("/{conversationID}", h.Get)
		r.Post("/{conversationID}/messages", h.SendMessage)
		r.Get("/{conversationID}/messages", h.ListMessages)
	})
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	var req StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	conv, created, err := h.service.Start(r.Context(), userID, req.OtherUserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.JSONError(w, err)
		return
	}

	if created {
		core.Created(w, ToConversationResponse(conv))
		return
	}
	core.OK(w, ToConversationResponse(conv))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	summaries, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, summaries)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	conversationID, err := parseConversationID(r)
	if err != nil {
		core.NotFound(w, "conversation")
		return
	}

	conv, err := h.service.Get(r.Context(), userID, conversationID)
	if err != nil {
		writeConversationError(w, err)
		return
	}

	core.OK(w, ToConversationResponse(conv))
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	conversationID, err := parseConversationID(r)
	if err != nil {
		core.NotFound(w, "conversation")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	message, err := h.service.SendMessage(
		r.Context(),
		userID,
		conversationID,
		middleware.GetUsername(r.Context()),
		req,
	)
	if err != nil {
		writeConversationError(w, err)
		return
	}

	core.Created(w, ToMessageResponse(message))
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	conversationID, err := parseConversationID(r)
	if err != nil {
		core.NotFound(w, "conversation")
		return
	}

	messages, err := h.service.ListMessages(r.Context(), userID, conversationID)
	if err != nil {
		writeConversationError(w, err)
		return
	}

	core.OK(w, ToMessageResponseList(messages))
}

func writeConversationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "conversation")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "you are not part of this conversation")
	default:
		core.InternalServerError(w, err)
	}
}

func parseConversationID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "conversationID"), 10, 64)
}
