package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rankbridge/internal/identity/models"
	"rankbridge/internal/identity/service"
	dErrors "rankbridge/pkg/domain-errors"
	"rankbridge/pkg/platform/httputil"
	"rankbridge/pkg/platform/middleware/admin"
	request "rankbridge/pkg/platform/middleware/request"
)

const maxRequestBytes = 64 << 10

// Service defines the onboarding operations the handler exposes.
type Service interface {
	Register(ctx context.Context, req service.RegisterRequest) (*models.Identity, error)
	BotProfileURL() string
}

// Handler serves onboarding endpoints.
type Handler struct {
	svc        Service
	adminToken string
	logger     *slog.Logger
}

func New(svc Service, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, adminToken: adminToken, logger: logger}
}

// Register mounts the routes. Registration is an operator action and needs the
// admin token; the bot profile is public.
func (h *Handler) Register(r chi.Router) {
	r.Get("/bot", h.handleBot)
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Post("/identities", h.handleRegister)
	})
}

type registerRequest struct {
	ProfileURL    string `json:"profile_url"`
	VoiceIdentity string `json:"voice_identity"`
}

type identityResponse struct {
	GlobalID      string     `json:"global_id"`
	VoiceIdentity string     `json:"voice_identity"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
}

type botResponse struct {
	ProfileURL string `json:"profile_url"`
}

func toIdentityResponse(identity *models.Identity) identityResponse {
	return identityResponse{
		GlobalID:      identity.GlobalID.String(),
		VoiceIdentity: identity.VoiceIdentity.String(),
		Active:        identity.Active,
		CreatedAt:     identity.CreatedAt,
		ActivatedAt:   identity.ActivatedAt,
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	var req registerRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid register request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	identity, err := h.svc.Register(ctx, service.RegisterRequest{
		ProfileURL:    req.ProfileURL,
		VoiceIdentity: req.VoiceIdentity,
	})
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to register identity",
				"request_id", requestID,
				"error", err.Error(),
			)
		} else {
			h.logger.WarnContext(ctx, "identity registration rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toIdentityResponse(identity))
}

func (h *Handler) handleBot(w http.ResponseWriter, r *http.Request) {
	profileURL := h.svc.BotProfileURL()
	if profileURL == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "bot profile is not configured"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, botResponse{ProfileURL: profileURL})
}
