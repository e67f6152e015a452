package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
	"tenure/pkg/platform/httputil"
	"tenure/pkg/requestcontext"
)

// TokenIssuer signs bearer tokens for a subject identity.
type TokenIssuer interface {
	GenerateToken(subject string, expiresIn time.Duration) (string, error)
}

// AuthHandler issues development tokens. In production the identity layer
// sharing the signing key issues tokens and this endpoint stays unmounted.
type AuthHandler struct {
	issuer   TokenIssuer
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(issuer TokenIssuer, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, tokenTTL: tokenTTL, logger: logger}
}

// Register mounts the token endpoint on the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/token", h.HandleToken)
}

type tokenRequest struct {
	Subject string `json:"subject"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// HandleToken handles POST /auth/token requests.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[tokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	subject, err := id.ParseIdentity(req.Subject)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	signed, err := h.issuer.GenerateToken(subject.String(), h.tokenTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "token generation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}
