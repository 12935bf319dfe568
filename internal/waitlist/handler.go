package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	maxBodyBytes = 64 << 10

	msgInvalidBody   = "Invalid request body"
	msgEmailRequired = "Email is required"
	msgInvalidEmail  = "Invalid email address"
	msgDeliveryFail  = "Failed to join waitlist. Please try again later."
	msgRateLimited   = "Too many requests. Please try again later."
	msgMethod        = "Method not allowed"
)

// Delivery outcomes passed to a SignupStore.
const (
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// SignupRecord is the outcome of one valid submission.
type SignupRecord struct {
	Email       string
	Message     string
	Status      string
	MessageID   string
	Error       string
	SubmittedAt time.Time
}

// SignupStore persists submissions. Store errors never fail the request.
type SignupStore interface {
	Record(ctx context.Context, rec SignupRecord) error
}

// Handler serves POST requests that add an address to the waitlist.
type Handler struct {
	mailer  Mailer
	limiter *RateLimiter
	store   SignupStore
	from    string
	to      string
	logger  zerolog.Logger
	now     func() time.Time

	trustForwarded bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithRateLimiter attaches a per-client limiter.
func WithRateLimiter(limiter *RateLimiter) HandlerOption {
	return func(h *Handler) {
		h.limiter = limiter
	}
}

// WithTrustForwarded keys the rate limiter on X-Forwarded-For instead of
// the remote address. Enable it only behind a proxy that overwrites the
// header.
func WithTrustForwarded(trust bool) HandlerOption {
	return func(h *Handler) {
		h.trustForwarded = trust
	}
}

// WithStore records every valid submission.
func WithStore(store SignupStore) HandlerOption {
	return func(h *Handler) {
		h.store = store
	}
}

// WithNow replaces the submission timestamp source.
func WithNow(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler creates the waitlist handler. from and to address the
// notification sent for each signup.
func NewHandler(mailer Mailer, from, to string, logger zerolog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		mailer: mailer,
		from:   from,
		to:     to,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: msgMethod})
		return
	}

	if !h.limiter.Allow(clientKey(r, h.trustForwarded)) {
		MetricSubmissions.WithLabelValues(resultRateLimited).Inc()
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: msgRateLimited})
		return
	}

	var signup Signup
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&signup); err != nil {
		MetricSubmissions.WithLabelValues(resultInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	if err := signup.Validate(); err != nil {
		MetricSubmissions.WithLabelValues(resultInvalid).Inc()
		msg := msgInvalidEmail
		if errors.Is(err, ErrEmailRequired) {
			msg = msgEmailRequired
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	submittedAt := h.now()
	email, err := BuildEmail(signup, h.from, h.to, submittedAt)
	if err != nil {
		h.fail(w, err)
		return
	}

	started := time.Now()
	id, err := h.mailer.Send(r.Context(), email)
	MetricDeliveryDuration.Observe(time.Since(started).Seconds())
	h.record(r.Context(), signup, submittedAt, id, err)
	if err != nil {
		h.fail(w, err)
		return
	}

	MetricSubmissions.WithLabelValues(resultAccepted).Inc()
	h.logger.Info().Str("message_id", id).Msg("waitlist signup delivered")
	writeJSON(w, http.StatusOK, successResponse{Success: true, MessageID: id})
}

func (h *Handler) record(ctx context.Context, signup Signup, submittedAt time.Time, messageID string, sendErr error) {
	if h.store == nil {
		return
	}
	rec := SignupRecord{
		Email:       signup.Email,
		Message:     signup.Message,
		Status:      StatusDelivered,
		MessageID:   messageID,
		SubmittedAt: submittedAt,
	}
	if sendErr != nil {
		rec.Status = StatusFailed
		rec.Error = sendErr.Error()
	}
	if err := h.store.Record(context.WithoutCancel(ctx), rec); err != nil {
		h.logger.Error().Err(err).Msg("failed to record waitlist signup")
	}
}

// fail logs the cause and returns a generic message to the client.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	MetricSubmissions.WithLabelValues(resultFailed).Inc()
	h.logger.Error().Err(err).Msg("waitlist signup error")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgDeliveryFail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
