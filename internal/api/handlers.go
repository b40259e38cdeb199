package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"wrapper.one/config"
	"wrapper.one/internal/models"
	"wrapper.one/internal/store"
	"wrapper.one/internal/validate"
	"wrapper.one/internal/wrapid"
)

type Handler struct {
	store  store.Store
	config *config.Config
	log    zerolog.Logger
}

func NewHandler(s store.Store, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		store:  s,
		config: cfg,
		log:    log,
	}
}

// rawString accepts a JSON string or a bare JSON number, preserving the
// original text either way. TTLs arrive in both shapes.
type rawString string

func (s *rawString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = rawString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = rawString(b)
	return nil
}

type CreateRequest struct {
	Value *string   `json:"value"`
	TTL   rawString `json:"ttl"`
}

type CreateData struct {
	ID     string `json:"id"`
	Expire int64  `json:"expire"`
}

type RetrieveData struct {
	ID     string `json:"id"`
	Value  string `json:"value"`
	Expire int64  `json:"expire"`
}

// Envelope is the uniform response body. Every response is HTTP 200; Status
// is the true outcome indicator and Ref correlates with server-side logs.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  any    `json:"error,omitempty"`
	Ref    string `json:"ref"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"

	msgNotFound = "wrapper id not found or expired"
	msgInternal = "internal error"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.json(w, map[string]string{"status": "ok"})
}

// CreateWrapper saves a value under a fresh random id and returns the id
// plus the absolute expiry instant.
func (h *Handler) CreateWrapper(w http.ResponseWriter, r *http.Request) {
	ref := GetRequestID(r.Context())
	log := h.log.With().Str("ref", ref).Logger()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("invalid request body")
		h.failed(w, ref, []validate.FieldError{{Field: "body", Message: "must be valid JSON"}})
		return
	}

	ttl, errs := validate.CreatePayload(validate.CreateInput{
		Value: req.Value,
		TTL:   string(req.TTL),
	}, h.config.Wrapper.MinTTLSeconds)
	if len(errs) > 0 {
		log.Error().Any("fields", errs).Msg("create validation failed")
		h.failed(w, ref, errs)
		return
	}

	rec := &models.Record{
		ID:       wrapid.New(),
		Value:    *req.Value,
		ExpireAt: time.Now().Unix() + ttl,
	}

	if err := h.store.Put(r.Context(), rec); err != nil {
		log.Error().Err(err).Msg("store put failed")
		h.failed(w, ref, msgInternal)
		return
	}

	log.Info().Str("id", rec.ID).Int64("expire", rec.ExpireAt).Msg("wrapper created")
	h.success(w, ref, CreateData{ID: rec.ID, Expire: rec.ExpireAt})
}

// RetrieveWrapper consumes a wrapper: the value is returned and the record
// deleted in one atomic store operation, so a second call on the same id
// gets the same answer as a never-created one.
func (h *Handler) RetrieveWrapper(w http.ResponseWriter, r *http.Request) {
	ref := GetRequestID(r.Context())
	log := h.log.With().Str("ref", ref).Logger()

	id := chi.URLParam(r, "id")
	if ferr := validate.ID(id); ferr != nil {
		log.Error().Str("id", id).Str("reason", ferr.Message).Msg("retrieve validation failed")
		h.failed(w, ref, []validate.FieldError{*ferr})
		return
	}

	rec, err := h.store.Take(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info().Str("id", id).Msg("wrapper id not found or expired")
			h.failed(w, ref, msgNotFound)
			return
		}
		log.Error().Err(err).Msg("store take failed")
		h.failed(w, ref, msgInternal)
		return
	}

	log.Info().Str("id", id).Msg("wrapper retrieved")
	h.success(w, ref, RetrieveData{ID: rec.ID, Value: rec.Value, Expire: rec.ExpireAt})
}

func (h *Handler) success(w http.ResponseWriter, ref string, data any) {
	h.json(w, Envelope{Status: StatusSuccess, Data: data, Ref: ref})
}

func (h *Handler) failed(w http.ResponseWriter, ref string, detail any) {
	h.json(w, Envelope{Status: StatusFailed, Error: detail, Ref: ref})
}

func (h *Handler) json(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(body)
}
