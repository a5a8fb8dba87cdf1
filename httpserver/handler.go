package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/ruteri/brand-attestations/api"
	"github.com/ruteri/brand-attestations/archive"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/ruteri/brand-attestations/encoder"
	"github.com/ruteri/brand-attestations/interfaces"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// RequestError provides structured error information for HTTP responses.
// It includes both an HTTP status code and the underlying error.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the error message from the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Attester is the part of attestation.Client the handler needs.
type Attester interface {
	Create(ctx context.Context, rec encoder.Record, recipient common.Address) (attestation.Result, error)
	Mode() attestation.Mode
}

// Handler serves the attestation API.
type Handler struct {
	attester Attester
	registry *chains.Registry
	archive  interfaces.ArchiveBackend
	log      *slog.Logger
}

// NewHandler creates a new HTTP request handler. store may be nil, in which
// case lookups by UID answer 404.
func NewHandler(attester Attester, registry *chains.Registry, store interfaces.ArchiveBackend, log *slog.Logger) *Handler {
	return &Handler{
		attester: attester,
		registry: registry,
		archive:  store,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/attestations/{record_type}", h.HandleCreate)
	r.Get("/api/attestations/{uid}", h.HandleGet)
	r.Get("/api/chain", h.HandleChain)
	r.Get("/api/chains/{chain_id}", h.HandleChainByID)
	r.Get("/api/schemas", h.HandleSchemas)
}

// HandleCreate encodes and attests one record.
//
// URL format: POST /api/attestations/{record_type}
//
// Request body: JSON, see api.CreateAttestationRequest
//
// Response: JSON attestation.Result. 200 on success, 502 when the relay
// failed, 400 when the record cannot be decoded or encoded, 404 for unknown
// record types.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	rec, recipient, err := h.parseCreateRequest(r)
	if err != nil {
		status := http.StatusBadRequest
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			status = reqErr.StatusCode
		}
		h.log.Debug("Rejected attestation request", "err", err)
		writeJSON(w, status, attestation.Result{Success: false, Error: err.Error()})
		return
	}

	result, err := h.attester.Create(r.Context(), rec, recipient)
	if err != nil {
		h.log.Warn("Attestation precondition failed", "recordType", rec.Type(), "err", err)
		writeJSON(w, http.StatusBadRequest, attestation.Result{Success: false, Error: err.Error()})
		return
	}

	if !result.Success {
		writeJSON(w, http.StatusBadGateway, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) parseCreateRequest(r *http.Request) (encoder.Record, common.Address, error) {
	rt, err := interfaces.ParseRecordType(r.PathValue("record_type"))
	if err != nil {
		return nil, common.Address{}, &RequestError{StatusCode: http.StatusNotFound, Err: err}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, common.Address{}, &RequestError{StatusCode: http.StatusRequestEntityTooLarge, Err: errors.New("request body too large")}
	}

	var req api.CreateAttestationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, common.Address{}, fmt.Errorf("invalid request body: %w", err)
	}
	if len(req.Data) == 0 {
		return nil, common.Address{}, errors.New("missing record data")
	}

	rec, err := encoder.DecodeRecord(rt, req.Data)
	if err != nil {
		return nil, common.Address{}, err
	}
	return rec, req.Recipient, nil
}

// HandleGet returns an archived attestation.
//
// URL format: GET /api/attestations/{uid}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if h.archive == nil {
		http.Error(w, "Attestation archive disabled", http.StatusNotFound)
		return
	}

	record, err := h.archive.Fetch(r.Context(), uid)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, record)
	case errors.Is(err, archive.ErrInvalidUID):
		http.Error(w, "Invalid attestation uid", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrRecordNotFound):
		http.Error(w, "Attestation not found", http.StatusNotFound)
	default:
		h.log.Error("Failed to fetch attestation", "uid", uid, "err", err)
		http.Error(w, "Failed to fetch attestation", http.StatusInternalServerError)
	}
}

// HandleChain describes the active network.
//
// URL format: GET /api/chain
func (h *Handler) HandleChain(w http.ResponseWriter, r *http.Request) {
	summary := api.NewChainSummary(h.registry.Active())
	summary.Mode = h.attester.Mode()
	writeJSON(w, http.StatusOK, summary)
}

// HandleChainByID resolves a numeric chain id to a configured network.
//
// URL format: GET /api/chains/{chain_id}
func (h *Handler) HandleChainByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("chain_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid chain id", http.StatusBadRequest)
		return
	}

	cfg, err := h.registry.ConfigForChainID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	summary := api.NewChainSummary(cfg)
	if cfg.Key == h.registry.ActiveKey() {
		summary.Mode = h.attester.Mode()
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleSchemas lists schema strings and UIDs on the active network.
//
// URL format: GET /api/schemas
func (h *Handler) HandleSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.NewSchemasResponse(h.registry.Active()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("Failed to encode response", "err", err)
	}
}
