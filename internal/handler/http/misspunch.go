package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/handler/http/response"
)

type MissPunchHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type missPunchHandlerImpl struct {
	missPunchService misspunch.MissPunchService
}

func NewMissPunchHandler(missPunchService misspunch.MissPunchService) MissPunchHandler {
	return &missPunchHandlerImpl{
		missPunchService: missPunchService,
	}
}

// decodeReject reads an optional {reason} body for a reject call.
func decodeReject(r *http.Request) (approval.RejectRequest, error) {
	var req approval.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	req.ID = chi.URLParam(r, "id")
	return req, nil
}

// Create implements MissPunchHandler.
func (h *missPunchHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req misspunch.CreateMissPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.missPunchService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Miss-punch request submitted successfully", result)
}

// ListMine implements MissPunchHandler.
func (h *missPunchHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.missPunchService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements MissPunchHandler.
func (h *missPunchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := misspunch.ListMissPunchRequest{Status: r.URL.Query().Get("status")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.missPunchService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements MissPunchHandler.
func (h *missPunchHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.missPunchService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Miss-punch request approved successfully", result)
}

// Reject implements MissPunchHandler.
func (h *missPunchHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReject(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.missPunchService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Miss-punch request rejected successfully", result)
}
