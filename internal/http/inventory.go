package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mongoadapter "github.com/alhaqtravel/umrah-booking/internal/adapters/mongo"
	"github.com/alhaqtravel/umrah-booking/internal/auth"
	"github.com/alhaqtravel/umrah-booking/internal/domain"
)

// Customer-facing inventory reads. Only active records are ever returned
// here; the admin console owns the rest of the lifecycle.

func (h *Handlers) ListPackages(w http.ResponseWriter, r *http.Request) {
	if cached, err := h.cache.GetActivePackages(r.Context()); err == nil && cached != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	docs, err := h.catalog.ListActivePackages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []mongoadapter.PackageDoc{}
	}

	data, _ := json.Marshal(docs)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)

	if err := h.cache.SetActivePackages(r.Context(), data, h.cfg.PackagesCacheTTL); err != nil {
		h.logger.Warn("failed to cache package listing: ", err)
	}
}

func (h *Handlers) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid package id"})
		return
	}
	doc, err := h.catalog.GetActivePackage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handlers) ListHotels(w http.ResponseWriter, r *http.Request) {
	docs, err := h.catalog.ListActiveHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []mongoadapter.HotelDoc{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handlers) ListTransfers(w http.ResponseWriter, r *http.Request) {
	docs, err := h.catalog.ListActiveTransfers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []mongoadapter.TransferDoc{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handlers) ListFlights(w http.ResponseWriter, r *http.Request) {
	docs, err := h.catalog.ListActiveFlights(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []mongoadapter.FlightDoc{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// Admin inventory management. Every write invalidates the package cache and
// leaves an audit trail.

func (h *Handlers) afterInventoryWrite(r *http.Request, kind, op string, id uuid.UUID) {
	if err := h.cache.InvalidatePackages(r.Context()); err != nil {
		h.logger.Warn("failed to invalidate package cache: ", err)
	}
	actor, _ := auth.UserFrom(r.Context())
	if err := h.audit.LogInventoryWrite(r.Context(), actor.ID, kind, op, id); err != nil {
		h.logger.Warn("failed to audit inventory write: ", err)
	}
}

func (h *Handlers) AdminListPackages(w http.ResponseWriter, r *http.Request) {
	docs, err := h.catalog.ListAllPackages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []mongoadapter.PackageDoc{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handlers) AdminCreatePackage(w http.ResponseWriter, r *http.Request) {
	var doc mongoadapter.PackageDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if err := h.catalog.CreatePackage(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, "package", "create", doc.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID.String()})
}

func (h *Handlers) AdminUpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid package id"})
		return
	}
	var doc mongoadapter.PackageDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	doc.ID = id
	if err := h.catalog.UpdatePackage(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, "package", "update", id)
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (h *Handlers) AdminDeletePackage(w http.ResponseWriter, r *http.Request) {
	h.adminDelete(w, r, "package", h.catalog.DeletePackage)
}

func (h *Handlers) AdminSetPackageStatus(w http.ResponseWriter, r *http.Request) {
	h.adminSetStatus(w, r, "package", h.catalog.SetPackageStatus)
}

func (h *Handlers) AdminCreateHotel(w http.ResponseWriter, r *http.Request) {
	var doc mongoadapter.HotelDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if err := h.catalog.CreateHotel(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, "hotel", "create", doc.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID.String()})
}

func (h *Handlers) AdminUpdateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid hotel id"})
		return
	}
	var doc mongoadapter.HotelDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	doc.ID = id
	if err := h.catalog.UpdateHotel(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, "hotel", "update", id)
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (h *Handlers) AdminDeleteHotel(w http.ResponseWriter, r *http.Request) {
	h.adminDelete(w, r, "hotel", h.catalog.DeleteHotel)
}

func (h *Handlers) AdminSetHotelStatus(w http.ResponseWriter, r *http.Request) {
	h.adminSetStatus(w, r, "hotel", h.catalog.SetHotelStatus)
}

func (h *Handlers) AdminCreateTransfer(w http.ResponseWriter, r *http.Request) {
	var doc mongoadapter.TransferDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if err := h.catalog.CreateTransfer(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, "transfer", "create", doc.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID.String()})
}

func (h *Handlers) AdminUpdateTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid transfer id"})
		return
	}
	var doc mongoadapter.TransferDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	doc.ID = id
	if err := h.catalog.UpdateTransfer(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, "transfer", "update", id)
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (h *Handlers) AdminDeleteTransfer(w http.ResponseWriter, r *http.Request) {
	h.adminDelete(w, r, "transfer", h.catalog.DeleteTransfer)
}

func (h *Handlers) AdminSetTransferStatus(w http.ResponseWriter, r *http.Request) {
	h.adminSetStatus(w, r, "transfer", h.catalog.SetTransferStatus)
}

func (h *Handlers) AdminCreateFlight(w http.ResponseWriter, r *http.Request) {
	var doc mongoadapter.FlightDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if err := h.catalog.CreateFlight(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, "flight", "create", doc.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID.String()})
}

func (h *Handlers) AdminUpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid flight id"})
		return
	}
	var doc mongoadapter.FlightDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	doc.ID = id
	if err := h.catalog.UpdateFlight(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, "flight", "update", id)
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (h *Handlers) AdminDeleteFlight(w http.ResponseWriter, r *http.Request) {
	h.adminDelete(w, r, "flight", h.catalog.DeleteFlight)
}

func (h *Handlers) AdminSetFlightStatus(w http.ResponseWriter, r *http.Request) {
	h.adminSetStatus(w, r, "flight", h.catalog.SetFlightStatus)
}

func (h *Handlers) adminDelete(w http.ResponseWriter, r *http.Request, kind string, del func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid " + kind + " id"})
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, kind, "delete", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) adminSetStatus(w http.ResponseWriter, r *http.Request, kind string, set func(ctx context.Context, id uuid.UUID, status string) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid " + kind + " id"})
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := set(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	h.afterInventoryWrite(r, kind, "status", id)
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String(), "status": req.Status})
}
