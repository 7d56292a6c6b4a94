package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizledger/bizledger/internal/adapter/http/dto"
	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// EntityService defines the behavior needed by EntityHandler.
type EntityService interface {
	CreateEntity(ctx context.Context, input usecase.CreateEntityInput) (*domain.Entity, error)
	GetEntity(ctx context.Context, tenantID, id string) (*domain.Entity, error)
	ListEntities(ctx context.Context, input usecase.ListEntitiesInput) ([]*domain.Entity, error)
}

// EntityHandler handles customer and supplier HTTP requests. The
// entity type is bound at route registration so customers and
// suppliers share one implementation.
type EntityHandler struct {
	entityUC EntityService
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(entityUC EntityService) *EntityHandler {
	return &EntityHandler{entityUC: entityUC}
}

// Create creates a new entity of the bound type.
func (h *EntityHandler) Create(entityType domain.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateEntityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}

		req.Type = string(entityType)

		input, err := req.ToUseCaseInput(tenantID(r))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid credit limit", err.Error())
			return
		}

		entity, err := h.entityUC.CreateEntity(r.Context(), input)
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to create entity", err.Error())

			return
		}

		writeJSON(w, http.StatusCreated, dto.EntityFromDomain(entity))
	}
}

// Get retrieves an entity by ID.
func (h *EntityHandler) Get(entityType domain.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing entity ID", "")
			return
		}

		entity, err := h.entityUC.GetEntity(r.Context(), tenantID(r), id)
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to get entity", err.Error())

			return
		}

		if entity.Type != entityType {
			writeError(w, http.StatusNotFound, "failed to get entity", domain.ErrEntityNotFound.Error())
			return
		}

		writeJSON(w, http.StatusOK, dto.EntityFromDomain(entity))
	}
}

// List lists entities of the bound type.
func (h *EntityHandler) List(entityType domain.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntQuery(r, "limit", 20)
		offset := parseIntQuery(r, "offset", 0)

		entities, err := h.entityUC.ListEntities(r.Context(), usecase.ListEntitiesInput{
			TenantID: tenantID(r),
			Type:     entityType,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to list entities", err.Error())

			return
		}

		writeJSON(w, http.StatusOK, dto.NewListResponse(dto.EntitiesFromDomain(entities)))
	}
}
