package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/logger"
	"github.com/osse101/tidepool/internal/registry"
)

// CreateNodeRequest places a new node. Rarity is rolled when omitted.
type CreateNodeRequest struct {
	ResourceType     string          `json:"resource_type" validate:"required,max=64,resource_type"`
	Position         domain.Position `json:"position"`
	Rarity           string          `json:"rarity,omitempty" validate:"omitempty,max=32"`
	EnhancementLevel uint32          `json:"enhancement_level,omitempty" validate:"max=100"`
}

// CreateNodeResponse returns the new node
type CreateNodeResponse struct {
	Message string              `json:"message"`
	ID      uuid.UUID           `json:"id"`
	Node    domain.NodeSnapshot `json:"node"`
}

// ToolRequest names the equipped tool
type ToolRequest struct {
	ToolID string `json:"tool_id" validate:"max=100"`
	Kind   string `json:"kind" validate:"required,max=32"`
}

// HarvestRequest is one harvest attempt. A missing tool means bare hands.
type HarvestRequest struct {
	ActorID string       `json:"actor_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Tool    *ToolRequest `json:"tool,omitempty"`
}

// HarvestResponse carries the outcome and the node as it stands afterwards
type HarvestResponse struct {
	Outcome domain.HarvestOutcome `json:"outcome"`
	Node    *domain.NodeSnapshot  `json:"node,omitempty"`
}

// NodeHandler serves the node routes over the registry
type NodeHandler struct {
	registry registry.Service
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(reg registry.Service) *NodeHandler {
	return &NodeHandler{registry: reg}
}

// HandleCreate handles POST /nodes
func (h *NodeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create node"); err != nil {
		return
	}

	var opts []registry.CreateOption
	if req.Rarity != "" {
		opts = append(opts, registry.WithRarity(req.Rarity))
	}
	if req.EnhancementLevel > 0 {
		opts = append(opts, registry.WithEnhancementLevel(req.EnhancementLevel))
	}

	id, err := h.registry.CreateNode(r.Context(), domain.ResourceType(req.ResourceType), req.Position, opts...)
	if err != nil {
		respondServiceError(w, r, LogMsgNodeCreateFailed, err)
		return
	}

	snap, ok := h.registry.Query(id)
	if !ok {
		// Destroyed between create and query
		respondServiceError(w, r, LogMsgNodeCreateFailed, domain.ErrNodeNotFound)
		return
	}
	respondJSON(w, http.StatusCreated, CreateNodeResponse{Message: MsgNodeCreated, ID: id, Node: snap})
}

// HandleList handles GET /nodes
func (h *NodeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.registry.QueryAll()})
}

// HandleGet handles GET /nodes/{id}
func (h *NodeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := nodeIDParam(w, r)
	if !ok {
		return
	}
	snap, ok := h.registry.Query(id)
	if !ok {
		respondServiceError(w, r, "Get node", domain.ErrNodeNotFound)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// HandleHarvest handles POST /nodes/{id}/harvest.
// A failed harvest is a 200 with success=false; only rejections are errors.
func (h *NodeHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	id, ok := nodeIDParam(w, r)
	if !ok {
		return
	}
	var req HarvestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	log.Info(LogMsgHarvestRequested, "nodeID", id, "actorID", req.ActorID, "hasTool", req.Tool != nil)

	hc := domain.HarvestContext{ActorID: req.ActorID}
	if req.Tool != nil {
		hc.Tool = &domain.ToolContext{ToolID: req.Tool.ToolID, Kind: req.Tool.Kind}
	}

	outcome, err := h.registry.Harvest(r.Context(), id, hc)
	if err != nil {
		respondServiceError(w, r, "Harvest", err)
		return
	}

	log.Info(LogMsgHarvestCompleted, "nodeID", id, "success", outcome.Success, "failureReason", outcome.FailureReason)

	resp := HarvestResponse{Outcome: outcome}
	if snap, ok := h.registry.Query(id); ok {
		resp.Node = &snap
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleRespawn handles POST /nodes/{id}/respawn
func (h *NodeHandler) HandleRespawn(w http.ResponseWriter, r *http.Request) {
	id, ok := nodeIDParam(w, r)
	if !ok {
		return
	}
	snap, err := h.registry.ForceRespawn(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Force respawn", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgNodeRespawned, Data: snap})
}

// HandleDestroy handles DELETE /nodes/{id}
func (h *NodeHandler) HandleDestroy(w http.ResponseWriter, r *http.Request) {
	id, ok := nodeIDParam(w, r)
	if !ok {
		return
	}
	if !h.registry.DestroyNode(r.Context(), id) {
		respondServiceError(w, r, "Destroy node", domain.ErrNodeNotFound)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNodeDestroyed})
}
