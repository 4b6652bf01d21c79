package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marketdex/economy/internal/repos/accounts"
	"github.com/marketdex/economy/internal/repos/instances"
	"github.com/marketdex/economy/internal/services/economy"
	"github.com/marketdex/economy/internal/services/shop"
)

// HandlerProvider wraps the economy service and exposes HTTP handlers.
type HandlerProvider struct {
	svc *economy.Service
}

func NewHandler(svc *economy.Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseUserIDFromPath(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

// writeDomainError maps known domain failures onto distinguishable responses;
// anything else is a storage/internal fault and must never look like success.
func writeDomainError(w http.ResponseWriter, err error) {
	var shortfall *economy.ShortfallError
	var cooldown *economy.CooldownError

	switch {
	case errors.As(err, &shortfall):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     "insufficient funds",
			"shortfall": shortfall.Shortfall,
		})
	case errors.Is(err, accounts.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient funds")
	case errors.As(err, &cooldown):
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":            "cooldown active",
			"remainingSeconds": int(cooldown.Remaining.Seconds()),
		})
	case errors.Is(err, economy.ErrItemNotAvailable):
		writeError(w, http.StatusNotFound, "item not available")
	case errors.Is(err, instances.ErrInstanceNotOwned):
		writeError(w, http.StatusNotFound, "instance not found or not owned")
	case errors.Is(err, economy.ErrAlreadyClaimed):
		writeError(w, http.StatusConflict, "daily reward already claimed")
	case errors.Is(err, economy.ErrNoEligibleAssets):
		writeError(w, http.StatusConflict, "no eligible assets")
	case errors.Is(err, economy.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "permission denied")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func accountJSON(acct accounts.Account) map[string]any {
	return map[string]any{
		"userId":      acct.ID,
		"balance":     acct.Balance,
		"lastClaimAt": acct.LastClaimAt.UTC().Format(time.RFC3339),
	}
}

func instanceJSON(inst instances.Instance) map[string]any {
	return map[string]any{
		"instanceId":   inst.ID,
		"ownerId":      inst.OwnerID,
		"definitionId": inst.DefinitionID,
		"attrBonusA":   inst.AttrBonusA,
		"attrBonusB":   inst.AttrBonusB,
	}
}

func snapshotJSON(snap *shop.Snapshot) map[string]any {
	items := make([]map[string]any, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, map[string]any{
			"itemId":      it.Definition.ID,
			"displayName": it.Definition.DisplayName,
			"rarityRank":  it.Definition.RarityRank,
			"price":       it.Price,
		})
	}

	return map[string]any{
		"items":       items,
		"generatedAt": snap.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

// --- Handlers ---

// GetBalanceHandler handles GET /user/{userId}/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	acct, err := h.svc.GetBalance(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accountJSON(acct))
}

// ViewShopHandler handles GET /shop
func (h *HandlerProvider) ViewShopHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.ViewShop(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshotJSON(snap))
}

// CollectionHandler handles GET /user/{userId}/collection
func (h *HandlerProvider) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	owned, err := h.svc.Collection(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(owned))
	for _, inst := range owned {
		items = append(items, instanceJSON(inst))
	}

	writeJSON(w, http.StatusOK, map[string]any{"instances": items})
}

// PurchaseHandler handles POST /user/{userId}/purchase
func (h *HandlerProvider) PurchaseHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req struct {
		ItemID int64 `json:"itemId"`
	}

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ItemID == 0 {
		writeError(w, http.StatusBadRequest, "itemId required")
		return
	}

	inst, err := h.svc.Purchase(r.Context(), userID, req.ItemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, instanceJSON(inst))
}

// ExchangeHandler handles POST /user/{userId}/exchange
func (h *HandlerProvider) ExchangeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req struct {
		InstanceID string `json:"instanceId"`
	}

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	instanceID, err := uuid.Parse(req.InstanceID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid instanceId")
		return
	}

	inst, err := h.svc.Exchange(r.Context(), userID, instanceID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, instanceJSON(inst))
}

// ClaimHandler handles POST /user/{userId}/claim
func (h *HandlerProvider) ClaimHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	amount, acct, err := h.svc.ClaimDaily(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"amount":  amount,
		"account": accountJSON(acct),
	})
}

// GrantHandler handles POST /user/{userId}/grant
func (h *HandlerProvider) GrantHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	callerStr := r.Header.Get("X-Caller-Id")
	callerID, err := strconv.ParseUint(callerStr, 10, 64)
	if err != nil || callerID == 0 {
		writeError(w, http.StatusBadRequest, "invalid X-Caller-Id header")
		return
	}

	var req struct {
		Amount int64 `json:"amount"`
	}

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Amount == 0 {
		writeError(w, http.StatusBadRequest, "amount must be non-zero")
		return
	}

	acct, err := h.svc.AdminGrant(r.Context(), userID, req.Amount, callerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accountJSON(acct))
}
