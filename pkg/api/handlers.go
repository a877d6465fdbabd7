package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/amount"
	"github.com/goran-ethernal/ChainPaywall/pkg/identity"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/goran-ethernal/ChainPaywall/pkg/paywall"
)

const maxRequestBody = 1 << 20

// ChainStatus exposes the progress of the transfer watcher.
type ChainStatus interface {
	NextBlock() uint64
	WatchedSellers() int
}

// Handler handles HTTP requests for the API.
type Handler struct {
	service paywall.Service
	status  ChainStatus
	log     *logger.Logger
}

// NewHandler creates a new API handler. status may be nil when no watcher runs in-process.
func NewHandler(service paywall.Service, status ChainStatus, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		status:  status,
		log:     log,
	}
}

// CreateItem publishes a content item.
// @Summary Create a content item
// @Description Publish a paywalled text item for the seller who signed the frame action
// @Tags Items
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Signed item"
// @Success 201 {object} marketplace.ContentItem "Created item"
// @Failure 400 {object} ErrorResponse "Invalid item"
// @Failure 401 {object} ErrorResponse "Invalid signature"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /items [post]
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	item, err := h.service.CreateItem(r.Context(), req.Signature, req.DataType, req.Content, req.Price)
	if err != nil {
		h.respondServiceError(w, "create item", err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// CreateOrGetInvoice returns the buyer's invoice for an item.
// @Summary Create or get an invoice
// @Description Return the invoice of the signing buyer for the item, issuing one on first request.
// @Description display_amount is the exact amount to transfer to the seller.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Signed invoice request"
// @Success 200 {object} paywall.Quote "Invoice"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Invalid signature"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 409 {object} ErrorResponse "Seller has no invoice ids left"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /invoices [post]
func (h *Handler) CreateOrGetInvoice(w http.ResponseWriter, r *http.Request) {
	var req InvoiceRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.SellerID == 0 || req.ItemID == 0 {
		respondError(w, http.StatusBadRequest, "seller_id and item_id are required")
		return
	}

	quote, err := h.service.CreateOrGetInvoice(r.Context(), req.SellerID, req.ItemID, req.Signature)
	if err != nil {
		h.respondServiceError(w, "create invoice", err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// CheckOwnership reports whether the signing buyer paid for an item.
// @Summary Check ownership
// @Description Report whether the signing buyer paid for the item. Content is included only when paid.
// @Tags Ownership
// @Accept json
// @Produce json
// @Param request body OwnershipRequest true "Signed ownership request"
// @Success 200 {object} paywall.Ownership "Ownership status"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Invalid signature"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /ownership [post]
func (h *Handler) CheckOwnership(w http.ResponseWriter, r *http.Request) {
	var req OwnershipRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.SellerID == 0 || req.ItemID == 0 {
		respondError(w, http.StatusBadRequest, "seller_id and item_id are required")
		return
	}

	ownership, err := h.service.CheckOwnershipSigned(r.Context(), req.SellerID, req.ItemID, req.Signature)
	if err != nil {
		h.respondServiceError(w, "check ownership", err)
		return
	}

	respondJSON(w, http.StatusOK, ownership)
}

// ListItems lists a seller's catalog.
// @Summary List seller items
// @Description List the items a seller has published. Item content is never included.
// @Tags Sellers
// @Produce json
// @Param seller path int true "Seller account id"
// @Success 200 {object} ItemsResponse "Seller items"
// @Failure 400 {object} ErrorResponse "Invalid seller id"
// @Failure 404 {object} ErrorResponse "Seller not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sellers/{seller}/items [get]
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := accountID(w, r, "seller")
	if !ok {
		return
	}

	items, err := h.service.ListItems(r.Context(), sellerID)
	if err != nil {
		h.respondServiceError(w, "list items", err)
		return
	}
	if items == nil {
		items = []*marketplace.ContentItem{}
	}

	respondJSON(w, http.StatusOK, ItemsResponse{SellerID: sellerID, Items: items, Count: len(items)})
}

// ListInvoices lists the invoices a seller has issued.
// @Summary List seller invoices
// @Tags Sellers
// @Produce json
// @Param seller path int true "Seller account id"
// @Success 200 {object} InvoicesResponse "Seller invoices"
// @Failure 400 {object} ErrorResponse "Invalid seller id"
// @Failure 404 {object} ErrorResponse "Seller not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sellers/{seller}/invoices [get]
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := accountID(w, r, "seller")
	if !ok {
		return
	}

	invoices, err := h.service.ListInvoices(r.Context(), sellerID)
	if err != nil {
		h.respondServiceError(w, "list invoices", err)
		return
	}
	if invoices == nil {
		invoices = []*marketplace.Invoice{}
	}

	respondJSON(w, http.StatusOK, InvoicesResponse{SellerID: sellerID, Invoices: invoices, Count: len(invoices)})
}

// SellerStats summarizes a seller's catalog and invoices.
// @Summary Seller statistics
// @Tags Sellers
// @Produce json
// @Param seller path int true "Seller account id"
// @Success 200 {object} paywall.SellerStats "Seller statistics"
// @Failure 400 {object} ErrorResponse "Invalid seller id"
// @Failure 404 {object} ErrorResponse "Seller not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sellers/{seller}/stats [get]
func (h *Handler) SellerStats(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := accountID(w, r, "seller")
	if !ok {
		return
	}

	stats, err := h.service.SellerStats(r.Context(), sellerID)
	if err != nil {
		h.respondServiceError(w, "get seller stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// ListPurchases lists a buyer's settled purchases.
// @Summary List buyer purchases
// @Tags Buyers
// @Produce json
// @Param buyer path int true "Buyer account id"
// @Success 200 {object} PurchasesResponse "Buyer purchases"
// @Failure 400 {object} ErrorResponse "Invalid buyer id"
// @Failure 404 {object} ErrorResponse "Buyer not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /buyers/{buyer}/purchases [get]
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := accountID(w, r, "buyer")
	if !ok {
		return
	}

	purchases, err := h.service.Purchases(r.Context(), buyerID)
	if err != nil {
		h.respondServiceError(w, "list purchases", err)
		return
	}
	if purchases == nil {
		purchases = []*marketplace.Purchase{}
	}

	respondJSON(w, http.StatusOK, PurchasesResponse{BuyerID: buyerID, Purchases: purchases, Count: len(purchases)})
}

// DecodeAmount splits an encoded transfer amount into price and invoice id.
// @Summary Decode a transfer amount
// @Tags Codec
// @Produce json
// @Param amount query string true "Encoded amount, e.g. 11.100001"
// @Success 200 {object} DecodeResponse "Decoded amount"
// @Failure 400 {object} ErrorResponse "Malformed amount"
// @Router /codec/decode [get]
func (h *Handler) DecodeAmount(w http.ResponseWriter, r *http.Request) {
	encoded := r.URL.Query().Get("amount")
	if encoded == "" {
		respondError(w, http.StatusBadRequest, "amount is required")
		return
	}

	decoded, err := amount.Decode(encoded)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, DecodeResponse{
		Amount:    encoded,
		Price:     decoded.Amount.StringFixed(1),
		InvoiceID: decoded.InvoiceID,
	})
}

// Health returns the health status of the API and the watcher.
// @Summary Health check
// @Description Check the health status of the API and the progress of the transfer watcher
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	}

	if h.status != nil {
		response.NextBlock = h.status.NextBlock()
		response.WatchedSellers = h.status.WatchedSellers()
	}

	respondJSON(w, http.StatusOK, response)
}

// respondServiceError maps marketplace errors to HTTP statuses.
func (h *Handler) respondServiceError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidSignature):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, marketplace.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, marketplace.ErrInvalidPrice),
		errors.Is(err, marketplace.ErrInvalidContentType),
		errors.Is(err, marketplace.ErrEmptyContent):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, marketplace.ErrInvoiceSpaceExhausted):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.log.Errorf("Failed to %s: %v", action, err)
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to %s", action))
	}
}

// accountID parses a non-zero account id path value, answering 400 on failure.
func accountID(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s id", name))
		return 0, false
	}

	return id, true
}

// decodeRequest reads a JSON body into dst, answering 400 on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}

	return true
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// encode first so a failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	// headers are sent, nothing left to report to the client
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
