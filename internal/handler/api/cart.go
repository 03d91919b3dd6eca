package api

import (
	"log/slog"
	"net/http"

	reqdto "storefront-cart/internal/handler/dto/request"
	resdto "storefront-cart/internal/handler/dto/response"
	"storefront-cart/internal/handler/httperr"
	"storefront-cart/internal/handler/middleware"
	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoCartSession = errs.New("no cart session on request")

type CartHandler struct {
	logger *slog.Logger
}

func NewCartHandler(logger *slog.Logger) *CartHandler {
	return &CartHandler{logger: logger}
}

// @Summary Get cart
// @Description Get the active cart and its sync status
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 503 {object} map[string]string
// @Router /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	svc, ok := h.cart(c)
	if !ok {
		return
	}
	view, err := svc.GetCart(c.Request.Context())
	if err != nil {
		h.abort(c, err, "Failed to load cart")
		return
	}
	h.render(c, http.StatusOK, func() (any, error) { return resdto.FromCartRM(view) })
}

// @Summary Add item
// @Description Add a product to the active cart; quantities of the same product are summed
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.AddItemRequest true "Item to add"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	svc, ok := h.cart(c)
	if !ok {
		return
	}
	var req reqdto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := svc.AddItem(c.Request.Context(), req.ProductID, *req.Quantity); err != nil {
		h.abort(c, err, "Failed to add item")
		return
	}
	h.respondCart(c, svc)
}

// @Summary Set item quantity
// @Description Set a product's quantity; a quantity below 1 removes it
// @Tags cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body reqdto.SetQuantityRequest true "New quantity"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	svc, ok := h.cart(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product id", nil)
		return
	}
	var req reqdto.SetQuantityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err = svc.SetQuantity(c.Request.Context(), productID, *req.Quantity); err != nil {
		h.abort(c, err, "Failed to update item")
		return
	}
	h.respondCart(c, svc)
}

// @Summary Remove item
// @Tags cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	svc, ok := h.cart(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product id", nil)
		return
	}
	if err = svc.RemoveItem(c.Request.Context(), productID); err != nil {
		h.abort(c, err, "Failed to remove item")
		return
	}
	h.respondCart(c, svc)
}

// @Summary Get totals
// @Description Price the active cart, optionally with a coupon
// @Tags cart
// @Produce json
// @Param coupon query string false "Coupon code"
// @Success 200 {object} resdto.TotalsResponse
// @Failure 503 {object} map[string]string
// @Router /api/cart/totals [get]
func (h *CartHandler) GetTotals(c *gin.Context) {
	svc, ok := h.cart(c)
	if !ok {
		return
	}
	totals, err := svc.GetTotals(c.Request.Context(), c.Query("coupon"))
	if err != nil {
		h.abort(c, err, "Failed to price cart")
		return
	}
	h.render(c, http.StatusOK, func() (any, error) { return resdto.FromTotalsRM(totals) })
}

// @Summary Quote checkout
// @Description Price every line of the active cart for checkout
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.QuoteRequest false "Optional coupon"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/cart/checkout/quote [post]
func (h *CartHandler) QuoteCheckout(c *gin.Context) {
	svc, ok := h.cart(c)
	if !ok {
		return
	}
	var req reqdto.QuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	quote, err := svc.QuoteCheckout(c.Request.Context(), req.GetCouponCode())
	if err != nil {
		h.abort(c, err, "Failed to quote checkout")
		return
	}
	h.render(c, http.StatusOK, func() (any, error) { return resdto.FromQuoteRM(quote) })
}

// @Summary Sync status
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.SyncStatusResponse
// @Router /api/cart/sync [get]
func (h *CartHandler) SyncStatus(c *gin.Context) {
	svc, ok := h.cart(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, func() (any, error) { return resdto.FromSyncStatusRM(svc.SyncStatus()) })
}

// @Summary Retry sync
// @Description Retry the items a failed login merge could not add
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.SyncStatusResponse
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/cart/sync/retry [post]
func (h *CartHandler) RetrySync(c *gin.Context) {
	svc, ok := h.cart(c)
	if !ok {
		return
	}
	status, err := svc.RetrySync(c.Request.Context())
	if err != nil {
		detail, convErr := resdto.FromSyncStatusRM(status)
		if convErr != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, convErr, "Internal server error", nil)
			return
		}
		h.abortWithDetail(c, err, "Cart sync failed", detail)
		return
	}
	h.render(c, http.StatusOK, func() (any, error) { return resdto.FromSyncStatusRM(status) })
}

func (h *CartHandler) cart(c *gin.Context) (usecase.CartService, bool) {
	svc, ok := middleware.GetCartService(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoCartSession, "Internal server error", nil)
		return nil, false
	}
	return svc, true
}

func (h *CartHandler) respondCart(c *gin.Context, svc usecase.CartService) {
	view, err := svc.GetCart(c.Request.Context())
	if err != nil {
		h.abort(c, err, "Failed to load cart")
		return
	}
	h.render(c, http.StatusOK, func() (any, error) { return resdto.FromCartRM(view) })
}

func (h *CartHandler) render(c *gin.Context, status int, build func() (any, error)) {
	body, err := build()
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, body)
}

func (h *CartHandler) abort(c *gin.Context, err error, msg string) {
	h.abortWithDetail(c, err, msg, nil)
}

func (h *CartHandler) abortWithDetail(c *gin.Context, err error, msg string, detail any) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg,
			slog.String("cart_session", middleware.GetCartSessionID(c)),
			slog.String("error", err.Error()),
			slog.Any("stack", errs.ExtractStackLines(err, 12)))
	}
	httperr.AbortWithError(c, status, err, msg, detail)
}

func statusFor(err error) int {
	switch {
	case errs.Is(err, usecase.ErrInvalidQuantity), errs.Is(err, usecase.ErrInvalidProduct):
		return http.StatusBadRequest
	case errs.Is(err, usecase.ErrProductUnresolvable):
		return http.StatusUnprocessableEntity
	case errs.Is(err, usecase.ErrCartEmpty), errs.Is(err, usecase.ErrNothingToRetry):
		return http.StatusConflict
	case errs.Is(err, usecase.ErrMergeFailed):
		return http.StatusBadGateway
	case errs.Is(err, usecase.ErrRemoteUnavailable),
		errs.Is(err, usecase.ErrCouponLookupFailed),
		errs.Is(err, usecase.ErrLocalStoreFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
