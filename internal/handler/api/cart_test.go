//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"storefront-cart/internal/handler/api"
	reqdto "storefront-cart/internal/handler/dto/request"
	resdto "storefront-cart/internal/handler/dto/response"
	"storefront-cart/internal/handler/middleware"
	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/usecase"
	"storefront-cart/internal/usecase/readmodel"
	"storefront-cart/tests/common/httptest"
	"storefront-cart/tests/common/testutil"
	mock_usecase "storefront-cart/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockCart *mock_usecase.MockCartService
	handler  *api.CartHandler
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCart = mock_usecase.NewMockCartService(s.mockCtrl)
	s.handler = api.NewCartHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.router.Use(middleware.ErrorHandler())
	cart := s.router.Group("/api/cart")
	cart.Use(func(c *gin.Context) {
		// stands in for the session middleware
		middleware.SetCartService(c, s.mockCart)
		c.Next()
	})
	cart.GET("", s.handler.GetCart)
	cart.POST("/items", s.handler.AddItem)
	cart.PUT("/items/:productId", s.handler.SetQuantity)
	cart.DELETE("/items/:productId", s.handler.RemoveItem)
	cart.GET("/totals", s.handler.GetTotals)
	cart.POST("/checkout/quote", s.handler.QuoteCheckout)
	cart.GET("/sync", s.handler.SyncStatus)
	cart.POST("/sync/retry", s.handler.RetrySync)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func localCart(items ...readmodel.CartItemRM) *readmodel.CartRM {
	return &readmodel.CartRM{
		Source: "local",
		Items:  items,
		Sync:   readmodel.SyncStatusRM{State: "anonymous"},
	}
}

func (s *CartHandlerTestSuite) TestGetCart() {
	s.Run("success: returns items and sync status", func() {
		p := uuid.New()
		s.mockCart.EXPECT().GetCart(gomock.Any()).
			Return(localCart(readmodel.CartItemRM{ProductID: p, Quantity: 2}), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart", nil, "")

		var res resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("local", res.Source)
		s.Require().Len(res.Items, 1)
		s.Equal(p, res.Items[0].ProductID)
		s.Equal(2, res.Items[0].Quantity)
		s.Equal("anonymous", res.Sync.State)
		s.NotNil(res.Sync.Pending)
	})

	s.Run("error: 503 when the remote cart is unavailable", func() {
		s.mockCart.EXPECT().GetCart(gomock.Any()).
			Return(nil, errs.Mark(errors.New("dial tcp: refused"), usecase.ErrRemoteUnavailable))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Failed to load cart")
	})
}

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/api/cart/items"
	p := uuid.New()

	s.Run("success: adds and returns the cart", func() {
		s.mockCart.EXPECT().AddItem(gomock.Any(), p, 3).Return(nil)
		s.mockCart.EXPECT().GetCart(gomock.Any()).
			Return(localCart(readmodel.CartItemRM{ProductID: p, Quantity: 3}), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"product_id": p.String(), "quantity": 3}, "")

		var res resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(3, res.Items[0].Quantity)
	})

	s.Run("error: 400 on malformed body", func() {
		one := 1
		valid := reqdto.AddItemRequest{ProductID: p, Quantity: &one}
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing product_id", mutate: testutil.Field("product_id", nil)},
			{name: "missing quantity", mutate: testutil.Field("quantity", nil)},
			{name: "product_id not a uuid", mutate: testutil.Field("product_id", "abc")},
			{name: "quantity not a number", mutate: testutil.Field("quantity", "two")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), valid, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 400 on invalid quantity", func() {
		s.mockCart.EXPECT().AddItem(gomock.Any(), p, 0).
			Return(errs.Mark(errors.New("add 0"), usecase.ErrInvalidQuantity))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"product_id": p.String(), "quantity": 0}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Failed to add item")
	})

	s.Run("error: 422 when the product does not exist remotely", func() {
		s.mockCart.EXPECT().AddItem(gomock.Any(), p, 1).
			Return(errs.Mark(&usecase.StoreOpError{Op: "upsert_delta", ProductID: p, Err: errors.New("fk")}, usecase.ErrProductUnresolvable))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"product_id": p.String(), "quantity": 1}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

func (s *CartHandlerTestSuite) TestSetQuantityAndRemove() {
	p := uuid.New()

	s.Run("success: set quantity", func() {
		s.mockCart.EXPECT().SetQuantity(gomock.Any(), p, 5).Return(nil)
		s.mockCart.EXPECT().GetCart(gomock.Any()).Return(localCart(readmodel.CartItemRM{ProductID: p, Quantity: 5}), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/cart/items/"+p.String(),
			map[string]any{"quantity": 5}, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on invalid product id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/cart/items/not-a-uuid",
			map[string]any{"quantity": 5}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product id")
	})

	s.Run("success: remove", func() {
		s.mockCart.EXPECT().RemoveItem(gomock.Any(), p).Return(nil)
		s.mockCart.EXPECT().GetCart(gomock.Any()).Return(localCart(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/cart/items/"+p.String(), nil, "")

		var res resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Empty(res.Items)
	})
}

func (s *CartHandlerTestSuite) TestGetTotals() {
	s.Run("success: passes the coupon query through", func() {
		s.mockCart.EXPECT().GetTotals(gomock.Any(), "SAVE10").Return(&readmodel.TotalsRM{
			Subtotal:       400,
			Coupon:         &readmodel.CouponOutcomeRM{Code: "SAVE10", Reason: "minimum_order_not_met"},
			CouponDiscount: 0,
			Total:          400,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart/totals?coupon=SAVE10", nil, "")

		var res resdto.TotalsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(int64(400), res.Total)
		s.Require().NotNil(res.Coupon)
		s.False(res.Coupon.Applied)
		s.Equal("minimum_order_not_met", res.Coupon.Reason)
		s.NotNil(res.Lines)
	})

	s.Run("error: 503 when the coupon directory fails", func() {
		s.mockCart.EXPECT().GetTotals(gomock.Any(), "SAVE10").
			Return(nil, errs.Mark(errors.New("timeout"), usecase.ErrCouponLookupFailed))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart/totals?coupon=SAVE10", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Failed to price cart")
	})
}

func (s *CartHandlerTestSuite) TestQuoteCheckout() {
	url := "/api/cart/checkout/quote"

	s.Run("success: quote without body", func() {
		quotedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		s.mockCart.EXPECT().QuoteCheckout(gomock.Any(), "").Return(&readmodel.QuoteRM{
			TotalsRM:  readmodel.TotalsRM{Subtotal: 1000, Total: 1000},
			ItemCount: 4,
			QuotedAt:  quotedAt,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var res resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(int64(1000), res.Total)
		s.Equal(4, res.ItemCount)
		s.Equal(quotedAt.Unix(), res.QuotedAt)
	})

	s.Run("success: trims the coupon code", func() {
		s.mockCart.EXPECT().QuoteCheckout(gomock.Any(), "SAVE10").
			Return(&readmodel.QuoteRM{QuotedAt: time.Now()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"coupon_code": "  SAVE10 "}, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: status by failure", func() {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{name: "empty cart", err: usecase.ErrCartEmpty, status: http.StatusConflict},
			{name: "unresolvable line", err: errs.Mark(errors.New("1 line(s)"), usecase.ErrProductUnresolvable), status: http.StatusUnprocessableEntity},
			{name: "remote down", err: errs.Mark(context.DeadlineExceeded, usecase.ErrRemoteUnavailable), status: http.StatusServiceUnavailable},
			{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCart.EXPECT().QuoteCheckout(gomock.Any(), "").Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

				httptest.AssertErrorResponse(s.T(), rec, tc.status, "Failed to quote checkout")
			})
		}
	})
}

func (s *CartHandlerTestSuite) TestSync() {
	user := uuid.New()
	p := uuid.New()

	s.Run("success: sync status", func() {
		s.mockCart.EXPECT().SyncStatus().Return(readmodel.SyncStatusRM{State: "synced", UserID: &user})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart/sync", nil, "")

		var res resdto.SyncStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("synced", res.State)
		s.Equal(&user, res.UserID)
	})

	s.Run("success: retry", func() {
		s.mockCart.EXPECT().RetrySync(gomock.Any()).Return(readmodel.SyncStatusRM{State: "synced", UserID: &user}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/cart/sync/retry", nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 502 with pending items when the retry fails", func() {
		s.mockCart.EXPECT().RetrySync(gomock.Any()).Return(readmodel.SyncStatusRM{
			State:   "sync_failed",
			UserID:  &user,
			Pending: []readmodel.CartItemRM{{ProductID: p, Quantity: 2}},
		}, errs.Mark(&usecase.MergeError{Failed: []usecase.ItemFailure{{ProductID: p, Quantity: 2}}}, usecase.ErrMergeFailed))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/cart/sync/retry", nil, "")

		detail := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Cart sync failed")
		var status resdto.SyncStatusResponse
		s.Require().NoError(json.Unmarshal(detail, &status))
		s.Equal("sync_failed", status.State)
		s.Require().Len(status.Pending, 1)
		s.Equal(p, status.Pending[0].ProductID)
	})

	s.Run("error: 409 when nothing failed", func() {
		s.mockCart.EXPECT().RetrySync(gomock.Any()).
			Return(readmodel.SyncStatusRM{State: "anonymous"}, errs.Wrap(usecase.ErrNothingToRetry, "sync state is anonymous"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/cart/sync/retry", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}
