package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pos-service/internal/catalog"
	"pos-service/internal/exchange"
	"pos-service/internal/model"
	"pos-service/internal/report"
	"pos-service/internal/session"
	"pos-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Catalog is the state container the handlers read from and mutate
type Catalog interface {
	Snapshot() model.State
	Product(id string) (model.Product, bool)
	AddProduct(ctx context.Context, p model.Product) (model.Product, model.State, error)
	UpdateProduct(ctx context.Context, p model.Product) (model.State, error)
	CompleteTransaction(ctx context.Context, cart []model.CartItem, method model.PaymentMethod, sellerID int) (model.Transaction, model.State, error)
	BulkImport(ctx context.Context, rows []catalog.ImportRow) (catalog.MergeResult, model.State, error)
	Replace(ctx context.Context, state model.State) (model.State, error)
}

// Handler serves the POS HTTP API
type Handler struct {
	store    Catalog
	carts    *session.Carts
	jwt      *jwtutil.JWTUtil
	location *time.Location
	now      func() time.Time
}

// New creates a Handler. Dates in exports and day filters use loc.
func New(store Catalog, carts *session.Carts, jwtUtil *jwtutil.JWTUtil, loc *time.Location) *Handler {
	return &Handler{
		store:    store,
		carts:    carts,
		jwt:      jwtUtil,
		location: loc,
		now:      time.Now,
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var validationErr *catalog.ValidationError
	var headersErr *exchange.MissingHeadersError
	var rowErr *exchange.RowError

	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, catalog.ErrVariantNotFound):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrEmptyCart),
		errors.Is(err, catalog.ErrInvalidQuantity),
		errors.Is(err, catalog.ErrInvalidPaymentMethod),
		errors.Is(err, exchange.ErrEmptyCSV),
		errors.Is(err, exchange.ErrInvalidBackup),
		errors.Is(err, report.ErrInvalidDate),
		errors.As(err, &validationErr),
		errors.As(err, &headersErr),
		errors.As(err, &rowErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and writes the matching error response. Server errors get a
// generic message so persistence details stay in the logs.
func fail(c echo.Context, log *zap.Logger, message string, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(message, zap.Error(err))
		return c.JSON(status, echo.Map{"error": message})
	}
	log.Warn(message, zap.Error(err))
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// attachment sends data as a file download
func attachment(c echo.Context, contentType, fileName string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK, contentType, data)
}

func (h *Handler) today() time.Time {
	return h.now().In(h.location)
}
