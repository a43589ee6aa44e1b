package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/database"
)

const (
	statusMessage  = "Clothing Brand API is running"
	maxErrorLength = 50
)

// Diagnoser is the introspection surface of the store used by GET /test.
type Diagnoser interface {
	Name() string
	Ping(ctx context.Context) error
	ListCollectionNames(ctx context.Context) ([]string, error)
}

type SystemHandler struct {
	store          Diagnoser
	databaseURLSet bool
	timeout        time.Duration
	logger         *slog.Logger
}

// NewSystemHandler builds the root and diagnostic endpoints. store may be
// nil when no database was configured.
func NewSystemHandler(store Diagnoser, databaseURLSet bool, timeout time.Duration, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{
		store:          store,
		databaseURLSet: databaseURLSet,
		timeout:        timeout,
		logger:         logger,
	}
}

type DiagnosticResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Root handles GET /.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": statusMessage})
}

// Diagnostic handles GET /test. It always answers 200; failures are
// reported inside the body.
func (h *SystemHandler) Diagnostic(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagnose(c.Request.Context()))
}

func (h *SystemHandler) diagnose(ctx context.Context) (resp DiagnosticResponse) {
	resp = DiagnosticResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "diagnostic panicked", "panic", r)
			resp.Database = "❌ Error: " + truncate(fmt.Sprint(r))
			resp.ConnectionStatus = "Not Connected"
			resp.Collections = []string{}
		}
	}()

	if h.store == nil {
		resp.Database = "⚠️  Available but not initialized"
		return resp
	}

	resp.Database = "✅ Available"
	urlStatus := "❌ Not Set"
	if h.databaseURLSet {
		urlStatus = "✅ Set"
	}
	resp.DatabaseURL = &urlStatus
	name := h.store.Name()
	if name == "" {
		name = "✅ Connected"
	}
	resp.DatabaseName = &name

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "database ping failed", "error", err)
		resp.Database = "❌ Error: " + truncate(err.Error())
		return resp
	}
	resp.ConnectionStatus = "Connected"

	collections, err := h.store.ListCollectionNames(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "listing collections failed", "error", err)
		resp.Database = "⚠️  Connected but Error: " + truncate(err.Error())
		return resp
	}
	if len(collections) > database.MaxListedCollections {
		collections = collections[:database.MaxListedCollections]
	}
	if collections != nil {
		resp.Collections = collections
	}
	resp.Database = "✅ Connected & Working"
	return resp
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxErrorLength {
		return s
	}
	return string(runes[:maxErrorLength])
}
