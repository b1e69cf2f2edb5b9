package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agro/entities"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health reports whether the store answers a ping and carries the producer
// tree schema. It answers 503 when either check fails.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db, schema := h.checks(ctx)
	status := http.StatusOK
	if !db.OK || !schema.OK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"ok":         status == http.StatusOK,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]check{
			"database": db,
			"schema":   schema,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) checks(ctx context.Context) (db, schema check) {
	if h.db == nil {
		return check{Err: "gorm db is nil"}, check{Err: "skipped"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}, check{Err: "skipped"}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}, check{Err: "skipped"}
	}

	m := h.db.WithContext(ctx).Migrator()
	for _, t := range []any{&entities.Producer{}, &entities.Property{}, &entities.Crop{}} {
		if !m.HasTable(t) {
			return check{OK: true}, check{Err: "missing tables; run migrations"}
		}
	}
	return check{OK: true}, check{OK: true}
}
