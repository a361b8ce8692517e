package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"schedsync/internal/adapter/http/middleware"
)

const (
	StatusOk          = "ok"
	StatusDown        = "down"
	StatusDisabled    = "disabled"
	healthPingTimeout = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Mysql     string `json:"mysql"`
	Redis     string `json:"redis"`
	// Generator is the state of the model provider circuit: closed, half-open or open.
	Generator string `json:"generator,omitempty"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

// GeneratorState reports the circuit state of the schedule generator.
type GeneratorState interface {
	State() string
}

// HealthHandler reports on MySQL, Redis and the generator circuit. A nil db
// means the service runs on in-memory storage.
type HealthHandler struct {
	db        *sqlx.DB
	redis     goredis.Cmdable
	generator GeneratorState
}

func NewHealthHandler(db *sqlx.DB, redis goredis.Cmdable, generator GeneratorState) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, generator: generator}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	services := h.services(c.Request.Context())

	statusCode := http.StatusOK
	message := StatusOk
	if services.Mysql == StatusDown || services.Redis == StatusDown {
		statusCode = http.StatusServiceUnavailable
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format(time.DateTime),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format(time.DateTime),
		Language:          middleware.GetLang(c),
		Status:            h.services(c.Request.Context()),
	})
}

func (h *HealthHandler) services(ctx context.Context) HealthServices {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	services := HealthServices{Mysql: StatusDisabled, Redis: StatusDown}
	if h.db != nil {
		services.Mysql = status(h.db.PingContext(ctx) == nil)
	}
	if h.redis != nil {
		services.Redis = status(h.redis.Ping(ctx).Err() == nil)
	}
	if h.generator != nil {
		services.Generator = h.generator.State()
	}
	return services
}

func status(up bool) string {
	if up {
		return StatusOk
	}
	return StatusDown
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
