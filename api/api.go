package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lsmc/internal/domain"
	"lsmc/internal/logger"
	"lsmc/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ApiHandler struct {
	PricingService service.PricingService
	Logger         *zap.SugaredLogger
	AllowedOrigins []string
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(m.AllowedOrigins) == 0 || (len(m.AllowedOrigins) == 1 && m.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = m.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to lsmc"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/price", m.priceOption)
	router.POST("/simulate", m.simulate)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusFromError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorw("request failed", "error", err.Error())
	} else {
		log.Infow("request rejected", "error", err.Error(), "status", code)
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownOptionType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientRegressionData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// logRequestMiddleware puts a request scoped logger and a timing profile on
// the request context, then logs the outcome
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	log := m.Logger
	if log == nil {
		log = zap.S()
	}
	log = log.With("method", ctx.Request.Method, "route", ctx.Request.URL.Path)

	profile, endProfile := domain.NewProfile()
	reqCtx := logger.NewContext(ctx.Request.Context(), log)
	reqCtx = domain.NewCtxWithProfile(reqCtx, profile)
	ctx.Request = ctx.Request.WithContext(reqCtx)

	start := time.Now()
	ctx.Next()
	endProfile()

	log.Infow(
		"handled request",
		"status", ctx.Writer.Status(),
		"elapsedMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	)
}
