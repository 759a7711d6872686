package controllers

import (
	"net/http"
	"time"

	"clawdeye-installer/internal/models"
	"clawdeye-installer/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIController struct {
	sup     *services.Supervisor
	started time.Time
}

/**
 * Create the status API controller
 * @param {*services.Supervisor} sup - Supervisor owning the running pair
 */
func NewAPIController(sup *services.Supervisor) *APIController {
	return &APIController{
		sup:     sup,
		started: time.Now(),
	}
}

/**
 * Register status API routes on the Gin engine
 * @description
 * - GET /clawdeye/api/v1/processes - live details of the supervised pair
 * - GET /healthz - supervisor liveness and request counters
 * - GET /metrics - prometheus exposition
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.GET("/clawdeye/api/v1/processes", a.ListProcesses)
	r.GET("/healthz", a.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (a *APIController) ListProcesses(c *gin.Context) {
	details := a.sup.Processes()
	for _, detail := range details {
		services.SetProcessUp(detail.Title, detail.Status == models.StatusRunning)
	}
	c.JSON(http.StatusOK, gin.H{
		"processes": details,
	})
}

func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"uptime":   time.Since(a.started).String(),
		"requests": services.GetTotalRequestCount(),
		"errors":   services.GetTotalErrorCount(),
	})
}
