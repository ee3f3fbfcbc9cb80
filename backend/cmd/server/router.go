package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"party-planner/backend/internal/graph"
	"party-planner/backend/internal/state"
	"party-planner/backend/internal/tools"
	apperrors "party-planner/backend/pkg/errors"
)

type planService interface {
	CreatePartyPlan(ctx context.Context, req state.PlanRequest) (*state.PlanResult, error)
}

type planStore interface {
	GetPlan(ctx context.Context, planID string) (*graph.ArchivedPlan, error)
}

// routerDeps are the collaborators behind the HTTP API. plans may be nil.
type routerDeps struct {
	planner  planService
	plans    planStore
	registry *tools.Registry
	gatherer prometheus.Gatherer
	loc      *time.Location
	log      *zap.Logger
}

// planRequestBody is the JSON shape of POST /api/plans
type planRequestBody struct {
	EventType           string           `json:"event_type"`
	Budget              *decimal.Decimal `json:"budget"`
	GuestCount          int              `json:"guest_count"`
	Date                string           `json:"date"`
	Location            string           `json:"location"`
	SpecialRequirements string           `json:"special_requirements"`
	DietaryRestrictions []string         `json:"dietary_restrictions"`
}

func (b planRequestBody) toRequest(loc *time.Location) (state.PlanRequest, error) {
	req := state.PlanRequest{
		EventType:           b.EventType,
		Budget:              b.Budget,
		GuestCount:          b.GuestCount,
		Location:            b.Location,
		SpecialRequirements: b.SpecialRequirements,
		DietaryRestrictions: b.DietaryRestrictions,
	}
	if b.Date == "" {
		return req, state.ErrInvalidRequest{Field: "date", Reason: "is required"}
	}
	date, err := state.ParseDate(b.Date, loc)
	if err != nil {
		return req, state.ErrInvalidRequest{Field: "date", Reason: err.Error()}
	}
	req.Date = date
	return req, nil
}

func newRouter(deps routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(ginLogger(deps.log))
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "archive": deps.plans != nil})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.POST("/plans", func(c *gin.Context) {
			var body planRequestBody
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			req, err := body.toRequest(deps.loc)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			result, err := deps.planner.CreatePartyPlan(c.Request.Context(), req)
			if err != nil {
				var invalid state.ErrInvalidRequest
				if errors.As(err, &invalid) {
					c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
					return
				}

				stage := ""
				var planningErr *apperrors.ErrPlanningFailed
				if errors.As(err, &planningErr) {
					stage = planningErr.Stage
				}
				deps.log.Error("Failed to create party plan", zap.Error(err), zap.String("stage", stage))

				status := http.StatusInternalServerError
				if apperrors.IsErrorType(err, apperrors.ErrorTypeContext) {
					status = http.StatusGatewayTimeout
				}
				c.JSON(status, gin.H{"error": "Failed to create plan", "stage": stage})
				return
			}

			c.JSON(http.StatusOK, result)
		})

		api.GET("/plans/:id", func(c *gin.Context) {
			if deps.plans == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Plan archive is not configured"})
				return
			}

			plan, err := deps.plans.GetPlan(c.Request.Context(), c.Param("id"))
			if err != nil {
				if apperrors.IsNotFound(err) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
					return
				}
				deps.log.Error("Failed to fetch plan", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan"})
				return
			}

			c.JSON(http.StatusOK, plan)
		})

		api.GET("/tools", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"tools": deps.registry.ListTools()})
		})

		api.POST("/tools/recommend", func(c *gin.Context) {
			var hints map[string]interface{}
			if err := c.ShouldBindJSON(&hints); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"recommendations": deps.registry.RecommendTools(hints)})
		})

		api.POST("/tools/:provider/:tool", func(c *gin.Context) {
			args := map[string]interface{}{}
			if c.Request.ContentLength != 0 {
				if err := c.ShouldBindJSON(&args); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}

			result, err := deps.registry.CallTool(c.Request.Context(), c.Param("provider"), c.Param("tool"), args)
			if err != nil {
				if apperrors.IsNotFound(err) {
					c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			c.JSON(http.StatusOK, result)
		})

		api.GET("/resources", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"resources": deps.registry.ListResources()})
		})

		api.GET("/resources/read", func(c *gin.Context) {
			provider, uri := c.Query("provider"), c.Query("uri")

			descriptor, err := findResource(deps.registry, provider, uri)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}

			content, err := deps.registry.ReadResource(c.Request.Context(), provider, uri)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			mime := descriptor.MimeType
			if mime == "" {
				mime = "application/json"
			}
			c.Data(http.StatusOK, mime, []byte(content))
		})
	}

	return router
}

// findResource resolves a URI against what provider advertises
func findResource(registry *tools.Registry, provider, uri string) (tools.ResourceDescriptor, error) {
	resources, ok := registry.ListResources()[provider]
	if !ok {
		return tools.ResourceDescriptor{}, apperrors.NewProviderNotFound(provider)
	}
	for _, r := range resources {
		if r.URI == uri {
			return r, nil
		}
	}
	return tools.ResourceDescriptor{}, apperrors.NewResourceNotFound(uri)
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
