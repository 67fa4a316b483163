package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/photon-storage/go-common/log"

	"github.com/agrisync/agrisync/api/service"
)

// Server defines an instance of a server that handles the requests of
// the dashboard front-end.
type Server struct {
	port   int
	engine *gin.Engine
}

// New returns a new instance of the server. An empty origins list allows
// every origin.
func New(port int, service *service.Service, origins []string) *Server {
	server := &Server{
		port:   port,
		engine: gin.Default(),
	}

	server.engine.Use(newCORS(origins))
	server.registerRouter(service)
	return server
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
	}

	return cors.New(cfg)
}

func (s *Server) registerRouter(service *service.Service) {
	s.engine.Use(requestID(), handleError())
	g := s.engine.Group("agrisync/v1")

	g.GET("ping", s.handle(service.Ping))
	g.GET("health", s.handle(service.Health))
	g.GET("healthz", s.handle(service.HealthDetailed))
	g.GET("account", s.handle(service.Account))

	g.POST("crops", s.handle(service.ListCrop))
	g.GET("crops/:id", s.handle(service.Crop))
	g.POST("crops/:id/buy", s.handle(service.BuyCrop))

	g.POST("storage/slots", s.handle(service.RegisterSlot))
	g.GET("storage/slots", s.handle(service.Slots))
	g.GET("storage/slots/:id", s.handle(service.Slot))
	g.PUT("storage/slots/:id", s.handle(service.UpdateSlot))
	g.DELETE("storage/slots/:id", s.handle(service.DeactivateSlot))

	g.POST("predict/disease", s.handle(service.PredictDisease))
	g.POST("predict/soil", s.handle(service.PredictSoil))

	g.GET("market", s.handle(service.Market))
	g.GET("market/export", s.handle(service.MarketExport))

	g.GET("transactions", s.handle(service.Transactions))
}

// Run the server
func (s *Server) Run() {
	if err := s.engine.Run(fmt.Sprintf(":%d", s.port)); err != nil {
		log.Error("run the server failed", "error", err)
		os.Exit(1)
	}
}
