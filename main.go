package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"web/gridcluster/cluster"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
)

// markerServer hosts one clustering engine behind an HTTP API. It plays
// the roles the engine treats as external collaborators: it owns the
// projector, fires the viewport signal when a client reports a pan or
// zoom, and renders the resulting snapshot as GeoJSON.
type markerServer struct {
	engine   *cluster.Engine
	proj     *cluster.MercatorProjector
	viewport *cluster.ViewportSignal
}

type viewportQuery struct {
	West   float64
	South  float64
	East   float64
	North  float64
	Zoom   int
	Width  int
	Height int
}

func parseViewportQuery(c *gin.Context) (viewportQuery, error) {
	var q viewportQuery
	var err error

	floats := []struct {
		name string
		dst  *float64
	}{
		{"west", &q.West},
		{"south", &q.South},
		{"east", &q.East},
		{"north", &q.North},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(c.Query(f.name), 64); err != nil {
			return q, errors.New("invalid " + f.name + " parameter")
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"zoom", &q.Zoom},
		{"width", &q.Width},
		{"height", &q.Height},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(c.Query(f.name)); err != nil {
			return q, errors.New("invalid " + f.name + " parameter")
		}
	}
	return q, nil
}

// applyViewport repositions the projector and announces the change, which
// triggers the engine's relayout through its watcher subscription.
func (s *markerServer) applyViewport(q viewportQuery) {
	center := orb.Point{(q.West + q.East) / 2, (q.South + q.North) / 2}
	s.proj.SetViewport(center, q.Zoom, q.Width, q.Height)
	s.viewport.Notify()
}

func (s *markerServer) getClusters(c *gin.Context) {
	q, err := parseViewportQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.applyViewport(q)
	c.JSON(http.StatusOK, cluster.ToGeoJSON(s.engine.Clusters()))
}

func (s *markerServer) addMarkers(c *gin.Context) {
	var inputs []cluster.MarkerInput
	if err := c.BindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid marker list"})
		return
	}
	added := s.engine.AddMarkers(inputs)
	c.JSON(http.StatusOK, gin.H{
		"added": added,
		"total": s.engine.MarkerCount(),
	})
}

func (s *markerServer) setMarkers(c *gin.Context) {
	var inputs []cluster.MarkerInput
	if err := c.BindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid marker list"})
		return
	}
	s.engine.SetMarkers(inputs)
	c.JSON(http.StatusOK, gin.H{"total": s.engine.MarkerCount()})
}

func (s *markerServer) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, cluster.Summarize(s.engine.Clusters()))
}

func (s *markerServer) exportClusters(c *gin.Context) {
	c.Header("Content-Type", "application/zstd")
	c.Header("Content-Disposition", `attachment; filename="clusters.geojson.zst"`)
	if err := cluster.WriteExport(c.Writer, s.engine.Clusters()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	gridSize := float64(cluster.DefaultGridSize)
	if raw := os.Getenv("GRID_SIZE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			gridSize = v
		} else {
			logger.Warn("ignoring invalid GRID_SIZE", "value", raw)
		}
	}

	proj := cluster.NewMercatorProjector()
	engine, err := cluster.NewEngine(proj,
		cluster.WithGridSize(gridSize),
		cluster.WithLogger(cluster.NewSlogLogger(logger)),
	)
	if err != nil {
		logger.Error("failed to create engine", "error", err)
		os.Exit(1)
	}

	viewport := cluster.NewViewportSignal()
	if err := engine.Bind(viewport); err != nil {
		logger.Error("failed to bind viewport watcher", "error", err)
		os.Exit(1)
	}

	server := &markerServer{
		engine:   engine,
		proj:     proj,
		viewport: viewport,
	}

	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/api/clusters", server.getClusters)
	r.GET("/api/clusters/summary", server.getSummary)
	r.GET("/api/clusters/export", server.exportClusters)
	r.POST("/api/markers", server.addMarkers)
	r.PUT("/api/markers", server.setMarkers)

	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	if err := engine.Close(); err != nil {
		logger.Error("engine close error", "error", err)
	}
	logger.Info("server stopped")
}
