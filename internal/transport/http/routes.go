// Package http wires the maze domain service onto gin routes and
// translates its errors into HTTP status codes.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mazemaster/internal/core"
	"mazemaster/internal/dispatch"
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/mazesvc"
	"mazemaster/internal/session"
	"mazemaster/internal/solve"
	"mazemaster/internal/store"
	"mazemaster/pkg/config"
)

var cfg *config.Config

// RegisterRoutes mounts the health probes and the maze API onto r.
func RegisterRoutes(r *gin.Engine, c *config.Config, svc *mazesvc.Service) {
	cfg = c

	r.GET("/health", healthHandler)
	r.GET("/ready", readyHandler(svc))

	api := r.Group("/")
	api.Use(authRequired)
	{
		api.POST("/maze", createMazeHandler(svc))
		api.GET("/maze/by-id/:id", getMazeByIDHandler(svc))
		api.GET("/maze/:mazenum", getMazeByNumHandler(svc))
		api.DELETE("/maze/:mazenum", deleteMazeHandler(svc))
		api.GET("/maze/:mazenum/solution", getSolutionHandler(svc))
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler reports readiness by touching the store once; a store
// that cannot list its own maze table is not ready to serve traffic.
func readyHandler(svc *mazesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := svc.Store.List(store.Mazes); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// authRequired extracts and verifies a "Bearer <token>" Authorization
// header, storing the owner ID in the request context.
func authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	tok, err := session.Verify(cfg.SessionSecret, strings.TrimPrefix(header, prefix))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.Set("owner_id", tok.OwnerID)
	c.Next()
}

func ownerID(c *gin.Context) string {
	return c.GetString("owner_id")
}

type createMazeRequest struct {
	Size     string   `json:"size" binding:"required"`
	Entrance string   `json:"entrance" binding:"required"`
	Walls    []string `json:"walls"`
}

func createMazeHandler(svc *mazesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMazeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		dim, err := coord.ParseDimension(req.Size)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		entrance, err := coord.Decode(req.Entrance)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		walls := make([]coord.Coordinate, len(req.Walls))
		for i, w := range req.Walls {
			wc, err := coord.Decode(w)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			walls[i] = wc
		}

		maze, err := svc.CreateMaze(ownerID(c), dim, entrance, walls)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, maze)
	}
}

func getMazeByIDHandler(svc *mazesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		maze, err := svc.GetMazeByID(ownerID(c), c.Param("id"))
		if err != nil {
			writeMazeLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, maze)
	}
}

func getMazeByNumHandler(svc *mazesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		num, err := strconv.Atoi(c.Param("mazenum"))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "mazenum must be an integer"})
			return
		}
		maze, err := svc.GetMazeByNum(ownerID(c), num)
		if err != nil {
			writeMazeLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, maze)
	}
}

func deleteMazeHandler(svc *mazesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		num, err := strconv.Atoi(c.Param("mazenum"))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "mazenum must be an integer"})
			return
		}
		if err := svc.DeleteMaze(ownerID(c), num); err != nil {
			writeMazeLookupError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func getSolutionHandler(svc *mazesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		num, err := strconv.Atoi(c.Param("mazenum"))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "mazenum must be an integer"})
			return
		}

		mode := solve.ModeMin
		if c.Query("steps") == string(solve.ModeMax) {
			mode = solve.ModeMax
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dispatch.ResultTimeout+time.Second)
		defer cancel()

		path, err := svc.GetSolution(ctx, ownerID(c), num, mode)
		if err != nil {
			writeSolveError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"path": path})
	}
}

func writeMazeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mazesvc.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
	case errors.Is(err, mazesvc.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "maze not owned by caller"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func writeSolveError(c *gin.Context, err error) {
	var solveErr *mazesvc.SolveError
	switch {
	case errors.Is(err, mazesvc.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
	case errors.Is(err, mazesvc.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "maze not owned by caller"})
	case errors.Is(err, dispatch.ErrInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "solution already in flight"})
	case errors.Is(err, dispatch.ErrTooManyInFlight):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many solutions in flight"})
	case errors.Is(err, dispatch.ErrStillProcessing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "still processing"})
	case errors.As(err, &solveErr):
		writeSolveStatus(c, solveErr.Status)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func writeSolveStatus(c *gin.Context, status core.SolutionStatus) {
	switch status {
	case core.StatusProcessing:
		c.JSON(http.StatusConflict, gin.H{"error": "solution already in flight"})
	case core.StatusSystemFail:
		c.JSON(http.StatusInternalServerError, gin.H{"status": status})
	case core.StatusFailedMax:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": status})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": status})
	}
}
