package web

import (
	"errors"
	"net"
	"net/http"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// loopbackOnly rejects admin requests that do not come from this machine.
func loopbackOnly(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := net.ParseIP(c.ClientIP())
		if ip == nil || !ip.IsLoopback() {
			logger.Warn("admin request rejected",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin is only available from localhost"})
			return
		}
		c.Next()
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(loopbackOnly(s.logger))

	// Catalog meta update; the next page view renders the new record.
	admin.PATCH("/projects/:id", func(c *gin.Context) {
		var patch catalog.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id := c.Param("id")
		updated, err := s.store.Update(id, patch)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case errors.Is(err, catalog.ErrMalformedRecord), errors.Is(err, catalog.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			s.internalError(c, err)
			return
		}

		s.logger.Info("project updated", zap.String("id", id))
		c.JSON(http.StatusOK, updated)
	})

	// Catalog export for backups.
	admin.GET("/export/catalog", func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment; filename=catalog.json")
		s.logger.Info("catalog exported", zap.Int("projects", s.store.Len()))
		c.JSON(http.StatusOK, s.store.Data())
	})
}
