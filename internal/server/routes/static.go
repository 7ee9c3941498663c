package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/crownweb/contact-relay/internal/api/constants"
	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"

	"github.com/gin-gonic/gin"
)

// SetupFallbackRoutes serves the static marketing site for unmatched GET
// requests and answers everything else with the 404 JSON payload.
func SetupFallbackRoutes(router *gin.Engine, staticDir string) {
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			if file, ok := resolveStaticFile(staticDir, c.Request.URL.Path); ok {
				c.File(file)
				return
			}
		}

		c.JSON(http.StatusNotFound, contact.SendResponse{
			Success: false,
			Message: constants.MsgRouteNotFound,
		})
	})
}

// resolveStaticFile maps a URL path to a file under the static directory.
// path.Clean on a rooted path strips any ".." traversal.
func resolveStaticFile(staticDir, urlPath string) (string, bool) {
	cleaned := path.Clean("/" + urlPath)
	if cleaned == "/" {
		cleaned = "/index.html"
	}

	file := filepath.Join(staticDir, filepath.FromSlash(cleaned))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}

	return file, true
}
