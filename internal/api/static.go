package api

import (
	"embed"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// embeddedAssets holds the one-page operator landing page. The teacher
// mounts a full Angular SPA here; this admin surface only needs a status
// page pointing at /api/v1/health, /api/v1/stats, and the Swagger UI.
//
//go:embed assets/*
var embeddedAssets embed.FS

func mountStaticLanding(r *gin.Engine) {
	fs, err := static.EmbedFolder(embeddedAssets, "assets")
	if err != nil {
		panic("api: failed to load embedded assets: " + err.Error())
	}
	r.Use(static.Serve("/", fs))
}
