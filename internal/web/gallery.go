// Package web отдает библиотеку в виде HTML-галереи обложек
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/artwork"
	"github.com/hazadus/go-vinyl/internal/library"
)

//go:embed templates/*.html
var templates embed.FS

// Gallery показывает одно представление библиотеки, загруженное при старте сервера
type Gallery struct {
	view *library.View
	log  *zap.Logger
}

// NewGallery создает галерею для представления
func NewGallery(view *library.View, log *zap.Logger) *Gallery {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gallery{view: view, log: log}
}

// ParseTemplates разбирает шаблоны галереи
func ParseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		// Источники обложек строятся только из data URI
		"safeURL": func(s string) template.URL { return template.URL(s) },
	}).ParseFS(templates, "templates/*.html")
}

// RegisterRoutes устанавливает шаблоны и регистрирует маршруты галереи
func (g *Gallery) RegisterRoutes(router *gin.Engine) error {
	tmpl, err := ParseTemplates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", g.Index)
	router.POST("/play", g.Play)
	router.POST("/pause", g.Pause)
	router.GET("/artwork", g.Artwork)
	return nil
}

// GET /
func (g *Gallery) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "gallery.html", gin.H{
		"Rows": g.view.Rows(),
	})
}

// POST /play
func (g *Gallery) Play(c *gin.Context) {
	path := c.PostForm("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}
	g.view.Play(path)
	c.Redirect(http.StatusSeeOther, "/")
}

// POST /pause
func (g *Gallery) Pause(c *gin.Context) {
	g.view.TogglePause()
	c.Redirect(http.StatusSeeOther, "/")
}

// GET /artwork?path=
func (g *Gallery) Artwork(c *gin.Context) {
	path := c.Query("path")
	for _, track := range g.view.Tracks() {
		if track.Path != path {
			continue
		}
		if track.Visual == nil {
			break
		}

		png, err := artwork.BoxPNG(track.Visual)
		if err != nil {
			g.log.Warn("обложка не декодирована", zap.String("path", path), zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.Header("Cache-Control", "max-age=3600")
		c.Data(http.StatusOK, "image/png", png)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
}
