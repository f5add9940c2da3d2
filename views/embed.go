package views

import (
	"embed"
	"net/http"
	"net/url"
	"strings"
	"time"

	"luax.health/models"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts partials public panel dashboard errors
var FS embed.FS

// NewEngine builds the html engine over the embedded templates.
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.Reload(reload)
	engine.AddFuncMap(map[string]interface{}{
		"field":       field,
		"statusClass": statusClass,
		"date":        formatDate,
		"lower":       strings.ToLower,
		"pathEscape":  url.PathEscape,
	})
	return engine
}

// field reads a flashed form value as a string.
func field(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func statusClass(status models.AppointmentStatus) string {
	switch status {
	case models.StatusConfirmed:
		return "primary"
	case models.StatusCompleted:
		return "success"
	case models.StatusCancelled:
		return "secondary"
	default:
		return "warning"
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}
