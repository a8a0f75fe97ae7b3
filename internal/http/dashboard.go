package httpapi

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockpilot/internal/repository"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"money": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}

// Canned prompts offered next to the chat.
var suggestedPrompts = []struct{ Label, Text string }{
	{"Analyze current stock status", "Give me a full inventory summary with counts of low stock and surplus items."},
	{"Forecast stock-outs (10 days)", "Show me items that will run out in 10 days based on daily consumption."},
	{"Draft purchase request", "Generate a professional purchase order for all low-stock items."},
}

func (s *Server) dashboard(c *gin.Context) {
	sess := session(c)
	stats, err := s.inventory.Stats(c, sess)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	items, err := s.inventory.List(c, sess, repository.ItemFilter{})
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	turns, err := s.assistant.Transcript(c, sess)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Stats":   stats,
		"Items":   items,
		"Turns":   turns,
		"Prompts": suggestedPrompts,
	})
}
