package main

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// page is the data rendered into the single HTML page.
type page struct {
	Title       string
	Subtitle    string
	TopicLabel  string
	ButtonLabel string
	Topic       string
	Warning     string
	Banner      string
	ErrorBanner string
	Fact        string
	Footer      string
	Model       string
}

type factRequest struct {
	Topic string `json:"topic"`
}

type factResponse struct {
	Kind  string `json:"kind"`
	Fact  string `json:"fact"`
	Error string `json:"error,omitempty"`
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>AI-Powered Fun Fact Generator</title>
<style>
body { font-family: sans-serif; max-width: 42rem; margin: 2rem auto; }
.success { padding: 1rem; border-radius: 0.5rem; background-color: lightblue; color: white; }
.info { padding: 1rem; border-radius: 0.5rem; background-color: #e8f0fe; }
.warning { padding: 1rem; border-radius: 0.5rem; background-color: #fff4e5; }
.error { padding: 1rem; border-radius: 0.5rem; background-color: #fdecea; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Subtitle}}</p>
<form method="post" action="/">
<label for="topic_input">{{.TopicLabel}}</label><br>
<input id="topic_input" name="topic" type="text" value="{{.Topic}}">
<button id="generate_button" type="submit">{{.ButtonLabel}}</button>
</form>
{{if .Warning}}<div class="warning">{{.Warning}}</div>{{end}}
{{if .ErrorBanner}}<div class="error">{{.ErrorBanner}}</div>{{end}}
{{if .Banner}}<div class="success">{{.Banner}}</div>{{end}}
{{if .Fact}}<div class="info">{{.Fact}}</div>{{end}}
<hr>
<p>{{.Footer}} (model: {{.Model}})</p>
</body>
</html>
`))

// SetupRouter builds the gin engine serving the page and the JSON API.
func SetupRouter(facts FactSource, modelName string, log *logrus.Entry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.SetHTMLTemplate(pageTemplate)

	r.GET("/", indexHandler(modelName))
	r.POST("/", generatePageHandler(facts, modelName))
	r.POST("/api/fact", generateAPIHandler(facts))
	r.GET("/health", healthHandler(modelName))

	return r
}

func newPage(modelName string) page {
	return page{
		Title:       appTitle,
		Subtitle:    appSubtitle,
		TopicLabel:  topicLabel,
		ButtonLabel: buttonLabel,
		Footer:      footerText,
		Model:       modelName,
	}
}

// GET /
func indexHandler(modelName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index", newPage(modelName))
	}
}

// POST /
func generatePageHandler(facts FactSource, modelName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := newPage(modelName)
		p.Topic = c.PostForm("topic")

		topic := strings.TrimSpace(p.Topic)
		if topic == "" {
			p.Warning = msgNoTopic
			c.HTML(http.StatusOK, "index", p)
			return
		}

		fact := facts.Generate(c.Request.Context(), topic)
		p.Fact = fact.Text
		p.ErrorBanner = fact.ErrorBanner()
		if fact.Kind == FactOK {
			p.Banner = bannerText
		}
		c.HTML(http.StatusOK, "index", p)
	}
}

// POST /api/fact
func generateAPIHandler(facts FactSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req factRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		topic := strings.TrimSpace(req.Topic)
		if topic == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNoTopic})
			return
		}

		fact := facts.Generate(c.Request.Context(), topic)
		resp := factResponse{Kind: fact.Kind.String(), Fact: fact.Text}
		if fact.Err != nil {
			resp.Error = fact.Err.Error()
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /health
func healthHandler(modelName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"model":  modelName,
		})
	}
}

// requestLogger logs one line per request.
func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request handled")
	}
}
