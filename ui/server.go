package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"log"

	"github.com/gin-gonic/gin"

	"popgen/app"
	"popgen/internal/config"
	"popgen/internal/session"
	"popgen/ports"
)

// Server is the web shell around the pyramid pipeline: upload widgets,
// selection listing, batch generation, and PNG downloads.
type Server struct {
	router        *gin.Engine
	config        *config.Config
	store         *session.Store
	loader        ports.TableLoader
	service       *app.GenerateService
	templates     *template.Template
	embeddedFiles embed.FS
}

// NewServer creates a new web server instance.
func NewServer(embeddedFiles embed.FS) *Server {
	return &Server{
		router:        gin.Default(),
		embeddedFiles: embeddedFiles,
	}
}

// Initialize sets up the server with dependencies and routes.
func (s *Server) Initialize(cfg *config.Config, loader ports.TableLoader, service *app.GenerateService, store *session.Store) error {
	s.config = cfg
	s.loader = loader
	s.service = service
	s.store = store

	templatesFS, err := fs.Sub(s.embeddedFiles, "ui/templates")
	if err != nil {
		return err
	}
	s.templates, err = template.ParseFS(templatesFS, "*.html")
	if err != nil {
		return err
	}
	log.Printf("[Server] Parsed %d templates", len(s.templates.Templates()))

	s.setupRoutes()
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)

	s.router.POST("/api/upload", s.handleUpload)
	s.router.GET("/api/keyspace", s.handleKeyspace)
	s.router.POST("/api/generate", s.handleGenerate)
	s.router.GET("/api/results", s.handleResults)
	s.router.GET("/api/results/:id/image", s.handleResultImage)
	s.router.GET("/api/report", s.handleReport)
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}
