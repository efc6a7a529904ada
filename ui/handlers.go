package ui

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"golang.org/x/sync/errgroup"

	"popgen/app"
	"popgen/domain/population"
	"popgen/internal/errors"
)

const maxUploadSize = 50 * 1024 * 1024 // 50MB per file

// handleIndex serves the single-page UI shell.
func (s *Server) handleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", gin.H{
		"MaxPyramids": s.config.Data.MaxPyramids,
	}); err != nil {
		log.Printf("[handleIndex] ERROR: Failed to render template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
	}
}

// handleUpload ingests the male and female spreadsheets. Both files are
// required in one request so the session never holds a half-replaced pair.
func (s *Server) handleUpload(c *gin.Context) {
	log.Printf("[handleUpload] Starting spreadsheet upload")

	maleFile, maleHeader, err := s.uploadedFile(c, "male")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer maleFile.Close()

	femaleFile, femaleHeader, err := s.uploadedFile(c, "female")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer femaleFile.Close()

	// The two files are independent, so parse them concurrently. Batch
	// generation stays sequential; this is just upload I/O.
	var maleTable, femaleTable *population.Table
	var g errgroup.Group
	g.Go(func() error {
		var loadErr error
		maleTable, loadErr = s.loader.Load(maleFile, maleHeader.Filename)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		femaleTable, loadErr = s.loader.Load(femaleFile, femaleHeader.Filename)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		log.Printf("[handleUpload] FAILED - Could not load tables: %v", err)
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if err := population.ValidateAgeBands(maleTable, femaleTable); err != nil {
		log.Printf("[handleUpload] FAILED - Age band mismatch: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.SetTables(maleTable, femaleTable)
	countries, years, _ := s.store.Keyspace()

	log.Printf("[handleUpload] Loaded %d male rows, %d female rows; %d common countries, %d common years",
		len(maleTable.Rows), len(femaleTable.Rows), len(countries), len(years))

	c.JSON(http.StatusOK, gin.H{
		"male_rows":   len(maleTable.Rows),
		"female_rows": len(femaleTable.Rows),
		"age_bands":   maleTable.AgeLabels,
		"countries":   len(countries),
		"years":       len(years),
	})
}

// uploadedFile fetches and validates one multipart file field.
func (s *Server) uploadedFile(c *gin.Context, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Missing %s file: %v", field, err)
		return nil, nil, fmt.Errorf("missing %q file", field)
	}

	if header.Size > maxUploadSize {
		file.Close()
		log.Printf("[handleUpload] FAILED - %s file too large: %d bytes", field, header.Size)
		return nil, nil, fmt.Errorf("%s file (%.1f MB) exceeds the 50MB limit", field, float64(header.Size)/(1024*1024))
	}

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") && !strings.HasSuffix(name, ".csv") {
		file.Close()
		log.Printf("[handleUpload] FAILED - Invalid %s file extension: %s", field, header.Filename)
		return nil, nil, fmt.Errorf("only Excel (.xlsx, .xls) and CSV (.csv) files are allowed")
	}

	return file, header, nil
}

// handleKeyspace returns the intersected countries and years of the loaded
// table pair.
func (s *Server) handleKeyspace(c *gin.Context) {
	countries, years, ok := s.store.Keyspace()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "No spreadsheets uploaded yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"countries": countries,
		"years":     years,
	})
}

// handleGenerate runs one generation batch over the posted selections.
func (s *Server) handleGenerate(c *gin.Context) {
	male, female, ok := s.store.Tables()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "No spreadsheets uploaded yet"})
		return
	}

	var req struct {
		Selections []population.Selection `json:"selections"`
		ShowValues bool                   `json:"show_values"`
		ShowTables bool                   `json:"show_tables"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[handleGenerate] FAILED - Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	batch, err := s.service.Generate(male, female, req.Selections, app.Options{
		ShowValues: req.ShowValues,
		ShowTables: req.ShowTables,
		Progress: func(done, total int) {
			log.Printf("[handleGenerate] Progress: %d/%d", done, total)
		},
	})
	if err != nil {
		log.Printf("[handleGenerate] FAILED - %v", err)
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	s.store.SetBatch(batch)
	c.JSON(http.StatusOK, batchResponse(batch))
}

// handleResults returns the last generated batch.
func (s *Server) handleResults(c *gin.Context) {
	batch := s.store.Batch()
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No batch generated yet"})
		return
	}
	c.JSON(http.StatusOK, batchResponse(batch))
}

// handleResultImage streams one generated pyramid as a PNG download.
func (s *Server) handleResultImage(c *gin.Context) {
	id := c.Param("id")
	result, ok := s.store.Result(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pyramid not found"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "image/png", result.PNG)
}

// handleReport renders the markdown batch report as HTML.
func (s *Server) handleReport(c *gin.Context) {
	batch := s.store.Batch()
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No batch generated yet"})
		return
	}

	html := markdown.ToHTML([]byte(app.BatchReport(batch)), nil, nil)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// batchResponse flattens a batch into the JSON shape the UI consumes.
// Summary tables are included only when the batch was generated with
// show_tables set.
func batchResponse(batch *app.Batch) gin.H {
	results := make([]gin.H, 0, len(batch.Results))
	for _, r := range batch.Results {
		item := gin.H{
			"id":        r.ID,
			"country":   r.Selection.Country,
			"year":      r.Selection.Year,
			"filename":  r.Filename,
			"image_url": fmt.Sprintf("/api/results/%s/image", r.ID),
		}
		if batch.ShowTables {
			item["table"] = r.Table
		}
		results = append(results, item)
	}

	warnings := make([]string, 0, len(batch.Warnings))
	for _, w := range batch.Warnings {
		warnings = append(warnings, w.Message)
	}

	return gin.H{
		"batch_id":  batch.ID,
		"generated": batch.SuccessCount(),
		"skipped":   len(batch.Warnings),
		"results":   results,
		"warnings":  warnings,
	}
}

// statusForError maps application error codes to HTTP status codes.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeSchemaMismatch, errors.CodeLoadFailed:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
