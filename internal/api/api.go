// Package api exposes the conversion pipeline over HTTP using Fiber.
package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"statement-ledger/internal/categorizer"
	"statement-ledger/internal/common"
	"statement-ledger/internal/extractor"
	"statement-ledger/internal/logging"
	"statement-ledger/internal/models"
	"statement-ledger/internal/parsererror"
	"statement-ledger/internal/pipeline"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	app         *fiber.App
	extractor   extractor.TextExtractor
	categorizer *categorizer.Categorizer
	account     string
}

// convertResponse is the JSON body returned by the convert endpoint.
type convertResponse struct {
	Transactions []models.ExportRow `json:"transactions"`
	NeedsReview  []models.ExportRow `json:"needs_review"`
	Documents    []documentStatus   `json:"documents"`
	Summary      []summaryEntry     `json:"summary"`
}

type documentStatus struct {
	File                  string `json:"file"`
	Count                 int    `json:"count"`
	Ambiguous             int    `json:"ambiguous"`
	Skipped               int    `json:"skipped"`
	MissingOpeningBalance bool   `json:"missing_opening_balance"`
	Error                 string `json:"error,omitempty"`
}

type summaryEntry struct {
	SubCategory string `json:"sub_category"`
	Total       string `json:"total"`
}

// NewServer wires the routes onto a fresh Fiber app.
func NewServer(ext extractor.TextExtractor, cat *categorizer.Categorizer, account string) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			BodyLimit: 32 * 1024 * 1024,
		}),
		extractor:   ext,
		categorizer: cat,
		account:     account,
	}

	s.app.Get("/api/health", s.handleHealth)
	s.app.Post("/api/convert", s.handleConvert)
	s.app.Get("/api/rules", s.handleListRules)
	s.app.Post("/api/rules", s.handleAddRule)

	return s
}

// App exposes the underlying Fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the given address and blocks.
func (s *Server) Listen(addr string) error {
	log.WithField("addr", addr).Info("Starting API server")
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleConvert accepts one or more statement files in a multipart form
// under the "statements" field and returns the categorized ledger. With
// ?format=csv the resolved rows are returned as a CSV attachment instead.
func (s *Server) handleConvert(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form required")
	}
	uploads := form.File["statements"]
	if len(uploads) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no statement files uploaded")
	}

	tempDir, err := os.MkdirTemp("", "statement-upload-")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to stage uploads")
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.WithError(err).Warn("Failed to remove upload staging directory")
		}
	}()

	var files []string
	for i, upload := range uploads {
		dest := filepath.Join(tempDir, fmt.Sprintf("%d-%s", i, filepath.Base(upload.Filename)))
		if err := c.SaveFile(upload, dest); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save upload")
		}
		files = append(files, dest)
	}

	p := pipeline.New(s.extractor, s.categorizer, s.account, log)
	result, err := p.Run(files)
	if err != nil {
		if errors.Is(err, parsererror.ErrNoTransactions) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		log.WithError(err).Error("Conversion failed")
		return fiber.NewError(fiber.StatusInternalServerError, "conversion failed")
	}

	if c.Query("format") == "csv" {
		data, err := common.TransactionsToCSVBytes(result.Transactions)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render CSV")
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
		return c.Send(data)
	}

	resp := convertResponse{
		Transactions: models.ToExportRows(result.Resolved),
		NeedsReview:  models.ToExportRows(result.NeedsReview),
	}
	for _, doc := range result.Documents {
		status := documentStatus{
			File:                  filepath.Base(doc.File),
			Count:                 doc.Count,
			Ambiguous:             doc.Ambiguous,
			Skipped:               doc.Skipped,
			MissingOpeningBalance: doc.MissingOpeningBalance,
		}
		if doc.Err != nil {
			status.Error = doc.Err.Error()
		}
		resp.Documents = append(resp.Documents, status)
	}
	for _, entry := range pipeline.SpendingSummary(result.Transactions) {
		resp.Summary = append(resp.Summary, summaryEntry{
			SubCategory: entry.SubCategory,
			Total:       entry.Total.StringFixed(2),
		})
	}
	return c.JSON(resp)
}

func (s *Server) handleListRules(c *fiber.Ctx) error {
	return c.JSON(s.categorizer.Rules())
}

type addRuleRequest struct {
	Keyword string `json:"keyword"`
	Label   string `json:"label"`
}

func (s *Server) handleAddRule(c *fiber.Ctx) error {
	var req addRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.Keyword == "" || req.Label == "" {
		return fiber.NewError(fiber.StatusBadRequest, "keyword and label are required")
	}

	s.categorizer.UpdateRule(req.Keyword, req.Label)
	if err := s.categorizer.SaveRules(); err != nil {
		log.WithError(err).Error("Failed to persist custom rules")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to persist rule")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"keyword": req.Keyword, "label": req.Label})
}
