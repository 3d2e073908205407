// internal/service/invoice_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	CharmLog "github.com/charmbracelet/log"

	"github.com/unclebandit/tailorbook-backend/internal/config"
	appErrors "github.com/unclebandit/tailorbook-backend/internal/errors"
	"github.com/unclebandit/tailorbook-backend/internal/logging"
	"github.com/unclebandit/tailorbook-backend/internal/metrics"
	"github.com/unclebandit/tailorbook-backend/internal/model"
)

// Step names, used in StepError and metrics.
const (
	StepCopy       = "copy template"
	StepReplace    = "replace placeholders"
	StepExport     = "export pdf"
	StepUpload     = "upload pdf"
	StepPermission = "grant public permission"
	StepLink       = "fetch share link"
)

// TemplateDocuments is the hosted document-editing service.
type TemplateDocuments interface {
	CopyTemplate(ctx context.Context, templateID, name string) (string, error)
	ReplaceAllText(ctx context.Context, docID string, replacements []Replacement) error
	ExportPDF(ctx context.Context, docID string) (io.ReadCloser, error)
	DeleteDocument(ctx context.Context, docID string) error
}

// FileStorage stores the exported PDF and shares it by link.
type FileStorage interface {
	Upload(ctx context.Context, folderID, name string, content io.Reader) (string, error)
	ShareAnyoneReader(ctx context.Context, fileID string) error
	ViewLink(ctx context.Context, fileID string) (string, error)
	Delete(ctx context.Context, fileID string) error
}

// InvoiceService turns a bill into a shareable PDF. Calls run one after the
// other; a failure stops the chain and removes what the chain created.
type InvoiceService struct {
	Documents TemplateDocuments
	Storage   FileStorage
	Google    config.GoogleConfig
	Timeout   time.Duration
	Logger    *CharmLog.Logger

	Now func() time.Time
}

func (s *InvoiceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *InvoiceService) logger() *CharmLog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.Discard()
}

// checkConfig fails before any remote call when settings are absent.
func (s *InvoiceService) checkConfig() error {
	missing := s.Google.MissingInvoiceSettings()
	if s.Documents == nil && !contains(missing, "GOOGLE_APPLICATION_CREDENTIALS") {
		missing = append([]string{"GOOGLE_APPLICATION_CREDENTIALS"}, missing...)
	}
	if s.Storage == nil {
		missing = append(missing, "STORAGE_DRIVER")
	}
	if len(missing) > 0 {
		return &appErrors.ConfigError{Missing: missing}
	}
	return nil
}

// Generate runs copy -> replace -> export -> upload -> share -> link.
func (s *InvoiceService) Generate(ctx context.Context, req model.InvoiceRequest) (inv *model.Invoice, err error) {
	if err := s.checkConfig(); err != nil {
		return nil, err
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	log := s.logger().With("customer", req.CustomerName)
	started := s.now()
	defer func() {
		metrics.RecordInvoice(err == nil, time.Since(started))
	}()

	// 1. Copy the template
	copyName := fmt.Sprintf("Invoice-%s-%d", req.CustomerName, started.UnixMilli())
	docID, err := s.Documents.CopyTemplate(ctx, s.Google.TemplateID, copyName)
	if err != nil {
		return nil, s.fail(StepCopy, err)
	}
	log.Debug("template copied", "doc_id", docID)

	var pdfID string
	defer func() {
		if err == nil {
			return
		}
		s.compensate(docID, pdfID)
	}()

	// 2. Replace placeholders
	if err = s.Documents.ReplaceAllText(ctx, docID, BuildReplacements(req, started)); err != nil {
		return nil, s.fail(StepReplace, err)
	}

	// 3. Export as PDF
	pdf, err := s.Documents.ExportPDF(ctx, docID)
	if err != nil {
		return nil, s.fail(StepExport, err)
	}
	defer pdf.Close()

	// 4. Upload PDF
	pdfID, err = s.Storage.Upload(ctx, s.Google.FolderID, "Invoice-"+req.CustomerName+".pdf", pdf)
	if err != nil {
		return nil, s.fail(StepUpload, err)
	}

	// 5. Make the file publicly readable
	if err = s.Storage.ShareAnyoneReader(ctx, pdfID); err != nil {
		return nil, s.fail(StepPermission, err)
	}

	// 6. Get shareable link
	link, err := s.Storage.ViewLink(ctx, pdfID)
	if err != nil {
		return nil, s.fail(StepLink, err)
	}

	log.Info("✅ Invoice generated", "file_id", pdfID, "url", link)
	return &model.Invoice{FileID: pdfID, PDFURL: link}, nil
}

func (s *InvoiceService) fail(step string, err error) error {
	metrics.RecordInvoiceStepFailure(step)
	return &appErrors.StepError{Step: step, Err: err}
}

// compensate deletes what a failed chain created. It uses a fresh context:
// the request context may be the reason the chain failed.
func (s *InvoiceService) compensate(docID, pdfID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if pdfID != "" {
		if err := s.Storage.Delete(ctx, pdfID); err != nil {
			s.logger().Warn("⚠️ failed to delete uploaded pdf", "file_id", pdfID, "err", err)
		}
	}
	if docID != "" {
		if err := s.Documents.DeleteDocument(ctx, docID); err != nil {
			s.logger().Warn("⚠️ failed to delete template copy", "doc_id", docID, "err", err)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FormatNumber prints the shortest decimal form: 500 -> "500", 499.5 -> "499.5".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
