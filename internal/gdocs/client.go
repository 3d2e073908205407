// Package gdocs talks to Google Docs and Google Drive: it copies the invoice
// template, fills it in, exports it as PDF, and shares the result.
package gdocs

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/unclebandit/tailorbook-backend/internal/service"
)

const pdfMimeType = "application/pdf"

// Client implements service.TemplateDocuments and service.FileStorage.
type Client struct {
	Drive *drive.Service
	Docs  *docs.Service
}

var (
	_ service.TemplateDocuments = (*Client)(nil)
	_ service.FileStorage       = (*Client)(nil)
)

// New builds both services from a service-account key file.
func New(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*Client, error) {
	base := []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveScope, docs.DocumentsScope),
	}
	return NewWithOptions(ctx, append(base, opts...)...)
}

// NewWithOptions is New without the credentials file, for custom auth or tests.
func NewWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}
	return &Client{Drive: driveSvc, Docs: docsSvc}, nil
}

func (c *Client) CopyTemplate(ctx context.Context, templateID, name string) (string, error) {
	f, err := c.Drive.Files.Copy(templateID, &drive.File{Name: name}).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return f.Id, nil
}

// ReplaceAllText sends every replacement in a single batchUpdate.
func (c *Client) ReplaceAllText(ctx context.Context, docID string, replacements []service.Replacement) error {
	requests := make([]*docs.Request, 0, len(replacements))
	for _, r := range replacements {
		requests = append(requests, &docs.Request{
			ReplaceAllText: &docs.ReplaceAllTextRequest{
				ContainsText: &docs.SubstringMatchCriteria{Text: r.Placeholder, MatchCase: true},
				ReplaceText:  r.Value,
				// an empty value must still be sent, or the placeholder stays
				ForceSendFields: []string{"ReplaceText"},
			},
		})
	}
	_, err := c.Docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{Requests: requests}).
		Context(ctx).
		Do()
	return err
}

// ExportPDF streams the document as PDF. The caller closes the body.
func (c *Client) ExportPDF(ctx context.Context, docID string) (io.ReadCloser, error) {
	resp, err := c.Drive.Files.Export(docID, pdfMimeType).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("export returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) DeleteDocument(ctx context.Context, docID string) error {
	return c.Drive.Files.Delete(docID).SupportsAllDrives(true).Context(ctx).Do()
}

func (c *Client) Upload(ctx context.Context, folderID, name string, content io.Reader) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: pdfMimeType,
		Parents:  []string{folderID},
	}
	f, err := c.Drive.Files.Create(meta).
		Media(content, googleapi.ContentType(pdfMimeType)).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return f.Id, nil
}

func (c *Client) ShareAnyoneReader(ctx context.Context, fileID string) error {
	_, err := c.Drive.Permissions.Create(fileID, &drive.Permission{Role: "reader", Type: "anyone"}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	return err
}

func (c *Client) ViewLink(ctx context.Context, fileID string) (string, error) {
	f, err := c.Drive.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields("webViewLink", "webContentLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if f.WebViewLink == "" {
		return "", fmt.Errorf("file %s has no view link", fileID)
	}
	return f.WebViewLink, nil
}

// Delete removes an uploaded file.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	return c.Drive.Files.Delete(fileID).SupportsAllDrives(true).Context(ctx).Do()
}
