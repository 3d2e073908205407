// internal/service/bill_service.go
package service

import (
	"context"

	CharmLog "github.com/charmbracelet/log"

	"github.com/unclebandit/tailorbook-backend/internal/catalog"
	"github.com/unclebandit/tailorbook-backend/internal/forms"
	"github.com/unclebandit/tailorbook-backend/internal/model"
	"github.com/unclebandit/tailorbook-backend/internal/notify"
	"github.com/unclebandit/tailorbook-backend/internal/queue"
	"github.com/unclebandit/tailorbook-backend/internal/repository"
)

// InvoiceGenerator is satisfied by *InvoiceService.
type InvoiceGenerator interface {
	Generate(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error)
}

type BillService struct {
	BillRepo     repository.BillRepositoryInterface
	CustomerRepo repository.CustomerRepositoryInterface
	Invoices     InvoiceGenerator
	Queue        queue.Queue
	Catalog      *catalog.Catalog
	ShopName     string
	Logger       *CharmLog.Logger
}

// BillResult is what the bill screen shows after a successful run.
type BillResult struct {
	Bill        *model.Bill `json:"bill"`
	PDFURL      string      `json:"pdfUrl"`
	WhatsAppURL string      `json:"whatsappUrl"`
}

// CreateAndSend stores the bill, generates its invoice and prepares the
// WhatsApp link. The bill stays stored even if the invoice fails.
func (s *BillService) CreateAndSend(ctx context.Context, form forms.BillForm) (*BillResult, error) {
	if err := form.Validate(s.Catalog); err != nil {
		return nil, err
	}
	customer, err := s.CustomerRepo.GetByID(ctx, form.CustomerID)
	if err != nil {
		return nil, err
	}

	bill := &model.Bill{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		ClothingType:  form.ClothingType,
		Quantity:      form.Quantity,
		Amount:        form.ParsedAmount(),
	}
	if form.ClothingType == model.OtherClothingType {
		bill.OtherClothing = form.OtherClothing
	} else {
		bill.SubType = form.SubType
	}

	if err := s.BillRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	s.Logger.Info("🧾 Bill saved", "bill_id", bill.ID, "customer", bill.CustomerName)

	inv, err := s.Invoices.Generate(ctx, bill.InvoiceRequest())
	if err != nil {
		return nil, err
	}

	bill.PDFURL = inv.PDFURL
	if err := s.BillRepo.SetPDFURL(ctx, bill.ID, inv.PDFURL); err != nil {
		s.Logger.Warn("⚠️ failed to record invoice url on bill", "bill_id", bill.ID, "err", err)
	}

	link := notify.WhatsAppLink(customer.Phone, customer.Name, inv.PDFURL, s.ShopName)
	if s.Queue != nil {
		ev := model.InvoiceGenerated{
			BillID:        bill.ID,
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
			PDFURL:        inv.PDFURL,
			WhatsAppURL:   link,
		}
		if err := s.Queue.Publish(queue.InvoiceNotificationsTopic, ev); err != nil {
			s.Logger.Warn("⚠️ failed to enqueue invoice notification", "bill_id", bill.ID, "err", err)
		}
	}

	return &BillResult{Bill: bill, PDFURL: inv.PDFURL, WhatsAppURL: link}, nil
}

func (s *BillService) ListByCustomer(ctx context.Context, customerID string) ([]model.Bill, error) {
	return s.BillRepo.ListByCustomer(ctx, customerID)
}
