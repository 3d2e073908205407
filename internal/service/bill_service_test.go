package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/tailorbook-backend/internal/catalog"
	appErrors "github.com/unclebandit/tailorbook-backend/internal/errors"
	"github.com/unclebandit/tailorbook-backend/internal/forms"
	"github.com/unclebandit/tailorbook-backend/internal/logging"
	"github.com/unclebandit/tailorbook-backend/internal/model"
	"github.com/unclebandit/tailorbook-backend/internal/service"
)

type MockBillRepo struct {
	bills   []*model.Bill
	pdfURLs map[string]string
}

func (m *MockBillRepo) Create(ctx context.Context, b *model.Bill) error {
	b.ID = "bill-1"
	m.bills = append(m.bills, b)
	return nil
}

func (m *MockBillRepo) SetPDFURL(ctx context.Context, id, url string) error {
	if m.pdfURLs == nil {
		m.pdfURLs = map[string]string{}
	}
	m.pdfURLs[id] = url
	return nil
}

func (m *MockBillRepo) ListByCustomer(ctx context.Context, customerID string) ([]model.Bill, error) {
	return nil, nil
}

type stubInvoices struct {
	got model.InvoiceRequest
	err error
}

func (s *stubInvoices) Generate(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &model.Invoice{FileID: "pdf-1", PDFURL: "https://drive.example/pdf-1"}, nil
}

type recordingQueue struct {
	topics   []string
	payloads []any
}

func (q *recordingQueue) Publish(topic string, payload any) error {
	q.topics = append(q.topics, topic)
	q.payloads = append(q.payloads, payload)
	return nil
}

func (q *recordingQueue) Subscribe(topic string, handler func(payload any) error) error {
	return nil
}

func newBillService(inv *stubInvoices, bills *MockBillRepo, q *recordingQueue) *service.BillService {
	return &service.BillService{
		BillRepo: bills,
		CustomerRepo: NewMockCustomerRepo(&model.Customer{
			ID: "c1", Name: "Asha", Phone: "9876543210",
		}),
		Invoices: inv,
		Queue:    q,
		Catalog:  catalog.Default(),
		ShopName: "Shree Designer",
		Logger:   logging.Discard(),
	}
}

func TestBillServiceCreateAndSend(t *testing.T) {
	inv, bills, q := &stubInvoices{}, &MockBillRepo{}, &recordingQueue{}
	svc := newBillService(inv, bills, q)

	res, err := svc.CreateAndSend(context.Background(), forms.BillForm{
		CustomerID: "c1", ClothingType: "blouse", SubType: "padding", OtherClothing: "ignored", Quantity: 2, Amount: "500",
	})
	require.NoError(t, err)

	require.Len(t, bills.bills, 1)
	assert.Equal(t, "", bills.bills[0].OtherClothing, "free text only kept for other")
	assert.Equal(t, "https://drive.example/pdf-1", bills.pdfURLs["bill-1"])

	assert.Equal(t, "blouse (padding)", inv.got.ItemText())
	assert.Equal(t, 2, inv.got.Quantity)
	assert.Equal(t, 500.0, inv.got.Amount)
	assert.Equal(t, "9876543210", inv.got.CustomerPhone)

	assert.Equal(t, "https://drive.example/pdf-1", res.PDFURL)
	assert.True(t, strings.HasPrefix(res.WhatsAppURL, "https://wa.me/+919876543210?text="))

	require.Len(t, q.payloads, 1)
	ev := q.payloads[0].(model.InvoiceGenerated)
	assert.Equal(t, "bill-1", ev.BillID)
	assert.Equal(t, res.WhatsAppURL, ev.WhatsAppURL)
}

func TestBillServiceOtherClothing(t *testing.T) {
	inv := &stubInvoices{}
	svc := newBillService(inv, &MockBillRepo{}, &recordingQueue{})

	_, err := svc.CreateAndSend(context.Background(), forms.BillForm{
		CustomerID: "c1", ClothingType: "other", SubType: "padding", OtherClothing: "Kurti hemming", Quantity: 1, Amount: "120",
	})
	require.NoError(t, err)
	assert.Equal(t, "", inv.got.SubType)
	assert.Equal(t, "Kurti hemming", inv.got.ItemText())
}

func TestBillServiceInvoiceFailureKeepsBill(t *testing.T) {
	inv := &stubInvoices{err: &appErrors.StepError{Step: service.StepExport, Err: errors.New("boom")}}
	bills, q := &MockBillRepo{}, &recordingQueue{}
	svc := newBillService(inv, bills, q)

	_, err := svc.CreateAndSend(context.Background(), forms.BillForm{
		CustomerID: "c1", ClothingType: "suit", SubType: "full-lining", Quantity: 1, Amount: "900",
	})
	require.Error(t, err)
	assert.Len(t, bills.bills, 1)
	assert.Empty(t, bills.pdfURLs)
	assert.Empty(t, q.payloads)
}

func TestBillServiceUnknownCustomer(t *testing.T) {
	svc := newBillService(&stubInvoices{}, &MockBillRepo{}, &recordingQueue{})

	_, err := svc.CreateAndSend(context.Background(), forms.BillForm{
		CustomerID: "nope", ClothingType: "suit", SubType: "normal", Quantity: 1, Amount: "900",
	})
	var nf *appErrors.ErrCustomerNotFound
	assert.True(t, errors.As(err, &nf))
}
