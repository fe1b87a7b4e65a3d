package services

import (
	"context"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/invoice"
	"github.com/kosbot/kosbot-api/internal/domain/payment"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

// PaymentService implements payment.Service
type PaymentService struct {
	repo     payment.Repository
	invoices invoice.Repository
	logger   *logger.Logger
	now      func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo payment.Repository, invoices invoice.Repository, log *logger.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		invoices: invoices,
		logger:   log,
		now:      time.Now,
	}
}

// Record stores a payment and settles the invoice it pays. Once the
// payments for an invoice cover its amount the invoice is paid, otherwise
// it is partial.
func (s *PaymentService) Record(ctx context.Context, p *payment.Payment) error {
	if p.Amount <= 0 {
		return errors.ValidationError("Payment amount must be greater than zero", nil)
	}
	if p.Method == "" {
		p.Method = payment.MethodCash
	}
	if !validPaymentMethod(p.Method) {
		return errors.ValidationError("Invalid payment method", nil)
	}

	inv, err := s.invoices.GetByID(ctx, p.OwnerID, p.InvoiceID)
	if err != nil {
		return err
	}

	if p.PaidAt.IsZero() {
		p.PaidAt = s.now().UTC().Truncate(time.Second)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record payment")
		return err
	}

	total, err := s.repo.SumByInvoice(ctx, p.OwnerID, p.InvoiceID)
	if err != nil {
		return err
	}

	if total >= inv.Amount {
		paidAt := p.PaidAt
		inv.Status = invoice.StatusPaid
		inv.PaidAt = &paidAt
	} else {
		inv.Status = invoice.StatusPartial
		inv.PaidAt = nil
	}
	if err := s.invoices.Update(ctx, inv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to settle invoice")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id":   p.OwnerID,
		"invoice_id": p.InvoiceID,
		"amount":     p.Amount,
		"paid_total": total,
		"status":     inv.Status,
	}).Info("Payment recorded")
	return nil
}

// List lists the owner's payments
func (s *PaymentService) List(ctx context.Context, ownerID string, filter payment.Filter) ([]*payment.Payment, error) {
	return s.repo.List(ctx, ownerID, filter)
}

func validPaymentMethod(m string) bool {
	switch m {
	case payment.MethodCash, payment.MethodTransfer, payment.MethodEWallet, payment.MethodOther:
		return true
	}
	return false
}
