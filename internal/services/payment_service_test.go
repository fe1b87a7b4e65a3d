package services

import (
	"context"
	"testing"

	"github.com/kosbot/kosbot-api/internal/domain/invoice"
	"github.com/kosbot/kosbot-api/internal/domain/payment"
	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/testutil"
)

func TestPaymentService_Record_SettlesInvoice(t *testing.T) {
	invoices := testutil.NewMockInvoiceRepository()
	payments := testutil.NewMockPaymentRepository()
	service := NewPaymentService(payments, invoices, logger.Nop())
	ctx := context.Background()

	inv := &invoice.Invoice{OwnerID: "o", TenantID: "t", Amount: 1000000, DueDate: "2026-06-05"}
	invoices.Create(ctx, inv)

	steps := []struct {
		amount     int64
		wantStatus invoice.Status
		wantPaidAt bool
	}{
		{amount: 400000, wantStatus: invoice.StatusPartial},
		{amount: 500000, wantStatus: invoice.StatusPartial},
		{amount: 100000, wantStatus: invoice.StatusPaid, wantPaidAt: true},
	}

	for i, step := range steps {
		if err := service.Record(ctx, &payment.Payment{OwnerID: "o", InvoiceID: inv.ID, Amount: step.amount, Method: payment.MethodTransfer}); err != nil {
			t.Fatalf("step %d: Record() error = %v", i, err)
		}
		got, _ := invoices.GetByID(ctx, "o", inv.ID)
		if got.Status != step.wantStatus {
			t.Errorf("step %d: status = %s, want %s", i, got.Status, step.wantStatus)
		}
		if (got.PaidAt != nil) != step.wantPaidAt {
			t.Errorf("step %d: PaidAt = %v, want set=%v", i, got.PaidAt, step.wantPaidAt)
		}
	}
}

func TestPaymentService_Record_Validation(t *testing.T) {
	invoices := testutil.NewMockInvoiceRepository()
	service := NewPaymentService(testutil.NewMockPaymentRepository(), invoices, logger.Nop())
	ctx := context.Background()

	inv := &invoice.Invoice{OwnerID: "o", TenantID: "t", Amount: 500, DueDate: "2026-06-05"}
	invoices.Create(ctx, inv)

	tests := []struct {
		name     string
		payment  *payment.Payment
		wantCode string
	}{
		{name: "zero amount", payment: &payment.Payment{OwnerID: "o", InvoiceID: inv.ID}, wantCode: errors.ErrCodeValidation},
		{name: "unknown method", payment: &payment.Payment{OwnerID: "o", InvoiceID: inv.ID, Amount: 10, Method: "barter"}, wantCode: errors.ErrCodeValidation},
		{name: "invoice of another owner", payment: &payment.Payment{OwnerID: "x", InvoiceID: inv.ID, Amount: 10}, wantCode: errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := service.Record(ctx, tt.payment); !errors.HasCode(err, tt.wantCode) {
				t.Errorf("Record() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestInvoiceService_Create(t *testing.T) {
	invoices := testutil.NewMockInvoiceRepository()
	tenants := testutil.NewMockTenantRepository()
	service := NewInvoiceService(invoices, tenants, logger.Nop())
	ctx := context.Background()

	tn := &tenant.Tenant{OwnerID: "o", FullName: "Rina", StartDate: "2026-01-01"}
	tenants.Create(ctx, tn)

	tests := []struct {
		name     string
		invoice  *invoice.Invoice
		wantCode string
	}{
		{name: "valid", invoice: &invoice.Invoice{OwnerID: "o", TenantID: tn.ID, Amount: 750000, DueDate: "2026-07-01"}},
		{name: "non-positive amount", invoice: &invoice.Invoice{OwnerID: "o", TenantID: tn.ID, Amount: 0, DueDate: "2026-07-01"}, wantCode: errors.ErrCodeValidation},
		{name: "missing due date", invoice: &invoice.Invoice{OwnerID: "o", TenantID: tn.ID, Amount: 10}, wantCode: errors.ErrCodeValidation},
		{name: "unknown tenant", invoice: &invoice.Invoice{OwnerID: "o", TenantID: "ghost", Amount: 10, DueDate: "2026-07-01"}, wantCode: errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Create(ctx, tt.invoice)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Create() error = %v", err)
				}
				if tt.invoice.Status != invoice.StatusPending {
					t.Errorf("Status = %s, want pending", tt.invoice.Status)
				}
				if tt.invoice.TenantName != "Rina" {
					t.Errorf("TenantName = %q, want Rina", tt.invoice.TenantName)
				}
				return
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("Create() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
