package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kosbot/kosbot-api/internal/domain/billing"
	"github.com/kosbot/kosbot-api/internal/domain/invoice"
	"github.com/kosbot/kosbot-api/internal/domain/payment"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/domain/ticket"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// MockProfileRepository is a mock implementation of profile.Repository
type MockProfileRepository struct {
	mu          sync.Mutex
	Profiles    map[string]*profile.Profile
	CreateError error
	GetError    error
	UpdateError error
	Updates     int
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{Profiles: make(map[string]*profile.Profile)}
}

// Add stores p directly, assigning an id when missing
func (m *MockProfileRepository) Add(p *profile.Profile) *profile.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	m.Profiles[p.ID] = &cp
	return p
}

// Get returns the stored copy of a profile, or nil
func (m *MockProfileRepository) Get(id string) *profile.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Profiles[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (m *MockProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Profiles {
		if existing.Email == p.Email {
			return errors.Conflict("An account with this email already exists")
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.Profiles[p.ID] = &cp
	return nil
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	return m.find(func(p *profile.Profile) bool { return p.ID == id })
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	return m.find(func(p *profile.Profile) bool { return p.Email == email })
}

func (m *MockProfileRepository) GetByBillingReference(ctx context.Context, ref string) (*profile.Profile, error) {
	return m.find(func(p *profile.Profile) bool {
		return p.BillingReference != nil && *p.BillingReference == ref
	})
}

func (m *MockProfileRepository) find(match func(*profile.Profile) bool) (*profile.Profile, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Profiles {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Profile")
}

func (m *MockProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Profiles[p.ID]; !ok {
		return errors.NotFound("Profile")
	}
	p.UpdatedAt = time.Now()
	cp := *p
	m.Profiles[p.ID] = &cp
	m.Updates++
	return nil
}

// MockPropertyRepository is a mock implementation of property.Repository
type MockPropertyRepository struct {
	mu          sync.Mutex
	Properties  map[string]*property.Property
	CreateError error
	CountError  error
	// AfterCount runs after Count has read the current total
	AfterCount func()
}

func NewMockPropertyRepository() *MockPropertyRepository {
	return &MockPropertyRepository{Properties: make(map[string]*property.Property)}
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.Properties[p.ID] = &cp
	return nil
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, ownerID, id string) (*property.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Properties[id]
	if !ok || p.OwnerID != ownerID {
		return nil, errors.NotFound("Property")
	}
	cp := *p
	return &cp, nil
}

func (m *MockPropertyRepository) List(ctx context.Context, ownerID string) ([]*property.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*property.Property{}
	for _, p := range m.Properties {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockPropertyRepository) Update(ctx context.Context, p *property.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Properties[p.ID]
	if !ok || existing.OwnerID != p.OwnerID {
		return errors.NotFound("Property")
	}
	p.UpdatedAt = time.Now()
	cp := *p
	m.Properties[p.ID] = &cp
	return nil
}

func (m *MockPropertyRepository) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Properties[id]
	if !ok || p.OwnerID != ownerID {
		return errors.NotFound("Property")
	}
	delete(m.Properties, id)
	return nil
}

func (m *MockPropertyRepository) Count(ctx context.Context, ownerID string) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.Lock()
	n := 0
	for _, p := range m.Properties {
		if p.OwnerID == ownerID {
			n++
		}
	}
	m.mu.Unlock()

	if m.AfterCount != nil {
		m.AfterCount()
	}
	return n, nil
}

// MockRoomRepository is a mock implementation of room.Repository
type MockRoomRepository struct {
	mu          sync.Mutex
	Rooms       map[string]*room.Room
	CreateError error
	CountError  error
}

func NewMockRoomRepository() *MockRoomRepository {
	return &MockRoomRepository{Rooms: make(map[string]*room.Room)}
}

func (m *MockRoomRepository) Create(ctx context.Context, r *room.Room) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.NewString()
	if r.Status == "" {
		r.Status = room.StatusVacant
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.Rooms[r.ID] = &cp
	return nil
}

func (m *MockRoomRepository) GetByID(ctx context.Context, ownerID, id string) (*room.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Rooms[id]
	if !ok || r.OwnerID != ownerID {
		return nil, errors.NotFound("Room")
	}
	cp := *r
	return &cp, nil
}

func (m *MockRoomRepository) List(ctx context.Context, ownerID string, filter room.Filter) ([]*room.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*room.Room{}
	for _, r := range m.Rooms {
		if roomMatches(r, ownerID, filter) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockRoomRepository) Update(ctx context.Context, r *room.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Rooms[r.ID]
	if !ok || existing.OwnerID != r.OwnerID {
		return errors.NotFound("Room")
	}
	r.UpdatedAt = time.Now()
	cp := *r
	m.Rooms[r.ID] = &cp
	return nil
}

func (m *MockRoomRepository) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Rooms[id]
	if !ok || r.OwnerID != ownerID {
		return errors.NotFound("Room")
	}
	delete(m.Rooms, id)
	return nil
}

func (m *MockRoomRepository) Count(ctx context.Context, ownerID string, filter room.Filter) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.Rooms {
		if roomMatches(r, ownerID, filter) {
			n++
		}
	}
	return n, nil
}

func roomMatches(r *room.Room, ownerID string, f room.Filter) bool {
	if r.OwnerID != ownerID {
		return false
	}
	if f.PropertyID != "" && r.PropertyID != f.PropertyID {
		return false
	}
	return f.Status == "" || r.Status == f.Status
}

// MockTenantRepository is a mock implementation of tenant.Repository
type MockTenantRepository struct {
	mu          sync.Mutex
	Tenants     map[string]*tenant.Tenant
	CreateError error
}

func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{Tenants: make(map[string]*tenant.Tenant)}
}

func (m *MockTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.Tenants[t.ID] = &cp
	return nil
}

func (m *MockTenantRepository) GetByID(ctx context.Context, ownerID, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tenants[id]
	if !ok || t.OwnerID != ownerID {
		return nil, errors.NotFound("Tenant")
	}
	cp := *t
	return &cp, nil
}

func (m *MockTenantRepository) List(ctx context.Context, ownerID string, filter tenant.Filter) ([]*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*tenant.Tenant{}
	for _, t := range m.Tenants {
		if t.OwnerID != ownerID {
			continue
		}
		if filter.PropertyID != "" && t.PropertyID != filter.PropertyID {
			continue
		}
		if filter.ActiveOn != "" && !t.IsActive(filter.ActiveOn) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *MockTenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Tenants[t.ID]
	if !ok || existing.OwnerID != t.OwnerID {
		return errors.NotFound("Tenant")
	}
	t.UpdatedAt = time.Now()
	cp := *t
	m.Tenants[t.ID] = &cp
	return nil
}

func (m *MockTenantRepository) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tenants[id]
	if !ok || t.OwnerID != ownerID {
		return errors.NotFound("Tenant")
	}
	delete(m.Tenants, id)
	return nil
}

func (m *MockTenantRepository) CountActive(ctx context.Context, ownerID, day string) (int, error) {
	list, err := m.List(ctx, ownerID, tenant.Filter{ActiveOn: day})
	return len(list), err
}

// MockInvoiceRepository is a mock implementation of invoice.Repository
type MockInvoiceRepository struct {
	mu          sync.Mutex
	Invoices    map[string]*invoice.Invoice
	CreateError error
	UpdateError error
	MarkError   error
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{Invoices: make(map[string]*invoice.Invoice)}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv.ID = uuid.NewString()
	if inv.Status == "" {
		inv.Status = invoice.StatusPending
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	cp := *inv
	m.Invoices[inv.ID] = &cp
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, ownerID, id string) (*invoice.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.Invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, errors.NotFound("Invoice")
	}
	cp := *inv
	return &cp, nil
}

func (m *MockInvoiceRepository) List(ctx context.Context, ownerID string, filter invoice.Filter) ([]*invoice.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*invoice.Invoice{}
	for _, inv := range m.Invoices {
		if invoiceMatches(inv, ownerID, filter) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out, nil
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Invoices[inv.ID]
	if !ok || existing.OwnerID != inv.OwnerID {
		return errors.NotFound("Invoice")
	}
	inv.UpdatedAt = time.Now()
	cp := *inv
	m.Invoices[inv.ID] = &cp
	return nil
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.Invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return errors.NotFound("Invoice")
	}
	delete(m.Invoices, id)
	return nil
}

func (m *MockInvoiceRepository) Count(ctx context.Context, ownerID string, filter invoice.Filter) (int, error) {
	list, err := m.List(ctx, ownerID, filter)
	return len(list), err
}

func (m *MockInvoiceRepository) MarkOverdue(ctx context.Context, day string, now time.Time) (int64, error) {
	if m.MarkError != nil {
		return 0, m.MarkError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, inv := range m.Invoices {
		if (inv.Status == invoice.StatusPending || inv.Status == invoice.StatusPartial) && inv.DueDate < day {
			inv.Status = invoice.StatusOverdue
			inv.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func invoiceMatches(inv *invoice.Invoice, ownerID string, f invoice.Filter) bool {
	if inv.OwnerID != ownerID {
		return false
	}
	if f.TenantID != "" && inv.TenantID != f.TenantID {
		return false
	}
	if f.DueDate != "" && inv.DueDate != f.DueDate {
		return false
	}
	if f.ExcludePaid && inv.Status == invoice.StatusPaid {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if inv.Status == s {
			return true
		}
	}
	return false
}

// MockPaymentRepository is a mock implementation of payment.Repository
type MockPaymentRepository struct {
	mu          sync.Mutex
	Payments    []*payment.Payment
	CreateError error
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	if p.PaidAt.IsZero() {
		p.PaidAt = p.CreatedAt
	}
	cp := *p
	m.Payments = append(m.Payments, &cp)
	return nil
}

func (m *MockPaymentRepository) List(ctx context.Context, ownerID string, filter payment.Filter) ([]*payment.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*payment.Payment{}
	for _, p := range m.Payments {
		if p.OwnerID != ownerID {
			continue
		}
		if filter.InvoiceID != "" && p.InvoiceID != filter.InvoiceID {
			continue
		}
		if !filter.Since.IsZero() && p.PaidAt.Before(filter.Since) {
			continue
		}
		if !filter.Until.IsZero() && !p.PaidAt.Before(filter.Until) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockPaymentRepository) SumByInvoice(ctx context.Context, ownerID, invoiceID string) (int64, error) {
	list, _ := m.List(ctx, ownerID, payment.Filter{InvoiceID: invoiceID})
	var total int64
	for _, p := range list {
		total += p.Amount
	}
	return total, nil
}

func (m *MockPaymentRepository) SumSince(ctx context.Context, ownerID string, since time.Time) (int64, error) {
	list, _ := m.List(ctx, ownerID, payment.Filter{Since: since})
	var total int64
	for _, p := range list {
		total += p.Amount
	}
	return total, nil
}

// MockTicketRepository is a mock implementation of ticket.Repository
type MockTicketRepository struct {
	mu          sync.Mutex
	Tickets     map[string]*ticket.Ticket
	CreateError error
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{Tickets: make(map[string]*ticket.Ticket)}
}

func (m *MockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	if t.Priority == "" {
		t.Priority = ticket.PriorityMedium
	}
	if t.Status == "" {
		t.Status = ticket.StatusOpen
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.Tickets[t.ID] = &cp
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, ownerID, id string) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tickets[id]
	if !ok || t.OwnerID != ownerID {
		return nil, errors.NotFound("Ticket")
	}
	cp := *t
	return &cp, nil
}

var priorityRank = map[ticket.Priority]int{
	ticket.PriorityHigh:   0,
	ticket.PriorityMedium: 1,
	ticket.PriorityLow:    2,
}

func (m *MockTicketRepository) List(ctx context.Context, ownerID string, filter ticket.Filter) ([]*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*ticket.Ticket{}
	for _, t := range m.Tickets {
		if ticketMatches(t, ownerID, filter) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if priorityRank[out[i].Priority] != priorityRank[out[j].Priority] {
			return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Tickets[t.ID]
	if !ok || existing.OwnerID != t.OwnerID {
		return errors.NotFound("Ticket")
	}
	t.UpdatedAt = time.Now()
	cp := *t
	m.Tickets[t.ID] = &cp
	return nil
}

func (m *MockTicketRepository) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tickets[id]
	if !ok || t.OwnerID != ownerID {
		return errors.NotFound("Ticket")
	}
	delete(m.Tickets, id)
	return nil
}

func (m *MockTicketRepository) Count(ctx context.Context, ownerID string, filter ticket.Filter) (int, error) {
	filter.Limit = 0
	list, err := m.List(ctx, ownerID, filter)
	return len(list), err
}

func ticketMatches(t *ticket.Ticket, ownerID string, f ticket.Filter) bool {
	if t.OwnerID != ownerID {
		return false
	}
	if f.PropertyID != "" && t.PropertyID != f.PropertyID {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if t.Status == s {
			return true
		}
	}
	return false
}

// MockBillingProvider is a mock implementation of billing.Provider
type MockBillingProvider struct {
	mu sync.Mutex
	// Event is returned by ParseWebhook unless ParseError is set
	Event      billing.Event
	ParseError error
	Customers  map[string]*billing.Customer
	// subscription id -> product id
	Products     map[string]string
	CustomerErr  error
	ProductErr   error
	CheckoutURL  string
	PortalURL    string
	SessionErr   error
	Checkouts    []billing.CheckoutRequest
	PortalCalls  []string
	CustomerHits int
}

func NewMockBillingProvider() *MockBillingProvider {
	return &MockBillingProvider{
		Customers:   make(map[string]*billing.Customer),
		Products:    make(map[string]string),
		CheckoutURL: "https://checkout.example.test/session",
		PortalURL:   "https://billing.example.test/portal",
	}
}

func (m *MockBillingProvider) ParseWebhook(payload []byte, signature string) (billing.Event, error) {
	if m.ParseError != nil {
		return nil, m.ParseError
	}
	return m.Event, nil
}

func (m *MockBillingProvider) GetCustomer(ctx context.Context, customerID string) (*billing.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CustomerHits++
	if m.CustomerErr != nil {
		return nil, m.CustomerErr
	}
	c, ok := m.Customers[customerID]
	if !ok {
		return nil, errors.NotFound("Customer")
	}
	cp := *c
	return &cp, nil
}

func (m *MockBillingProvider) SubscriptionProduct(ctx context.Context, subscriptionID string) (string, error) {
	if m.ProductErr != nil {
		return "", m.ProductErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Products[subscriptionID], nil
}

func (m *MockBillingProvider) CreateCheckoutSession(ctx context.Context, req billing.CheckoutRequest) (string, error) {
	if m.SessionErr != nil {
		return "", m.SessionErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Checkouts = append(m.Checkouts, req)
	return m.CheckoutURL, nil
}

func (m *MockBillingProvider) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if m.SessionErr != nil {
		return "", m.SessionErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PortalCalls = append(m.PortalCalls, customerID)
	return m.PortalURL, nil
}

// Notification is one call recorded by MockNotifier
type Notification struct {
	ProfileID string
	Email     string
	From      profile.Status
	To        profile.Status
}

// MockNotifier is a mock implementation of billing.Notifier
type MockNotifier struct {
	mu    sync.Mutex
	Calls []Notification
	Err   error
}

func (m *MockNotifier) NotifyStatusChange(ctx context.Context, p *profile.Profile, from profile.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, Notification{ProfileID: p.ID, Email: p.Email, From: from, To: p.Status})
	return m.Err
}
