package services

import (
	"context"
	"math"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/dashboard"
	"github.com/kosbot/kosbot-api/internal/domain/invoice"
	"github.com/kosbot/kosbot-api/internal/domain/payment"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/domain/ticket"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
)

// DashboardService implements dashboard.Service. Every figure is derived
// from the owner's rows at read time.
type DashboardService struct {
	properties property.Repository
	rooms      room.Repository
	tenants    tenant.Repository
	invoices   invoice.Repository
	payments   payment.Repository
	tickets    ticket.Repository
	logger     *logger.Logger
	now        func() time.Time
}

// DashboardRepos groups the repositories the dashboard reads from
type DashboardRepos struct {
	Properties property.Repository
	Rooms      room.Repository
	Tenants    tenant.Repository
	Invoices   invoice.Repository
	Payments   payment.Repository
	Tickets    ticket.Repository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos DashboardRepos, log *logger.Logger) *DashboardService {
	return &DashboardService{
		properties: repos.Properties,
		rooms:      repos.Rooms,
		tenants:    repos.Tenants,
		invoices:   repos.Invoices,
		payments:   repos.Payments,
		tickets:    repos.Tickets,
		logger:     log,
		now:        time.Now,
	}
}

// Overview returns occupancy, this month's income and the open work counts
func (s *DashboardService) Overview(ctx context.Context, ownerID string) (*dashboard.Overview, error) {
	now := s.now().UTC()

	total, err := s.rooms.Count(ctx, ownerID, room.Filter{})
	if err != nil {
		return nil, err
	}
	occupied, err := s.rooms.Count(ctx, ownerID, room.Filter{Status: room.StatusOccupied})
	if err != nil {
		return nil, err
	}
	income, err := s.payments.SumSince(ctx, ownerID, utils.StartOfMonth(now))
	if err != nil {
		return nil, err
	}
	pending, err := s.invoices.Count(ctx, ownerID, invoice.Filter{
		Statuses: []invoice.Status{invoice.StatusPending, invoice.StatusOverdue},
	})
	if err != nil {
		return nil, err
	}
	open, err := s.tickets.Count(ctx, ownerID, ticket.Filter{
		Statuses: []ticket.Status{ticket.StatusOpen, ticket.StatusProgress},
	})
	if err != nil {
		return nil, err
	}

	return &dashboard.Overview{
		OccupancyRate:   occupancyRate(occupied, total),
		TotalRooms:      total,
		OccupiedRooms:   occupied,
		MonthlyIncome:   income,
		PendingPayments: pending,
		OpenTickets:     open,
	}, nil
}

// QuickStats returns the property, room and active tenant counts
func (s *DashboardService) QuickStats(ctx context.Context, ownerID string) (*dashboard.QuickStats, error) {
	props, err := s.properties.Count(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.Count(ctx, ownerID, room.Filter{})
	if err != nil {
		return nil, err
	}
	active, err := s.tenants.CountActive(ctx, ownerID, utils.FormatDate(s.now().UTC()))
	if err != nil {
		return nil, err
	}
	return &dashboard.QuickStats{Properties: props, Rooms: rooms, ActiveTenants: active}, nil
}

// Tasks synthesizes today's to-do list: unpaid invoices due today first,
// then up to three high-priority tickets still in flight.
func (s *DashboardService) Tasks(ctx context.Context, ownerID string) ([]dashboard.Task, error) {
	today := utils.FormatDate(s.now().UTC())

	due, err := s.invoices.List(ctx, ownerID, invoice.Filter{DueDate: today, ExcludePaid: true})
	if err != nil {
		return nil, err
	}
	urgent, err := s.tickets.List(ctx, ownerID, ticket.Filter{
		Statuses: []ticket.Status{ticket.StatusOpen, ticket.StatusProgress},
		Priority: ticket.PriorityHigh,
		Limit:    3,
	})
	if err != nil {
		return nil, err
	}

	tasks := make([]dashboard.Task, 0, dashboard.MaxTasks)
	for _, inv := range due {
		tasks = append(tasks, dashboard.Task{
			ID:          "payment-" + inv.ID,
			Kind:        dashboard.TaskPayment,
			Title:       "Follow up payment - " + inv.TenantName,
			Priority:    string(ticket.PriorityHigh),
			DueDate:     inv.DueDate,
			ReferenceID: inv.ID,
		})
	}
	for _, t := range urgent {
		tasks = append(tasks, dashboard.Task{
			ID:          "ticket-" + t.ID,
			Kind:        dashboard.TaskTicket,
			Title:       t.Description,
			Priority:    string(t.Priority),
			ReferenceID: t.ID,
		})
	}

	if len(tasks) > dashboard.MaxTasks {
		tasks = tasks[:dashboard.MaxTasks]
	}
	return tasks, nil
}

// Revenue returns payment totals for the last RevenueMonths calendar
// months, oldest first, including the current month.
func (s *DashboardService) Revenue(ctx context.Context, ownerID string) ([]dashboard.RevenuePoint, error) {
	current := utils.StartOfMonth(s.now().UTC())
	first := current.AddDate(0, -(dashboard.RevenueMonths - 1), 0)

	payments, err := s.payments.List(ctx, ownerID, payment.Filter{
		Since: first,
		Until: current.AddDate(0, 1, 0),
	})
	if err != nil {
		return nil, err
	}

	points := make([]dashboard.RevenuePoint, dashboard.RevenueMonths)
	index := make(map[string]int, dashboard.RevenueMonths)
	for i := range points {
		month := first.AddDate(0, i, 0)
		key := month.Format("2006-01")
		points[i] = dashboard.RevenuePoint{Month: key, Label: month.Format("Jan")}
		index[key] = i
	}
	for _, p := range payments {
		if i, ok := index[p.PaidAt.UTC().Format("2006-01")]; ok {
			points[i].Total += p.Amount
		}
	}
	return points, nil
}

// occupancyRate is occupied/total as a percentage with one decimal, 0 without rooms.
func occupancyRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*1000) / 10
}
