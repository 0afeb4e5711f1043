package services

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"stitch-backend/internal/cache"
	"stitch-backend/internal/leads"
	"stitch-backend/internal/models"
	"stitch-backend/internal/repositories"
	"stitch-backend/internal/status"
	"stitch-backend/internal/timeutil"
)

const dashboardTTL = 60 * time.Second

type DashboardService struct {
	UserRepo  *repositories.UserRepository
	QuoteRepo *repositories.QuoteRepository
	OrderRepo *repositories.OrderRepository
}

func NewDashboardService(userRepo *repositories.UserRepository, quoteRepo *repositories.QuoteRepository, orderRepo *repositories.OrderRepository) *DashboardService {
	return &DashboardService{
		UserRepo:  userRepo,
		QuoteRepo: quoteRepo,
		OrderRepo: orderRepo,
	}
}

// BuyerDashboard assembles the buyer's quotes, orders, and derived activity
// classification in one call. Cached per buyer for a minute.
func (s *DashboardService) BuyerDashboard(ctx context.Context, buyerID int) (*models.BuyerDashboard, error) {
	key := cache.BuyerDashboardFmt + strconv.Itoa(buyerID)
	if data, ok := cache.GetCached(ctx, key); ok {
		var dash models.BuyerDashboard
		if err := json.Unmarshal(data, &dash); err == nil {
			return &dash, nil
		}
	}

	quotes, err := s.QuoteRepo.List(ctx, models.QuoteFilter{BuyerID: buyerID})
	if err != nil {
		return nil, err
	}
	orders, err := s.OrderRepo.List(ctx, models.OrderFilter{BuyerID: buyerID})
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		decorate(o)
	}

	user, err := s.UserRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	dash := &models.BuyerDashboard{
		Quotes:   quotes,
		Orders:   orders,
		Activity: s.buyerActivity(user, quotes, orders),
	}

	if data, err := json.Marshal(dash); err == nil {
		cache.SetCached(ctx, key, data, dashboardTTL)
	}
	return dash, nil
}

// buyerActivity derives a lead classification for one buyer from already
// loaded quote and order rows.
func (s *DashboardService) buyerActivity(user *models.User, quotes []*models.Quote, orders []*models.Order) *models.BuyerActivity {
	now := timeutil.Now()

	var lastOrderUpdate, lastQuoteCreate *time.Time
	interested := 0
	var totalValue float64
	for _, q := range quotes {
		if lastQuoteCreate == nil || q.CreatedAt.After(*lastQuoteCreate) {
			t := q.CreatedAt
			lastQuoteCreate = &t
		}
		if q.LeadStatus == "interested" || q.Status == status.QuoteConverted {
			interested++
		}
	}
	for _, o := range orders {
		if lastOrderUpdate == nil || o.UpdatedAt.After(*lastOrderUpdate) {
			t := o.UpdatedAt
			lastOrderUpdate = &t
		}
		totalValue += o.BuyerPrice
	}

	created := user.CreatedAt
	lastActivity := leads.LastActivity(lastOrderUpdate, lastQuoteCreate, &created, now)
	cls := leads.Classify(len(quotes), len(orders), lastActivity, now)

	return &models.BuyerActivity{
		BuyerID:          user.ID,
		BuyerName:        user.Name,
		Company:          user.Company,
		TotalQuotes:      len(quotes),
		InterestedQuotes: interested,
		ConvertedOrders:  len(orders),
		TotalValue:       totalValue,
		LastActivityAt:   lastActivity,
		DaysSinceContact: cls.DaysSinceContact,
		InterestLevel:    cls.InterestLevel,
		FollowUpNeeded:   cls.FollowUpNeeded,
	}
}

// FunnelStats computes the admin conversion funnel from status counts.
func (s *DashboardService) FunnelStats(ctx context.Context) (*models.FunnelStats, error) {
	if data, ok := cache.GetCached(ctx, cache.FunnelStatsKey); ok {
		var stats models.FunnelStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	quoteCounts, err := s.QuoteRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	orderCounts, err := s.OrderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalValue, err := s.OrderRepo.TotalValue(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.FunnelStats{
		DraftQuotes:     quoteCounts[status.QuoteDraft],
		PendingQuotes:   quoteCounts[status.QuotePending],
		ConvertedQuotes: quoteCounts[status.QuoteConverted],
		CompletedOrders: orderCounts[status.Completed],
		TotalOrderValue: totalValue,
	}
	for _, n := range quoteCounts {
		stats.TotalQuotes += n
	}
	for st, n := range orderCounts {
		stats.TotalOrders += n
		if !status.Terminal(st) {
			stats.ActiveOrders += n
		}
	}
	if stats.TotalQuotes > 0 {
		stats.ConversionRate = float64(stats.ConvertedQuotes) / float64(stats.TotalQuotes) * 100
	}

	if data, err := json.Marshal(stats); err == nil {
		cache.SetCached(ctx, cache.FunnelStatsKey, data, dashboardTTL)
	}
	return stats, nil
}

// AdminDashboard assembles the funnel, order status distribution, and the
// lead board in one call.
func (s *DashboardService) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	if data, ok := cache.GetCached(ctx, cache.AdminDashboardKey); ok {
		var dash models.AdminDashboard
		if err := json.Unmarshal(data, &dash); err == nil {
			return &dash, nil
		}
	}

	funnel, err := s.FunnelStats(ctx)
	if err != nil {
		return nil, err
	}
	orderCounts, err := s.OrderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := make([]models.StatusCount, 0, len(orderCounts))
	for st, n := range orderCounts {
		byStatus = append(byStatus, models.StatusCount{
			Status: st,
			Label:  status.Progress(st).Label,
			Count:  n,
		})
	}
	sort.Slice(byStatus, func(i, j int) bool { return byStatus[i].Status < byStatus[j].Status })

	leadBoard, err := s.LeadBoard(ctx)
	if err != nil {
		return nil, err
	}

	dash := &models.AdminDashboard{
		Funnel:         *funnel,
		OrdersByStatus: byStatus,
		Leads:          leadBoard,
	}

	if data, err := json.Marshal(dash); err == nil {
		cache.SetCached(ctx, cache.AdminDashboardKey, data, dashboardTTL)
	}
	return dash, nil
}

// LeadBoard classifies every buyer, hottest first. Derived on each call from
// the underlying rows so a stale score can never be persisted.
func (s *DashboardService) LeadBoard(ctx context.Context) ([]*models.BuyerActivity, error) {
	if data, ok := cache.GetCached(ctx, cache.LeadBoardKey); ok {
		var board []*models.BuyerActivity
		if err := json.Unmarshal(data, &board); err == nil {
			return board, nil
		}
	}

	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	board := make([]*models.BuyerActivity, 0)
	for _, u := range users {
		if u.Role != models.RoleBuyer {
			continue
		}
		quotes, err := s.QuoteRepo.List(ctx, models.QuoteFilter{BuyerID: u.ID})
		if err != nil {
			return nil, err
		}
		orders, err := s.OrderRepo.List(ctx, models.OrderFilter{BuyerID: u.ID})
		if err != nil {
			return nil, err
		}
		board = append(board, s.buyerActivity(u, quotes, orders))
	}

	rank := map[string]int{leads.Hot: 0, leads.Warm: 1, leads.Cold: 2}
	sort.SliceStable(board, func(i, j int) bool {
		if rank[board[i].InterestLevel] != rank[board[j].InterestLevel] {
			return rank[board[i].InterestLevel] < rank[board[j].InterestLevel]
		}
		return board[i].DaysSinceContact < board[j].DaysSinceContact
	})

	if data, err := json.Marshal(board); err == nil {
		cache.SetCached(ctx, cache.LeadBoardKey, data, dashboardTTL)
	}
	return board, nil
}
