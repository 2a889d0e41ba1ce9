package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/talktobrent/product-api/internal/model"

	"gorm.io/gorm"
)

// HistoryService は注文履歴サービスのインターフェース
type HistoryService interface {
	CustomerHistory(ctx context.Context, customerID int64) ([]model.OrderSummary, error)
}

// historyServiceImpl は注文履歴サービスの実装
type historyServiceImpl struct {
	db *gorm.DB
}

// NewHistoryService creates a new history service
func NewHistoryService(db *gorm.DB) HistoryService {
	return &historyServiceImpl{db: db}
}

// historyRow is one line item joined with its basket's date and status flags.
type historyRow struct {
	OrderID   int64
	Datetime  int64
	Ready     *bool
	OnItsWay  *bool
	Delivered *bool
	ProductID int64
	Name      string
	Volume    float64
}

// CustomerHistory returns one summary per order, newest first. Line items
// sharing an order id collapse into a single summary's products map, keeping
// the order in which distinct orders first appear in the sorted rows. A
// customer with no rows gets an empty slice; unknown ids are not distinguished
// from known customers without orders.
func (s *historyServiceImpl) CustomerHistory(ctx context.Context, customerID int64) ([]model.OrderSummary, error) {
	var rows []historyRow
	err := s.db.WithContext(ctx).
		Table("order_baskets").
		Select(`order_baskets.id AS order_id,
			order_baskets.datetime AS datetime,
			order_baskets.ready AS ready,
			order_baskets.on_its_way AS on_its_way,
			order_baskets.delivered AS delivered,
			order_volumes_view.product_id AS product_id,
			order_volumes_view.name AS name,
			order_volumes_view.volume AS volume`).
		Joins("INNER JOIN order_volumes_view ON order_volumes_view.order_id = order_baskets.id").
		Where("order_baskets.customer_id = ?", customerID).
		Order("order_baskets.datetime DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query customer history: %w", err)
	}

	summaries := make([]model.OrderSummary, 0, len(rows))
	index := make(map[int64]int)
	for _, row := range rows {
		pid := strconv.FormatInt(row.ProductID, 10)
		if i, ok := index[row.OrderID]; ok {
			summaries[i].Products[pid] = map[string]float64{row.Name: row.Volume}
			continue
		}
		index[row.OrderID] = len(summaries)
		summaries = append(summaries, model.OrderSummary{
			Datetime:  time.Unix(row.Datetime, 0).UTC().Format("2006-01-02"),
			Ready:     row.Ready,
			OnItsWay:  row.OnItsWay,
			Delivered: row.Delivered,
			Products:  map[string]map[string]float64{pid: {row.Name: row.Volume}},
			OrderID:   strconv.FormatInt(row.OrderID, 10),
		})
	}

	return summaries, nil
}
