package app

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/talkincode/sheetshop/internal/domain"
	"github.com/talkincode/sheetshop/internal/session"
	"gorm.io/gorm"
)

// OrderLogWriter records submitted orders in the database.
type OrderLogWriter struct {
	db   *gorm.DB
	node *snowflake.Node
}

func NewOrderLogWriter(db *gorm.DB, node *snowflake.Node) *OrderLogWriter {
	return &OrderLogWriter{db: db, node: node}
}

func (w *OrderLogWriter) Write(evt session.SubmittedEvent) error {
	sub := evt.Submission
	row := domain.OrderLog{
		ID:           w.node.Generate().Int64(),
		VisitorID:    evt.VisitorID,
		ProductID:    sub.Draft.Product.ID,
		ProductName:  sub.Draft.Product.Name,
		UnitPrice:    sub.Draft.Product.Price,
		Quantity:     sub.Draft.Quantity,
		Total:        sub.Total,
		BuyerName:    sub.Draft.BuyerName,
		BuyerAddress: sub.Draft.BuyerAddress,
		Message:      sub.Message,
		Link:         sub.Link,
		CreatedAt:    evt.At,
	}
	if err := w.db.Create(&row).Error; err != nil {
		return errors.Wrap(err, "order log: insert")
	}
	return nil
}

// List returns one page of the log, newest first.
func (w *OrderLogWriter) List(ctx context.Context, q string, page, pageSize int) ([]domain.OrderLog, int64, error) {
	db := w.db.WithContext(ctx).Model(&domain.OrderLog{})
	if q != "" {
		like := "%" + q + "%"
		db = db.Where("product_name LIKE ? OR buyer_name LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "order log: count")
	}
	var rows []domain.OrderLog
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "order log: query")
	}
	return rows, total, nil
}
