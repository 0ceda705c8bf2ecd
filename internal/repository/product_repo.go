package repository

import (
	"context"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	Search(ctx context.Context, query string, limit int) ([]model.Product, error)
	// AdjustStockTx applies a signed delta to stock_quantity inside tx.
	AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("barcode = ? AND active = true", barcode).First(&p).Error
	return &p, err
}

func (r *productRepo) Search(ctx context.Context, query string, limit int) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Where("active = true")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ? OR barcode = ?", like, like, query)
	}
	err := q.Order("name ASC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error
}
