package repository

import (
	"context"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SessionStats are the counts feeding the session summary.
type SessionStats struct {
	SaleCount   int64
	SaleTotal   decimal.Decimal
	VoidedCount int64
	VoidedTotal decimal.Decimal
}

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// FindByIDForUpdateTx locks the sale row so a void cannot race another void.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	UpdateTx(tx *gorm.DB, s *model.Sale) error
	NextSaleNumber(tx *gorm.DB) (int64, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	// SumPaymentsByTypeTx sums payment amounts of COMPLETED sales of the
	// session, grouped by payment-method type. Runs inside the closing
	// transaction so the aggregate and the close write are linearizable.
	SumPaymentsByTypeTx(tx *gorm.DB, sessionID uuid.UUID) (map[string]decimal.Decimal, error)
	SessionStats(ctx context.Context, sessionID uuid.UUID) (*SessionStats, error)
	PaymentTotalsByMethod(ctx context.Context, sessionID uuid.UUID) ([]dto.MethodTotal, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Payments.PaymentMethod").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	// Lock first, then load associations — FOR UPDATE cannot span the joins.
	if err := tx.Exec("SELECT id FROM sales WHERE id = ? FOR UPDATE", id).Error; err != nil {
		return nil, err
	}
	err := tx.Preload("Items").Preload("Payments.PaymentMethod").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Save(s).Error
}

// NextSaleNumber uses a PostgreSQL sequence for atomic, gap-tolerant numbering.
func (r *saleRepo) NextSaleNumber(tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.Raw("SELECT nextval('sales_number_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SessionID != "" {
		q = q.Where("session_id = ?", filter.SessionID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else if filter.SessionID == "" {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Product").Preload("Payments.PaymentMethod").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepo) SumPaymentsByTypeTx(tx *gorm.DB, sessionID uuid.UUID) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	err := tx.
		Table("sale_payments").
		Select("payment_methods.type AS type, COALESCE(SUM(sale_payments.amount), 0) AS total").
		Joins("JOIN sales ON sales.id = sale_payments.sale_id").
		Joins("JOIN payment_methods ON payment_methods.id = sale_payments.payment_method_id").
		Where("sales.session_id = ? AND sales.status = ?", sessionID, model.SaleStatusCompleted).
		Group("payment_methods.type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Type] = row.Total
	}
	return sums, nil
}

func (r *saleRepo) SessionStats(ctx context.Context, sessionID uuid.UUID) (*SessionStats, error) {
	var rows []struct {
		Status string
		Count  int64
		Total  decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("sales").
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Where("session_id = ?", sessionID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &SessionStats{SaleTotal: decimal.Zero, VoidedTotal: decimal.Zero}
	for _, row := range rows {
		switch row.Status {
		case model.SaleStatusCompleted:
			stats.SaleCount = row.Count
			stats.SaleTotal = row.Total
		case model.SaleStatusVoided:
			stats.VoidedCount = row.Count
			stats.VoidedTotal = row.Total
		}
	}
	return stats, nil
}

func (r *saleRepo) PaymentTotalsByMethod(ctx context.Context, sessionID uuid.UUID) ([]dto.MethodTotal, error) {
	var rows []dto.MethodTotal
	err := r.db.WithContext(ctx).
		Table("sale_payments").
		Select("payment_methods.name AS method, payment_methods.code AS code, COALESCE(SUM(sale_payments.amount), 0) AS total").
		Joins("JOIN sales ON sales.id = sale_payments.sale_id").
		Joins("JOIN payment_methods ON payment_methods.id = sale_payments.payment_method_id").
		Where("sales.session_id = ? AND sales.status = ?", sessionID, model.SaleStatusCompleted).
		Group("payment_methods.name, payment_methods.code").
		Order("payment_methods.name").
		Scan(&rows).Error
	return rows, err
}
