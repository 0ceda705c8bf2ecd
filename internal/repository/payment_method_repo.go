package repository

import (
	"context"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error)
	ListActive(ctx context.Context) ([]model.PaymentMethod, error)
}

type paymentMethodRepo struct{ db *gorm.DB }

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepo{db: db}
}

func (r *paymentMethodRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	var m model.PaymentMethod
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *paymentMethodRepo) ListActive(ctx context.Context) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("active = true").
		Order("sort_order ASC, name ASC").
		Find(&methods).Error
	return methods, err
}
