package repository

import (
	"context"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Search(ctx context.Context, query string, limit int) ([]model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *customerRepo) Search(ctx context.Context, query string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.WithContext(ctx).Where("active = true")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR company_name ILIKE ? OR customer_code ILIKE ?",
			like, like, like, like)
	}
	err := q.Order("customer_code ASC").Limit(limit).Find(&customers).Error
	return customers, err
}
