package repository

import (
	"context"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterRepository interface {
	Create(ctx context.Context, reg *model.Register) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Register, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.Register, error)
}

type registerRepo struct{ db *gorm.DB }

func NewRegisterRepository(db *gorm.DB) RegisterRepository { return &registerRepo{db: db} }

func (r *registerRepo) Create(ctx context.Context, reg *model.Register) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Register, error) {
	var reg model.Register
	err := r.db.WithContext(ctx).First(&reg, "id = ?", id).Error
	return &reg, err
}

func (r *registerRepo) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.Register, error) {
	var registers []model.Register
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = true", branchID).
		Order("register_number ASC").
		Find(&registers).Error
	return registers, err
}
