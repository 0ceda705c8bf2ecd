package repository

import (
	"context"
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	// Create inserts a new OPEN session. The partial unique index on
	// (register_id) WHERE status='OPEN' makes concurrent opens race-safe:
	// the loser surfaces gorm.ErrDuplicatedKey.
	Create(ctx context.Context, s *model.RegisterSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RegisterSession, error)
	// FindByIDForUpdateTx locks the session row for the duration of tx.
	// Close/ForceClose/complete-sale all serialize on this lock.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.RegisterSession, error)
	FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*model.RegisterSession, error)
	FindOpenByCashier(ctx context.Context, cashierID uuid.UUID) (*model.RegisterSession, error)
	UpdateTx(tx *gorm.DB, s *model.RegisterSession) error
	List(ctx context.Context, filter dto.SessionFilter) ([]model.RegisterSession, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) DB() *gorm.DB { return r.db }

func (r *sessionRepo) Create(ctx context.Context, s *model.RegisterSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *sessionRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *sessionRepo) FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).
		Where("register_id = ? AND status = ?", registerID, model.SessionStatusOpen).
		First(&s).Error
	return &s, err
}

func (r *sessionRepo) FindOpenByCashier(ctx context.Context, cashierID uuid.UUID) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).
		Where("cashier_id = ? AND status = ?", cashierID, model.SessionStatusOpen).
		First(&s).Error
	return &s, err
}

func (r *sessionRepo) UpdateTx(tx *gorm.DB, s *model.RegisterSession) error {
	return tx.Save(s).Error
}

func (r *sessionRepo) List(ctx context.Context, filter dto.SessionFilter) ([]model.RegisterSession, int64, error) {
	var sessions []model.RegisterSession
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.RegisterSession{})

	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.RegisterID != "" {
		q = q.Where("register_id = ?", filter.RegisterID)
	}
	if filter.CashierID != "" {
		q = q.Where("cashier_id = ?", filter.CashierID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			q = q.Where("opened_at >= ?", t)
		}
	}
	if filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			q = q.Where("opened_at < ?", t.AddDate(0, 0, 1))
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("opened_at DESC").Offset(offset).Limit(filter.Limit).Find(&sessions).Error
	return sessions, total, err
}
