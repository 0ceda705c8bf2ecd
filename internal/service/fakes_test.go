package service

import (
	"context"
	"errors"
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("not found")

// ── In-memory SessionRepository ──────────────────────────────────────────────

type memSessionRepo struct {
	sessions map[uuid.UUID]*model.RegisterSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]*model.RegisterSession)}
}

func (r *memSessionRepo) DB() *gorm.DB { return nil }

func (r *memSessionRepo) Create(_ context.Context, s *model.RegisterSession) error {
	for _, existing := range r.sessions {
		if existing.RegisterID == s.RegisterID && existing.Status == model.SessionStatusOpen {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *memSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RegisterSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *memSessionRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.RegisterSession, error) {
	return r.FindByID(context.Background(), id)
}

func (r *memSessionRepo) FindOpenByRegister(_ context.Context, registerID uuid.UUID) (*model.RegisterSession, error) {
	for _, s := range r.sessions {
		if s.RegisterID == registerID && s.Status == model.SessionStatusOpen {
			return s, nil
		}
	}
	return nil, errNotFound
}

func (r *memSessionRepo) FindOpenByCashier(_ context.Context, cashierID uuid.UUID) (*model.RegisterSession, error) {
	for _, s := range r.sessions {
		if s.CashierID == cashierID && s.Status == model.SessionStatusOpen {
			return s, nil
		}
	}
	return nil, errNotFound
}

func (r *memSessionRepo) UpdateTx(_ *gorm.DB, s *model.RegisterSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *memSessionRepo) List(_ context.Context, filter dto.SessionFilter) ([]model.RegisterSession, int64, error) {
	var out []model.RegisterSession
	for _, s := range r.sessions {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

var _ repository.SessionRepository = (*memSessionRepo)(nil)

// ── In-memory SaleRepository ─────────────────────────────────────────────────

type memSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	nextNumber int64
	methods    *memMethodRepo // for type lookups in payment aggregation
}

func newMemSaleRepo(methods *memMethodRepo) *memSaleRepo {
	return &memSaleRepo{sales: make(map[uuid.UUID]*model.Sale), methods: methods}
}

func (r *memSaleRepo) DB() *gorm.DB { return nil }

func (r *memSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.sales[s.ID] = s
	return nil
}

func (r *memSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *memSaleRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	return r.FindByID(context.Background(), id)
}

func (r *memSaleRepo) UpdateTx(_ *gorm.DB, s *model.Sale) error {
	r.sales[s.ID] = s
	return nil
}

func (r *memSaleRepo) NextSaleNumber(_ *gorm.DB) (int64, error) {
	r.nextNumber++
	return r.nextNumber, nil
}

func (r *memSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if filter.Status != "" && filter.Status != "all" && s.Status != filter.Status {
			continue
		}
		if filter.SessionID != "" && s.SessionID.String() != filter.SessionID {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *memSaleRepo) SumPaymentsByTypeTx(_ *gorm.DB, sessionID uuid.UUID) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	for _, s := range r.sales {
		if s.SessionID != sessionID || s.Status != model.SaleStatusCompleted {
			continue
		}
		for _, p := range s.Payments {
			m, err := r.methods.FindByID(context.Background(), p.PaymentMethodID)
			if err != nil {
				return nil, err
			}
			sums[m.Type] = sums[m.Type].Add(p.Amount)
		}
	}
	return sums, nil
}

func (r *memSaleRepo) SessionStats(_ context.Context, sessionID uuid.UUID) (*repository.SessionStats, error) {
	stats := &repository.SessionStats{SaleTotal: decimal.Zero, VoidedTotal: decimal.Zero}
	for _, s := range r.sales {
		if s.SessionID != sessionID {
			continue
		}
		switch s.Status {
		case model.SaleStatusCompleted:
			stats.SaleCount++
			stats.SaleTotal = stats.SaleTotal.Add(s.TotalAmount)
		case model.SaleStatusVoided:
			stats.VoidedCount++
			stats.VoidedTotal = stats.VoidedTotal.Add(s.TotalAmount)
		}
	}
	return stats, nil
}

func (r *memSaleRepo) PaymentTotalsByMethod(_ context.Context, sessionID uuid.UUID) ([]dto.MethodTotal, error) {
	byMethod := make(map[uuid.UUID]decimal.Decimal)
	for _, s := range r.sales {
		if s.SessionID != sessionID || s.Status != model.SaleStatusCompleted {
			continue
		}
		for _, p := range s.Payments {
			byMethod[p.PaymentMethodID] = byMethod[p.PaymentMethodID].Add(p.Amount)
		}
	}
	var out []dto.MethodTotal
	for id, total := range byMethod {
		m, err := r.methods.FindByID(context.Background(), id)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.MethodTotal{Method: m.Name, Code: m.Code, Total: total})
	}
	return out, nil
}

var _ repository.SaleRepository = (*memSaleRepo)(nil)

// ── In-memory ProductRepository ──────────────────────────────────────────────

type memProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *memProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *memProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode && p.Active {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *memProductRepo) Search(_ context.Context, _ string, _ int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return errNotFound
	}
	p.StockQuantity = p.StockQuantity.Add(delta)
	return nil
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

// ── In-memory CustomerRepository ─────────────────────────────────────────────

type memCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *memCustomerRepo) add(c *model.Customer) *model.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return c
}

func (r *memCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *memCustomerRepo) Search(_ context.Context, _ string, _ int) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)

// ── In-memory PaymentMethodRepository ────────────────────────────────────────

type memMethodRepo struct {
	methods map[uuid.UUID]*model.PaymentMethod
}

func newMemMethodRepo() *memMethodRepo {
	return &memMethodRepo{methods: make(map[uuid.UUID]*model.PaymentMethod)}
}

func (r *memMethodRepo) add(m *model.PaymentMethod) *model.PaymentMethod {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.methods[m.ID] = m
	return m
}

func (r *memMethodRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	m, ok := r.methods[id]
	if !ok {
		return nil, errNotFound
	}
	return m, nil
}

func (r *memMethodRepo) ListActive(_ context.Context) ([]model.PaymentMethod, error) {
	var out []model.PaymentMethod
	for _, m := range r.methods {
		if m.Active {
			out = append(out, *m)
		}
	}
	return out, nil
}

var _ repository.PaymentMethodRepository = (*memMethodRepo)(nil)

// ── In-memory RegisterRepository ─────────────────────────────────────────────

type memRegisterRepo struct {
	registers map[uuid.UUID]*model.Register
}

func newMemRegisterRepo() *memRegisterRepo {
	return &memRegisterRepo{registers: make(map[uuid.UUID]*model.Register)}
}

func (r *memRegisterRepo) add(reg *model.Register) *model.Register {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	r.registers[reg.ID] = reg
	return reg
}

func (r *memRegisterRepo) Create(_ context.Context, reg *model.Register) error {
	r.add(reg)
	return nil
}

func (r *memRegisterRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Register, error) {
	reg, ok := r.registers[id]
	if !ok {
		return nil, errNotFound
	}
	return reg, nil
}

func (r *memRegisterRepo) ListByBranch(_ context.Context, branchID uuid.UUID) ([]model.Register, error) {
	var out []model.Register
	for _, reg := range r.registers {
		if reg.BranchID == branchID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

var _ repository.RegisterRepository = (*memRegisterRepo)(nil)
