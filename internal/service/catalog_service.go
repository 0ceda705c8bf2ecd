package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const priceCheckTTL = 60 * time.Second

// CatalogService serves the read-side lookups the POS terminal hammers:
// product search, barcode price check, customer search, payment methods,
// registers. The price check is cached in Redis since kiosk displays poll it.
type CatalogService interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	PriceCheck(ctx context.Context, barcode string) (*dto.PriceCheckResponse, error)
	SearchCustomers(ctx context.Context, query string, limit int) ([]dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	ListPaymentMethods(ctx context.Context) ([]dto.PaymentMethodResponse, error)
	CreateRegister(ctx context.Context, req dto.CreateRegisterRequest) (*dto.RegisterResponse, error)
	ListRegisters(ctx context.Context, branchID uuid.UUID) ([]dto.RegisterResponse, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	methodRepo   repository.PaymentMethodRepository
	registerRepo repository.RegisterRepository
	sessionRepo  repository.SessionRepository
	rdb          *redis.Client
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	methodRepo repository.PaymentMethodRepository,
	registerRepo repository.RegisterRepository,
	sessionRepo repository.SessionRepository,
	rdb *redis.Client,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		methodRepo:   methodRepo,
		registerRepo: registerRepo,
		sessionRepo:  sessionRepo,
		rdb:          rdb,
	}
}

func (s *catalogService) SearchProducts(ctx context.Context, query string, limit int) ([]dto.ProductResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	products, err := s.productRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(&products[i])
	}
	return resp, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	r := productToResponse(p)
	return &r, nil
}

func (s *catalogService) PriceCheck(ctx context.Context, barcode string) (*dto.PriceCheckResponse, error) {
	cacheKey := "price:" + barcode

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.PriceCheckResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, ErrProductNotFound
	}

	resp := &dto.PriceCheckResponse{
		Name:          p.Name,
		SellingPrice:  p.SellingPrice,
		TaxRate:       p.TaxRate,
		IsTaxIncluded: p.IsTaxIncluded,
		StockQuantity: p.StockQuantity,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, priceCheckTTL).Err(); err != nil {
				log.Warn().Err(err).Str("barcode", barcode).Msg("price check cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *catalogService) SearchCustomers(ctx context.Context, query string, limit int) ([]dto.CustomerResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	customers, err := s.customerRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CustomerResponse, len(customers))
	for i, c := range customers {
		resp[i] = customerToResponse(&c)
	}
	return resp, nil
}

func (s *catalogService) GetCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *catalogService) ListPaymentMethods(ctx context.Context) ([]dto.PaymentMethodResponse, error) {
	methods, err := s.methodRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PaymentMethodResponse, len(methods))
	for i, m := range methods {
		resp[i] = dto.PaymentMethodResponse{
			ID:                m.ID.String(),
			Name:              m.Name,
			Code:              m.Code,
			Type:              m.Type,
			RequiresReference: m.RequiresReference,
			SortOrder:         m.SortOrder,
		}
	}
	return resp, nil
}

func (s *catalogService) CreateRegister(ctx context.Context, req dto.CreateRegisterRequest) (*dto.RegisterResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, err
	}
	reg := &model.Register{
		BranchID:       branchID,
		RegisterNumber: req.RegisterNumber,
		Name:           req.Name,
		Active:         true,
	}
	if err := s.registerRepo.Create(ctx, reg); err != nil {
		return nil, err
	}
	r := registerToResponse(reg, nil)
	return &r, nil
}

func (s *catalogService) ListRegisters(ctx context.Context, branchID uuid.UUID) ([]dto.RegisterResponse, error) {
	registers, err := s.registerRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RegisterResponse, len(registers))
	for i := range registers {
		var current *string
		if session, err := s.sessionRepo.FindOpenByRegister(ctx, registers[i].ID); err == nil {
			id := session.ID.String()
			current = &id
		}
		resp[i] = registerToResponse(&registers[i], current)
	}
	return resp, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID.String(),
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Name:          p.Name,
		SellingPrice:  p.SellingPrice,
		TaxRate:       p.TaxRate,
		IsTaxIncluded: p.IsTaxIncluded,
		IsWeighable:   p.IsWeighable,
		UnitCode:      p.UnitCode,
		StockQuantity: p.StockQuantity,
	}
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:                       c.ID.String(),
		CustomerCode:             c.CustomerCode,
		FirstName:                c.FirstName,
		LastName:                 c.LastName,
		CompanyName:              c.CompanyName,
		IsWholesale:              c.IsWholesale,
		WholesaleDiscountPercent: c.WholesaleDiscountPercent,
	}
}

func registerToResponse(r *model.Register, currentSession *string) dto.RegisterResponse {
	return dto.RegisterResponse{
		ID:             r.ID.String(),
		BranchID:       r.BranchID.String(),
		RegisterNumber: r.RegisterNumber,
		Name:           r.Name,
		Active:         r.Active,
		CurrentSession: currentSession,
	}
}
