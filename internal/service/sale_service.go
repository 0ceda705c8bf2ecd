package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/pricing"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/repository"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/tender"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	CompleteSale(ctx context.Context, cashierID uuid.UUID, req dto.CompleteSaleRequest) (*dto.SaleResponse, error)
	VoidSale(ctx context.Context, saleID uuid.UUID, reason string, actorID uuid.UUID) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, saleID uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo         repository.SaleRepository
	sessionRepo  repository.SessionRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	methodRepo   repository.PaymentMethodRepository
	dispatcher   *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	sessionRepo repository.SessionRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	methodRepo repository.PaymentMethodRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:         repo,
		sessionRepo:  sessionRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		methodRepo:   methodRepo,
		dispatcher:   dispatcher,
	}
}

// ── CompleteSale ──────────────────────────────────────────────────────────────
// One ACID transaction:
//   1. Pre-flight (outside TX): resolve products/customer/methods, price the
//      cart, evaluate tenders — pure computation, rejects bad input early.
//   2. BEGIN TX: lock the session row, re-check status == OPEN, nextval sale
//      number, insert sale + items + payments, decrement stock.
//   3. COMMIT — or roll back as a whole; no half-committed sale is ever visible.
//
// The session-open check runs INSIDE the transaction, under the same row lock
// the session close takes: a sale can never slip in after a close has read
// its "final" aggregates.

func (s *saleService) CompleteSale(ctx context.Context, cashierID uuid.UUID, req dto.CompleteSaleRequest) (*dto.SaleResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session_id: %w", err)
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Build the cart from product snapshots.
	cart := pricing.NewCart()
	type lineRef struct {
		productID uuid.UUID
		name      string
	}
	var refs []lineRef
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if !p.Active {
			return nil, fmt.Errorf("%w: %s", ErrProductInactive, p.Name)
		}
		snap := pricing.ProductSnapshot{
			ProductID:     p.ID,
			Name:          p.Name,
			UnitPrice:     p.SellingPrice,
			TaxRate:       p.TaxRate,
			IsTaxIncluded: p.IsTaxIncluded,
		}
		if _, err := cart.AddItem(snap, item.Quantity, item.DiscountPercent); err != nil {
			return nil, err
		}
		refs = append(refs, lineRef{productID: p.ID, name: p.Name})
	}

	var customer *model.Customer
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer_id: %w", err)
		}
		customer, err = s.customerRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, ErrCustomerNotFound
		}
		cart.SetCustomer(&pricing.CustomerSnapshot{
			CustomerID:       customer.ID,
			IsWholesale:      customer.IsWholesale,
			WholesalePercent: customer.WholesaleDiscountPercent,
		})
	}

	if req.DiscountType != nil {
		value := decimal.Zero
		if req.DiscountValue != nil {
			value = *req.DiscountValue
		}
		if err := cart.SetDiscount(&pricing.CartDiscount{Type: *req.DiscountType, Value: value}); err != nil {
			return nil, err
		}
	}

	totals, lines, err := cart.Totals()
	if err != nil {
		return nil, err
	}

	// Resolve and validate tenders.
	var payments []tender.Payment
	for _, p := range req.Payments {
		mid, err := uuid.Parse(p.PaymentMethodID)
		if err != nil {
			return nil, fmt.Errorf("invalid payment_method_id: %w", err)
		}
		m, err := s.methodRepo.FindByID(ctx, mid)
		if err != nil {
			return nil, ErrPaymentMethodNotFound
		}
		payments, err = tender.Add(payments, tender.Method{
			ID:                m.ID,
			Type:              m.Type,
			RequiresReference: m.RequiresReference,
		}, p.Amount, p.ReferenceNumber)
		if err != nil {
			return nil, err
		}
	}

	settlement := tender.Evaluate(totals.Total, payments)
	if settlement.Remaining.IsPositive() {
		return nil, ErrInsufficientPayment
	}

	var sale model.Sale
	cartLines := cart.Lines()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		session, err := s.sessionRepo.FindByIDForUpdateTx(tx, sessionID)
		if err != nil {
			return ErrSessionNotFound
		}
		if session.Status != model.SessionStatusOpen {
			return ErrSessionNotOpen
		}

		num, err := s.repo.NextSaleNumber(tx)
		if err != nil {
			return err
		}

		sale = model.Sale{
			SaleNumber:     fmt.Sprintf("S-%06d", num),
			BranchID:       session.BranchID,
			RegisterID:     session.RegisterID,
			SessionID:      session.ID,
			CashierID:      cashierID,
			Subtotal:       totals.Subtotal,
			DiscountType:   req.DiscountType,
			DiscountValue:  req.DiscountValue,
			DiscountAmount: totals.DiscountAmount,
			TaxAmount:      totals.TaxAmount,
			TotalAmount:    totals.Total,
			PaidAmount:     settlement.TotalPaid,
			ChangeAmount:   settlement.Change,
			Status:         model.SaleStatusCompleted,
			Notes:          req.Notes,
		}
		if customer != nil {
			sale.CustomerID = &customer.ID
		}

		for i, lb := range lines {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:       cartLines[i].Product.ProductID,
				Quantity:        cartLines[i].Quantity,
				UnitPrice:       cartLines[i].Product.UnitPrice,
				DiscountPercent: cartLines[i].DiscountPercent,
				DiscountAmount:  lb.DiscountAmount,
				TaxRate:         cartLines[i].Product.TaxRate,
				IsTaxIncluded:   cartLines[i].Product.IsTaxIncluded,
				TaxAmount:       lb.TaxAmount,
				Subtotal:        lb.Subtotal,
				Total:           lb.Total,
			})
		}

		for _, p := range payments {
			sale.Payments = append(sale.Payments, model.SalePayment{
				PaymentMethodID: p.Method.ID,
				Amount:          p.Amount,
				ReferenceNumber: p.ReferenceNumber,
			})
		}

		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		for _, line := range cartLines {
			if err := s.productRepo.AdjustStockTx(tx, line.Product.ProductID, line.Quantity.Neg()); err != nil {
				return fmt.Errorf("adjust stock for %s: %w", line.Product.ProductID, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt email is best-effort: the sale is already committed.
	if s.dispatcher != nil && customer != nil && customer.Email != nil && *customer.Email != "" {
		if err := s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{
			SaleID:  sale.ID.String(),
			ToEmail: *customer.Email,
		}); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to enqueue receipt job")
		}
	}

	resp := saleToResponse(&sale)
	for i, ref := range refs {
		resp.Items[i].Product = ref.name
	}
	return resp, nil
}

// ── VoidSale ──────────────────────────────────────────────────────────────────
// Voiding is a status transition plus audit fields, never a content edit:
// the original sale amounts stay on record and session aggregation simply
// skips VOIDED rows. Stock consumed by the sale is restored.

func (s *saleService) VoidSale(ctx context.Context, saleID uuid.UUID, reason string, actorID uuid.UUID) (*dto.SaleResponse, error) {
	var sale *model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		sale, err = s.repo.FindByIDForUpdateTx(tx, saleID)
		if err != nil {
			return ErrSaleNotFound
		}
		switch sale.Status {
		case model.SaleStatusVoided:
			return ErrAlreadyVoided
		case model.SaleStatusCompleted:
			// ok
		default:
			return ErrSaleNotVoidable
		}

		now := time.Now()
		sale.Status = model.SaleStatusVoided
		sale.VoidReason = &reason
		sale.VoidedBy = &actorID
		sale.VoidedAt = &now

		if err := s.repo.UpdateTx(tx, sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			if err := s.productRepo.AdjustStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return saleToResponse(sale), nil
}

func (s *saleService) GetSale(ctx context.Context, saleID uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = model.SaleStatusCompleted
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ProductID:       item.ProductID.String(),
			Product:         name,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  item.DiscountAmount,
			TaxAmount:       item.TaxAmount,
			Subtotal:        item.Subtotal,
			Total:           item.Total,
		})
	}
	payments := make([]dto.SalePaymentResponse, 0, len(s.Payments))
	for _, p := range s.Payments {
		method := ""
		if p.PaymentMethod != nil {
			method = p.PaymentMethod.Name
		}
		payments = append(payments, dto.SalePaymentResponse{
			PaymentMethodID: p.PaymentMethodID.String(),
			Method:          method,
			Amount:          p.Amount,
			ReferenceNumber: p.ReferenceNumber,
		})
	}
	var customerID *string
	if s.CustomerID != nil {
		id := s.CustomerID.String()
		customerID = &id
	}
	return &dto.SaleResponse{
		ID:             s.ID.String(),
		SaleNumber:     s.SaleNumber,
		BranchID:       s.BranchID.String(),
		RegisterID:     s.RegisterID.String(),
		SessionID:      s.SessionID.String(),
		CashierID:      s.CashierID.String(),
		CustomerID:     customerID,
		Subtotal:       s.Subtotal,
		DiscountAmount: s.DiscountAmount,
		TaxAmount:      s.TaxAmount,
		TotalAmount:    s.TotalAmount,
		PaidAmount:     s.PaidAmount,
		ChangeAmount:   s.ChangeAmount,
		Items:          items,
		Payments:       payments,
		Status:         s.Status,
		VoidReason:     s.VoidReason,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
	}
}
