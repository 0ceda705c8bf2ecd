package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SessionService interface {
	Open(ctx context.Context, cashierID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	// Close performs the blind reconciliation: the cashier's declared amounts
	// arrive first, expected amounts are computed afterwards inside the
	// closing transaction.
	Close(ctx context.Context, sessionID, actorID uuid.UUID, req dto.CloseSessionRequest) (*dto.SessionResponse, error)
	ForceClose(ctx context.Context, sessionID, actorID uuid.UUID, req dto.ForceCloseRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error)
	List(ctx context.Context, filter dto.SessionFilter) (*dto.SessionListResponse, error)
	Summary(ctx context.Context, sessionID uuid.UUID) (*dto.SessionSummaryResponse, error)
	ActiveForRegister(ctx context.Context, registerID uuid.UUID) (*dto.SessionResponse, error)
	MySession(ctx context.Context, cashierID uuid.UUID) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo         repository.SessionRepository
	saleRepo     repository.SaleRepository
	registerRepo repository.RegisterRepository
}

func NewSessionService(
	repo repository.SessionRepository,
	saleRepo repository.SaleRepository,
	registerRepo repository.RegisterRepository,
) SessionService {
	return &sessionService{repo: repo, saleRepo: saleRepo, registerRepo: registerRepo}
}

// BucketForType maps a payment-method type onto its reconciliation bucket.
// CASH and CARD have dedicated drawers; DIGITAL wallets settle through QR;
// everything else (CREDIT, OTHER) reconciles as a transfer.
func BucketForType(methodType string) string {
	switch methodType {
	case model.MethodTypeCash:
		return "cash"
	case model.MethodTypeCard:
		return "card"
	case model.MethodTypeDigital:
		return "qr"
	default:
		return "transfer"
	}
}

func (s *sessionService) Open(ctx context.Context, cashierID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	registerID, err := uuid.Parse(req.RegisterID)
	if err != nil {
		return nil, fmt.Errorf("invalid register_id: %w", err)
	}
	if req.OpeningAmount.IsNegative() {
		return nil, fmt.Errorf("opening_amount must not be negative")
	}

	reg, err := s.registerRepo.FindByID(ctx, registerID)
	if err != nil {
		return nil, ErrRegisterNotFound
	}

	// Friendly pre-check; the partial unique index is the real guarantee.
	if _, err := s.repo.FindOpenByRegister(ctx, registerID); err == nil {
		return nil, ErrRegisterAlreadyOpen
	}

	session := &model.RegisterSession{
		RegisterID:    registerID,
		BranchID:      reg.BranchID,
		CashierID:     cashierID,
		ShiftType:     req.ShiftType,
		OpeningAmount: req.OpeningAmount.Round(2),
		Status:        model.SessionStatusOpen,
		OpenedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRegisterAlreadyOpen
		}
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) Close(ctx context.Context, sessionID, actorID uuid.UUID, req dto.CloseSessionRequest) (*dto.SessionResponse, error) {
	for _, amount := range []decimal.Decimal{req.Declared.Cash, req.Declared.Card, req.Declared.QR, req.Declared.Transfer} {
		if amount.IsNegative() {
			return nil, fmt.Errorf("declared amounts must not be negative")
		}
	}

	var session *model.RegisterSession
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		session, err = s.repo.FindByIDForUpdateTx(tx, sessionID)
		if err != nil {
			return ErrSessionNotFound
		}
		if session.Status != model.SessionStatusOpen {
			return ErrSessionNotOpen
		}

		// Expected totals computed under the session row lock: no sale can
		// complete against this session between the aggregate and the close.
		sums, err := s.saleRepo.SumPaymentsByTypeTx(tx, session.ID)
		if err != nil {
			return err
		}
		expected := bucketize(sums)

		declared := dto.AmountsByBucket{
			Cash:     req.Declared.Cash.Round(2),
			Card:     req.Declared.Card.Round(2),
			QR:       req.Declared.QR.Round(2),
			Transfer: req.Declared.Transfer.Round(2),
		}

		now := time.Now()
		session.Status = model.SessionStatusClosed
		session.ClosedAt = &now
		session.ClosedBy = &actorID
		session.Notes = req.Notes

		session.DeclaredCash = &declared.Cash
		session.DeclaredCard = &declared.Card
		session.DeclaredQR = &declared.QR
		session.DeclaredTransfer = &declared.Transfer

		session.ExpectedCash = &expected.Cash
		session.ExpectedCard = &expected.Card
		session.ExpectedQR = &expected.QR
		session.ExpectedTransfer = &expected.Transfer

		dCash := declared.Cash.Sub(expected.Cash)
		dCard := declared.Card.Sub(expected.Card)
		dQR := declared.QR.Sub(expected.QR)
		dTransfer := declared.Transfer.Sub(expected.Transfer)
		session.DiscrepancyCash = &dCash
		session.DiscrepancyCard = &dCard
		session.DiscrepancyQR = &dQR
		session.DiscrepancyTransfer = &dTransfer

		closing := declared.Cash.Add(declared.Card).Add(declared.QR).Add(declared.Transfer)
		session.ClosingAmount = &closing

		return s.repo.UpdateTx(tx, session)
	})
	if txErr != nil {
		return nil, txErr
	}
	return sessionToResponse(session), nil
}

// ForceClose ends a session without a cashier declaration. Declared is set
// equal to expected, so every discrepancy reads zero and the FORCE_CLOSED
// status is the only signal that no count actually happened.
func (s *sessionService) ForceClose(ctx context.Context, sessionID, actorID uuid.UUID, req dto.ForceCloseRequest) (*dto.SessionResponse, error) {
	var session *model.RegisterSession
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		session, err = s.repo.FindByIDForUpdateTx(tx, sessionID)
		if err != nil {
			return ErrSessionNotFound
		}
		if session.Status != model.SessionStatusOpen {
			return ErrSessionNotOpen
		}

		sums, err := s.saleRepo.SumPaymentsByTypeTx(tx, session.ID)
		if err != nil {
			return err
		}
		expected := bucketize(sums)

		now := time.Now()
		session.Status = model.SessionStatusForceClosed
		session.ClosedAt = &now
		session.ClosedBy = &actorID

		note := "Force closed: " + req.Reason
		session.Notes = &note

		session.DeclaredCash = &expected.Cash
		session.DeclaredCard = &expected.Card
		session.DeclaredQR = &expected.QR
		session.DeclaredTransfer = &expected.Transfer

		session.ExpectedCash = &expected.Cash
		session.ExpectedCard = &expected.Card
		session.ExpectedQR = &expected.QR
		session.ExpectedTransfer = &expected.Transfer

		zero := decimal.Zero
		zCash, zCard, zQR, zTransfer := zero, zero, zero, zero
		session.DiscrepancyCash = &zCash
		session.DiscrepancyCard = &zCard
		session.DiscrepancyQR = &zQR
		session.DiscrepancyTransfer = &zTransfer

		closing := expected.Cash.Add(expected.Card).Add(expected.QR).Add(expected.Transfer)
		session.ClosingAmount = &closing

		return s.repo.UpdateTx(tx, session)
	})
	if txErr != nil {
		return nil, txErr
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) Get(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) List(ctx context.Context, filter dto.SessionFilter) (*dto.SessionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	sessions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, *sessionToResponse(&sessions[i]))
	}
	return &dto.SessionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *sessionService) Summary(ctx context.Context, sessionID uuid.UUID) (*dto.SessionSummaryResponse, error) {
	if _, err := s.repo.FindByID(ctx, sessionID); err != nil {
		return nil, ErrSessionNotFound
	}
	stats, err := s.saleRepo.SessionStats(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.saleRepo.PaymentTotalsByMethod(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if stats.SaleCount > 0 {
		avg = stats.SaleTotal.Div(decimal.NewFromInt(stats.SaleCount)).Round(2)
	}

	return &dto.SessionSummaryResponse{
		SessionID:        sessionID.String(),
		SaleCount:        stats.SaleCount,
		SaleTotal:        stats.SaleTotal,
		AverageSale:      avg,
		VoidedCount:      stats.VoidedCount,
		VoidedTotal:      stats.VoidedTotal,
		PaymentsByMethod: byMethod,
	}, nil
}

func (s *sessionService) ActiveForRegister(ctx context.Context, registerID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.repo.FindOpenByRegister(ctx, registerID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) MySession(ctx context.Context, cashierID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.repo.FindOpenByCashier(ctx, cashierID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return sessionToResponse(session), nil
}

// bucketize folds per-method-type sums into the four reconciliation buckets.
func bucketize(sums map[string]decimal.Decimal) dto.AmountsByBucket {
	b := dto.AmountsByBucket{
		Cash:     decimal.Zero,
		Card:     decimal.Zero,
		QR:       decimal.Zero,
		Transfer: decimal.Zero,
	}
	for methodType, total := range sums {
		switch BucketForType(methodType) {
		case "cash":
			b.Cash = b.Cash.Add(total)
		case "card":
			b.Card = b.Card.Add(total)
		case "qr":
			b.QR = b.QR.Add(total)
		default:
			b.Transfer = b.Transfer.Add(total)
		}
	}
	b.Cash = b.Cash.Round(2)
	b.Card = b.Card.Round(2)
	b.QR = b.QR.Round(2)
	b.Transfer = b.Transfer.Round(2)
	b.Total = b.Cash.Add(b.Card).Add(b.QR).Add(b.Transfer)
	return b
}

func sessionToResponse(s *model.RegisterSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:            s.ID.String(),
		RegisterID:    s.RegisterID.String(),
		BranchID:      s.BranchID.String(),
		CashierID:     s.CashierID.String(),
		ShiftType:     s.ShiftType,
		OpeningAmount: s.OpeningAmount,
		Status:        s.Status,
		OpenedAt:      s.OpenedAt.Format(time.RFC3339),
		Notes:         s.Notes,
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	if s.ClosedBy != nil {
		id := s.ClosedBy.String()
		resp.ClosedBy = &id
	}
	if s.DeclaredCash != nil {
		resp.Declared = bucketFromPtrs(s.DeclaredCash, s.DeclaredCard, s.DeclaredQR, s.DeclaredTransfer)
		resp.Expected = bucketFromPtrs(s.ExpectedCash, s.ExpectedCard, s.ExpectedQR, s.ExpectedTransfer)
		resp.Discrepancy = bucketFromPtrs(s.DiscrepancyCash, s.DiscrepancyCard, s.DiscrepancyQR, s.DiscrepancyTransfer)
	}
	return resp
}

func bucketFromPtrs(cash, card, qr, transfer *decimal.Decimal) *dto.AmountsByBucket {
	b := &dto.AmountsByBucket{Cash: decimal.Zero, Card: decimal.Zero, QR: decimal.Zero, Transfer: decimal.Zero}
	if cash != nil {
		b.Cash = *cash
	}
	if card != nil {
		b.Card = *card
	}
	if qr != nil {
		b.QR = *qr
	}
	if transfer != nil {
		b.Transfer = *transfer
	}
	b.Total = b.Cash.Add(b.Card).Add(b.QR).Add(b.Transfer)
	return b
}
