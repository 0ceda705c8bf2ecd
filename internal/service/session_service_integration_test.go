//go:build integration

package service

// Integration tests against real Postgres via testcontainers.
// Run with: go test -tags integration ./internal/service/... -v
//
// The two invariants exercised here live in the database, not in Go code,
// so the in-memory fakes cannot prove them:
//   - the partial unique index behind ErrRegisterAlreadyOpen, raced by
//     concurrent session opens
//   - the session row lock that serializes sale completion against the
//     closing aggregation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/infra"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type pgEnv struct {
	db *gorm.DB

	sessionSvc SessionService
	saleSvc    SaleService

	branch   *model.Branch
	register *model.Register
	cashier  *model.User
	cash     *model.PaymentMethod
	product  *model.Product
}

func setupPostgres(t *testing.T) *pgEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("pos_test"),
		tcPostgres.WithUsername("pos"),
		tcPostgres.WithPassword("pos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)

	env := &pgEnv{db: db}

	env.branch = &model.Branch{Name: "Main", Code: "MAIN", Active: true}
	require.NoError(t, db.Create(env.branch).Error)

	env.cashier = &model.User{
		UserCode: "c01",
		Name:     "Integration Cashier",
		PINHash:  "x",
		Role:     "cashier",
		Active:   true,
	}
	require.NoError(t, db.Create(env.cashier).Error)

	env.register = &model.Register{
		BranchID:       env.branch.ID,
		RegisterNumber: "1",
		Name:           "Register 1",
		Active:         true,
	}
	require.NoError(t, db.Create(env.register).Error)

	env.cash = &model.PaymentMethod{Name: "Cash", Code: "CASH", Type: model.MethodTypeCash, Active: true}
	require.NoError(t, db.Create(env.cash).Error)

	env.product = &model.Product{
		Name:          "Widget",
		SKU:           "W-1",
		SellingPrice:  decimal.RequireFromString("100.00"),
		TaxRate:       decimal.Zero,
		StockQuantity: decimal.RequireFromString("10000"),
		Active:        true,
	}
	require.NoError(t, db.Create(env.product).Error)

	sessionRepo := repository.NewSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)

	env.sessionSvc = NewSessionService(sessionRepo, saleRepo, registerRepo)
	env.saleSvc = NewSaleService(saleRepo, sessionRepo, productRepo, customerRepo, methodRepo, nil)
	return env
}

// Concurrent opens on one register race on the partial unique index; the
// database admits exactly one winner.
func TestIntegration_ConcurrentOpenSingleWinner(t *testing.T) {
	env := setupPostgres(t)

	const racers = 8
	results := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.sessionSvc.Open(context.Background(), env.cashier.ID, dto.OpenSessionRequest{
				RegisterID:    env.register.ID.String(),
				OpeningAmount: decimal.RequireFromString("100.00"),
				ShiftType:     model.ShiftMorning,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, rejections int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrRegisterAlreadyOpen):
			rejections++
		default:
			t.Fatalf("unexpected open error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, rejections)
}

// Sales completing concurrently with the close must either land inside the
// session's expected totals or fail with ErrSessionNotOpen; the row lock on
// the session makes the two outcomes exhaustive.
func TestIntegration_CloseSerializesWithSaleCompletion(t *testing.T) {
	env := setupPostgres(t)

	opened, err := env.sessionSvc.Open(context.Background(), env.cashier.ID, dto.OpenSessionRequest{
		RegisterID:    env.register.ID.String(),
		OpeningAmount: decimal.RequireFromString("100.00"),
		ShiftType:     model.ShiftFullDay,
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(opened.ID)

	saleReq := dto.CompleteSaleRequest{
		SessionID: opened.ID,
		Items: []dto.SaleItemRequest{
			{ProductID: env.product.ID.String(), Quantity: decimal.NewFromInt(1)},
		},
		Payments: []dto.SalePaymentRequest{
			{PaymentMethodID: env.cash.ID.String(), Amount: decimal.RequireFromString("100.00")},
		},
	}

	const sellers = 12
	saleErrs := make(chan error, sellers)
	var wg sync.WaitGroup
	for i := 0; i < sellers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.saleSvc.CompleteSale(context.Background(), env.cashier.ID, saleReq)
			saleErrs <- err
		}()
	}

	// Close mid-flight so some sales land before the lock and some after.
	time.Sleep(20 * time.Millisecond)
	closed, err := env.sessionSvc.Close(context.Background(), sessionID, env.cashier.ID, dto.CloseSessionRequest{
		Declared: dto.DeclaredAmounts{Cash: decimal.Zero},
	})
	require.NoError(t, err)
	wg.Wait()
	close(saleErrs)

	var completed int
	for err := range saleErrs {
		switch {
		case err == nil:
			completed++
		case errors.Is(err, ErrSessionNotOpen):
			// lost the race against the close
		default:
			t.Fatalf("unexpected sale error: %v", err)
		}
	}

	// Every committed sale is inside the closing aggregation, none outside it.
	require.NotNil(t, closed.Expected)
	expected := decimal.NewFromInt(int64(completed) * 100)
	assert.True(t, closed.Expected.Cash.Equal(expected),
		"expected cash %s for %d completed sales, got %s", expected, completed, closed.Expected.Cash)

	// Nothing slipped in after the close read its aggregates.
	var lateSales int64
	require.NoError(t, env.db.Model(&model.Sale{}).
		Where("session_id = ? AND status = ?", sessionID, model.SaleStatusCompleted).
		Count(&lateSales).Error)
	assert.Equal(t, int64(completed), lateSales)
}
