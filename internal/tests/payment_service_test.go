package tests

import (
	"context"
	"errors"
	"testing"

	"dinesync/internal/domain"
	"dinesync/internal/mocks"
	"dinesync/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_ConfirmCachesPayment(t *testing.T) {
	backend := mocks.NewBackend(t)
	cache := mocks.NewPaymentCache(t)
	svc := service.NewPaymentService(backend, cache)

	ctx := context.Background()
	payment := domain.Payment{ID: "pay_1", OrderID: "order_1", Method: domain.PaymentOnline,
		Amount: 3000, Status: domain.PaymentDone, TransactionID: "txn_9"}

	backend.On("ConfirmPayment", ctx, domain.ConfirmPaymentRequest{PaymentID: "pay_1", TransactionID: "txn_9"}).
		Return(domain.PaymentStatusResponse{Status: domain.PaymentDone, Payment: payment}, nil).Once()
	cache.On("CachePayment", payment).Return(nil).Once()

	resp, err := svc.Confirm(ctx, domain.ConfirmPaymentRequest{PaymentID: "pay_1", TransactionID: "txn_9"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentDone, resp.Status)
}

func TestPaymentService_StatusFallsBackToCache(t *testing.T) {
	backend := mocks.NewBackend(t)
	cache := mocks.NewPaymentCache(t)
	svc := service.NewPaymentService(backend, cache)

	ctx := context.Background()
	cached := &domain.Payment{ID: "pay_1", OrderID: "order_1", Status: domain.PaymentDone}

	backend.On("PaymentStatus", ctx, "order_1").
		Return(domain.PaymentStatusResponse{}, errors.New("connection refused")).Once()
	cache.On("GetCachedPayment", "order_1").Return(cached, nil).Once()

	resp, err := svc.Status(ctx, "order_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentDone, resp.Status)
	assert.Equal(t, "pay_1", resp.Payment.ID)
}

func TestPaymentService_StatusErrorsWhenCacheEmpty(t *testing.T) {
	backend := mocks.NewBackend(t)
	cache := mocks.NewPaymentCache(t)
	svc := service.NewPaymentService(backend, cache)

	ctx := context.Background()
	backendErr := errors.New("connection refused")

	backend.On("PaymentStatus", ctx, "order_1").Return(domain.PaymentStatusResponse{}, backendErr).Once()
	cache.On("GetCachedPayment", "order_1").Return(nil, errors.New("not found")).Once()

	_, err := svc.Status(ctx, "order_1")
	assert.ErrorIs(t, err, backendErr)
}
