package service

import (
	"context"
	"log"

	"dinesync/internal/domain"
)

// PaymentService passes payment and invoice calls through to the backend,
// writing confirmed payment state through to the local cache. Payments are
// never queued: money movement needs the backend.
type PaymentService struct {
	backend Backend
	cache   PaymentCache
}

func NewPaymentService(backend Backend, cache PaymentCache) *PaymentService {
	return &PaymentService{backend: backend, cache: cache}
}

func (s *PaymentService) Init(ctx context.Context, req domain.InitPaymentRequest) (domain.InitPaymentResponse, error) {
	return s.backend.InitPayment(ctx, req)
}

func (s *PaymentService) InitUSSD(ctx context.Context, req domain.USSDPaymentRequest) (domain.USSDPaymentResponse, error) {
	return s.backend.InitUSSDPayment(ctx, req)
}

func (s *PaymentService) Confirm(ctx context.Context, req domain.ConfirmPaymentRequest) (domain.PaymentStatusResponse, error) {
	resp, err := s.backend.ConfirmPayment(ctx, req)
	if err != nil {
		return domain.PaymentStatusResponse{}, err
	}
	s.cachePayment(resp.Payment)
	return resp, nil
}

// Status asks the backend first and serves the cached payment when the
// backend is unreachable.
func (s *PaymentService) Status(ctx context.Context, orderID string) (domain.PaymentStatusResponse, error) {
	resp, err := s.backend.PaymentStatus(ctx, orderID)
	if err == nil {
		s.cachePayment(resp.Payment)
		return resp, nil
	}

	log.Printf("[dinesync] payment status fetch failed for %s, falling back to cache: %v", orderID, err)
	cached, cacheErr := s.cache.GetCachedPayment(orderID)
	if cacheErr != nil || cached == nil {
		return domain.PaymentStatusResponse{}, err
	}
	return domain.PaymentStatusResponse{Status: cached.Status, Payment: *cached}, nil
}

func (s *PaymentService) Invoice(ctx context.Context, orderID string) (domain.Invoice, error) {
	return s.backend.Invoice(ctx, orderID)
}

func (s *PaymentService) InvoicePDF(ctx context.Context, orderID string) ([]byte, error) {
	return s.backend.InvoicePDF(ctx, orderID)
}

func (s *PaymentService) cachePayment(payment domain.Payment) {
	if payment.ID == "" {
		return
	}
	if err := s.cache.CachePayment(payment); err != nil {
		log.Printf("[dinesync] failed to cache payment %s: %v", payment.ID, err)
	}
}
