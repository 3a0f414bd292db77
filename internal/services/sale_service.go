package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"uriage/internal/amqp"
	"uriage/internal/core"
	"uriage/internal/storage"
)

// SaleService orchestrates sale writes across SQLite and AMQP.
type SaleService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewSaleService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *SaleService {
	return &SaleService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreateSale saves a sale locally and publishes a sync message. Publish
// failures never fail the request: the sale is already durable and the
// periodic worker sweep will pick it up.
func (s *SaleService) CreateSale(ctx context.Context, r core.SaleRecord) (string, error) {
	ref, err := s.storage.Append(ctx, r)
	if err != nil {
		return "", fmt.Errorf("save sale: %w", err)
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to parse sale ID", "ref", ref, "error", err)
		return ref, nil
	}

	if err := s.publishSyncMessage(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
	}

	return ref, nil
}

func (s *SaleService) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishSaleSync(ctx, id, version)
}

// Close closes both storage and AMQP connections.
func (s *SaleService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close sale service: %v", errs)
	}

	return nil
}
