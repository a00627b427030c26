package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/stocktrack-api/internal/logger"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
	"github.com/sbilibin2017/stocktrack-api/internal/repositories"
	"github.com/segmentio/kafka-go"
)

// Error variables
var (
	ErrInvalidProduct  = errors.New("all fields are required")
	ErrProductNotFound = errors.New("product not found")
)

// ProductInput is the validated, coerced command for a create or update.
type ProductInput struct {
	ProductCode string
	Product     string
	Qty         int64
	PerPrice    float64
}

// ProductReader defines read operations over products.
type ProductReader interface {
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.ProductDB, error)
}

// ProductWriter defines write operations over products.
type ProductWriter interface {
	Save(ctx context.Context, ownerEmail, productCode, product string, qty int64, perPrice float64) (*models.ProductDB, error)
	Update(ctx context.Context, ownerEmail string, id int64, productCode, product string, qty int64, perPrice float64) (*models.ProductDB, error)
	Delete(ctx context.Context, ownerEmail string, id int64) error
}

// ProductCache caches per-owner product lists.
type ProductCache interface {
	Get(ctx context.Context, ownerEmail string) ([]models.ProductDB, error)
	Set(ctx context.Context, ownerEmail string, products []models.ProductDB) error
	Invalidate(ctx context.Context, ownerEmail string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ProductService handles owner-scoped product CRUD, list caching and audit
// event publishing.
type ProductService struct {
	readRepo    ProductReader
	writeRepo   ProductWriter
	cacheRepo   ProductCache
	kafkaWriter KafkaWriter
}

// NewProductService creates a new ProductService.
func NewProductService(
	readRepo ProductReader,
	writeRepo ProductWriter,
	cacheRepo ProductCache,
	kafkaWriter KafkaWriter,
) *ProductService {
	return &ProductService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		cacheRepo:   cacheRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a product audit event. Publish failures are logged
// and never fail the request.
func (s *ProductService) publishEvent(ctx context.Context, op string, productID int64, ownerEmail string) {
	if s.kafkaWriter == nil {
		return
	}

	event := models.ProductEvent{
		EventID:   uuid.NewString(),
		Operation: op,
		ProductID: productID,
		Owner:     ownerEmail,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal product event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish product event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("product event published", "event_id", event.EventID, "operation", op, "product_id", productID)
	}
}

func validateInput(in ProductInput) error {
	if strings.TrimSpace(in.ProductCode) == "" || strings.TrimSpace(in.Product) == "" {
		return ErrInvalidProduct
	}
	if in.Qty <= 0 || in.PerPrice <= 0 {
		return ErrInvalidProduct
	}
	return nil
}

// List returns the owner's products, most recent first. Cached lists are
// served from Redis; a miss falls through to Postgres and repopulates the
// cache best-effort.
func (s *ProductService) List(ctx context.Context, ownerEmail string) ([]models.ProductDB, error) {
	products, err := s.cacheRepo.Get(ctx, ownerEmail)
	if err == nil && products != nil {
		return products, nil
	}
	if err != nil {
		logger.Log.Errorw("product cache read failed", "owner", ownerEmail, "error", err)
	}

	products, err = s.readRepo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		logger.Log.Errorw("failed to list products", "owner", ownerEmail, "error", err)
		return nil, err
	}

	if err := s.cacheRepo.Set(ctx, ownerEmail, products); err != nil {
		logger.Log.Errorw("product cache write failed", "owner", ownerEmail, "error", err)
	}

	return products, nil
}

// Create inserts a product owned by the caller. The owner is always the
// authenticated identity, never client input.
func (s *ProductService) Create(ctx context.Context, ownerEmail string, in ProductInput) (*models.ProductDB, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	row, err := s.writeRepo.Save(ctx, ownerEmail, in.ProductCode, in.Product, in.Qty, in.PerPrice)
	if err != nil {
		logger.Log.Errorw("failed to save product", "owner", ownerEmail, "error", err)
		return nil, err
	}

	if err := s.cacheRepo.Invalidate(ctx, ownerEmail); err != nil {
		logger.Log.Errorw("product cache invalidation failed", "owner", ownerEmail, "error", err)
	}
	s.publishEvent(ctx, models.OpProductCreate, row.ID, ownerEmail)

	return row, nil
}

// Update replaces every field of the caller's product. A wrong id and a
// row owned by another account both return ErrProductNotFound.
func (s *ProductService) Update(ctx context.Context, ownerEmail string, id int64, in ProductInput) (*models.ProductDB, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	row, err := s.writeRepo.Update(ctx, ownerEmail, id, in.ProductCode, in.Product, in.Qty, in.PerPrice)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to update product", "owner", ownerEmail, "id", id, "error", err)
		return nil, err
	}

	if err := s.cacheRepo.Invalidate(ctx, ownerEmail); err != nil {
		logger.Log.Errorw("product cache invalidation failed", "owner", ownerEmail, "error", err)
	}
	s.publishEvent(ctx, models.OpProductUpdate, row.ID, ownerEmail)

	return row, nil
}

// Delete removes the caller's product. Deleting an already deleted or
// foreign id returns ErrProductNotFound.
func (s *ProductService) Delete(ctx context.Context, ownerEmail string, id int64) error {
	err := s.writeRepo.Delete(ctx, ownerEmail, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to delete product", "owner", ownerEmail, "id", id, "error", err)
		return err
	}

	if err := s.cacheRepo.Invalidate(ctx, ownerEmail); err != nil {
		logger.Log.Errorw("product cache invalidation failed", "owner", ownerEmail, "error", err)
	}
	s.publishEvent(ctx, models.OpProductDelete, id, ownerEmail)

	return nil
}
