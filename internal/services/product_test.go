package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/stocktrack-api/internal/models"
	"github.com/sbilibin2017/stocktrack-api/internal/repositories"
)

const owner = "alice@example.com"

func validInput() ProductInput {
	return ProductInput{ProductCode: "SKU-1", Product: "Nut", Qty: 10, PerPrice: 0.75}
}

func TestProductService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	readRepo := NewMockProductReader(ctrl)
	cacheRepo := NewMockProductCache(ctrl)
	svc := NewProductService(readRepo, NewMockProductWriter(ctrl), cacheRepo, nil)
	ctx := context.Background()

	rows := []models.ProductDB{
		{ID: 2, ProductCode: "SKU-2", Product: "Bolt", UserEmail: owner},
		{ID: 1, ProductCode: "SKU-1", Product: "Nut", UserEmail: owner},
	}

	t.Run("CacheHit", func(t *testing.T) {
		cacheRepo.EXPECT().Get(gomock.Any(), owner).Return(rows, nil)

		products, err := svc.List(ctx, owner)
		assert.NoError(t, err)
		assert.Equal(t, rows, products)
	})

	t.Run("CacheMiss", func(t *testing.T) {
		cacheRepo.EXPECT().Get(gomock.Any(), owner).Return(nil, nil)
		readRepo.EXPECT().ListByOwner(gomock.Any(), owner).Return(rows, nil)
		cacheRepo.EXPECT().Set(gomock.Any(), owner, rows).Return(nil)

		products, err := svc.List(ctx, owner)
		assert.NoError(t, err)
		assert.Equal(t, rows, products)
	})

	t.Run("CacheErrorFallsThrough", func(t *testing.T) {
		cacheRepo.EXPECT().Get(gomock.Any(), owner).Return(nil, errors.New("redis down"))
		readRepo.EXPECT().ListByOwner(gomock.Any(), owner).Return(rows, nil)
		cacheRepo.EXPECT().Set(gomock.Any(), owner, rows).Return(errors.New("redis down"))

		products, err := svc.List(ctx, owner)
		assert.NoError(t, err)
		assert.Equal(t, rows, products)
	})

	t.Run("StoreError", func(t *testing.T) {
		cacheRepo.EXPECT().Get(gomock.Any(), owner).Return(nil, nil)
		readRepo.EXPECT().ListByOwner(gomock.Any(), owner).Return(nil, errors.New("connection reset"))

		products, err := svc.List(ctx, owner)
		assert.Error(t, err)
		assert.Nil(t, products)
	})
}

func TestProductService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockProductWriter(ctrl)
	cacheRepo := NewMockProductCache(ctrl)
	svc := NewProductService(NewMockProductReader(ctrl), writeRepo, cacheRepo, nil)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		in := validInput()
		writeRepo.EXPECT().
			Save(gomock.Any(), owner, in.ProductCode, in.Product, in.Qty, in.PerPrice).
			Return(&models.ProductDB{ID: 1, ProductCode: in.ProductCode, Product: in.Product, Qty: in.Qty, PerPrice: in.PerPrice, UserEmail: owner}, nil)
		cacheRepo.EXPECT().Invalidate(gomock.Any(), owner).Return(nil)

		row, err := svc.Create(ctx, owner, in)
		assert.NoError(t, err)
		assert.NotNil(t, row)
		assert.Equal(t, int64(1), row.ID)
		assert.Equal(t, owner, row.UserEmail)
	})

	t.Run("Validation", func(t *testing.T) {
		invalid := []ProductInput{
			{ProductCode: "", Product: "Nut", Qty: 10, PerPrice: 0.75},
			{ProductCode: "   ", Product: "Nut", Qty: 10, PerPrice: 0.75},
			{ProductCode: "SKU-1", Product: "", Qty: 10, PerPrice: 0.75},
			{ProductCode: "SKU-1", Product: "Nut", Qty: 0, PerPrice: 0.75},
			{ProductCode: "SKU-1", Product: "Nut", Qty: -1, PerPrice: 0.75},
			{ProductCode: "SKU-1", Product: "Nut", Qty: 10, PerPrice: 0},
		}

		for _, in := range invalid {
			row, err := svc.Create(ctx, owner, in)
			assert.ErrorIs(t, err, ErrInvalidProduct)
			assert.Nil(t, row)
		}
	})

	t.Run("StoreError", func(t *testing.T) {
		in := validInput()
		writeRepo.EXPECT().
			Save(gomock.Any(), owner, in.ProductCode, in.Product, in.Qty, in.PerPrice).
			Return(nil, errors.New("connection reset"))

		row, err := svc.Create(ctx, owner, in)
		assert.Error(t, err)
		assert.Nil(t, row)
	})
}

func TestProductService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockProductWriter(ctrl)
	cacheRepo := NewMockProductCache(ctrl)
	svc := NewProductService(NewMockProductReader(ctrl), writeRepo, cacheRepo, nil)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		in := validInput()
		writeRepo.EXPECT().
			Update(gomock.Any(), owner, int64(1), in.ProductCode, in.Product, in.Qty, in.PerPrice).
			Return(&models.ProductDB{ID: 1, ProductCode: in.ProductCode, Product: in.Product, Qty: in.Qty, PerPrice: in.PerPrice, UserEmail: owner}, nil)
		cacheRepo.EXPECT().Invalidate(gomock.Any(), owner).Return(nil)

		row, err := svc.Update(ctx, owner, 1, in)
		assert.NoError(t, err)
		assert.NotNil(t, row)
	})

	t.Run("NotFound", func(t *testing.T) {
		in := validInput()
		writeRepo.EXPECT().
			Update(gomock.Any(), owner, int64(99), in.ProductCode, in.Product, in.Qty, in.PerPrice).
			Return(nil, repositories.ErrNotFound)

		row, err := svc.Update(ctx, owner, 99, in)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Nil(t, row)
	})

	t.Run("Validation", func(t *testing.T) {
		row, err := svc.Update(ctx, owner, 1, ProductInput{})
		assert.ErrorIs(t, err, ErrInvalidProduct)
		assert.Nil(t, row)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockProductWriter(ctrl)
	cacheRepo := NewMockProductCache(ctrl)
	svc := NewProductService(NewMockProductReader(ctrl), writeRepo, cacheRepo, nil)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		writeRepo.EXPECT().Delete(gomock.Any(), owner, int64(1)).Return(nil)
		cacheRepo.EXPECT().Invalidate(gomock.Any(), owner).Return(nil)

		err := svc.Delete(ctx, owner, 1)
		assert.NoError(t, err)
	})

	t.Run("AlreadyDeleted", func(t *testing.T) {
		writeRepo.EXPECT().Delete(gomock.Any(), owner, int64(1)).Return(repositories.ErrNotFound)

		err := svc.Delete(ctx, owner, 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("StoreError", func(t *testing.T) {
		writeRepo.EXPECT().Delete(gomock.Any(), owner, int64(1)).Return(errors.New("connection reset"))

		err := svc.Delete(ctx, owner, 1)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductService_PublishesAuditEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockProductWriter(ctrl)
	cacheRepo := NewMockProductCache(ctrl)
	kafkaWriter := NewMockKafkaWriter(ctrl)
	svc := NewProductService(NewMockProductReader(ctrl), writeRepo, cacheRepo, kafkaWriter)
	ctx := context.Background()

	in := validInput()
	writeRepo.EXPECT().
		Save(gomock.Any(), owner, in.ProductCode, in.Product, in.Qty, in.PerPrice).
		Return(&models.ProductDB{ID: 7, UserEmail: owner}, nil)
	cacheRepo.EXPECT().Invalidate(gomock.Any(), owner).Return(nil)

	var published kafka.Message
	kafkaWriter.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			assert.Len(t, msgs, 1)
			published = msgs[0]
			return nil
		})

	_, err := svc.Create(ctx, owner, in)
	assert.NoError(t, err)

	var event models.ProductEvent
	assert.NoError(t, json.Unmarshal(published.Value, &event))
	assert.Equal(t, models.OpProductCreate, event.Operation)
	assert.Equal(t, int64(7), event.ProductID)
	assert.Equal(t, owner, event.Owner)
	assert.Equal(t, event.EventID, string(published.Key))
	assert.NotEmpty(t, event.EventID)
}

func TestProductService_PublishFailureDoesNotFailRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockProductWriter(ctrl)
	cacheRepo := NewMockProductCache(ctrl)
	kafkaWriter := NewMockKafkaWriter(ctrl)
	svc := NewProductService(NewMockProductReader(ctrl), writeRepo, cacheRepo, kafkaWriter)
	ctx := context.Background()

	writeRepo.EXPECT().Delete(gomock.Any(), owner, int64(1)).Return(nil)
	cacheRepo.EXPECT().Invalidate(gomock.Any(), owner).Return(nil)
	kafkaWriter.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		Return(errors.New("broker unreachable"))

	err := svc.Delete(ctx, owner, 1)
	assert.NoError(t, err)
}
