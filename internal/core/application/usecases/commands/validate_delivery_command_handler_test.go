package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"barrieredi/internal/core/application/usecases/commands"
	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"
	"barrieredi/internal/core/ports"
	"barrieredi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type validateMockOrderRepo struct{ mock.Mock }

func (m *validateMockOrderRepo) Add(_ context.Context, _ *order.Order) error { return nil }
func (m *validateMockOrderRepo) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *validateMockOrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *validateMockOrderRepo) GetByNumber(_ context.Context, _ string) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *validateMockOrderRepo) GetAllOpenByPartner(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type validateMockDeliveryRepo struct{ mock.Mock }

func (m *validateMockDeliveryRepo) Add(_ context.Context, _ *delivery.Delivery) error { return nil }
func (m *validateMockDeliveryRepo) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *validateMockDeliveryRepo) Get(_ context.Context, _ kernel.UUID) (*delivery.Delivery, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *validateMockDeliveryRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}
func (m *validateMockDeliveryRepo) GetAllByOrder(_ context.Context, _ kernel.UUID) ([]*delivery.Delivery, error) {
	return nil, errors.New("not implemented in mock")
}

type validateMockUoW struct{ mock.Mock }

func (m *validateMockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *validateMockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *validateMockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *validateMockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *validateMockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type validateMockUoWFactory struct{ mock.Mock }

func (m *validateMockUoWFactory) Create() commands.ValidationUoW {
	args := m.Called()
	return args.Get(0).(commands.ValidationUoW)
}

type validateFixedClock struct{ now time.Time }

func (c validateFixedClock) Now() time.Time { return c.now }

// validateFixture builds an order with one 10.000 line and a submitted
// delivery declaring the full quantity.
func validateFixture(t *testing.T) (*order.Order, *delivery.Delivery, *delivery.Item) {
	t.Helper()
	item, err := order.NewItem(
		kernel.NewUUID(), 10, "MAT-01", "Test material",
		kernel.MustParseQuantity("10.000"), "BUC",
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		kernel.MustParseMoney("14.50"), "BUC", "",
	)
	require.NoError(t, err)
	ord, err := order.NewOrder(
		kernel.NewUUID(), "CMD-1001", kernel.NewUUID(),
		time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		"RON", "", nil,
	)
	require.NoError(t, err)
	require.NoError(t, ord.ReplaceItems([]*order.Item{item}))

	notice, err := delivery.NewDelivery(
		kernel.NewUUID(), "AVZ-20250601-0001", ord, ord.PartnerID(),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "",
	)
	require.NoError(t, err)
	line, err := delivery.NewItem(kernel.NewUUID(), item.ID(), kernel.MustParseQuantity("10.000"), "")
	require.NoError(t, err)
	require.NoError(t, notice.AddItem(ord, line))
	require.NoError(t, notice.Submit(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)))
	return ord, notice, line
}

func TestValidateDeliveryCommandHandler_Handle_PartialAcceptance(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ord, notice, line := validateFixture(t)

	cmd, err := commands.NewValidateDeliveryCommand(notice.ID(), "validator@example.com",
		map[kernel.UUID]kernel.Quantity{line.ID(): kernel.MustParseQuantity("7.000")})
	require.NoError(t, err)

	orderRepo := new(validateMockOrderRepo)
	deliveryRepo := new(validateMockDeliveryRepo)
	uow := new(validateMockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", mock.Anything, notice.ID()).Return(notice, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		deliveryRepo.On("Update", mock.Anything, notice).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(validateMockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewValidateDeliveryCommandHandler(factory, validateFixedClock{now: now})
	validated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, delivery.Validated, validated.Status())
	assert.Equal(t, delivery.ValidationPartial, validated.ValidationStatus())
	assert.Equal(t, "7.000", ord.Items()[0].QuantityDelivered().String())
	assert.True(t, ord.Status().IsOpen())

	orderRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestValidateDeliveryCommandHandler_Handle_FullAcceptanceClosesOrder(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ord, notice, line := validateFixture(t)
	require.NoError(t, ord.MarkInDelivery())

	cmd, err := commands.NewValidateDeliveryCommand(notice.ID(), "validator@example.com",
		map[kernel.UUID]kernel.Quantity{line.ID(): kernel.MustParseQuantity("10.000")})
	require.NoError(t, err)

	orderRepo := new(validateMockOrderRepo)
	deliveryRepo := new(validateMockDeliveryRepo)
	uow := new(validateMockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", mock.Anything, notice.ID()).Return(notice, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		deliveryRepo.On("Update", mock.Anything, notice).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(validateMockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewValidateDeliveryCommandHandler(factory, validateFixedClock{now: now})
	validated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, delivery.ValidationApproved, validated.ValidationStatus())
	assert.Equal(t, order.Delivered, ord.Status())
	uow.AssertExpectations(t)
}

func TestValidateDeliveryCommandHandler_Handle_RevalidationRollsBack(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ord, notice, line := validateFixture(t)

	accepted := map[kernel.UUID]kernel.Quantity{line.ID(): kernel.MustParseQuantity("7.000")}
	require.NoError(t, notice.ApplyValidation(ord, "first@example.com", now, accepted))

	cmd, err := commands.NewValidateDeliveryCommand(notice.ID(), "second@example.com", accepted)
	require.NoError(t, err)

	orderRepo := new(validateMockOrderRepo)
	deliveryRepo := new(validateMockDeliveryRepo)
	uow := new(validateMockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", mock.Anything, notice.ID()).Return(notice, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(validateMockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewValidateDeliveryCommandHandler(factory, validateFixedClock{now: now})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)

	// No second increment reached the order.
	assert.Equal(t, "7.000", ord.Items()[0].QuantityDelivered().String())
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestValidateDeliveryCommandHandler_Handle_MissingDelivery(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deliveryID := kernel.NewUUID()

	cmd, err := commands.NewValidateDeliveryCommand(deliveryID, "validator@example.com", nil)
	require.NoError(t, err)

	deliveryRepo := new(validateMockDeliveryRepo)
	uow := new(validateMockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", mock.Anything, deliveryID).
			Return(nil, errs.NewObjectNotFoundError("delivery", deliveryID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(validateMockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewValidateDeliveryCommandHandler(factory, validateFixedClock{now: now})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}
