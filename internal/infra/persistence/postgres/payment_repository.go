package postgres

import (
	"context"

	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// paymentRepository implements the domain.PaymentRepository interface using GORM.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create persists a new payment. The unique index on order_id makes a second
// payment attempt for the same order surface as a conflict.
func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrPaymentAlreadyExists.WrapMessage("payment already exists for order")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.ID = paymentM.ID
	payment.CreatedAt = paymentM.CreatedAt
	payment.UpdatedAt = paymentM.UpdatedAt

	return nil
}

// FindByReference retrieves a payment by its provider reference.
func (repo *paymentRepository) FindByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	err := repo.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&paymentM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by reference")
	}

	return toPaymentDomain(&paymentM), nil
}

// FindByOrderID retrieves the payment attached to an order.
func (repo *paymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&paymentM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by order id")
	}

	return toPaymentDomain(&paymentM), nil
}

// Settle moves the payment out of REQUIRES_CONFIRMATION. The status guard in
// the WHERE clause makes the first confirmation win under concurrent
// callbacks; zero affected rows means the payment was already settled
// (or does not exist, reported distinctly).
func (repo *paymentRepository) Settle(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("id = ? AND status = ?", id, entity.PaymentStatusRequiresConfirmation).
		Update("status", status)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to settle payment")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.PaymentModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check payment existence")
		}
		if count == 0 {
			return repository.ErrPaymentNotFound
		}

		return domainerrors.ErrPaymentAlreadySettled.WrapMessage("payment already settled")
	}

	return nil
}

// --- Mapper Functions ---

// toPaymentDomain converts a GORM PaymentModel to a domain Payment entity.
func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	if data == nil {
		return nil
	}

	return &entity.Payment{
		ID:        data.ID,
		OrderID:   data.OrderID,
		Provider:  entity.PaymentProvider(data.Provider),
		Status:    entity.PaymentStatus(data.Status),
		Amount:    data.Amount,
		Reference: data.Reference,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromPaymentDomain converts a domain Payment entity to a GORM PaymentModel.
func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	if data == nil {
		return nil
	}

	return &model.PaymentModel{
		ID:        data.ID,
		OrderID:   data.OrderID,
		Provider:  string(data.Provider),
		Status:    string(data.Status),
		Amount:    data.Amount,
		Reference: data.Reference,
	}
}
