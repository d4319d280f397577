package postgres

import (
	"context"
	"time"

	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// twoFactorRepository implements the domain.TwoFactorRepository interface
// using GORM.
type twoFactorRepository struct {
	db *gorm.DB
}

// NewTwoFactorRepository is the constructor for twoFactorRepository.
func NewTwoFactorRepository(db *gorm.DB) repository.TwoFactorRepository {
	return &twoFactorRepository{db: db}
}

// CreateCode persists a new one-time code record.
func (repo *twoFactorRepository) CreateCode(ctx context.Context, code *entity.TwoFactorCode) error {
	codeM := &model.TwoFactorCodeModel{
		ID:        code.ID,
		UserID:    code.UserID,
		CodeHash:  code.CodeHash,
		Purpose:   string(code.Purpose),
		ExpiresAt: code.ExpiresAt,
		Consumed:  code.Consumed,
	}

	if err := repo.db.WithContext(ctx).Create(codeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "code references unknown user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create two-factor code")
	}

	code.ID = codeM.ID
	code.CreatedAt = codeM.CreatedAt

	return nil
}

// FindActiveCode retrieves the newest unconsumed, unexpired code for the user
// and purpose.
func (repo *twoFactorRepository) FindActiveCode(ctx context.Context, userID uuid.UUID, purpose entity.OTPPurpose) (*entity.TwoFactorCode, error) {
	var codeM model.TwoFactorCodeModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND consumed = false AND expires_at > ?",
			userID, string(purpose), time.Now()).
		Order("created_at desc").
		First(&codeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTwoFactorCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find active two-factor code")
	}

	return toTwoFactorDomain(&codeM), nil
}

// ConsumeCode marks a code as used. The consumed = false guard ensures a
// code can only be spent once.
func (repo *twoFactorRepository) ConsumeCode(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TwoFactorCodeModel{}).
		Where("id = ? AND consumed = false", id).
		Update("consumed", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume two-factor code")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTwoFactorCodeNotFound
	}

	return nil
}

// DeleteExpiredCodes removes all codes past their expiry.
func (repo *twoFactorRepository) DeleteExpiredCodes(ctx context.Context) error {
	err := repo.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.TwoFactorCodeModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete expired two-factor codes")
	}

	return nil
}

// toTwoFactorDomain converts a GORM TwoFactorCodeModel to a domain entity.
func toTwoFactorDomain(data *model.TwoFactorCodeModel) *entity.TwoFactorCode {
	if data == nil {
		return nil
	}

	return &entity.TwoFactorCode{
		ID:        data.ID,
		UserID:    data.UserID,
		CodeHash:  data.CodeHash,
		Purpose:   entity.OTPPurpose(data.Purpose),
		ExpiresAt: data.ExpiresAt,
		Consumed:  data.Consumed,
		CreatedAt: data.CreatedAt,
	}
}
