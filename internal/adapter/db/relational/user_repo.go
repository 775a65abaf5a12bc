package relational

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-directory/internal/domain/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/logger"
	"user-directory/pkg/security"
)

// prefixClause matches names starting with an escaped LIKE pattern.
var prefixClause = fmt.Sprintf("name LIKE ? ESCAPE '%c'", security.LikeEscapeChar)

// UserRepo implements the user Repository on top of GORM.
// The same code serves MySQL, SQLite and PostgreSQL; only the dialector differs.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"` // Store-assigned identifier
	Name  string `gorm:"size:255;not null;index"`  // Indexed for prefix search
	Email string `gorm:"size:255;not null"`        // Not unique
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// AutoMigrate creates or updates the users table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

func toDomain(m UserSchema) user.User {
	return user.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

func toDomainSlice(models []UserSchema) []user.User {
	users := make([]user.User, len(models))
	for i, m := range models {
		users[i] = toDomain(m)
	}
	return users
}

// Create inserts a new user into the database.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, apperrors.NewValidationError("user", "cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to create user in db", zap.Error(err))
		return 0, apperrors.NewInternalError("failed to create user", err)
	}

	logger.WithContext(ctx, r.log).Debug("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
		}
		logger.WithContext(ctx, r.log).Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	u := toDomain(model)
	return &u, nil
}

// ListAfter returns up to limit users with an ID greater than afterID, in ascending ID order.
func (r *UserRepo) ListAfter(ctx context.Context, afterID, limit int64) ([]user.User, error) {
	q := r.db.WithContext(ctx).Model(&UserSchema{})
	if afterID > 0 {
		q = q.Where("id > ?", afterID)
	}

	var models []UserSchema
	if err := q.Order("id ASC").Limit(int(limit)).Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db",
			zap.Error(err),
			zap.Int64("after_id", afterID),
			zap.Int64("limit", limit),
		)
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	return toDomainSlice(models), nil
}

// SearchByNamePrefix returns up to limit users whose name starts with prefix,
// ordered by name and then ID. LIKE wildcards in prefix match literally.
func (r *UserRepo) SearchByNamePrefix(ctx context.Context, prefix string, limit int64) ([]user.User, error) {
	var models []UserSchema
	err := r.db.WithContext(ctx).
		Select("id", "name", "email").
		Where(prefixClause, security.PrefixPattern(prefix)).
		Order("name ASC").
		Order("id ASC").
		Limit(int(limit)).
		Find(&models).Error
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to search users in db",
			zap.Error(err),
			zap.String("prefix", prefix),
			zap.Int64("limit", limit),
		)
		return nil, apperrors.NewInternalError("failed to search users", err)
	}

	return toDomainSlice(models), nil
}

// InsertFunc writes one batch of users inside an open transaction.
type InsertFunc = func(ctx context.Context, users []user.User) error

// InTransaction runs fn inside a single transaction. Every batch passed to the
// insert callback is committed together when fn returns nil; any error rolls
// back all of them.
func (r *UserRepo) InTransaction(ctx context.Context, fn func(insert InsertFunc) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := func(ctx context.Context, users []user.User) error {
			if len(users) == 0 {
				return nil
			}
			models := make([]UserSchema, len(users))
			for i, u := range users {
				models[i] = UserSchema{Name: u.Name, Email: u.Email}
			}
			if err := tx.WithContext(ctx).Create(&models).Error; err != nil {
				return apperrors.NewInternalError("failed to insert batch", err)
			}
			return nil
		}
		return fn(insert)
	})
}
