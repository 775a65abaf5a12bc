package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "user-directory/internal/domain/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/logger"
	"user-directory/pkg/security"

	"github.com/go-playground/validator/v10"
)

// Repository is the storage port for user records.
// One implementation serves every SQL backend, and a caching decorator can wrap it.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)                                 // Insert a user, returning the store-assigned ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)                               // Exact lookup; NotFoundError when absent
	ListAfter(ctx context.Context, afterID, limit int64) ([]domain.User, error)                // Users with ID > afterID, ascending; afterID 0 starts at the beginning
	SearchByNamePrefix(ctx context.Context, prefix string, limit int64) ([]domain.User, error) // Users whose name starts with prefix, ascending by name
}

// Usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Usecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError
// with a human-readable message.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var messages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return apperrors.NewValidationError("", strings.Join(messages, ", "))
}

// normalizeLimit applies the default to non-positive limits and caps the rest.
func normalizeLimit(limit, def, maxLimit int64) int64 {
	if limit < 1 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// CreateUser validates the request and inserts the user.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Debug("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user created", zap.Int64("id", id))
	return &CreateUserResponse{ID: id}, nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	if in.ID <= 0 {
		log.Warn("get user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, apperrors.NewValidationError("id", "must be a positive integer")
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) {
			log.Debug("user not found", zap.Int64("id", in.ID))
		} else {
			log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}

	return &GetUserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}

// ListUsers returns the page of users that follows the request cursor.
// It asks the store for one row past the limit to learn whether another page exists.
func (uc *Usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	limit := normalizeLimit(in.Limit, DefaultListLimit, MaxListLimit)

	var afterID int64
	if in.Cursor != "" {
		cursor, err := domain.ParseCursor(in.Cursor)
		if err != nil {
			log.Warn("invalid cursor", zap.String("cursor", in.Cursor))
			return nil, apperrors.NewValidationError("cursor", "invalid cursor")
		}
		afterID = cursor.LastID
	}

	log.Debug("listing users", zap.Int64("after_id", afterID), zap.Int64("limit", limit))

	rows, err := uc.repo.ListAfter(ctx, afterID, limit+1)
	if err != nil {
		log.Error("failed to list users", zap.Int64("after_id", afterID), zap.Int64("limit", limit), zap.Error(err))
		return nil, err
	}

	page := domain.NewPage(rows, limit)

	resp := &ListUsersResponse{
		Users:   toDTOs(page.Users),
		HasMore: page.HasMore,
		Count:   len(page.Users),
	}
	if page.NextCursor != nil {
		next := page.NextCursor.Encode()
		resp.NextCursor = &next
	}

	return resp, nil
}

// SearchUsers returns users whose name starts with the query.
// A blank query short-circuits to an empty result without a store call.
func (uc *Usecase) SearchUsers(ctx context.Context, in SearchUsersRequest) (*SearchUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	query, err := security.ValidateSearchQuery(in.Query)
	if err != nil {
		log.Warn("invalid search query", zap.Error(err))
		return nil, apperrors.NewValidationError("q", err.Error())
	}

	if query == "" {
		return &SearchUsersResponse{Results: []User{}, Count: 0}, nil
	}

	limit := normalizeLimit(in.Limit, DefaultSearchLimit, MaxSearchLimit)

	log.Debug("searching users", zap.String("query", query), zap.Int64("limit", limit))

	rows, err := uc.repo.SearchByNamePrefix(ctx, query, limit)
	if err != nil {
		log.Error("failed to search users", zap.String("query", query), zap.Int64("limit", limit), zap.Error(err))
		return nil, err
	}

	results := toDTOs(rows)
	return &SearchUsersResponse{
		Results: results,
		Count:   len(results),
	}, nil
}

func toDTOs(rows []domain.User) []User {
	users := make([]User, len(rows))
	for i, du := range rows {
		users[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}
	return users
}
