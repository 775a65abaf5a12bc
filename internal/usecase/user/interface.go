package user

import "context"

// Service defines the user business logic operations consumed by transports.
type Service interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	SearchUsers(ctx context.Context, in SearchUsersRequest) (*SearchUsersResponse, error)
}

var _ Service = (*Usecase)(nil)
