package mocks

import (
	"context"

	"patron-import/core/identity"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of identity.Client
type Client struct {
	mock.Mock
}

func (m *Client) Login(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Client) AddressTypes(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if table, ok := args.Get(0).(map[string]string); ok {
		return table, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) PatronGroups(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if table, ok := args.Get(0).(map[string]string); ok {
		return table, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) QueryUsers(ctx context.Context, query string) ([]identity.User, error) {
	args := m.Called(ctx, query)
	if users, ok := args.Get(0).([]identity.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateUser(ctx context.Context, user identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *Client) UpdateUser(ctx context.Context, user identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *Client) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Client) CreateCredentials(ctx context.Context, user identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *Client) DeleteCredentials(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *Client) AddPermissions(ctx context.Context, user identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
