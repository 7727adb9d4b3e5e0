// Package sdkmock provides a testify mock of sdk.Client.
package sdkmock

import (
	"context"

	"fn7-backend/internal/sdk"

	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

var _ sdk.Client = (*Client)(nil)

func (m *Client) Get(ctx context.Context, collection, id, token string) (sdk.Record, error) {
	args := m.Called(ctx, collection, id, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(sdk.Record), args.Error(1)
}

func (m *Client) Create(ctx context.Context, collection, id string, data sdk.Record, token string) (sdk.Record, error) {
	args := m.Called(ctx, collection, id, data, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(sdk.Record), args.Error(1)
}

func (m *Client) Update(ctx context.Context, collection, id string, data sdk.Record, token string) (sdk.Record, error) {
	args := m.Called(ctx, collection, id, data, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(sdk.Record), args.Error(1)
}

func (m *Client) Delete(ctx context.Context, collection, id, token string) error {
	args := m.Called(ctx, collection, id, token)
	return args.Error(0)
}

func (m *Client) Search(ctx context.Context, collection string, constraints []sdk.Constraint, limit int, token string) ([]sdk.Document, error) {
	args := m.Called(ctx, collection, constraints, limit, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sdk.Document), args.Error(1)
}

func (m *Client) CustomToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
