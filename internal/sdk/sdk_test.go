package sdk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopClient struct{}

func (nopClient) Get(context.Context, string, string, string) (Record, error) { return Record{}, nil }
func (nopClient) Create(context.Context, string, string, Record, string) (Record, error) {
	return Record{}, nil
}
func (nopClient) Update(context.Context, string, string, Record, string) (Record, error) {
	return Record{}, nil
}
func (nopClient) Delete(context.Context, string, string, string) error { return nil }
func (nopClient) Search(context.Context, string, []Constraint, int, string) ([]Document, error) {
	return nil, nil
}
func (nopClient) CustomToken(context.Context, string) (string, error) { return "", nil }

func TestHandleReady(t *testing.T) {
	h := Ready(nopClient{})

	assert.True(t, h.Initialized())
	assert.NoError(t, h.InitErr())
	c, err := h.Client()
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestHandleFailed(t *testing.T) {
	cause := errors.New("missing credentials")
	h := Failed(cause)

	assert.False(t, h.Initialized())
	assert.Equal(t, cause, h.InitErr())

	c, err := h.Client()
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Equal(t, "SDK not initialized", err.Error())
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, err, cause)
}

func TestHandleZeroValueIsNotInitialized(t *testing.T) {
	var h Handle

	_, err := h.Client()
	assert.Equal(t, ErrNotInitialized, err)
	assert.False(t, h.Initialized())

	_, err = Failed(nil).Client()
	assert.Equal(t, ErrNotInitialized, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultSearchLimit, ClampLimit(0))
	assert.Equal(t, DefaultSearchLimit, ClampLimit(-4))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, MaxSearchLimit, ClampLimit(MaxSearchLimit+1))
}
