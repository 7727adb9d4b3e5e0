package memory

import (
	"context"
	"errors"
	"testing"

	"fn7-backend/internal/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	c := New("local-user", nil)

	created, err := c.Create(ctx, "Users", "u1", sdk.Record{"name": "Alice", "age": float64(30)}, "")
	require.NoError(t, err)
	assert.Equal(t, sdk.Record{"name": "Alice", "age": float64(30)}, created)

	_, err = c.Create(ctx, "Users", "u1", sdk.Record{}, "")
	assert.EqualError(t, err, "Users/u1 already exists")

	updated, err := c.Update(ctx, "Users", "u1", sdk.Record{"age": float64(31), "city": "Kyoto"}, "")
	require.NoError(t, err)
	assert.Equal(t, sdk.Record{"name": "Alice", "age": float64(31), "city": "Kyoto"}, updated)

	got, err := c.Get(ctx, "Users", "u1", "Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, c.Delete(ctx, "Users", "u1", ""))
	require.NoError(t, c.Delete(ctx, "Users", "u1", ""), "delete is idempotent")

	_, err = c.Get(ctx, "Users", "u1", "")
	assert.EqualError(t, err, "Users/u1 not found")
}

func TestUpdateMissingRecord(t *testing.T) {
	ctx := context.Background()
	c := New("", nil)

	_, err := c.Update(ctx, "Users", "ghost", sdk.Record{}, "")
	assert.EqualError(t, err, "Users/ghost not found")

	rec, err := c.Update(ctx, "Users", "ghost", sdk.Record{"a": 1}, "")
	require.NoError(t, err)
	assert.Equal(t, sdk.Record{"a": 1}, rec)
}

func TestRecordsAreCopied(t *testing.T) {
	ctx := context.Background()
	c := New("", nil)

	in := sdk.Record{"tags": []any{"a"}, "profile": map[string]any{"x": 1}}
	_, err := c.Create(ctx, "Users", "u1", in, "")
	require.NoError(t, err)

	in["tags"].([]any)[0] = "mutated"
	in["profile"].(map[string]any)["x"] = 2

	got, err := c.Get(ctx, "Users", "u1", "")
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, got["tags"])
	assert.Equal(t, map[string]any{"x": 1}, got["profile"])

	got["tags"] = "changed"
	again, _ := c.Get(ctx, "Users", "u1", "")
	assert.Equal(t, []any{"a"}, again["tags"])
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	c := New("", nil)
	seed := map[string]sdk.Record{
		"a": {"name": "Alice", "age": float64(30), "roles": []any{"admin"}},
		"b": {"name": "Bob", "age": 25, "roles": []any{"staff"}},
		"c": {"name": "Carol", "age": float64(41)},
	}
	for id, rec := range seed {
		_, err := c.Create(ctx, "Users", id, rec, "")
		require.NoError(t, err)
	}

	tests := []struct {
		name        string
		constraints []sdk.Constraint
		limit       int
		wantIDs     []string
	}{
		{name: "no constraints", wantIDs: []string{"a", "b", "c"}},
		{name: "equality", constraints: []sdk.Constraint{{Field: "name", Op: "==", Value: "Bob"}}, wantIDs: []string{"b"}},
		{name: "numeric mixes int and float", constraints: []sdk.Constraint{{Field: "age", Op: ">=", Value: float64(25)}, {Field: "age", Op: "<", Value: 41}}, wantIDs: []string{"a", "b"}},
		{name: "not equal skips missing fields", constraints: []sdk.Constraint{{Field: "roles", Op: "!=", Value: []any{"admin"}}}, wantIDs: []string{"b"}},
		{name: "in", constraints: []sdk.Constraint{{Field: "name", Op: "in", Value: []any{"Alice", "Carol"}}}, wantIDs: []string{"a", "c"}},
		{name: "array contains", constraints: []sdk.Constraint{{Field: "roles", Op: "array-contains", Value: "staff"}}, wantIDs: []string{"b"}},
		{name: "array contains any", constraints: []sdk.Constraint{{Field: "roles", Op: "array-contains-any", Value: []any{"staff", "admin"}}}, wantIDs: []string{"a", "b"}},
		{name: "limit", limit: 2, wantIDs: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := c.Search(ctx, "Users", tt.constraints, tt.limit, "")
			require.NoError(t, err)
			ids := []string{}
			for _, d := range docs {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	_, err := c.Search(ctx, "Users", []sdk.Constraint{{Field: "name", Op: "~=", Value: "A"}}, 0, "")
	assert.EqualError(t, err, `unsupported operator "~="`)
}

func TestSearchEmptyCollection(t *testing.T) {
	docs, err := New("", nil).Search(context.Background(), "Users", nil, 0, "")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestWithError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("permission denied")
	c := New("", nil).WithError(sdk.OpCreate, boom)

	_, err := c.Create(ctx, "Users", "u1", sdk.Record{}, "")
	assert.Equal(t, boom, err)

	c.WithError(sdk.OpCreate, nil)
	_, err = c.Create(ctx, "Users", "u1", sdk.Record{}, "")
	assert.NoError(t, err)
}

func TestCustomToken(t *testing.T) {
	ctx := context.Background()
	c := New("local-user", nil)

	tok, err := c.CustomToken(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "memory:local-user", tok)

	tok, err = c.CustomToken(ctx, "Bearer uid-42")
	require.NoError(t, err)
	assert.Equal(t, "memory:uid-42", tok)

	tok, err = c.CustomToken(ctx, "bearer x")
	require.NoError(t, err)
	assert.Equal(t, "memory:x", tok)

	tok, err = c.CustomToken(ctx, "BEARER\tx")
	require.NoError(t, err)
	assert.Equal(t, "memory:x", tok)
}
