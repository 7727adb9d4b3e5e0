// Package memory provides an in-process sdk.Client. It backs local mode
// (SDK_BACKEND=memory) and the API tests.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"fn7-backend/internal/sdk"

	"github.com/hashicorp/go-hclog"
)

// Client is a map-backed sdk.Client guarded by a RWMutex.
type Client struct {
	mu         sync.RWMutex
	data       map[string]map[string]sdk.Record
	errs       map[string]error
	defaultUID string
	log        hclog.Logger
}

func New(defaultUID string, log hclog.Logger) *Client {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Client{
		data:       make(map[string]map[string]sdk.Record),
		errs:       make(map[string]error),
		defaultUID: defaultUID,
		log:        log,
	}
}

// WithError makes every call of op (one of the sdk.Op names) fail with err. A nil err clears it.
func (c *Client) WithError(op string, err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.errs, op)
	} else {
		c.errs[op] = err
	}
	return c
}

func (c *Client) Get(ctx context.Context, collection, id, token string) (sdk.Record, error) {
	c.log.Debug("get", "collection", collection, "id", id, "token_present", token != "")
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.errs[sdk.OpGet]; err != nil {
		return nil, err
	}
	rec, ok := c.data[collection][id]
	if !ok {
		return nil, fmt.Errorf("%s/%s not found", collection, id)
	}
	return copyRecord(rec), nil
}

func (c *Client) Create(ctx context.Context, collection, id string, data sdk.Record, token string) (sdk.Record, error) {
	c.log.Debug("create", "collection", collection, "id", id, "fields", len(data), "token_present", token != "")
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.errs[sdk.OpCreate]; err != nil {
		return nil, err
	}
	if _, exists := c.data[collection][id]; exists {
		return nil, fmt.Errorf("%s/%s already exists", collection, id)
	}
	if c.data[collection] == nil {
		c.data[collection] = make(map[string]sdk.Record)
	}
	c.data[collection][id] = copyRecord(data)
	return copyRecord(data), nil
}

// Update merges data into the stored record, top-level keys only, creating it
// when missing. An empty update of a missing record is not found.
func (c *Client) Update(ctx context.Context, collection, id string, data sdk.Record, token string) (sdk.Record, error) {
	c.log.Debug("update", "collection", collection, "id", id, "fields", len(data), "token_present", token != "")
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.errs[sdk.OpUpdate]; err != nil {
		return nil, err
	}
	rec, ok := c.data[collection][id]
	if !ok {
		if len(data) == 0 {
			return nil, fmt.Errorf("%s/%s not found", collection, id)
		}
		if c.data[collection] == nil {
			c.data[collection] = make(map[string]sdk.Record)
		}
		rec = sdk.Record{}
		c.data[collection][id] = rec
	}
	for k, v := range copyRecord(data) {
		rec[k] = v
	}
	return copyRecord(rec), nil
}

func (c *Client) Delete(ctx context.Context, collection, id, token string) error {
	c.log.Debug("delete", "collection", collection, "id", id, "token_present", token != "")
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.errs[sdk.OpDelete]; err != nil {
		return err
	}
	delete(c.data[collection], id)
	return nil
}

func (c *Client) Search(ctx context.Context, collection string, constraints []sdk.Constraint, limit int, token string) ([]sdk.Document, error) {
	c.log.Debug("search", "collection", collection, "constraints", len(constraints), "limit", limit)
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.errs[sdk.OpSearch]; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(c.data[collection]))
	for id := range c.data[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	limit = sdk.ClampLimit(limit)
	out := []sdk.Document{}
	for _, id := range ids {
		rec := c.data[collection][id]
		ok, err := matchAll(rec, constraints)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, sdk.Document{ID: id, Data: copyRecord(rec)})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// CustomToken is not a signed token; it only names the identity the call resolved to.
func (c *Client) CustomToken(ctx context.Context, token string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.errs[sdk.OpCustomToken]; err != nil {
		return "", err
	}
	uid := c.defaultUID
	if t := sdk.BareToken(token); t != "" {
		uid = t
	}
	return "memory:" + uid, nil
}

func matchAll(rec sdk.Record, constraints []sdk.Constraint) (bool, error) {
	for _, cons := range constraints {
		ok, err := match(rec[cons.Field], cons.Op, cons.Value)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func match(field any, op string, want any) (bool, error) {
	switch op {
	case "==":
		return equal(field, want), nil
	case "!=":
		return field != nil && !equal(field, want), nil
	case "<", "<=", ">", ">=":
		cmp, ok := compare(field, want)
		if !ok {
			return false, nil
		}
		switch op {
		case "<":
			return cmp < 0, nil
		case "<=":
			return cmp <= 0, nil
		case ">":
			return cmp > 0, nil
		default:
			return cmp >= 0, nil
		}
	case "in", "not-in":
		list, ok := want.([]any)
		if !ok {
			return false, fmt.Errorf("operator %q requires an array value", op)
		}
		found := contains(list, field)
		if op == "in" {
			return found, nil
		}
		return field != nil && !found, nil
	case "array-contains":
		list, ok := field.([]any)
		return ok && contains(list, want), nil
	case "array-contains-any":
		wants, ok := want.([]any)
		if !ok {
			return false, fmt.Errorf("operator %q requires an array value", op)
		}
		list, ok := field.([]any)
		if !ok {
			return false, nil
		}
		for _, w := range wants {
			if contains(list, w) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("unsupported operator %q", op)
	}
}

func contains(list []any, v any) bool {
	for _, x := range list {
		if equal(x, v) {
			return true
		}
	}
	return false
}

func equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b any) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	sa, ok := a.(string)
	if !ok {
		return 0, false
	}
	sb, ok := b.(string)
	if !ok {
		return 0, false
	}
	return strings.Compare(sa, sb), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func copyRecord(r sdk.Record) sdk.Record {
	out := make(sdk.Record, len(r))
	for k, v := range r {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return copyRecord(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = copyValue(x[i])
		}
		return out
	}
	return v
}
