package firebase

import (
	"context"
	"fmt"

	"fn7-backend/internal/config"
	"fn7-backend/internal/sdk"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"github.com/hashicorp/go-hclog"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// tokenService is the part of *auth.Client the SDK uses.
type tokenService interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	CustomToken(ctx context.Context, uid string) (string, error)
}

// SDK is the Firestore-backed sdk.Client.
type SDK struct {
	fs         *firestore.Client
	auth       tokenService
	defaultUID string
	log        hclog.Logger
	clients    *Clients
}

var _ sdk.Client = (*SDK)(nil)

// NewSDK builds the Firebase clients and the SDK on top of them.
func NewSDK(ctx context.Context, cfg config.Config, log hclog.Logger) (*SDK, error) {
	clients, err := NewClients(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := newSDK(clients.Firestore, clients.Auth, cfg.SDKDefaultUID, log)
	s.clients = clients
	return s, nil
}

func newSDK(fs *firestore.Client, ts tokenService, defaultUID string, log hclog.Logger) *SDK {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &SDK{fs: fs, auth: ts, defaultUID: defaultUID, log: log}
}

func (s *SDK) Close() {
	s.clients.Close()
}

func (s *SDK) doc(collection, id string) (*firestore.DocumentRef, error) {
	nid, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	return s.fs.Collection(collection).Doc(nid), nil
}

func (s *SDK) Get(ctx context.Context, collection, id, token string) (sdk.Record, error) {
	who, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	s.log.Debug("get", "collection", collection, "id", id, "uid", who.UID)

	ref, err := s.doc(collection, id)
	if err != nil {
		return nil, err
	}
	return s.read(ctx, ref, collection, id)
}

func (s *SDK) Create(ctx context.Context, collection, id string, data sdk.Record, token string) (sdk.Record, error) {
	who, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	s.log.Debug("create", "collection", collection, "id", id, "fields", len(data), "uid", who.UID)

	ref, err := s.doc(collection, id)
	if err != nil {
		return nil, err
	}
	if _, err := ref.Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%s/%s already exists", collection, id)
		}
		return nil, fmt.Errorf("failed to create %s/%s: %w", collection, id, err)
	}
	return s.read(ctx, ref, collection, id)
}

// Update merges data into the document, creating it when missing. An empty
// update only reads the document back.
func (s *SDK) Update(ctx context.Context, collection, id string, data sdk.Record, token string) (sdk.Record, error) {
	who, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	s.log.Debug("update", "collection", collection, "id", id, "fields", len(data), "uid", who.UID)

	ref, err := s.doc(collection, id)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if _, err := ref.Set(ctx, data, firestore.MergeAll); err != nil {
			return nil, fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
		}
	}
	return s.read(ctx, ref, collection, id)
}

func (s *SDK) Delete(ctx context.Context, collection, id, token string) error {
	who, err := s.resolve(ctx, token)
	if err != nil {
		return err
	}
	s.log.Debug("delete", "collection", collection, "id", id, "uid", who.UID)

	ref, err := s.doc(collection, id)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SDK) Search(ctx context.Context, collection string, constraints []sdk.Constraint, limit int, token string) ([]sdk.Document, error) {
	who, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	limit = sdk.ClampLimit(limit)
	s.log.Debug("search", "collection", collection, "constraints", len(constraints), "limit", limit, "uid", who.UID)

	q := s.fs.Collection(collection).Query
	for _, c := range constraints {
		if !validOps[c.Op] {
			return nil, fmt.Errorf("unsupported operator %q", c.Op)
		}
		q = q.Where(c.Field, c.Op, c.Value)
	}
	q = q.Limit(limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []sdk.Document{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", collection, err)
		}
		out = append(out, sdk.Document{ID: doc.Ref.ID, Data: toRecord(doc.Data())})
	}
	return out, nil
}

func (s *SDK) CustomToken(ctx context.Context, token string) (string, error) {
	who, err := s.resolve(ctx, token)
	if err != nil {
		return "", err
	}
	if s.auth == nil {
		return "", errAuthUnavailable
	}
	s.log.Debug("custom token", "uid", who.UID, "default", who.Default)

	t, err := s.auth.CustomToken(ctx, who.UID)
	if err != nil {
		return "", fmt.Errorf("failed to mint custom token: %w", err)
	}
	return t, nil
}

func (s *SDK) read(ctx context.Context, ref *firestore.DocumentRef, collection, id string) (sdk.Record, error) {
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s/%s not found", collection, id)
		}
		return nil, fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}
	return toRecord(snap.Data()), nil
}

var validOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"array-contains": true, "array-contains-any": true, "in": true, "not-in": true,
}

// toRecord makes Firestore values JSON friendly: document references become paths.
func toRecord(m map[string]any) sdk.Record {
	out := make(sdk.Record, len(m))
	for k, v := range m {
		out[k] = toValue(v)
	}
	return out
}

func toValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return toRecord(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = toValue(x[i])
		}
		return out
	case *firestore.DocumentRef:
		if x == nil {
			return nil
		}
		return x.Path
	}
	return v
}
