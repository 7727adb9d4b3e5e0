package user

import (
	"context"

	"fn7-backend/internal/sdk"
)

// Repo forwards user operations to the SDK. Every method returns either a
// result, ErrNotInitialized, or a *Fault.
type Repo struct {
	sdk sdk.Handle
}

func NewRepo(h sdk.Handle) *Repo {
	return &Repo{sdk: h}
}

func (r *Repo) Initialized() bool { return r.sdk.Initialized() }

func (r *Repo) Get(ctx context.Context, id, token string) (Record, error) {
	c, err := r.sdk.Client()
	if err != nil {
		return nil, err
	}
	rec, err := c.Get(ctx, Collection, id, token)
	if err != nil {
		return nil, newFault(sdk.OpGet, err)
	}
	return rec, nil
}

func (r *Repo) Create(ctx context.Context, id string, in WriteInput, token string) (Record, error) {
	c, err := r.sdk.Client()
	if err != nil {
		return nil, err
	}
	in.Normalize()
	rec, err := c.Create(ctx, Collection, id, in.Data, token)
	if err != nil {
		return nil, newFault(sdk.OpCreate, err)
	}
	return rec, nil
}

func (r *Repo) Update(ctx context.Context, id string, in WriteInput, token string) (Record, error) {
	c, err := r.sdk.Client()
	if err != nil {
		return nil, err
	}
	in.Normalize()
	rec, err := c.Update(ctx, Collection, id, in.Data, token)
	if err != nil {
		return nil, newFault(sdk.OpUpdate, err)
	}
	return rec, nil
}

func (r *Repo) Delete(ctx context.Context, id, token string) error {
	c, err := r.sdk.Client()
	if err != nil {
		return err
	}
	if err := c.Delete(ctx, Collection, id, token); err != nil {
		return newFault(sdk.OpDelete, err)
	}
	return nil
}

func (r *Repo) Search(ctx context.Context, in SearchInput, token string) ([]sdk.Document, error) {
	c, err := r.sdk.Client()
	if err != nil {
		return nil, err
	}
	docs, err := c.Search(ctx, Collection, in.Constraints, in.Limit, token)
	if err != nil {
		return nil, newFault(sdk.OpSearch, err)
	}
	if docs == nil {
		docs = []sdk.Document{}
	}
	return docs, nil
}

// CustomToken mints a sign-in token for the identity token resolves to.
func (r *Repo) CustomToken(ctx context.Context, token string) (string, error) {
	c, err := r.sdk.Client()
	if err != nil {
		return "", err
	}
	t, err := c.CustomToken(ctx, token)
	if err != nil {
		return "", newFault(sdk.OpCustomToken, err)
	}
	return t, nil
}
