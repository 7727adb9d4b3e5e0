package user

import "fn7-backend/internal/sdk"

// Collection is the store collection user records live in.
const Collection = "Users"

type Record = sdk.Record

// WriteInput is the body of create and update requests.
type WriteInput struct {
	Data Record `json:"data"`
}

// Normalize replaces an absent or null data field with an empty record.
func (in *WriteInput) Normalize() {
	if in.Data == nil {
		in.Data = Record{}
	}
}

type SearchInput struct {
	Constraints []sdk.Constraint `json:"constraints"`
	Limit       int              `json:"limit"`
}
