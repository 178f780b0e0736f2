package repository

import (
	"context"
)

// StateRepository stores one opaque JSON blob per namespace. The history
// store keeps all sessions in a single blob, so no backend needs to know the
// session schema.
type StateRepository interface {
	Load(ctx context.Context, namespace string) ([]byte, error)
	Save(ctx context.Context, namespace string, blob []byte) error
	Delete(ctx context.Context, namespace string) error
}
