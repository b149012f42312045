package config

import "context"

// Loader reads a toolchain file into a partial Model layer.
type Loader interface {
	Load(ctx context.Context, path string) (Model, error)
}
