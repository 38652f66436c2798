package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection represents an entity view plus persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// Map converts the entity while keeping the metadata.
func Map[T, U any](p Projection[T], fn func(T) U) Projection[U] {
	return Projection[U]{Entity: fn(p.Entity), Metadata: p.Metadata}
}
