// Package storage defines persistence contracts for modification pass reports.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested pass run is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a pass run id was recorded before.
	ErrAlreadyExists = errors.New("record already exists")
)

// PassRun stores the report of one modification pass. Failed passes keep
// the work done before the failure: Status holds the gRPC status code name
// ("OK" when empty) and ErrorReason the error code, when there was one.
type PassRun struct {
	ID               string
	World            string
	StartedAt        time.Time
	Elapsed          time.Duration
	BiomesProcessed  int
	BiomesChanged    int
	ModifiersApplied int
	Applications     []Application
	Status           string
	ErrorReason      string
	ErrorMessage     string
}

// Application records one modifier applied to one biome, in pass order.
type Application struct {
	Modifier string
	Phase    string
	Biome    string
}

// PassRunPage stores one page of pass runs, newest first. Applications are
// not loaded for listed runs.
type PassRunPage struct {
	Runs          []PassRun
	NextPageToken string
}

// PassRunStore persists pass reports.
type PassRunStore interface {
	RecordPassRun(ctx context.Context, run PassRun) error
	GetPassRun(ctx context.Context, id string) (PassRun, error)
	ListPassRuns(ctx context.Context, pageSize int, pageToken string) (PassRunPage, error)
}
