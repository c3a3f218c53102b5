// Package deletion decides whether an entity can be deleted by looking it up
// together with the records that still reference it.
package deletion

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"golang.org/x/sync/errgroup"
)

type Status int

const (
	// NotFound means the target doesn't exist; there is nothing to delete.
	NotFound Status = iota
	// Blocked means the target exists but dependents still reference it.
	Blocked
	// Allowed means the target exists and nothing references it.
	Allowed
)

func (s Status) String() string {
	switch s {
	case NotFound:
		return "not_found"
	case Blocked:
		return "blocked"
	case Allowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// Check is the outcome of Inspect. Target is nil when Status is NotFound.
type Check[T, D any] struct {
	Status     Status
	Target     *T
	Dependents []*D
}

// Inspect runs fetchTarget and fetchDependents concurrently and classifies the
// result. fetchTarget signals absence with an errcodes not_found error. Any
// other failure from either call fails the whole inspection.
func Inspect[T, D any](
	ctx context.Context,
	fetchTarget func(ctx context.Context) (*T, error),
	fetchDependents func(ctx context.Context) ([]*D, error),
) (*Check[T, D], error) {
	var target *T
	var dependents []*D
	missing := false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := fetchTarget(gctx)
		if err != nil {
			if isNotFound(err) {
				missing = true
				return nil
			}
			return errors.WithStack(err)
		}
		target = t
		return nil
	})
	g.Go(func() error {
		d, err := fetchDependents(gctx)
		if err != nil {
			return errors.WithStack(err)
		}
		dependents = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if missing || target == nil {
		return &Check[T, D]{Status: NotFound}, nil
	}
	if len(dependents) > 0 {
		return &Check[T, D]{Status: Blocked, Target: target, Dependents: dependents}, nil
	}
	return &Check[T, D]{Status: Allowed, Target: target, Dependents: []*D{}}, nil
}

// NoDependents is a fetchDependents for entities nothing can reference.
func NoDependents[D any](context.Context) ([]*D, error) {
	return nil, nil
}

func isNotFound(err error) bool {
	var e *errcodes.Error
	return errors.As(err, &e) && e.Code == "not_found"
}
