package bookinstances

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/locallibrary/pkg/deletion"
	"github.com/shishobooks/locallibrary/pkg/errcodes"
	"github.com/shishobooks/locallibrary/pkg/models"
	"github.com/uptrace/bun"
)

type ListBookInstancesOptions struct {
	Status *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBookInstance(ctx context.Context, instance *models.BookInstance) error {
	now := time.Now()
	if instance.ID == "" {
		instance.ID = models.NewID()
	}
	if instance.Status == "" {
		instance.Status = models.BookInstanceStatusMaintenance
	}
	if instance.CreatedAt.IsZero() {
		instance.CreatedAt = now
	}
	instance.UpdatedAt = instance.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(instance).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBookInstance(ctx context.Context, id string) (*models.BookInstance, error) {
	if !models.IsID(id) {
		return nil, errcodes.NotFound("Book copy")
	}

	instance := &models.BookInstance{}
	err := svc.db.
		NewSelect().
		Model(instance).
		Relation("Book").
		Where("bi.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book copy")
		}
		return nil, errors.WithStack(err)
	}

	return instance, nil
}

// ListBookInstances returns copies with their book, grouped by book title.
func (svc *Service) ListBookInstances(ctx context.Context, opts ListBookInstancesOptions) ([]*models.BookInstance, error) {
	instances := []*models.BookInstance{}

	q := svc.db.
		NewSelect().
		Model(&instances).
		Relation("Book").
		OrderExpr("LOWER(book.title) ASC").
		Order("bi.imprint ASC")

	if opts.Status != nil {
		q = q.Where("bi.status = ?", *opts.Status)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return instances, nil
}

func (svc *Service) UpdateBookInstance(ctx context.Context, instance *models.BookInstance) error {
	instance.UpdatedAt = time.Now()

	res, err := svc.db.
		NewUpdate().
		Model(instance).
		Column("book_id", "imprint", "status", "due_back", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Book copy")
	}
	return nil
}

func (svc *Service) DeleteBookInstance(ctx context.Context, id string) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

// InspectDelete looks up the copy. Nothing references a copy, so a found copy
// is always deletable.
func (svc *Service) InspectDelete(ctx context.Context, id string) (*deletion.Check[models.BookInstance, struct{}], error) {
	return deletion.Inspect(ctx,
		func(ctx context.Context) (*models.BookInstance, error) {
			return svc.RetrieveBookInstance(ctx, id)
		},
		deletion.NoDependents[struct{}],
	)
}

// CountBookInstances counts copies, optionally only those in one status.
func (svc *Service) CountBookInstances(ctx context.Context, opts ListBookInstancesOptions) (int, error) {
	q := svc.db.NewSelect().
		Model((*models.BookInstance)(nil))

	if opts.Status != nil {
		q = q.Where("status = ?", *opts.Status)
	}

	count, err := q.Count(ctx)
	return count, errors.WithStack(err)
}
