package resource

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/user"
)

var (
	// errors
	ErrNotFound    = errors.New("resource not found")
	ErrTeacherOnly = errors.New("only teachers can delete resources")
)

type (
	Repository interface {
		CreateResource(ctx context.Context, res Resource) (Resource, error)
		// InsertResources persists a batch in one call. Partial insertion on
		// failure is store-specific and accepted; callers do not retry.
		InsertResources(ctx context.Context, resources []Resource) error
		QueryAllResources(ctx context.Context) ([]Resource, error)
		GetResourceByID(ctx context.Context, id string) (Resource, error)
		DeleteResource(ctx context.Context, id string) error
		// DistinctTitles returns the set of titles among stored resources.
		DistinctTitles(ctx context.Context) ([]string, error)
		IncrementDownloads(ctx context.Context, id string) (Resource, error)
	}

	TombstoneRepository interface {
		// UpsertTombstone records the tombstone keyed by title; an existing
		// row's DeletedBy/DeletedAt are overwritten (last-delete-wins).
		UpsertTombstone(ctx context.Context, ts Tombstone) error
		TombstoneTitles(ctx context.Context) ([]string, error)
		// RemoveTombstone deletes a tombstone; out-of-band restore only.
		RemoveTombstone(ctx context.Context, title string) error
	}

	// AuditRepository persists the add/delete trail. Writes are best-effort.
	AuditRepository interface {
		CreateAuditEntry(ctx context.Context, entry AuditEntry) error
	}

	Service interface {
		Upload(ctx context.Context, nr NewResource, actor user.User) (Resource, error)
		QueryAll(ctx context.Context) ([]Resource, error)
		GetByID(ctx context.Context, id string) (Resource, error)
		Delete(ctx context.Context, id string, actor user.User) (DeleteOutcome, error)
		RecordDownload(ctx context.Context, id string) (Resource, error)
		DeletedDefaultTitles(ctx context.Context) ([]string, error)
	}

	service struct {
		repo      Repository
		tombRepo  TombstoneRepository
		auditRepo AuditRepository
		logger    core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, tombRepo TombstoneRepository, auditRepo AuditRepository, logger core.Logger) *service {
	return &service{
		repo:      repo,
		tombRepo:  tombRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (svc *service) Upload(ctx context.Context, nr NewResource, actor user.User) (Resource, error) {
	res := Resource{
		Title:       nr.Title,
		Subject:     nr.Subject,
		Semester:    nr.Semester,
		Type:        nr.Type,
		Branch:      nr.Branch,
		Description: nr.Description,
		FilePath:    nr.FilePath,
		UploadedBy:  actor.ID,
		UploadedAt:  time.Now().UTC(),
	}
	res, err := svc.repo.CreateResource(ctx, res)
	if err != nil {
		return Resource{}, pkgerrors.Wrap(err, "creating resource")
	}

	if err := svc.auditRepo.CreateAuditEntry(ctx, svc.auditEntry(EventAdded, res, actor.ID, res.UploadedAt)); err != nil {
		svc.logger.Warn("recording resource addition", err)
	}
	return res, nil
}

func (svc *service) QueryAll(ctx context.Context) ([]Resource, error) {
	return svc.repo.QueryAllResources(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Resource, error) {
	return svc.repo.GetResourceByID(ctx, id)
}

// Delete removes the resource and, when it was seeded from the default
// catalog, upserts a suppression tombstone for its title. The tombstone and
// audit writes never fail the deletion; their outcomes are reported on the
// returned DeleteOutcome.
func (svc *service) Delete(ctx context.Context, id string, actor user.User) (DeleteOutcome, error) {
	if !actor.IsTeacher() {
		return DeleteOutcome{}, ErrTeacherOnly
	}

	res, err := svc.repo.GetResourceByID(ctx, id)
	if err != nil {
		return DeleteOutcome{}, err
	}
	if err := svc.repo.DeleteResource(ctx, id); err != nil {
		return DeleteOutcome{}, pkgerrors.Wrap(err, "deleting resource")
	}
	outcome := DeleteOutcome{Resource: res}

	now := time.Now().UTC()
	if err := svc.auditRepo.CreateAuditEntry(ctx, svc.auditEntry(EventDeleted, res, actor.ID, now)); err != nil {
		svc.logger.Warn("recording resource deletion", err)
	} else {
		outcome.AuditLogged = true
	}

	if res.IsDefault {
		ts := Tombstone{Title: res.Title, DeletedBy: actor.ID, DeletedAt: now}
		if err := svc.tombRepo.UpsertTombstone(ctx, ts); err != nil {
			// deletion stands; the title may reappear on the next seeding run
			svc.logger.Warn("recording default deletion", err)
			outcome.TombstoneErr = err
		} else {
			outcome.Tombstoned = true
		}
	}
	return outcome, nil
}

func (svc *service) RecordDownload(ctx context.Context, id string) (Resource, error) {
	return svc.repo.IncrementDownloads(ctx, id)
}

func (svc *service) DeletedDefaultTitles(ctx context.Context) ([]string, error) {
	return svc.tombRepo.TombstoneTitles(ctx)
}

func (svc *service) auditEntry(event string, res Resource, actorID string, at time.Time) AuditEntry {
	return AuditEntry{
		Event:       event,
		ResourceID:  res.ID,
		Title:       res.Title,
		Subject:     res.Subject,
		Semester:    res.Semester,
		Type:        res.Type,
		Branch:      res.Branch,
		Description: res.Description,
		FilePath:    res.FilePath,
		ActorID:     actorID,
		OccurredAt:  at,
		LoggedAt:    time.Now().UTC(),
	}
}
