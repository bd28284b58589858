package resource

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/user"
)

// Seeder materializes the default catalog into stored resources exactly once
// across the lifetime of the dataset, skipping titles that already exist or
// were explicitly tombstoned. It runs once per process start; reruns with an
// unchanged catalog and unchanged resource/tombstone sets insert nothing.
type Seeder struct {
	catalog  []CatalogEntry
	repo     Repository
	tombRepo TombstoneRepository
	usrSvc   user.Service
	logger   core.Logger
}

func NewSeeder(
	catalog []CatalogEntry,
	repo Repository,
	tombRepo TombstoneRepository,
	usrSvc user.Service,
	logger core.Logger,
) *Seeder {
	return &Seeder{
		catalog:  catalog,
		repo:     repo,
		tombRepo: tombRepo,
		usrSvc:   usrSvc,
		logger:   logger,
	}
}

// Run performs one reconciliation pass and returns the number of resources
// inserted. The existing-titles snapshot is taken once and not re-checked per
// insert; concurrent deletions in that window may transiently reappear (a
// later run will not reinsert them since tombstones are read fresh each run).
func (s *Seeder) Run(ctx context.Context) (int, error) {
	existing, err := s.repo.DistinctTitles(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "loading existing resource titles")
	}
	deleted, err := s.tombRepo.TombstoneTitles(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "loading tombstoned titles")
	}

	teacher, err := s.usrSvc.EnsureDefaultTeacher(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "resolving default uploader")
	}

	skip := make(map[string]struct{}, len(existing)+len(deleted))
	for _, title := range existing {
		skip[title] = struct{}{}
	}
	for _, title := range deleted {
		skip[title] = struct{}{}
	}

	var missing []CatalogEntry
	for _, entry := range s.catalog {
		if _, ok := skip[entry.Title]; !ok {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		s.logger.Debug("seed: no default resources to insert")
		return 0, nil
	}

	now := time.Now().UTC()
	toInsert := make([]Resource, 0, len(missing))
	for _, entry := range missing {
		toInsert = append(toInsert, Resource{
			Title:       entry.Title,
			Subject:     entry.Subject,
			Semester:    entry.Semester,
			Type:        entry.Type,
			Branch:      entry.Branch,
			Description: entry.Description,
			FilePath:    entry.FilePath,
			Downloads:   0,
			UploadedBy:  teacher.ID,
			UploadedAt:  now,
			IsDefault:   true,
		})
	}

	// no retry on failure; partial insertion is accepted and the next run
	// re-evaluates only the titles still missing
	if err := s.repo.InsertResources(ctx, toInsert); err != nil {
		return 0, pkgerrors.Wrap(err, "inserting default resources")
	}
	s.logger.Info("seed: inserted default resources", map[string]interface{}{"count": len(toInsert)})
	return len(toInsert), nil
}
