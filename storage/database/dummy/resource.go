package dummydb

import (
	"context"
	"sort"

	"github.com/classreconnect/backend/core/resource"
)

type resourceRepository struct {
	db    *resourceTable
	users *userTable
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *DB) *resourceRepository {
	return &resourceRepository{db: db.resource, users: db.user}
}

func (repo *resourceRepository) query() []resource.Resource {
	resources := make([]resource.Resource, 0, len(repo.db.table))
	for _, res := range repo.db.table {
		r := *res
		r.UploaderName = repo.uploaderName(r.UploadedBy)
		resources = append(resources, r)
	}
	return resources
}

func (repo *resourceRepository) uploaderName(userID string) string {
	repo.users.RLock()
	defer repo.users.RUnlock()

	if usr, ok := repo.users.table[userID]; ok {
		return usr.FullName()
	}
	return ""
}

func (repo *resourceRepository) CreateResource(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	res.ID = nextPK()
	repo.db.table[res.ID] = &res
	return res, nil
}

func (repo *resourceRepository) InsertResources(ctx context.Context, resources []resource.Resource) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, res := range resources {
		res := res
		res.ID = nextPK()
		repo.db.table[res.ID] = &res
	}
	return nil
}

func (repo *resourceRepository) QueryAllResources(ctx context.Context) ([]resource.Resource, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	resources := repo.query()
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].UploadedAt.After(resources[j].UploadedAt)
	})
	return resources, nil
}

func (repo *resourceRepository) GetResourceByID(ctx context.Context, id string) (resource.Resource, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if res, ok := repo.db.table[id]; ok {
		r := *res
		r.UploaderName = repo.uploaderName(r.UploadedBy)
		return r, nil
	}
	return resource.Resource{}, resource.ErrNotFound
}

func (repo *resourceRepository) DeleteResource(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return resource.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *resourceRepository) DistinctTitles(ctx context.Context) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seen := make(map[string]struct{}, len(repo.db.table))
	var titles []string
	for _, res := range repo.db.table {
		if _, ok := seen[res.Title]; !ok {
			seen[res.Title] = struct{}{}
			titles = append(titles, res.Title)
		}
	}
	return titles, nil
}

func (repo *resourceRepository) IncrementDownloads(ctx context.Context, id string) (resource.Resource, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	res, ok := repo.db.table[id]
	if !ok {
		return resource.Resource{}, resource.ErrNotFound
	}
	res.Downloads++
	r := *res
	r.UploaderName = repo.uploaderName(r.UploadedBy)
	return r, nil
}

// tombstones

type tombstoneRepository struct {
	db *tombstoneTable
}

var _ resource.TombstoneRepository = (*tombstoneRepository)(nil) // interface compliance check

func NewTombstoneRepository(db *DB) *tombstoneRepository {
	return &tombstoneRepository{db: db.tombstone}
}

func (repo *tombstoneRepository) UpsertTombstone(ctx context.Context, ts resource.Tombstone) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[ts.Title] = &ts
	return nil
}

func (repo *tombstoneRepository) TombstoneTitles(ctx context.Context) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	titles := make([]string, 0, len(repo.db.table))
	for title := range repo.db.table {
		titles = append(titles, title)
	}
	return titles, nil
}

func (repo *tombstoneRepository) RemoveTombstone(ctx context.Context, title string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[title]; !ok {
		return resource.ErrNotFound
	}
	delete(repo.db.table, title)
	return nil
}

// Tombstones exposes stored tombstones for tests.
func (repo *tombstoneRepository) Tombstones() []resource.Tombstone {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tombstones := make([]resource.Tombstone, 0, len(repo.db.table))
	for _, ts := range repo.db.table {
		tombstones = append(tombstones, *ts)
	}
	return tombstones
}

// audit trail

type auditRepository struct {
	db *auditTable
}

var _ resource.AuditRepository = (*auditRepository)(nil) // interface compliance check

func NewAuditRepository(db *DB) *auditRepository {
	return &auditRepository{db: db.audit}
}

func (repo *auditRepository) CreateAuditEntry(ctx context.Context, entry resource.AuditEntry) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	entry.ID = nextPK()
	repo.db.entries = append(repo.db.entries, entry)
	return nil
}

// AuditEntries exposes the recorded trail for tests.
func (repo *auditRepository) AuditEntries() []resource.AuditEntry {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]resource.AuditEntry(nil), repo.db.entries...)
}
