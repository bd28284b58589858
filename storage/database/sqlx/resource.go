package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classreconnect/backend/core/resource"
)

type resourceRow struct {
	ID           string      `db:"id"`
	Title        string      `db:"title"`
	Subject      string      `db:"subject"`
	Semester     string      `db:"semester"`
	Type         string      `db:"type"`
	Branch       string      `db:"branch"`
	Description  null.String `db:"description"`
	FilePath     string      `db:"file_path"`
	Downloads    int         `db:"downloads"`
	UploadedBy   string      `db:"uploaded_by"`
	UploadedAt   time.Time   `db:"uploaded_at"`
	IsDefault    bool        `db:"is_default"`
	UploaderName null.String `db:"uploader_name"`
}

func (r resourceRow) unpack() resource.Resource {
	return resource.Resource{
		ID:           r.ID,
		Title:        r.Title,
		Subject:      r.Subject,
		Semester:     r.Semester,
		Type:         r.Type,
		Branch:       r.Branch,
		Description:  r.Description.String,
		FilePath:     r.FilePath,
		Downloads:    r.Downloads,
		UploadedBy:   r.UploadedBy,
		UploadedAt:   r.UploadedAt,
		IsDefault:    r.IsDefault,
		UploaderName: r.UploaderName.String,
	}
}

func packResource(res resource.Resource) resourceRow {
	return resourceRow{
		ID:          res.ID,
		Title:       res.Title,
		Subject:     res.Subject,
		Semester:    res.Semester,
		Type:        res.Type,
		Branch:      res.Branch,
		Description: null.NewString(res.Description, res.Description != ""),
		FilePath:    res.FilePath,
		Downloads:   res.Downloads,
		UploadedBy:  res.UploadedBy,
		UploadedAt:  res.UploadedAt.UTC(),
		IsDefault:   res.IsDefault,
	}
}

const insertResourceStmt = `
	INSERT INTO resource (
		id, title, subject, semester, type, branch, description,
		file_path, downloads, uploaded_by, uploaded_at, is_default
	) VALUES (
		:id, :title, :subject, :semester, :type, :branch, :description,
		:file_path, :downloads, :uploaded_by, :uploaded_at, :is_default
	)`

type resourceRepository struct {
	db *sqlx.DB
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *sqlx.DB) *resourceRepository {
	return &resourceRepository{db: db}
}

func (repo resourceRepository) CreateResource(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	res.ID = uuid.New().String()
	row := packResource(res)
	if _, err := repo.db.NamedExecContext(ctx, insertResourceStmt, row); err != nil {
		return resource.Resource{}, errors.Wrap(err, "inserting resource")
	}
	return row.unpack(), nil
}

func (repo resourceRepository) InsertResources(ctx context.Context, resources []resource.Resource) error {
	if len(resources) == 0 {
		return nil
	}
	rows := make([]resourceRow, 0, len(resources))
	for _, res := range resources {
		res.ID = uuid.New().String()
		rows = append(rows, packResource(res))
	}
	if _, err := repo.db.NamedExecContext(ctx, insertResourceStmt, rows); err != nil {
		return errors.Wrap(err, "batch inserting resources")
	}
	return nil
}

func (repo resourceRepository) QueryAllResources(ctx context.Context) ([]resource.Resource, error) {
	var rows []resourceRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT r.*, trim(u.first_name || ' ' || u.last_name) AS uploader_name
		FROM resource r
		LEFT JOIN "user" u ON u.id = r.uploaded_by
		ORDER BY r.uploaded_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying resources")
	}
	resources := make([]resource.Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, row.unpack())
	}
	return resources, nil
}

func (repo resourceRepository) GetResourceByID(ctx context.Context, id string) (resource.Resource, error) {
	if _, err := uuid.Parse(id); err != nil {
		return resource.Resource{}, resource.ErrNotFound
	}
	var row resourceRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT r.*, trim(u.first_name || ' ' || u.last_name) AS uploader_name
		FROM resource r
		LEFT JOIN "user" u ON u.id = r.uploaded_by
		WHERE r.id = $1`, id)
	if err != nil {
		return resource.Resource{}, trapNoRowsErr(err, resource.ErrNotFound, "finding resource by ID")
	}
	return row.unpack(), nil
}

func (repo resourceRepository) DeleteResource(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM resource WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting resource")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return resource.ErrNotFound
	}
	return nil
}

func (repo resourceRepository) DistinctTitles(ctx context.Context) ([]string, error) {
	var titles []string
	if err := repo.db.SelectContext(ctx, &titles, `SELECT DISTINCT title FROM resource`); err != nil {
		return nil, errors.Wrap(err, "querying resource titles")
	}
	return titles, nil
}

func (repo resourceRepository) IncrementDownloads(ctx context.Context, id string) (resource.Resource, error) {
	if _, err := uuid.Parse(id); err != nil {
		return resource.Resource{}, resource.ErrNotFound
	}
	var row resourceRow
	err := repo.db.GetContext(ctx, &row, `
		UPDATE resource SET downloads = downloads + 1
		WHERE id = $1
		RETURNING *`, id)
	if err != nil {
		return resource.Resource{}, trapNoRowsErr(err, resource.ErrNotFound, "incrementing downloads")
	}
	return row.unpack(), nil
}

// tombstones

type tombstoneRow struct {
	Title     string      `db:"title"`
	DeletedBy null.String `db:"deleted_by"`
	DeletedAt time.Time   `db:"deleted_at"`
}

type tombstoneRepository struct {
	db *sqlx.DB
}

var _ resource.TombstoneRepository = (*tombstoneRepository)(nil) // interface compliance check

func NewTombstoneRepository(db *sqlx.DB) *tombstoneRepository {
	return &tombstoneRepository{db: db}
}

func (repo tombstoneRepository) UpsertTombstone(ctx context.Context, ts resource.Tombstone) error {
	row := tombstoneRow{
		Title:     ts.Title,
		DeletedBy: null.NewString(ts.DeletedBy, ts.DeletedBy != ""),
		DeletedAt: ts.DeletedAt.UTC(),
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO deleted_default (title, deleted_by, deleted_at)
		VALUES (:title, :deleted_by, :deleted_at)
		ON CONFLICT (title) DO UPDATE
		SET deleted_by = EXCLUDED.deleted_by, deleted_at = EXCLUDED.deleted_at`, row)
	if err != nil {
		return errors.Wrap(err, "upserting tombstone")
	}
	return nil
}

func (repo tombstoneRepository) TombstoneTitles(ctx context.Context) ([]string, error) {
	var titles []string
	if err := repo.db.SelectContext(ctx, &titles, `SELECT title FROM deleted_default`); err != nil {
		return nil, errors.Wrap(err, "querying tombstoned titles")
	}
	return titles, nil
}

func (repo tombstoneRepository) RemoveTombstone(ctx context.Context, title string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM deleted_default WHERE title = $1`, title)
	if err != nil {
		return errors.Wrap(err, "removing tombstone")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return resource.ErrNotFound
	}
	return nil
}

// audit trail

type auditRepository struct {
	db *sqlx.DB
}

var _ resource.AuditRepository = (*auditRepository)(nil) // interface compliance check

func NewAuditRepository(db *sqlx.DB) *auditRepository {
	return &auditRepository{db: db}
}

func (repo auditRepository) CreateAuditEntry(ctx context.Context, entry resource.AuditEntry) error {
	entry.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO resource_audit (
			id, event, resource_id, title, subject, semester, type, branch,
			description, file_path, actor_id, occurred_at, logged_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID, entry.Event, entry.ResourceID, entry.Title, entry.Subject,
		entry.Semester, entry.Type, entry.Branch,
		null.NewString(entry.Description, entry.Description != ""),
		null.NewString(entry.FilePath, entry.FilePath != ""),
		entry.ActorID, entry.OccurredAt.UTC(), entry.LoggedAt.UTC())
	if err != nil {
		return errors.Wrap(err, "inserting audit entry")
	}
	return nil
}
