package resource

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/classreconnect/backend/core"
)

// AllowedExtensions are the document types accepted for upload.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".txt"}

// Resource is a shared teaching resource, either uploaded by a user or
// seeded from the default catalog (IsDefault).
type Resource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Semester    string    `json:"semester"`
	Type        string    `json:"type"`
	Branch      string    `json:"branch"`
	Description string    `json:"description,omitempty"`
	FilePath    string    `json:"file_path"`
	Downloads   int       `json:"downloads"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"` // UTC
	IsDefault   bool      `json:"is_default"`

	// UploaderName is joined in on queries; not a stored column.
	UploaderName string `json:"uploader_name,omitempty"`
}

// CatalogEntry is an immutable, compiled-in description of a default
// resource to be pre-populated. Titles are unique within the catalog.
type CatalogEntry struct {
	Title       string
	Subject     string
	Semester    string
	Type        string
	Branch      string
	Description string
	FilePath    string
}

// Tombstone permanently records that a default resource title was deleted
// and must not be reseeded. Keyed uniquely by Title; last delete wins on
// DeletedBy/DeletedAt.
type Tombstone struct {
	Title     string    `json:"title"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"` // UTC
}

// NewResource contains information needed to upload a Resource.
type NewResource struct {
	Title       string `json:"title" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Semester    string `json:"semester" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Branch      string `json:"branch" validate:"required"`
	Description string `json:"description"`
	FilePath    string `json:"-"`
}

func (nr *NewResource) Validate() error {
	nr.Title = core.CleanString(nr.Title)
	nr.Subject = core.CleanString(nr.Subject)
	nr.Description = core.CleanString(nr.Description)
	return core.Validate.Struct(nr)
}

// ExtensionAllowed reports whether the file name carries an accepted extension.
func ExtensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DeleteOutcome reports the separately-tracked side effects of a deletion.
// The deletion itself succeeded whenever this is returned without error;
// Tombstoned/AuditLogged may still be false (best-effort writes).
type DeleteOutcome struct {
	Resource     Resource
	Tombstoned   bool
	TombstoneErr error
	AuditLogged  bool
}

// AuditEntry records a resource addition or deletion. Writes are best-effort.
type AuditEntry struct {
	ID          string    `json:"id"`
	Event       string    `json:"event"` // added | deleted
	ResourceID  string    `json:"resource_id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Semester    string    `json:"semester"`
	Type        string    `json:"type"`
	Branch      string    `json:"branch"`
	Description string    `json:"description,omitempty"`
	FilePath    string    `json:"file_path,omitempty"`
	ActorID     string    `json:"actor_id"`
	OccurredAt  time.Time `json:"occurred_at"` // UTC
	LoggedAt    time.Time `json:"logged_at"`   // UTC
}

// Audit events
const (
	EventAdded   = "added"
	EventDeleted = "deleted"
)
