package resource_test

import (
	"context"
	"testing"

	"github.com/classreconnect/backend/core/resource"
	logsvc "github.com/classreconnect/backend/services/logger"
	dummydb "github.com/classreconnect/backend/storage/database/dummy"
	testutil "github.com/classreconnect/backend/tests"
)

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	f := setup(t, testCatalog)
	auditRepo := dummydb.NewAuditRepository(f.db)
	svc := resource.NewService(f.resRepo, f.tombRepo, auditRepo, logsvc.NewNopLogger())

	teacher := testutil.CreateTeacher(t, f.usrRepo, "Jane", "Doe", "jane@test.cd", "")
	student := testutil.CreateStudent(t, f.usrRepo, "John", "Doe", "john@test.cd", "")

	nr := resource.NewResource{
		Title:    "OS Cheat Sheet",
		Subject:  "Operating Systems",
		Semester: "Semester 4",
		Type:     "Notes",
		Branch:   "COMPS",
		FilePath: "/uploads/os-cheat-sheet.pdf",
	}
	uploaded, err := svc.Upload(ctx, nr, teacher)
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	if _, err = svc.Delete(ctx, uploaded.ID, student); err != resource.ErrTeacherOnly {
		t.Errorf("Delete() by student error = %v; want %v", err, resource.ErrTeacherOnly)
	}
	if _, err = svc.Delete(ctx, "00000000-0000-4000-8000-999999999999", teacher); err != resource.ErrNotFound {
		t.Errorf("Delete() unknown ID error = %v; want %v", err, resource.ErrNotFound)
	}

	outcome, err := svc.Delete(ctx, uploaded.ID, teacher)
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if outcome.Resource.ID != uploaded.ID {
		t.Errorf("Delete() outcome resource = %v; want %v", outcome.Resource.ID, uploaded.ID)
	}
	if outcome.Tombstoned {
		t.Error("Delete() user upload was tombstoned")
	}
	if !outcome.AuditLogged {
		t.Error("Delete() not audit logged")
	}
	if _, err = svc.GetByID(ctx, uploaded.ID); err != resource.ErrNotFound {
		t.Errorf("GetByID() after delete error = %v; want %v", err, resource.ErrNotFound)
	}

	// upload + delete leave a two-entry trail
	entries := auditRepo.AuditEntries()
	if len(entries) != 2 {
		t.Fatalf("audit entries = %v; want 2", len(entries))
	}
	if entries[0].Event != resource.EventAdded || entries[1].Event != resource.EventDeleted {
		t.Errorf("audit events = %v, %v; want %v, %v",
			entries[0].Event, entries[1].Event, resource.EventAdded, resource.EventDeleted)
	}
	for _, entry := range entries {
		if entry.ResourceID != uploaded.ID {
			t.Errorf("audit entry ResourceID = %v; want %v", entry.ResourceID, uploaded.ID)
		}
		if entry.ActorID != teacher.ID {
			t.Errorf("audit entry ActorID = %v; want %v", entry.ActorID, teacher.ID)
		}
	}
}

func TestService_RecordDownload(t *testing.T) {
	ctx := context.Background()
	f := setup(t, testCatalog)
	teacher := testutil.CreateTeacher(t, f.usrRepo, "Jane", "Doe", "jane@test.cd", "")

	nr := resource.NewResource{
		Title:    "CN Lab Manual",
		Subject:  "Computer Networks",
		Semester: "Semester 5",
		Type:     "Practicals",
		Branch:   "IT",
		FilePath: "/uploads/cn-lab-manual.pdf",
	}
	uploaded, err := f.resSvc.Upload(ctx, nr, teacher)
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	for want := 1; want <= 3; want++ {
		res, err := f.resSvc.RecordDownload(ctx, uploaded.ID)
		if err != nil {
			t.Fatalf("RecordDownload() failed: %v", err)
		}
		if res.Downloads != want {
			t.Errorf("RecordDownload() downloads = %v; want %v", res.Downloads, want)
		}
	}
	if _, err = f.resSvc.RecordDownload(ctx, "00000000-0000-4000-8000-999999999999"); err != resource.ErrNotFound {
		t.Errorf("RecordDownload() unknown ID error = %v; want %v", err, resource.ErrNotFound)
	}
}

func TestExtensionAllowed(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"notes.pdf", true},
		{"notes.PDF", true},
		{"slides.pptx", true},
		{"essay.docx", true},
		{"readme.txt", true},
		{"archive.zip", false},
		{"shell.sh", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := resource.ExtensionAllowed(tt.filename); got != tt.want {
				t.Errorf("ExtensionAllowed(%q) = %v; want %v", tt.filename, got, tt.want)
			}
		})
	}
}
