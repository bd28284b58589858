package conversation_test

import (
	"context"
	"testing"
	"time"

	"github.com/classreconnect/backend/core/conversation"
	"github.com/classreconnect/backend/core/user"
	dummydb "github.com/classreconnect/backend/storage/database/dummy"
	testutil "github.com/classreconnect/backend/tests"
)

func setup(t *testing.T) (conversation.Service, user.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return conversation.NewService(dummydb.NewConversationRepository(db)), dummydb.NewUserRepository(db)
}

func messages(contents ...string) []conversation.Message {
	msgs := make([]conversation.Message, 0, len(contents))
	role := conversation.MsgRoleUser
	for _, content := range contents {
		msgs = append(msgs, conversation.Message{Role: role, Content: content, Timestamp: time.Now().UTC()})
		if role == conversation.MsgRoleUser {
			role = conversation.MsgRoleAI
		} else {
			role = conversation.MsgRoleUser
		}
	}
	return msgs
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, usrRepo := setup(t)
	student := testutil.CreateStudent(t, usrRepo, "John", "Doe", "john@test.cd", "")

	conv, err := svc.Create(ctx, conversation.NewConversation{
		Title:    "What is normalization?",
		Messages: messages("What is normalization?", "It organizes data to reduce redundancy."),
	}, student)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if conv.UserID != student.ID {
		t.Errorf("Create() UserID = %v; want %v", conv.UserID, student.ID)
	}
	if conv.UserName != student.FullName() || conv.Role != user.RoleStudent {
		t.Errorf("Create() attribution = %v/%v; want %v/%v",
			conv.UserName, conv.Role, student.FullName(), user.RoleStudent)
	}
	if len(conv.Messages) != 2 {
		t.Errorf("Create() messages = %v; want 2", len(conv.Messages))
	}

	// a blank title gets a sequential fallback
	conv, err = svc.Create(ctx, conversation.NewConversation{Title: "   "}, student)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if conv.Title != "Conversation 2" {
		t.Errorf("Create() fallback title = %v; want Conversation 2", conv.Title)
	}
	if conv.Messages == nil {
		t.Error("Create() Messages = nil; want empty list")
	}
}

func TestService_ListForUser(t *testing.T) {
	ctx := context.Background()
	svc, usrRepo := setup(t)
	john := testutil.CreateStudent(t, usrRepo, "John", "Doe", "john@test.cd", "")
	mary := testutil.CreateStudent(t, usrRepo, "Mary", "Major", "mary@test.cd", "")

	for _, title := range []string{"First", "Second"} {
		if _, err := svc.Create(ctx, conversation.NewConversation{Title: title}, john); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}
	if _, err := svc.Create(ctx, conversation.NewConversation{Title: "Hers"}, mary); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	convs, err := svc.ListForUser(ctx, john.ID)
	if err != nil {
		t.Fatalf("ListForUser() failed: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("ListForUser() = %v conversations; want 2", len(convs))
	}
	for _, conv := range convs {
		if conv.UserID != john.ID {
			t.Errorf("ListForUser() leaked conversation of %v", conv.UserID)
		}
	}
}

func TestService_ReplaceAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, usrRepo := setup(t)
	john := testutil.CreateStudent(t, usrRepo, "John", "Doe", "john@test.cd", "")
	mary := testutil.CreateStudent(t, usrRepo, "Mary", "Major", "mary@test.cd", "")

	conv, err := svc.Create(ctx, conversation.NewConversation{
		Title:    "Draft",
		Messages: messages("First question?"),
	}, john)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// another user cannot touch it
	rc := conversation.ReplaceConversation{Title: "Hijacked", Messages: nil}
	if _, err = svc.Replace(ctx, conv.ID, rc, mary); err != conversation.ErrNotFound {
		t.Errorf("Replace() by other user error = %v; want %v", err, conversation.ErrNotFound)
	}
	if err = svc.Delete(ctx, conv.ID, mary); err != conversation.ErrNotFound {
		t.Errorf("Delete() by other user error = %v; want %v", err, conversation.ErrNotFound)
	}

	rc = conversation.ReplaceConversation{
		Title:    "Final",
		Messages: messages("First question?", "An answer.", "A followup?"),
	}
	updated, err := svc.Replace(ctx, conv.ID, rc, john)
	if err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}
	if updated.Title != "Final" {
		t.Errorf("Replace() title = %v; want Final", updated.Title)
	}
	if len(updated.Messages) != 3 {
		t.Errorf("Replace() messages = %v; want 3", len(updated.Messages))
	}
	if !updated.UpdatedAt.After(conv.UpdatedAt) {
		t.Error("Replace() UpdatedAt not advanced")
	}

	if err = svc.Delete(ctx, conv.ID, john); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err = svc.Delete(ctx, conv.ID, john); err != conversation.ErrNotFound {
		t.Errorf("Delete() (again) error = %v; want %v", err, conversation.ErrNotFound)
	}
}

func TestService_Archive(t *testing.T) {
	ctx := context.Background()
	svc, usrRepo := setup(t)
	john := testutil.CreateStudent(t, usrRepo, "John", "Doe", "john@test.cd", "")
	mary := testutil.CreateStudent(t, usrRepo, "Mary", "Major", "mary@test.cd", "")

	tests := []struct {
		name       string
		event      string
		wantReason string
	}{
		{name: "delete", event: "delete", wantReason: conversation.ReasonDelete},
		{name: "clear", event: "clear", wantReason: conversation.ReasonClear},
		{name: "unrecognized", event: "whatever", wantReason: conversation.ReasonUnknown},
		{name: "missing", event: "", wantReason: conversation.ReasonUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arch, err := svc.Archive(ctx, conversation.NewArchived{
				ConversationID: "raw-id",
				Title:          "Bye",
				Messages:       messages("Question?", "Answer."),
				Event:          tt.event,
			}, john)
			if err != nil {
				t.Fatalf("Archive() failed: %v", err)
			}
			if arch.Reason != tt.wantReason {
				t.Errorf("Archive() reason = %v; want %v", arch.Reason, tt.wantReason)
			}
			if arch.UserID != john.ID {
				t.Errorf("Archive() UserID = %v; want %v", arch.UserID, john.ID)
			}
		})
	}

	archived, err := svc.ListArchivedForUser(ctx, john.ID)
	if err != nil {
		t.Fatalf("ListArchivedForUser() failed: %v", err)
	}
	if len(archived) != len(tests) {
		t.Errorf("ListArchivedForUser() = %v entries; want %v", len(archived), len(tests))
	}
	if archived, err = svc.ListArchivedForUser(ctx, mary.ID); err != nil {
		t.Fatalf("ListArchivedForUser() failed: %v", err)
	}
	if len(archived) != 0 {
		t.Errorf("ListArchivedForUser() for other user = %v entries; want 0", len(archived))
	}
}
