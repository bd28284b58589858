package tests

import (
	"net/http"
	"testing"
	"time"

	. "github.com/classreconnect/backend/apps/api/echo"
	"github.com/classreconnect/backend/core/conversation"
	testutil "github.com/classreconnect/backend/tests"
)

func TestConversationCRUD(t *testing.T) {
	john := testutil.CreateStudent(t, usrRepo, "Conv", "John", "conv.john@test.cd", "")
	mary := testutil.CreateStudent(t, usrRepo, "Conv", "Mary", "conv.mary@test.cd", "")
	johnToken := getToken(t, john)
	maryToken := getToken(t, mary)

	msgs := []conversation.Message{
		{Role: conversation.MsgRoleUser, Content: "What is a deadlock?", Timestamp: time.Now().UTC()},
		{Role: conversation.MsgRoleAI, Content: "A circular wait between processes.", Timestamp: time.Now().UTC()},
	}

	t.Run("requires auth", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/conversations")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	var conv conversation.Conversation
	t.Run("create", func(t *testing.T) {
		body := marchallObj(t, conversation.NewConversation{Title: "Deadlocks", Messages: msgs})
		req, rec := newAuthRequest(http.MethodPost, "/api/conversations", johnToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var resp ConversationResponse
		if err := unmarchallObj(t, rec, &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		conv = resp.Conversation
		if conv.UserID != john.ID || conv.Title != "Deadlocks" {
			t.Errorf("conversation = %v/%v; want %v/Deadlocks", conv.UserID, conv.Title, john.ID)
		}
	})

	t.Run("list is scoped to the owner", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/conversations", maryToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var resp ConversationListResponse
		if err := unmarchallObj(t, rec, &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		for _, c := range resp.Conversations {
			if c.ID == conv.ID {
				t.Error("conversation leaked to another user")
			}
		}
	})

	t.Run("replace", func(t *testing.T) {
		body := marchallObj(t, conversation.ReplaceConversation{Title: "Deadlocks, revisited", Messages: msgs})

		req, rec := newAuthRequest(http.MethodPut, "/api/conversations/"+conv.ID, maryToken, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)

		req, rec = newAuthRequest(http.MethodPut, "/api/conversations/"+conv.ID, johnToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var resp ConversationResponse
		if err := unmarchallObj(t, rec, &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Conversation.Title != "Deadlocks, revisited" {
			t.Errorf("title = %v; want Deadlocks, revisited", resp.Conversation.Title)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/api/conversations/"+conv.ID, maryToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)

		req, rec = newAuthRequest(http.MethodDelete, "/api/conversations/"+conv.ID, johnToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, MessageResponse{Message: "Conversation deleted"}),
		}, rec)
	})
}

func TestDeletedConversations(t *testing.T) {
	john := testutil.CreateStudent(t, usrRepo, "Arch", "John", "arch.john@test.cd", "")
	mary := testutil.CreateStudent(t, usrRepo, "Arch", "Mary", "arch.mary@test.cd", "")
	johnToken := getToken(t, john)

	body := marchallObj(t, conversation.NewArchived{
		ConversationID: "client-id-1",
		Title:          "Old chat",
		Messages: []conversation.Message{
			{Role: conversation.MsgRoleUser, Content: "Bye!", Timestamp: time.Now().UTC()},
		},
		Event: "delete",
	})

	req, rec := newAuthRequest(http.MethodPost, "/api/deleted-conversations", johnToken, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var created ArchivedResponse
	if err := unmarchallObj(t, rec, &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.Conversation.Reason != conversation.ReasonDelete {
		t.Errorf("reason = %v; want %v", created.Conversation.Reason, conversation.ReasonDelete)
	}
	if created.Conversation.UserID != john.ID {
		t.Errorf("UserID = %v; want %v", created.Conversation.UserID, john.ID)
	}

	req, rec = newAuthRequest(http.MethodGet, "/api/deleted-conversations", johnToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var list ArchivedListResponse
	if err := unmarchallObj(t, rec, &list); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(list.Conversations) != 1 {
		t.Errorf("archived = %v; want 1", len(list.Conversations))
	}

	// scoped to the owner
	req, rec = newAuthRequest(http.MethodGet, "/api/deleted-conversations", getToken(t, mary))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	if err := unmarchallObj(t, rec, &list); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(list.Conversations) != 0 {
		t.Errorf("archived for other user = %v; want 0", len(list.Conversations))
	}
}
