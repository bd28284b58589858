package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/user"
)

var ErrNotFound = errors.New("conversation not found")

type (
	Repository interface {
		CreateConversation(ctx context.Context, conv Conversation) (Conversation, error)
		// QueryConversations returns the user's conversations, most recently
		// updated first.
		QueryConversations(ctx context.Context, userID string) ([]Conversation, error)
		// GetConversation scopes the lookup to the owning user.
		GetConversation(ctx context.Context, id, userID string) (Conversation, error)
		CountConversations(ctx context.Context, userID string) (int, error)
		ReplaceConversation(ctx context.Context, id, userID, title string, messages []Message) (Conversation, error)
		DeleteConversation(ctx context.Context, id, userID string) (Conversation, error)

		CreateArchived(ctx context.Context, arch Archived) (Archived, error)
		// QueryArchived returns the user's archived conversations, most
		// recently archived first.
		QueryArchived(ctx context.Context, userID string) ([]Archived, error)
	}

	Service interface {
		ListForUser(ctx context.Context, userID string) ([]Conversation, error)
		Create(ctx context.Context, nc NewConversation, actor user.User) (Conversation, error)
		Replace(ctx context.Context, id string, rc ReplaceConversation, actor user.User) (Conversation, error)
		Delete(ctx context.Context, id string, actor user.User) error
		Archive(ctx context.Context, na NewArchived, actor user.User) (Archived, error)
		ListArchivedForUser(ctx context.Context, userID string) ([]Archived, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) ListForUser(ctx context.Context, userID string) ([]Conversation, error) {
	return svc.repo.QueryConversations(ctx, userID)
}

func (svc *service) Create(ctx context.Context, nc NewConversation, actor user.User) (Conversation, error) {
	title := core.CleanString(nc.Title)
	if title == "" {
		count, err := svc.repo.CountConversations(ctx, actor.ID)
		if err != nil {
			return Conversation{}, err
		}
		title = fmt.Sprintf("Conversation %d", count+1)
	}

	now := time.Now().UTC()
	conv := Conversation{
		UserID:    actor.ID,
		UserName:  actor.FullName(),
		Role:      actor.Role,
		Title:     title,
		Messages:  nc.Messages,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if conv.Messages == nil {
		conv.Messages = []Message{}
	}
	return svc.repo.CreateConversation(ctx, conv)
}

func (svc *service) Replace(ctx context.Context, id string, rc ReplaceConversation, actor user.User) (Conversation, error) {
	messages := rc.Messages
	if messages == nil {
		messages = []Message{}
	}
	return svc.repo.ReplaceConversation(ctx, id, actor.ID, rc.Title, messages)
}

func (svc *service) Delete(ctx context.Context, id string, actor user.User) error {
	_, err := svc.repo.DeleteConversation(ctx, id, actor.ID)
	return err
}

func (svc *service) Archive(ctx context.Context, na NewArchived, actor user.User) (Archived, error) {
	arch := Archived{
		UserID:         actor.ID,
		UserName:       actor.FullName(),
		Role:           actor.Role,
		ConversationID: na.ConversationID,
		Title:          na.Title,
		Messages:       na.Messages,
		Reason:         na.Reason(),
		ArchivedAt:     time.Now().UTC(),
	}
	if arch.Messages == nil {
		arch.Messages = []Message{}
	}
	return svc.repo.CreateArchived(ctx, arch)
}

func (svc *service) ListArchivedForUser(ctx context.Context, userID string) ([]Archived, error) {
	return svc.repo.QueryArchived(ctx, userID)
}
