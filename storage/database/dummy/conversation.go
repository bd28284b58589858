package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/classreconnect/backend/core/conversation"
)

type conversationRepository struct {
	convs   *conversationTable
	archive *archiveTable
}

var _ conversation.Repository = (*conversationRepository)(nil) // interface compliance check

func NewConversationRepository(db *DB) *conversationRepository {
	return &conversationRepository{convs: db.conversation, archive: db.archive}
}

func (repo *conversationRepository) CreateConversation(ctx context.Context, conv conversation.Conversation) (conversation.Conversation, error) {
	repo.convs.Lock()
	defer repo.convs.Unlock()

	conv.ID = nextPK()
	repo.convs.table[conv.ID] = &conv
	return conv, nil
}

func (repo *conversationRepository) QueryConversations(ctx context.Context, userID string) ([]conversation.Conversation, error) {
	repo.convs.RLock()
	defer repo.convs.RUnlock()

	var convs []conversation.Conversation
	for _, conv := range repo.convs.table {
		if conv.UserID == userID {
			convs = append(convs, *conv)
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	if convs == nil {
		convs = []conversation.Conversation{}
	}
	return convs, nil
}

func (repo *conversationRepository) GetConversation(ctx context.Context, id, userID string) (conversation.Conversation, error) {
	repo.convs.RLock()
	defer repo.convs.RUnlock()

	if conv, ok := repo.convs.table[id]; ok && conv.UserID == userID {
		return *conv, nil
	}
	return conversation.Conversation{}, conversation.ErrNotFound
}

func (repo *conversationRepository) CountConversations(ctx context.Context, userID string) (int, error) {
	repo.convs.RLock()
	defer repo.convs.RUnlock()

	count := 0
	for _, conv := range repo.convs.table {
		if conv.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (repo *conversationRepository) ReplaceConversation(ctx context.Context, id, userID, title string, messages []conversation.Message) (conversation.Conversation, error) {
	repo.convs.Lock()
	defer repo.convs.Unlock()

	conv, ok := repo.convs.table[id]
	if !ok || conv.UserID != userID {
		return conversation.Conversation{}, conversation.ErrNotFound
	}
	conv.Title = title
	conv.Messages = messages
	conv.UpdatedAt = time.Now().UTC()
	return *conv, nil
}

func (repo *conversationRepository) DeleteConversation(ctx context.Context, id, userID string) (conversation.Conversation, error) {
	repo.convs.Lock()
	defer repo.convs.Unlock()

	conv, ok := repo.convs.table[id]
	if !ok || conv.UserID != userID {
		return conversation.Conversation{}, conversation.ErrNotFound
	}
	delete(repo.convs.table, id)
	return *conv, nil
}

func (repo *conversationRepository) CreateArchived(ctx context.Context, arch conversation.Archived) (conversation.Archived, error) {
	repo.archive.Lock()
	defer repo.archive.Unlock()

	arch.ID = nextPK()
	repo.archive.table[arch.ID] = &arch
	return arch, nil
}

func (repo *conversationRepository) QueryArchived(ctx context.Context, userID string) ([]conversation.Archived, error) {
	repo.archive.RLock()
	defer repo.archive.RUnlock()

	var archs []conversation.Archived
	for _, arch := range repo.archive.table {
		if arch.UserID == userID {
			archs = append(archs, *arch)
		}
	}
	sort.Slice(archs, func(i, j int) bool {
		return archs[i].ArchivedAt.After(archs[j].ArchivedAt)
	})
	if archs == nil {
		archs = []conversation.Archived{}
	}
	return archs, nil
}
