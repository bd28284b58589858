package sqlxrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classreconnect/backend/core/conversation"
)

type conversationRow struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	UserName  null.String     `db:"user_name"`
	Role      null.String     `db:"role"`
	Title     string          `db:"title"`
	Messages  json.RawMessage `db:"messages"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r conversationRow) unpack() (conversation.Conversation, error) {
	conv := conversation.Conversation{
		ID:        r.ID,
		UserID:    r.UserID,
		UserName:  r.UserName.String,
		Role:      r.Role.String,
		Title:     r.Title,
		Messages:  []conversation.Message{},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.Messages) > 0 {
		if err := json.Unmarshal(r.Messages, &conv.Messages); err != nil {
			return conversation.Conversation{}, errors.Wrap(err, "decoding conversation messages")
		}
	}
	return conv, nil
}

func packConversation(conv conversation.Conversation) (conversationRow, error) {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return conversationRow{}, errors.Wrap(err, "encoding conversation messages")
	}
	return conversationRow{
		ID:        conv.ID,
		UserID:    conv.UserID,
		UserName:  null.NewString(conv.UserName, conv.UserName != ""),
		Role:      null.NewString(conv.Role, conv.Role != ""),
		Title:     conv.Title,
		Messages:  messages,
		CreatedAt: conv.CreatedAt.UTC(),
		UpdatedAt: conv.UpdatedAt.UTC(),
	}, nil
}

type archivedRow struct {
	ID             string          `db:"id"`
	UserID         string          `db:"user_id"`
	UserName       null.String     `db:"user_name"`
	Role           null.String     `db:"role"`
	ConversationID null.String     `db:"conversation_id"`
	Title          null.String     `db:"title"`
	Messages       json.RawMessage `db:"messages"`
	Reason         string          `db:"reason"`
	ArchivedAt     time.Time       `db:"archived_at"`
}

func (r archivedRow) unpack() (conversation.Archived, error) {
	arch := conversation.Archived{
		ID:             r.ID,
		UserID:         r.UserID,
		UserName:       r.UserName.String,
		Role:           r.Role.String,
		ConversationID: r.ConversationID.String,
		Title:          r.Title.String,
		Messages:       []conversation.Message{},
		Reason:         r.Reason,
		ArchivedAt:     r.ArchivedAt,
	}
	if len(r.Messages) > 0 {
		if err := json.Unmarshal(r.Messages, &arch.Messages); err != nil {
			return conversation.Archived{}, errors.Wrap(err, "decoding archived messages")
		}
	}
	return arch, nil
}

type conversationRepository struct {
	db *sqlx.DB
}

var _ conversation.Repository = (*conversationRepository)(nil) // interface compliance check

func NewConversationRepository(db *sqlx.DB) *conversationRepository {
	return &conversationRepository{db: db}
}

func (repo conversationRepository) CreateConversation(ctx context.Context, conv conversation.Conversation) (conversation.Conversation, error) {
	conv.ID = uuid.New().String()
	row, err := packConversation(conv)
	if err != nil {
		return conversation.Conversation{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO conversation (
			id, user_id, user_name, role, title, messages, created_at, updated_at
		) VALUES (
			:id, :user_id, :user_name, :role, :title, :messages, :created_at, :updated_at
		)`, row)
	if err != nil {
		return conversation.Conversation{}, errors.Wrap(err, "inserting conversation")
	}
	return conv, nil
}

func (repo conversationRepository) QueryConversations(ctx context.Context, userID string) ([]conversation.Conversation, error) {
	var rows []conversationRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM conversation WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying conversations")
	}
	convs := make([]conversation.Conversation, 0, len(rows))
	for _, row := range rows {
		conv, err := row.unpack()
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

func (repo conversationRepository) GetConversation(ctx context.Context, id, userID string) (conversation.Conversation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return conversation.Conversation{}, conversation.ErrNotFound
	}
	var row conversationRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM conversation WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return conversation.Conversation{}, trapNoRowsErr(err, conversation.ErrNotFound, "finding conversation")
	}
	return row.unpack()
}

func (repo conversationRepository) CountConversations(ctx context.Context, userID string) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count, `SELECT count(*) FROM conversation WHERE user_id = $1`, userID)
	if err != nil {
		return 0, errors.Wrap(err, "counting conversations")
	}
	return count, nil
}

func (repo conversationRepository) ReplaceConversation(ctx context.Context, id, userID, title string, messages []conversation.Message) (conversation.Conversation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return conversation.Conversation{}, conversation.ErrNotFound
	}
	encoded, err := json.Marshal(messages)
	if err != nil {
		return conversation.Conversation{}, errors.Wrap(err, "encoding conversation messages")
	}
	var row conversationRow
	err = repo.db.GetContext(ctx, &row, `
		UPDATE conversation SET title = $3, messages = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
		RETURNING *`, id, userID, title, encoded, time.Now().UTC())
	if err != nil {
		return conversation.Conversation{}, trapNoRowsErr(err, conversation.ErrNotFound, "replacing conversation")
	}
	return row.unpack()
}

func (repo conversationRepository) DeleteConversation(ctx context.Context, id, userID string) (conversation.Conversation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return conversation.Conversation{}, conversation.ErrNotFound
	}
	var row conversationRow
	err := repo.db.GetContext(ctx, &row, `
		DELETE FROM conversation WHERE id = $1 AND user_id = $2
		RETURNING *`, id, userID)
	if err != nil {
		return conversation.Conversation{}, trapNoRowsErr(err, conversation.ErrNotFound, "deleting conversation")
	}
	return row.unpack()
}

func (repo conversationRepository) CreateArchived(ctx context.Context, arch conversation.Archived) (conversation.Archived, error) {
	arch.ID = uuid.New().String()
	messages, err := json.Marshal(arch.Messages)
	if err != nil {
		return conversation.Archived{}, errors.Wrap(err, "encoding archived messages")
	}
	row := archivedRow{
		ID:             arch.ID,
		UserID:         arch.UserID,
		UserName:       null.NewString(arch.UserName, arch.UserName != ""),
		Role:           null.NewString(arch.Role, arch.Role != ""),
		ConversationID: null.NewString(arch.ConversationID, arch.ConversationID != ""),
		Title:          null.NewString(arch.Title, arch.Title != ""),
		Messages:       messages,
		Reason:         arch.Reason,
		ArchivedAt:     arch.ArchivedAt.UTC(),
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO conversation_archive (
			id, user_id, user_name, role, conversation_id, title, messages, reason, archived_at
		) VALUES (
			:id, :user_id, :user_name, :role, :conversation_id, :title, :messages, :reason, :archived_at
		)`, row)
	if err != nil {
		return conversation.Archived{}, errors.Wrap(err, "inserting archived conversation")
	}
	return arch, nil
}

func (repo conversationRepository) QueryArchived(ctx context.Context, userID string) ([]conversation.Archived, error) {
	var rows []archivedRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM conversation_archive WHERE user_id = $1 ORDER BY archived_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying archived conversations")
	}
	archs := make([]conversation.Archived, 0, len(rows))
	for _, row := range rows {
		arch, err := row.unpack()
		if err != nil {
			return nil, err
		}
		archs = append(archs, arch)
	}
	return archs, nil
}
