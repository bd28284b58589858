package conversation

import (
	"time"

	"github.com/classreconnect/backend/core"
)

// Message roles
const (
	MsgRoleUser = "user"
	MsgRoleAI   = "ai"
)

// Archive reasons
const (
	ReasonDelete  = "delete"
	ReasonClear   = "clear"
	ReasonUnknown = "unknown"
)

type Message struct {
	Role      string    `json:"role"` // user | ai
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a saved Q&A exchange owned by a single user.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Role      string    `json:"role,omitempty"` // student | teacher
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Archived is a copy of a deleted or cleared conversation, kept for review.
type Archived struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	Role           string    `json:"role,omitempty"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Title          string    `json:"title"`
	Messages       []Message `json:"messages"`
	Reason         string    `json:"reason"` // delete | clear | unknown
	ArchivedAt     time.Time `json:"archived_at"` // UTC
}

// NewConversation contains information needed to create a Conversation.
type NewConversation struct {
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// ReplaceConversation fully replaces a conversation's title and messages.
type ReplaceConversation struct {
	Title    string    `json:"title" validate:"required"`
	Messages []Message `json:"messages"`
}

func (rc *ReplaceConversation) Validate() error {
	rc.Title = core.CleanString(rc.Title)
	return core.Validate.Struct(rc)
}

// NewArchived contains a client-reported deleted/cleared conversation snapshot.
type NewArchived struct {
	ConversationID string    `json:"id"`
	Title          string    `json:"title"`
	Messages       []Message `json:"messages"`
	Event          string    `json:"event"` // delete | clear
}

// Reason maps the reported event to an archive reason.
func (na NewArchived) Reason() string {
	switch na.Event {
	case ReasonDelete, ReasonClear:
		return na.Event
	default:
		return ReasonUnknown
	}
}
