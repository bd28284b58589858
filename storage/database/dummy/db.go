package dummydb

import (
	"fmt"
	"sync"

	"github.com/classreconnect/backend/core/conversation"
	"github.com/classreconnect/backend/core/quiz"
	"github.com/classreconnect/backend/core/resource"
	"github.com/classreconnect/backend/core/user"
)

type (
	DB struct {
		user         *userTable
		activity     *activityTable
		resource     *resourceTable
		tombstone    *tombstoneTable
		audit        *auditTable
		quiz         *quizTable
		result       *resultTable
		conversation *conversationTable
		archive      *archiveTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
	activityTable struct {
		sync.RWMutex
		activities []user.Activity
		changes    []user.ProfileChange
	}
	resourceTable struct {
		sync.RWMutex
		table map[string]*resource.Resource
	}
	tombstoneTable struct {
		sync.RWMutex
		table map[string]*resource.Tombstone // keyed by title
	}
	auditTable struct {
		sync.RWMutex
		entries []resource.AuditEntry
	}
	quizTable struct {
		sync.RWMutex
		table map[string]*quiz.Quiz
	}
	resultTable struct {
		sync.RWMutex
		table map[string]*quiz.Result
	}
	conversationTable struct {
		sync.RWMutex
		table map[string]*conversation.Conversation
	}
	archiveTable struct {
		sync.RWMutex
		table map[string]*conversation.Archived
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:         &userTable{table: make(map[string]*user.User)},
		activity:     &activityTable{},
		resource:     &resourceTable{table: make(map[string]*resource.Resource)},
		tombstone:    &tombstoneTable{table: make(map[string]*resource.Tombstone)},
		audit:        &auditTable{},
		quiz:         &quizTable{table: make(map[string]*quiz.Quiz)},
		result:       &resultTable{table: make(map[string]*quiz.Result)},
		conversation: &conversationTable{table: make(map[string]*conversation.Conversation)},
		archive:      &archiveTable{table: make(map[string]*conversation.Archived)},
	}
	return db, nil
}

var (
	pkMutex sync.Mutex
	pkCount int
)

func nextPK() string {
	pkMutex.Lock()
	defer pkMutex.Unlock()
	pkCount++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", pkCount)
}
