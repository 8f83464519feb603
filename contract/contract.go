//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"qa-board/domain"
	"reflect"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Channel is one live push connection to a client.
// Send must never block: it either queues the frame or fails.
type Channel interface {
	ID() uuid.UUID
	Send(frame []byte) error
	Close() error
}

type IRegistry interface {
	Register(ch Channel) bool
	Unregister(ch Channel) bool
	Broadcast(frame []byte)
	Len() int
	CloseAll()
}

type IBroadcaster interface {
	Announce(ctx context.Context, evt domain.Event) error
}

// EventSink consumes typed events in-process (indexing, projections).
type EventSink interface {
	Consume(ctx context.Context, e domain.Event) error
}

type ISearcher interface {
	Index(question domain.Question) error
	Search(ctx context.Context, query string, limit int) ([]int64, error)
}
