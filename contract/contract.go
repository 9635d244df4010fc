//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
)

// Channel is the duplex link a player exchanges messages through.
// A nil message is the end-of-stream signal on Receive and a no-op on Send.
type Channel interface {
	// Send writes one message. Sending nil does nothing and never fails.
	Send(ctx context.Context, message *string) error
	// Receive blocks until a message arrives. It returns nil when the peer is
	// gone, the stream ended or ctx was cancelled.
	Receive(ctx context.Context) *string
	// Close releases the transport. Calling it twice is a no-op.
	Close() error
}

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
// Workers that know their own name (players) implement Named instead.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	if named, ok := w.(Named); ok {
		return named.Name()
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type Named interface {
	Name() string
}
