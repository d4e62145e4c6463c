package engine

import (
	"go.uber.org/zap"
)

// Handle. opaque subscription id returned from the On* registration methods,
// passed back to the matching Unsubscribe* method.
type Handle uint

/*
observerList. slot map of observers keyed by handle. ids keeps registration
order so delivery order is deterministic; notify iterates over a snapshot of
ids and re-checks membership per slot, so an observer may unsubscribe itself
(or any other observer) mid-notification without corrupting the iteration.
*/
type observerList[T any] struct {
	seq  Handle
	ids  []Handle
	subs map[Handle]func(T)
}

func newObserverList[T any]() *observerList[T] {
	return &observerList[T]{
		ids:  make([]Handle, 0),
		subs: make(map[Handle]func(T)),
	}
}

func (l *observerList[T]) subscribe(fn func(T)) Handle {
	id := l.seq
	l.seq++
	l.ids = append(l.ids, id)
	l.subs[id] = fn
	return id
}

func (l *observerList[T]) unsubscribe(id Handle) {
	if _, ok := l.subs[id]; !ok {
		return
	}
	delete(l.subs, id)
	for i, other := range l.ids {
		if other == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
}

func (l *observerList[T]) clear() {
	l.ids = l.ids[:0]
	l.subs = make(map[Handle]func(T))
}

// notify delivers v to every observer in registration order. A panicking
// observer is logged and skipped; it never stops delivery to the rest.
func (l *observerList[T]) notify(v T, log *zap.Logger) {
	snapshot := make([]Handle, len(l.ids))
	copy(snapshot, l.ids)

	for _, id := range snapshot {
		fn, ok := l.subs[id]
		if !ok {
			// unsubscribed by an earlier observer in this round
			continue
		}
		l.call(fn, v, log)
	}
}

func (l *observerList[T]) call(fn func(T), v T, log *zap.Logger) {
	defer func() {
		if r := recover(); r != nil && log != nil {
			log.Error("navigation observer panicked", zap.Any("panic", r))
		}
	}()
	fn(v)
}
