package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// EventWindowShow is published after a forwarded activation raised the window.
const EventWindowShow = "window-show"

type Event struct {
	Name string
	Time time.Time
}

func NewEvent(name string) Event {
	return Event{Name: name, Time: time.Now()}
}

// Notifier publishes events to UI subscribers.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Broadcaster fans events out to in-process subscribers. A subscriber whose
// buffer is full misses the event.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan Event)}
}

// Subscribe returns an event channel and a function that unsubscribes it.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Broadcaster) Notify(ctx context.Context, event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			log.Printf("[EVENTS] Subscriber %d is full, dropping %s", id, event.Name)
		}
	}
	return nil
}

const (
	dbusPath      = dbus.ObjectPath("/io/github/chess10kp/Tuicher")
	dbusInterface = "io.github.chess10kp.Tuicher"
)

// DBusNotifier emits events as signals on the session bus, e.g.
// window-show becomes io.github.chess10kp.Tuicher.WindowShow.
type DBusNotifier struct {
	conn *dbus.Conn
}

func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusNotifier{conn: conn}, nil
}

func (n *DBusNotifier) Notify(ctx context.Context, event Event) error {
	member := signalName(event.Name)
	if err := n.conn.Emit(dbusPath, dbusInterface+"."+member, event.Time.Unix()); err != nil {
		return fmt.Errorf("failed to emit %s: %w", member, err)
	}
	return nil
}

func (n *DBusNotifier) Close() error {
	return n.conn.Close()
}

// signalName turns "window-show" into "WindowShow".
func signalName(event string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(event, func(r rune) bool { return r == '-' || r == '_' }) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// MultiNotifier sends each event to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
