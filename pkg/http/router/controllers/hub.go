package controllers

import (
	"encoding/json"
	"io"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/tracknav/tracknav/pkg/concurrent"
	"github.com/tracknav/tracknav/pkg/datastructure"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

// readPosition. reads the next frame from the connection. Control frames are
// answered in place; data frames are decoded as position fixes.
func (u *User) readPosition() (*positionRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &positionRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// FeedPosition. consumes one inbound position fix and pushes it through the
// engine; the resulting navigation update reaches every user via Broadcast.
func (u *User) FeedPosition() error {
	req, err := u.readPosition()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	u.hub.navigationService.UpdatePosition(req.ToPosition())
	return nil
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

/*
Hub. fan-out of navigation updates to every connected websocket client. Clients
may also stream position fixes inbound over the same connection, which makes a
single websocket the full GPS round trip for a head unit.
*/
type Hub struct {
	mu                sync.RWMutex
	seq               uint
	us                []*User
	ns                map[uint]*User
	navigationService NavigationService

	pool *concurrent.WorkerPool
}

func NewHub(pool *concurrent.WorkerPool, navigationService NavigationService) *Hub {
	hub := &Hub{
		pool:              pool,
		ns:                make(map[uint]*User),
		us:                make([]*User, 0),
		navigationService: navigationService,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, oki := h.ns[user.id]; !oki {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}

// Broadcast. pushes one navigation update to every connected user. Writes go
// through the worker pool so a slow client cannot stall the engine observer;
// when the pool is saturated the update is dropped for that user rather than
// blocking the position pipeline.
func (h *Hub) Broadcast(update datastructure.NavigationUpdate) {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		user := user
		_ = h.pool.ScheduleTimeout(100*time.Millisecond, func() {
			if err := user.write(envelope{"data": update}); err != nil {
				user.conn.Close()
				h.Remove(user)
			}
		})
	}
}
