package bridge

import (
	"net"
	"sync"
	"time"
)

// Entry - a tunneled connection: one connection id bound to an
// owned outbound TCP socket. readMu/writeMu serialize GETs-for-this-id and
// PUTs-for-this-id respectively, while leaving GET and PUT free to run
// concurrently against the same id.
type Entry struct {
	ID        string
	Conn      net.Conn
	Dest      string
	CreatedAt time.Time

	readMu  sync.Mutex
	writeMu sync.Mutex
}

// Table - the connection table: process-wide map from
// connection id to Entry, mutated only through Open/Remove/CloseAll.
// Lookups and mutations on the map itself are serialized by mu; the
// (potentially slow) destination dial happens outside the critical
// section, and long-poll suspensions in GET happen outside it entirely.
type Table struct {
	mu    sync.Mutex
	conns map[string]*Entry
}

// NewTable - construct an empty Connection Table.
func NewTable() *Table {
	return &Table{conns: make(map[string]*Entry)}
}

// Open - dial addr and register the resulting Entry under id.
//
// Returns ErrConnectionExists if id already names a live entry. A
// previously closed id has been removed from the table and may be
// reopened. Returns a *DialError if the outbound dial fails; in that
// case no entry is created.
func (t *Table) Open(id string, addr string) (*Entry, error) {
	t.mu.Lock()
	if _, exists := t.conns[id]; exists {
		t.mu.Unlock()
		return nil, ErrConnectionExists
	}
	// Reserve the id for the duration of the dial so a racing POST for the
	// same id is rejected rather than double-dialing.
	t.conns[id] = nil
	t.mu.Unlock()

	conn, err := dialWithKeepalive(addr)
	if err != nil {
		t.mu.Lock()
		delete(t.conns, id)
		t.mu.Unlock()
		return nil, &DialError{Err: err}
	}

	entry := &Entry{ID: id, Conn: conn, Dest: addr, CreatedAt: time.Now()}
	t.mu.Lock()
	t.conns[id] = entry
	t.mu.Unlock()
	return entry, nil
}

// Get - look up the live Entry for id. Returns ErrUnknownConnection both
// when id was never opened and while a same-id Open is mid-dial.
func (t *Table) Get(id string) (*Entry, error) {
	t.mu.Lock()
	entry, ok := t.conns[id]
	t.mu.Unlock()
	if !ok || entry == nil {
		return nil, ErrUnknownConnection
	}
	return entry, nil
}

// Remove - idempotently drop id from the table, returning the Entry the
// first time (so the caller can close its socket) and ErrUnknownConnection
// on any subsequent call for the same id.
func (t *Table) Remove(id string) (*Entry, error) {
	t.mu.Lock()
	entry, ok := t.conns[id]
	if ok {
		delete(t.conns, id)
	}
	t.mu.Unlock()
	if !ok || entry == nil {
		return nil, ErrUnknownConnection
	}
	return entry, nil
}

// CloseAll - close and drop every live entry. Called on server shutdown.
func (t *Table) CloseAll() {
	t.mu.Lock()
	conns := t.conns
	t.conns = make(map[string]*Entry)
	t.mu.Unlock()
	for _, entry := range conns {
		if entry != nil {
			entry.Conn.Close()
		}
	}
}

func dialWithKeepalive(addr string) (net.Conn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
	}
	return conn, nil
}
