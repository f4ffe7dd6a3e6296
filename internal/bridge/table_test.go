package bridge

import (
	"net"
	"testing"
)

func TestTable_OpenGetRemove(t *testing.T) {
	echo, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer echo.Close()
	go func() {
		for {
			conn, err := echo.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	table := NewTable()

	entry, err := table.Open("conn1", echo.Addr().String())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if entry.ID != "conn1" {
		t.Errorf("entry.ID = %q, want conn1", entry.ID)
	}

	if _, err := table.Get("conn1"); err != nil {
		t.Errorf("Get(conn1) error = %v, want nil", err)
	}

	if _, err := table.Open("conn1", echo.Addr().String()); err != ErrConnectionExists {
		t.Errorf("Open() duplicate id error = %v, want ErrConnectionExists", err)
	}

	removed, err := table.Remove("conn1")
	if err != nil || removed != entry {
		t.Errorf("Remove(conn1) = %v, %v, want original entry, nil", removed, err)
	}

	if _, err := table.Remove("conn1"); err != ErrUnknownConnection {
		t.Errorf("Remove(conn1) second call error = %v, want ErrUnknownConnection (idempotent)", err)
	}

	if _, err := table.Get("conn1"); err != ErrUnknownConnection {
		t.Errorf("Get(conn1) after Remove error = %v, want ErrUnknownConnection", err)
	}

	// A closed id is not reserved: reopening it succeeds.
	reopened, err := table.Open("conn1", echo.Addr().String())
	if err != nil {
		t.Fatalf("Open() on a previously closed id: error = %v, want nil", err)
	}
	if reopened.ID != "conn1" {
		t.Errorf("reopened entry.ID = %q, want conn1", reopened.ID)
	}
	table.Remove("conn1")
}

func TestTable_OpenDialFailure(t *testing.T) {
	table := NewTable()
	_, err := table.Open("conn1", "127.0.0.1:1")
	if err == nil {
		t.Fatal("Open() to a refusing address: want error, got nil")
	}
	var dialErr *DialError
	if !asDialError(err, &dialErr) {
		t.Errorf("Open() error = %v, want *DialError", err)
	}
	if dialErr.Error() == "" {
		t.Errorf("DialError.Error() is empty, want a diagnostic message")
	}
	if _, err := table.Get("conn1"); err != ErrUnknownConnection {
		t.Errorf("Get(conn1) after failed Open error = %v, want ErrUnknownConnection (no entry created)", err)
	}
}

func TestTable_CloseAll(t *testing.T) {
	echo, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer echo.Close()
	go func() {
		for {
			conn, err := echo.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	table := NewTable()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := table.Open(id, echo.Addr().String()); err != nil {
			t.Fatalf("Open(%s) error = %v", id, err)
		}
	}
	table.CloseAll()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := table.Get(id); err != ErrUnknownConnection {
			t.Errorf("Get(%s) after CloseAll error = %v, want ErrUnknownConnection", id, err)
		}
	}
}

func asDialError(err error, target **DialError) bool {
	if de, ok := err.(*DialError); ok {
		*target = de
		return true
	}
	return false
}
