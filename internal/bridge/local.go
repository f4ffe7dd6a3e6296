package bridge

import (
	"io"
	"net"
	"os"
	"strconv"
	"sync"

	"golang.org/x/term"
)

// Local - the client's local endpoint: either a single accepted
// TCP socket or the (stdin, stdout) pair. Closing _in is the single
// canonical "local side is done" signal; pumps observe that through
// Done()/IsClosed() at their next suspension point rather than sharing a
// mutable flag.
type Local struct {
	in      io.ReadCloser
	out     io.WriteCloser
	closed  chan struct{}
	once    sync.Once
	onClose func()
}

func newLocal(in io.ReadCloser, out io.WriteCloser, onClose func()) *Local {
	return &Local{in: in, out: out, closed: make(chan struct{}), onClose: onClose}
}

func (l *Local) Read(p []byte) (int, error)  { return l.in.Read(p) }
func (l *Local) Write(p []byte) (int, error) { return l.out.Write(p) }

// Done - closed once CloseIn has run.
func (l *Local) Done() <-chan struct{} { return l.closed }

// IsClosed - non-blocking check of the same state Done() reports.
func (l *Local) IsClosed() bool {
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}

// CloseIn - the canonical shutdown trigger. Idempotent.
func (l *Local) CloseIn() error {
	var err error
	l.once.Do(func() {
		err = l.in.Close()
		if l.onClose != nil {
			l.onClose()
		}
		close(l.closed)
	})
	return err
}

// NewListenerLocal - Listener mode: bind to port, accept exactly
// one connection, use it as both _in and _out, enable TCP keepalive.
// Subsequent local connections are never accepted.
func NewListenerLocal(port uint16) (*Local, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(int(port))))
	if err != nil {
		return nil, err
	}
	conn, err := listener.Accept()
	listener.Close()
	if err != nil {
		return nil, err
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
	}
	return newLocal(conn, conn, nil), nil
}

// NewStdioLocal - Stdio mode: bind _in/_out to stdin/stdout. If
// stdin is a terminal, put it into raw mode so OS line-buffering and echo
// never interfere with the tunnel's binary byte stream ("unbuffered
// behavior on both directions"); restore the terminal state on close.
func NewStdioLocal() *Local {
	var restore func()
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if oldState, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
			restore = func() { term.Restore(int(os.Stdin.Fd()), oldState) }
		}
	}
	return newLocal(os.Stdin, os.Stdout, restore)
}
