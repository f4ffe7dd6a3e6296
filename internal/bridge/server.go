package bridge

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rectcircle/bridge/internal/variable"
	"github.com/rectcircle/bridge/tools"
)

// Server - the bridge server's HTTP endpoint. One chi.Router is
// mounted at mountPath, with POST/PUT/GET/DELETE on "<mountPath>/<id>"
// implementing the connection-id-scoped tunnel protocol.
type Server struct {
	table      *Table
	httpServer *http.Server
	idleWait   time.Duration
}

// NewServer - build a Server listening on port, scoped to mountPath.
func NewServer(port uint16, mountPath string) *Server {
	if !strings.HasPrefix(mountPath, "/") {
		mountPath = "/" + mountPath
	}
	table := NewTable()
	router := chi.NewRouter()
	s := &Server{table: table, idleWait: variable.ServerIdleWait}

	router.Route(mountPath, func(r chi.Router) {
		r.Post("/{id}", s.handleOpen)
		r.Put("/{id}", s.handleWrite)
		r.Get("/{id}", s.handleRead)
		r.Delete("/{id}", s.handleClose)
	})

	s.httpServer = &http.Server{
		Addr:         tools.ToAddressString("", port),
		Handler:      router,
		ReadTimeout:  0,
		WriteTimeout: 10 * time.Minute, // upper bound on any single request, comfortably above the idle-poll window
	}
	return s
}

// ListenAndServe - run the HTTP endpoint until SIGINT, then gracefully drain
// in-flight requests and close every live destination socket.
func (s *Server) ListenAndServe() error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT)
	go func() {
		<-sig
		log.Println("bridge server: SIGINT received, shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}()

	err := s.httpServer.ListenAndServe()
	s.table.CloseAll()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	addr := string(body)

	_, err = s.table.Open(id, addr)
	if err != nil {
		var dialErr *DialError
		switch {
		case errors.Is(err, ErrConnectionExists):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.As(err, &dialErr):
			// The dial error message is returned verbatim so the client can
			// show it as a diagnostic.
			http.Error(w, dialErr.Error(), http.StatusNotAcceptable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	log.Printf("tunnel %s open: %s", id, addr)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := s.table.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, variable.MaxChunk+1))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	entry.writeMu.Lock()
	_, writeErr := entry.Conn.Write(data)
	entry.writeMu.Unlock()

	if writeErr != nil {
		s.closeAndForget(id, entry)
		http.Error(w, writeErr.Error(), http.StatusGone)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := s.table.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	entry.readMu.Lock()
	defer entry.readMu.Unlock()

	buf := make([]byte, variable.MaxChunk)

	// Non-blocking probe: an already-expired deadline makes Read return
	// immediately, either with queued data or a timeout error.
	entry.Conn.SetReadDeadline(time.Now())
	n, err := entry.Conn.Read(buf)
	if err == nil && n > 0 {
		entry.Conn.SetReadDeadline(time.Time{})
		w.Write(buf[:n])
		return
	}
	if err != nil && !isTimeoutErr(err) {
		s.closeAndForget(id, entry)
		http.Error(w, err.Error(), http.StatusGone)
		return
	}

	// Nothing immediately available: long-poll up to idleWait.
	entry.Conn.SetReadDeadline(time.Now().Add(s.idleWait))
	n, err = entry.Conn.Read(buf)
	entry.Conn.SetReadDeadline(time.Time{})
	switch {
	case err == nil && n > 0:
		w.Write(buf[:n])
	case err != nil && isTimeoutErr(err):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		s.closeAndForget(id, entry)
		http.Error(w, err.Error(), http.StatusGone)
	default:
		// Woke up readable but another reader drained it first. Per the
		// single-reader-per-id invariant this should not occur.
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if entry, err := s.table.Remove(id); err == nil {
		entry.Conn.Close()
		log.Printf("tunnel %s closed", id)
	}
	// Idempotent: unknown id is not an error.
	w.WriteHeader(http.StatusOK)
}

func (s *Server) closeAndForget(id string, entry *Entry) {
	if removed, err := s.table.Remove(id); err == nil {
		removed.Conn.Close()
	} else {
		// Already removed by a concurrent handler for the same id; the
		// socket is already closed too.
		_ = entry
	}
}

