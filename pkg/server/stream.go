package server

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/fixture"
	"github.com/vango-dev/reconcile/pkg/host/memhost"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/render"
)

// NextEvent is the event name that advances the fixture when sent with
// target 0.
const NextEvent = "next"

// stream is one connected client and its session.
type stream struct {
	server  *Server
	conn    *websocket.Conn
	session *fixture.Session
	logger  *slog.Logger

	// mu guards the session and writes to conn.
	mu  sync.Mutex
	seq uint64

	done chan struct{}
}

// HandleWebSocket upgrades the request and plays a fresh session over it.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		if s.metrics != nil {
			s.metrics.RecordWebSocketError("upgrade")
		}
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	st := &stream{
		server:  s,
		conn:    conn,
		session: s.newSession(),
		logger:  s.logger.With("remote", r.RemoteAddr),
		done:    make(chan struct{}),
	}
	if s.metrics != nil {
		s.metrics.StreamOpened()
		defer s.metrics.StreamClosed()
	}
	st.serve()
}

func (st *stream) serve() {
	defer st.conn.Close()
	defer close(st.done)

	if err := st.open(); err != nil {
		st.logger.Error("stream open failed", "error", err)
		st.fail(err, true)
		return
	}
	if interval := st.server.config.StepInterval; interval > 0 {
		go st.tick(interval)
	}
	st.readLoop()
}

// open applies the first step and sends the resulting markup.
func (st *stream) open() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, err := st.session.Step(); err != nil {
		return err
	}
	html, err := render.NewRenderer(render.Config{NodeIDs: true}).RenderChildren(st.session.Container)
	if err != nil {
		return err
	}
	st.seq++
	payload := protocol.EncodeSnapshot(&protocol.Snapshot{
		Seq:  st.seq,
		Step: uint64(st.session.Position()),
		HTML: html,
	})
	return st.write(protocol.NewFrame(protocol.FrameSnapshot, payload))
}

func (st *stream) readLoop() {
	for {
		msgType, data, err := st.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				st.logger.Warn("read error", "error", err)
				st.recordError("read")
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil || frame.Type != protocol.FrameEvent {
			st.fail(errors.New("V172").WithDetail("expected an event frame"), false)
			continue
		}
		ev, err := protocol.DecodeEvent(frame.Payload)
		if err != nil {
			st.fail(errors.New("V172").Wrap(err), false)
			continue
		}
		if err := st.handle(ev); err != nil {
			st.logger.Debug("event rejected", "target", ev.Target, "event", ev.Name, "error", err)
			st.fail(err, false)
		}
	}
}

func (st *stream) handle(ev *protocol.Event) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	var muts []memhost.Mutation
	var err error
	if ev.Target == 0 && ev.Name == NextEvent {
		muts, err = st.session.Step()
	} else {
		muts, err = st.session.Dispatch(ev.Target, ev.Name, ev.Value)
	}
	if err != nil {
		return err
	}
	return st.send(muts)
}

// tick advances the fixture every interval until it runs out of steps or
// the connection closes.
func (st *stream) tick(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			st.mu.Lock()
			if st.session.Done() {
				st.mu.Unlock()
				return
			}
			muts, err := st.session.Step()
			if err == nil {
				err = st.send(muts)
			}
			st.mu.Unlock()
			if err != nil {
				st.logger.Warn("timed step failed", "error", err)
				return
			}
		}
	}
}

// send writes one mutation batch. Callers hold mu.
func (st *stream) send(muts []memhost.Mutation) error {
	st.seq++
	payload := protocol.EncodeBatch(&protocol.Batch{Seq: st.seq, Mutations: muts})
	frame := protocol.NewFrame(protocol.FrameMutations, payload)
	frame.Flags = protocol.FlagFinal
	if err := st.write(frame); err != nil {
		return err
	}
	if m := st.server.metrics; m != nil {
		m.RecordBatch(len(muts))
	}
	return nil
}

// fail reports err to the client as an error frame.
func (st *stream) fail(err error, fatal bool) {
	msg := &protocol.ErrorMessage{Code: "V170", Message: err.Error(), Fatal: fatal}
	var re *errors.ReconcileError
	if stderrors.As(err, &re) {
		msg.Code = re.Code
		msg.Message = re.Message
		if re.Detail != "" {
			msg.Message += ": " + re.Detail
		}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if werr := st.write(protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(msg))); werr != nil {
		st.logger.Debug("error frame not delivered", "error", werr)
	}
}

// write sends one frame. Callers hold mu.
func (st *stream) write(f *protocol.Frame) error {
	st.conn.SetWriteDeadline(time.Now().Add(st.server.config.WriteTimeout))
	if err := st.conn.WriteMessage(websocket.BinaryMessage, f.Encode()); err != nil {
		st.recordError("write")
		return err
	}
	return nil
}

func (st *stream) recordError(kind string) {
	if m := st.server.metrics; m != nil {
		m.RecordWebSocketError(kind)
	}
}
