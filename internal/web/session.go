package web

import (
	"context"
	"log"
	"time"

	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/store"
)

// Msg is anything the session loop accepts on its inbox.
type Msg interface{ isSessionMsg() }

// FromClient carries a decoded client command. Seq is the browser's input
// counter, echoed back so the page can drop replies to older buffers.
type FromClient struct {
	Cmd game.Command
	Seq uint64
}

func (FromClient) isSessionMsg() {}

// BadRequest reports an undecodable client message back to the client.
type BadRequest struct {
	Err string
}

func (BadRequest) isSessionMsg() {}

// GetState reflects the session state without data races.
type GetState struct {
	Reply chan game.State
}

func (GetState) isSessionMsg() {}

type timerFired struct {
	id  uint64
	cmd game.Command
}

func (timerFired) isSessionMsg() {}

// Session owns one connection's game state. All mutations happen on its
// loop goroutine; timers and the socket reader post to the inbox.
type Session struct {
	inbox  chan Msg
	out    chan ServerMessage
	engine *game.Engine
	store  store.HighScoreStore
	state  game.State

	// inputSeq is the highest input sequence number seen from the client.
	inputSeq uint64

	timers    map[uint64]*time.Timer
	nextTimer uint64

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession starts the session loop. The first message on Outbox is the
// initial idle snapshot.
func NewSession(parent context.Context, engine *game.Engine, st store.HighScoreStore, level generator.Level) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		inbox:  make(chan Msg, 64),
		out:    make(chan ServerMessage, 16),
		engine: engine,
		store:  st,
		state:  game.NewState(level, store.Load(ctx, st)),
		timers: make(map[uint64]*time.Timer),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.loop()
	return s
}

// Send posts a message to the loop. It reports false once the session is closed.
func (s *Session) Send(m Msg) bool {
	select {
	case s.inbox <- m:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// Outbox yields server messages; it is closed when the session stops.
func (s *Session) Outbox() <-chan ServerMessage { return s.out }

// Done is closed once the loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Close stops the loop and waits for it.
func (s *Session) Close() {
	s.cancel()
	<-s.done
}

func (s *Session) loop() {
	defer close(s.done)
	s.emit(ServerMessage{Type: msgState, State: s.snapshot()})
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return
		case m := <-s.inbox:
			switch msg := m.(type) {
			case FromClient:
				if msg.Seq > s.inputSeq {
					s.inputSeq = msg.Seq
				}
				s.apply(msg.Cmd)
			case timerFired:
				delete(s.timers, msg.id)
				if msg.cmd.Generation != s.state.Generation {
					continue
				}
				s.apply(msg.cmd)
			case BadRequest:
				s.emit(ServerMessage{Type: msgError, Error: msg.Err})
			case GetState:
				msg.Reply <- s.state
			}
		}
	}
}

func (s *Session) apply(cmd game.Command) {
	switch cmd.Type {
	case game.CmdStart, game.CmdRetry, game.CmdReturn:
		// Other sessions may have raised the stored best since we last looked.
		s.state = s.state.WithStoredHighScore(store.Load(s.ctx, s.store))
	}
	prev := s.state.Generation
	var res game.Result
	s.state, res = s.engine.Apply(s.state, cmd)
	if s.state.Generation != prev {
		s.stopTimers()
	}
	for _, t := range res.Timers {
		s.schedule(t)
	}
	if res.Persist {
		best := store.Save(s.ctx, s.store, s.state.SessionID, s.state.Stats.HighScore)
		s.state, res = game.SyncHighScore(s.state, res, best)
	}
	s.logEvents(res.Events)
	s.emit(ServerMessage{
		Type:   msgState,
		State:  s.snapshot(),
		Events: newEventViews(res.Events),
	})
}

func (s *Session) logEvents(events []game.Event) {
	for _, e := range events {
		switch e.Type {
		case game.EvtRoundStarted:
			log.Printf("session %s: round started (level %s)", s.state.SessionID, s.state.Level)
		case game.EvtRoundEnded:
			log.Printf("session %s: round ended score=%d best=%d", s.state.SessionID, e.Summary.Score, e.Summary.HighScore)
		}
	}
}

func (s *Session) snapshot() *Snapshot {
	snap := NewSnapshot(s.state)
	snap.InputSeq = s.inputSeq
	return snap
}

func (s *Session) schedule(t game.Timer) {
	s.nextTimer++
	id := s.nextTimer
	cmd := t.Command()
	s.timers[id] = time.AfterFunc(t.After, func() {
		s.Send(timerFired{id: id, cmd: cmd})
	})
}

func (s *Session) stopTimers() {
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Session) emit(msg ServerMessage) {
	select {
	case s.out <- msg:
	case <-s.ctx.Done():
	}
}

func (s *Session) shutdown() {
	s.stopTimers()
	close(s.out)
}
