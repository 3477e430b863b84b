package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Terminal is the event source and display the session reads input from.
type Terminal interface {
	PollEvent() tcell.Event
	Sync()
}

// Session wires the input reader, the NPC ticker and the state owner
// around one Game.
type Session struct {
	game    *Game
	mailbox *Mailbox
	ticker  *Ticker
	term    Terminal
	log     *zap.Logger
}

// NewSession creates a session. A nil term runs without an input reader;
// intents can still be queued with Send.
func NewSession(g *Game, term Terminal, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	mailbox := NewMailbox()
	return &Session{
		game:    g,
		mailbox: mailbox,
		ticker:  NewTicker(g.Routes(), mailbox, g.cfg, log),
		term:    term,
		log:     log,
	}
}

// Send queues an intent for the state owner.
func (s *Session) Send(in Intent) {
	s.mailbox.Send(in)
}

// Run starts the input reader and NPC ticker, then applies intents on the
// calling goroutine until a quit intent arrives or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.log.Info("session started", zap.Stringer("area", s.game.Key()))

	s.game.RefreshNpcRoutes(ctx)
	s.game.Redraw()

	if s.term != nil {
		go s.readInput(ctx)
	}
	go s.ticker.Run(ctx)

	for {
		in, ok := s.mailbox.Receive(ctx)
		if !ok {
			s.log.Info("session cancelled")
			return nil
		}
		if !s.apply(ctx, in) {
			s.log.Info("session stopped", zap.Int("queued", s.mailbox.Len()))
			return nil
		}
	}
}

// apply executes one intent and reports whether the session continues.
func (s *Session) apply(ctx context.Context, in Intent) bool {
	switch in.Kind {
	case IntentQuit:
		return false
	case IntentMove:
		s.game.MovePlayer(ctx, in.Direction)
	case IntentInteract:
		s.game.Interact(ctx)
	case IntentRefresh:
		s.game.RefreshNpcRoutes(ctx)
	case IntentNpcStep:
		s.game.ApplyNpcStep(ctx, in.Step.Key, in.Step.Point)
	case IntentRedraw:
		if s.term != nil {
			s.term.Sync()
		}
		s.game.Redraw()
	}
	return true
}

// readInput forwards terminal events until the screen is finalized.
func (s *Session) readInput(ctx context.Context) {
	for ctx.Err() == nil {
		ev := s.term.PollEvent()
		if ev == nil {
			return
		}
		if in, ok := translate(ev); ok {
			s.mailbox.Send(in)
		}
	}
}
