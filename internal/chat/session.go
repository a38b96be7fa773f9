package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rvasani/shopcopilot/internal/metrics"
)

// FallbackReply is appended in place of a real reply when a turn fails for
// any reason (transport error, bad status, undecodable payload).
const FallbackReply = "Sorry — something went wrong while contacting the backend."

var (
	// ErrEmptySubmit means there was neither text nor an attachment to
	// send. The log is untouched and no request is made.
	ErrEmptySubmit = errors.New("nothing to submit")

	// ErrTurnInFlight means a previous turn is still awaiting its
	// response. Turns are serialized through a single in-flight slot so
	// bot replies always land in dispatch order.
	ErrTurnInFlight = errors.New("turn already in flight")
)

// Backend is the network boundary the session dispatches turns through.
type Backend interface {
	Chat(ctx context.Context, req TurnRequest) (TurnReply, error)
}

// Turn is one in-flight submission: the composed request plus the sequence
// number used to match its eventual response.
type Turn struct {
	id  string
	seq uint64
	req TurnRequest
}

// ID returns the turn's unique id, used for log correlation.
func (t *Turn) ID() string { return t.id }

// Request returns the composed outbound request.
func (t *Turn) Request() TurnRequest { return t.req }

// Session owns one conversation: the log, the pending attachment, and the
// turn protocol. All methods except Dispatch mutate session state and must
// be called from the single goroutine that owns the session; Dispatch does
// network I/O only and may run elsewhere (a tea.Cmd goroutine in the TUI).
type Session struct {
	backend Backend
	log     *Log
	attach  *AttachmentManager
	logger  *slog.Logger
	stats   *metrics.Collector

	token string

	seq      uint64
	inflight uint64 // seq of the awaiting turn, 0 when idle
}

// NewSession creates a session on top of the given backend. The logger is
// the diagnostics sink for turn failures; nil means discard.
func NewSession(backend Backend, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		backend: backend,
		log:     NewLog(),
		attach:  NewAttachmentManager(),
		logger:  logger,
		stats:   metrics.NewCollector(),
	}
}

// SetToken sets the opaque auth token attached to subsequent requests. An
// empty token means anonymous mode.
func (s *Session) SetToken(token string) {
	s.token = token
}

// Log returns the conversation log.
func (s *Session) Log() *Log { return s.log }

// Attachments returns the pending-attachment manager.
func (s *Session) Attachments() *AttachmentManager { return s.attach }

// Stats returns the session's turn metrics collector.
func (s *Session) Stats() *metrics.Collector { return s.stats }

// Awaiting reports whether a turn is currently awaiting its response.
func (s *Session) Awaiting() bool { return s.inflight != 0 }

// Begin starts a turn: it validates the submission, appends the optimistic
// user record, consumes the pending attachment, and composes the request.
// The caller clears its input field once Begin succeeds; nothing here waits
// on the network, so the visible state updates regardless of latency.
//
// Returns ErrEmptySubmit when there is nothing to send and ErrTurnInFlight
// while a previous turn is unresolved; in both cases the log is untouched.
func (s *Session) Begin(text string) (*Turn, error) {
	if s.inflight != 0 {
		return nil, ErrTurnInFlight
	}
	if strings.TrimSpace(text) == "" && s.attach.Pending() == nil {
		return nil, ErrEmptySubmit
	}

	att := s.attach.Take()

	rec := MessageRecord{Role: RoleUser, Text: text}
	req := TurnRequest{Message: text, Token: s.token}
	if att != nil {
		rec.Image = att.Preview()
		req.ImageName = att.Name
		req.ImageData = att.Data
	}
	s.log.Append(rec)

	s.seq++
	s.inflight = s.seq
	return &Turn{id: uuid.NewString(), seq: s.seq, req: req}, nil
}

// Dispatch sends the turn's single request and returns the raw outcome. It
// performs no session mutation and never retries.
func (s *Session) Dispatch(ctx context.Context, t *Turn) (TurnReply, error) {
	start := time.Now()
	reply, err := s.backend.Chat(ctx, t.req)
	s.stats.Record(metrics.OpChatTurn, time.Since(start), err != nil)
	return reply, err
}

// Reconcile resolves a turn: exactly one bot record is appended, either the
// reply or the fixed fallback. The raw error goes to the diagnostics logger
// only; nothing propagates, and the session stays usable. A turn that is not
// the current in-flight one (stale or already resolved) is ignored and the
// second return value is false.
func (s *Session) Reconcile(t *Turn, reply TurnReply, err error) (MessageRecord, bool) {
	if t == nil || t.seq != s.inflight {
		return MessageRecord{}, false
	}
	s.inflight = 0

	var rec MessageRecord
	if err != nil {
		s.logger.Error("chat turn failed", "turn", t.id, "error", err)
		rec = MessageRecord{Role: RoleBot, Text: FallbackReply}
	} else {
		rec = MessageRecord{Role: RoleBot, Text: reply.Text, Products: reply.Products}
	}
	s.log.Append(rec)
	return rec, true
}

// Submit runs a whole turn synchronously: Begin, Dispatch, Reconcile. Used
// by the one-shot CLI path; the TUI drives the three phases itself so the
// network call can run off the update loop.
func (s *Session) Submit(ctx context.Context, text string) (MessageRecord, error) {
	t, err := s.Begin(text)
	if err != nil {
		return MessageRecord{}, err
	}
	reply, derr := s.Dispatch(ctx, t)
	rec, _ := s.Reconcile(t, reply, derr)
	return rec, nil
}

// Close resets the log, releasing any preview handles still alive.
func (s *Session) Close() {
	s.log.Reset()
	s.attach.Clear()
}
