package picker

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reclaim/docpicker/internal/documents"
	"github.com/reclaim/docpicker/internal/messaging"
)

// Responder is the callback channel to the extension
type Responder interface {
	Send(resp messaging.Response) error
}

type sessionState int

const (
	stateActive sessionState = iota + 1
	stateResolved
)

// session is one in-flight getFile request. A nil session means idle.
type session struct {
	id         uuid.UUID
	token      string
	categories []documents.Category
	state      sessionState
}

// Controller correlates getFile requests with picker outcomes. At most one
// session is active; every callback ID it accepts gets exactly one response.
type Controller struct {
	loop      *Loop
	presenter Presenter
	out       Responder
	log       *zap.Logger

	// Owned by the loop
	current *session
	closed  bool
}

// NewController wires a controller to its UI loop, presenter and callback channel
func NewController(loop *Loop, presenter Presenter, out Responder, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		loop:      loop,
		presenter: presenter,
		out:       out,
		log:       log,
	}
}

// GetFile handles the getFile action. It returns immediately; the outcome is
// sent to callbackID later. Validation runs in the background and hands off
// to the loop, which owns the session.
func (c *Controller) GetFile(args []any, callbackID string) {
	go func() {
		cats, err := documents.Validate(args)
		if err != nil {
			c.log.Info("rejected getFile", zap.String("callback_id", callbackID), zap.Error(err))
			c.send(messaging.Error(callbackID, err))
			return
		}

		if !c.loop.Post(func() { c.startSession(cats, callbackID) }) {
			c.send(messaging.Error(callbackID, ErrClosed))
		}
	}()
}

// Close resolves the active session, if any, with ErrClosed and rejects
// later requests. It must be called while the loop is running and waits
// for the loop to process it.
func (c *Controller) Close() {
	done := make(chan struct{})
	ok := c.loop.Post(func() {
		defer close(done)
		c.closed = true
		if c.current != nil {
			c.resolve(c.current.id, func(token string) messaging.Response {
				return messaging.Error(token, ErrClosed)
			})
		}
	})
	if ok {
		<-done
	}
}

func (c *Controller) startSession(cats []documents.Category, token string) {
	if c.closed {
		c.send(messaging.Error(token, ErrClosed))
		return
	}
	if c.current != nil {
		c.log.Warn("getFile while a selection is in progress",
			zap.String("callback_id", token),
			zap.String("active_callback_id", c.current.token))
		c.send(messaging.Error(token, ErrSessionActive))
		return
	}

	s := &session{
		id:         uuid.New(),
		token:      token,
		categories: cats,
		state:      stateActive,
	}
	c.current = s

	filters := documents.UTIs(cats)
	c.log.Info("presenting picker",
		zap.String("session_id", s.id.String()),
		zap.String("callback_id", token),
		zap.Strings("filters", filters))

	c.presenter.Present(filters, c.handlers(s.id))
}

// handlers builds the outcome handlers for one presentation. Only the first
// call counts; the result is handed back to the loop.
func (c *Controller) handlers(id uuid.UUID) Handlers {
	var once sync.Once
	fire := func(kind string, respond func(token string) messaging.Response) {
		fired := false
		once.Do(func() {
			fired = true
			c.loop.Post(func() { c.resolve(id, respond) })
		})
		if !fired {
			c.log.Warn("duplicate picker outcome ignored",
				zap.String("session_id", id.String()),
				zap.String("outcome", kind))
		}
	}

	return Handlers{
		OnSelected: func(ref string) {
			fire("selected", func(token string) messaging.Response {
				return messaging.OK(token, ref)
			})
		},
		OnCancelled: func() {
			fire("cancelled", func(token string) messaging.Response {
				return messaging.Error(token, ErrUserCancelled)
			})
		},
		OnFailed: func(err error) {
			fire("failed", func(token string) messaging.Response {
				return messaging.Error(token, presentError(err))
			})
		},
	}
}

// resolve delivers the terminal response for session id and returns to idle
func (c *Controller) resolve(id uuid.UUID, respond func(token string) messaging.Response) {
	s := c.current
	if s == nil || s.id != id || s.state != stateActive {
		c.log.Debug("stale picker outcome ignored", zap.String("session_id", id.String()))
		return
	}

	s.state = stateResolved
	resp := respond(s.token)
	c.log.Info("session resolved",
		zap.String("session_id", s.id.String()),
		zap.String("callback_id", s.token),
		zap.String("status", string(resp.Status)))
	c.send(resp)
	c.current = nil
}

func (c *Controller) send(resp messaging.Response) {
	if err := c.out.Send(resp); err != nil {
		c.log.Error("failed to send response",
			zap.String("callback_id", resp.CallbackID),
			zap.Error(err))
	}
}
