package proto

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// HandlerFunc is the callback signature for message handlers.
// The session pointer is passed as an opaque interface to avoid import cycles.
type HandlerFunc func(sess any, data json.RawMessage)

type handlerEntry struct {
	fn            HandlerFunc
	allowedStates map[SessionState]bool
}

// Registry maps message types to handlers with state-based access control.
type Registry struct {
	handlers map[string]*handlerEntry
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]*handlerEntry),
		log:      log,
	}
}

// Register maps a message type to a handler, restricted to the given session states.
func (reg *Registry) Register(msgType string, states []SessionState, fn HandlerFunc) {
	allowed := make(map[SessionState]bool, len(states))
	for _, s := range states {
		allowed[s] = true
	}
	reg.handlers[msgType] = &handlerEntry{
		fn:            fn,
		allowedStates: allowed,
	}
}

// Dispatch decodes the envelope, validates the session state, and calls the
// handler. Unknown message types are ignored; a type arriving in the wrong
// state is an error.
func (reg *Registry) Dispatch(sess any, state SessionState, frame []byte) error {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return fmt.Errorf("malformed envelope: %w", err)
	}
	if env.Type == "" {
		return fmt.Errorf("envelope without type")
	}
	reg.log.Debug("收到訊息",
		zap.String("type", env.Type),
		zap.Int("size", len(frame)),
		zap.String("state", state.String()),
	)

	entry, ok := reg.handlers[env.Type]
	if !ok {
		reg.log.Debug("未知訊息類型", zap.String("type", env.Type))
		return nil // silently ignore unknown types
	}

	if !entry.allowedStates[state] {
		reg.log.Warn("訊息類型在此狀態下不允許",
			zap.String("type", env.Type),
			zap.String("state", state.String()),
		)
		return fmt.Errorf("message %q not allowed in state %s", env.Type, state)
	}

	return reg.safeCall(entry.fn, sess, env)
}

// safeCall executes a handler with panic recovery to prevent a single
// bad message from crashing the entire game loop.
func (reg *Registry) safeCall(fn HandlerFunc, sess any, env Envelope) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("處理器 panic 已恢復",
				zap.String("type", env.Type),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for message %q: %v", env.Type, rec)
		}
	}()
	fn(sess, env.Data)
	return nil
}
