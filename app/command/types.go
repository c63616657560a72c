package command

import "encoding/json"

// Request is one command frame from the GUI/TUI: a method name plus an
// optional JSON argument.
type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is the reply frame. Error carries only a short user-facing
// reason; full detail stays in the daemon log.
type Response struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Handler executes one command.
type Handler func(params json.RawMessage) (any, error)

// Registry maps method names to handlers.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

func (r *Registry) Register(method string, h Handler) { r.handlers[method] = h }

func (r *Registry) Get(method string) (Handler, bool) {
	h, ok := r.handlers[method]
	return h, ok
}

func (r *Registry) Methods() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
