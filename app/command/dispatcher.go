package command

import (
	"errors"

	"foxus/app/apperr"
	"foxus/logger"
)

// Dispatch runs the request against the registry and folds the result
// into a response frame. Validation and not-found reasons pass through
// to the caller; store and unexpected failures are logged in full and
// collapsed to a generic message so internals never cross the
// boundary.
func Dispatch(reg *Registry, req Request) Response {
	h, ok := reg.Get(req.Method)
	if !ok {
		logger.Errorf("unknown command: %s", req.Method)
		return Response{Error: "unknown command"}
	}

	data, err := h(req.Params)
	if err != nil {
		return Response{Error: userFacing(req.Method, err)}
	}
	return Response{OK: true, Data: data}
}

func userFacing(method string, err error) string {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrAlreadyExists),
		errors.Is(err, apperr.ErrInUse):
		logger.Infof("command %s rejected: %v", method, err)
		return err.Error()
	default:
		logger.Errorf("command %s failed: %v", method, err)
		return "command failed"
	}
}
