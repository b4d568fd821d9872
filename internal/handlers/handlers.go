package handlers

import (
	"errors"

	"github.com/reclaim/docpicker/internal/messaging"
)

// ErrMissingCallbackID is returned for getFile requests that cannot be answered later
var ErrMissingCallbackID = errors.New("Missing callbackId.")

// FilePicker starts an asynchronous document selection
type FilePicker interface {
	GetFile(args []any, callbackID string)
}

// Handle dispatches one message. It returns the immediate response, or nil
// when the response is delivered later through the callback channel.
func Handle(msg *messaging.Message, picker FilePicker) *messaging.Response {
	switch msg.Action {
	case "getFile":
		return HandleGetFile(msg, picker)
	case "ping":
		resp := messaging.OK(msg.CallbackID, "pong")
		return &resp
	default:
		resp := messaging.Response{
			CallbackID: msg.CallbackID,
			Status:     messaging.StatusError,
			Payload:    "Unknown action: " + msg.Action,
		}
		return &resp
	}
}

// HandleGetFile hands a getFile request to the picker. The result arrives
// later, keyed by the request's callback ID.
func HandleGetFile(msg *messaging.Message, picker FilePicker) *messaging.Response {
	if msg.CallbackID == "" {
		resp := messaging.Error("", ErrMissingCallbackID)
		return &resp
	}

	picker.GetFile(msg.Arguments, msg.CallbackID)
	return nil
}
