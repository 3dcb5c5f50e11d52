package nativemsg

import (
	"github.com/ansetechnoapp/syncmark-helper/internal/model"
)

// Status is the outcome reported to the extension.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
	StatusDisabled Status = "disabled"
)

// Messages sent with non-success responses.
const (
	DisabledMessage   = "Sync is disabled by user"
	ReadErrorMessage  = "Could not read local bookmarks file"
	WriteErrorMessage = "Could not write bookmarks file"
)

// Request is a sync request from the extension. A missing "bookmarks"
// member is an empty set.
type Request struct {
	Bookmarks model.Set `json:"bookmarks"`
}

// Response is the reply to a Request.
type Response struct {
	Status    Status    `json:"status"`
	Bookmarks model.Set `json:"bookmarks,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Success returns a success response carrying the merged set.
func Success(set model.Set) Response {
	if set == nil {
		set = model.NewSet()
	}
	return Response{Status: StatusSuccess, Bookmarks: set}
}

// Error returns an error response with the given message.
func Error(message string) Response {
	return Response{Status: StatusError, Message: message}
}

// Disabled returns the response sent while sync is turned off.
func Disabled() Response {
	return Response{Status: StatusDisabled, Message: DisabledMessage}
}

// MarshalJSON implements json.Marshaler. A success response always carries
// "bookmarks", even when empty; other responses never do.
func (r Response) MarshalJSON() ([]byte, error) {
	type wire struct {
		Status    Status     `json:"status"`
		Bookmarks *model.Set `json:"bookmarks,omitempty"`
		Message   string     `json:"message,omitempty"`
	}
	w := wire{Status: r.Status, Message: r.Message}
	if r.Status == StatusSuccess {
		set := r.Bookmarks
		if set == nil {
			set = model.NewSet()
		}
		w.Bookmarks = &set
	}
	return Marshal(w)
}
