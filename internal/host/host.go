// Package host runs the native messaging loop: receive a bookmark set from
// the browser, merge it into the local store, reply with the merged set.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ansetechnoapp/syncmark-helper/internal/model"
	"github.com/ansetechnoapp/syncmark-helper/internal/nativemsg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is a stage of the host loop.
type State int

const (
	WaitingForMessage State = iota
	Gating
	Disabled
	Processing
	Responding
	Closed
)

func (s State) String() string {
	switch s {
	case WaitingForMessage:
		return "waiting"
	case Gating:
		return "gating"
	case Disabled:
		return "disabled"
	case Processing:
		return "processing"
	case Responding:
		return "responding"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// OversizeMessage replaces a success reply that exceeds the outbound limit.
const OversizeMessage = "Merged bookmarks exceed the native messaging size limit"

// Gate reports whether sync is enabled.
type Gate interface {
	IsEnabled() bool
}

// Store persists the local bookmark set.
type Store interface {
	Load() (model.Set, error)
	Save(set model.Set) error
}

// Receiver decodes the next inbound message.
type Receiver interface {
	Receive(v any) error
}

// Sender writes one outbound message.
type Sender interface {
	Send(v any) error
}

// Host serves one browser peer until it closes the stream.
type Host struct {
	gate  Gate
	store Store
	in    Receiver
	out   Sender
	log   zerolog.Logger

	state State
	// OnState, if set, is called on every state change.
	OnState func(State)
}

// New creates a Host. The gate is consulted for every message.
func New(gate Gate, store Store, in Receiver, out Sender, logger zerolog.Logger) *Host {
	return &Host{
		gate:  gate,
		store: store,
		in:    in,
		out:   out,
		log:   logger,
		state: WaitingForMessage,
	}
}

// State returns the current state.
func (h *Host) State() State {
	return h.state
}

func (h *Host) setState(s State) {
	h.state = s
	if h.OnState != nil {
		h.OnState(s)
	}
}

// Run processes messages until the peer closes the stream, which returns
// nil. A fatal transport error or a failed send ends the loop with that
// error. ctx is checked between messages; a cancelled ctx returns nil.
func (h *Host) Run(ctx context.Context) error {
	h.log.Info().Msg("native host started")
	defer h.setState(Closed)

	for {
		if ctx.Err() != nil {
			h.log.Info().Msg("native host stopped")
			return nil
		}

		h.setState(WaitingForMessage)
		var req nativemsg.Request
		err := h.in.Receive(&req)
		switch {
		case errors.Is(err, io.EOF):
			h.log.Info().Msg("channel closed by browser")
			return nil

		case err != nil && !nativemsg.IsFatal(err):
			h.log.Warn().Err(err).Msg("discarding undecodable message")
			if err := h.respond(nativemsg.Error(err.Error()), h.log); err != nil {
				return err
			}
			continue

		case err != nil:
			h.log.Error().Err(err).Msg("cannot read from browser")
			if sendErr := h.out.Send(nativemsg.Error(err.Error())); sendErr != nil {
				h.log.Debug().Err(sendErr).Msg("could not report read failure")
			}
			return err
		}

		log := h.log.With().Str("cycle", uuid.NewString()).Logger()
		log.Info().Int("incoming", len(req.Bookmarks)).Msg("message received")

		if err := h.respond(h.handle(req, log), log); err != nil {
			return err
		}
	}
}

// handle computes the response to one request.
func (h *Host) handle(req nativemsg.Request, log zerolog.Logger) nativemsg.Response {
	h.setState(Gating)
	if !h.gate.IsEnabled() {
		h.setState(Disabled)
		log.Info().Msg("sync disabled, store left untouched")
		return nativemsg.Disabled()
	}

	h.setState(Processing)
	local, err := h.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("could not load local bookmarks")
		return nativemsg.Error(nativemsg.ReadErrorMessage)
	}

	merged, stats := model.Reconcile(local, req.Bookmarks)
	log.Info().
		Int("local", stats.Local).
		Int("incoming", stats.Incoming).
		Int("merged", stats.Merged).
		Int("added", stats.Added).
		Int("updated", stats.Updated).
		Int("dropped", stats.Dropped).
		Msg("bookmarks merged")

	if err := h.store.Save(merged); err != nil {
		log.Error().Err(err).Msg("could not save bookmarks")
		return nativemsg.Error(fmt.Sprintf("%s: %v", nativemsg.WriteErrorMessage, err))
	}
	log.Info().Msg("bookmarks saved")

	return nativemsg.Success(merged)
}

// respond sends resp. A success reply over the size limit is replaced by
// an error reply.
func (h *Host) respond(resp nativemsg.Response, log zerolog.Logger) error {
	h.setState(Responding)
	err := h.out.Send(resp)
	if errors.Is(err, nativemsg.ErrPayloadTooLarge) && resp.Status == nativemsg.StatusSuccess {
		log.Warn().Err(err).Msg("merged set too large to send back")
		err = h.out.Send(nativemsg.Error(OversizeMessage))
	}
	if err != nil {
		log.Error().Err(err).Msg("could not send response")
		return fmt.Errorf("host: sending response: %w", err)
	}
	log.Debug().Str("status", string(resp.Status)).Msg("response sent")
	return nil
}
