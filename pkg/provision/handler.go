package provision

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Event is the raw custom resource invocation as delivered by the
// orchestrator.
type Event struct {
	RequestType        RequestType    `json:"RequestType"`
	ResponseURL        string         `json:"ResponseURL"`
	StackID            string         `json:"StackId"`
	RequestID          string         `json:"RequestId"`
	LogicalResourceID  string         `json:"LogicalResourceId"`
	PhysicalResourceID string         `json:"PhysicalResourceId,omitempty"`
	ResourceProperties map[string]any `json:"ResourceProperties"`
}

// physicalID returns a stable physical resource id. Updates and deletes
// carry the id assigned at create time; echoing a different one back would
// make the orchestrator schedule a replacement.
func (e Event) physicalID() string {
	if e.PhysicalResourceID != "" {
		return e.PhysicalResourceID
	}
	return e.LogicalResourceID + "-users"
}

// Handler is the orchestrator boundary: it normalizes the raw event, runs
// the engine, and guarantees exactly one outcome callback per invocation,
// whatever happens in between.
type Handler struct {
	engine   *Engine
	reporter Reporter
	groups   []string
	log      zerolog.Logger
}

// NewHandler wires the engine and reporter behind the invocation entrypoint.
// groups is the platform's closed set of recognized access groups, in the
// order they should be processed.
func NewHandler(engine *Engine, reporter Reporter, groups []string, log zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		reporter: reporter,
		groups:   groups,
		log:      log,
	}
}

// Handle processes one invocation end to end. The returned error reflects
// callback delivery only; engine failures are reported through the callback
// itself, as FAILED outcomes.
func (h *Handler) Handle(ctx context.Context, event Event) error {
	h.log.Info().
		Str("request_type", string(event.RequestType)).
		Str("stack_id", event.StackID).
		Str("request_id", event.RequestID).
		Msg("invocation received")

	result := h.invoke(ctx, event)

	if err := h.reporter.Report(ctx, event, result); err != nil {
		h.log.Error().Err(err).Msg("outcome callback failed")
		return err
	}
	h.log.Info().Str("status", string(result.Status)).Msg("outcome reported")
	return nil
}

// invoke produces the invocation's single Result. A panic anywhere below is
// folded into a FAILED result so the callback in Handle still goes out.
func (h *Handler) invoke(ctx context.Context, event Event) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("invocation panicked")
			result = FailureResult(ErrInternal(fmt.Sprintf("invocation panicked: %v", r)))
		}
	}()

	membership, err := Normalize(event.ResourceProperties, h.groups)
	if err != nil {
		return FailureResult(err)
	}
	return h.engine.Run(ctx, Request{Type: event.RequestType, Membership: membership})
}
