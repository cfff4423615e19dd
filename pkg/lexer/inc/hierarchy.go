package inc

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inclex/pkg/lexer"
)

// EventType distinguishes hierarchy events.
type EventType int

const (
	// EventModification carries the change tree of an incremental update.
	EventModification EventType = iota

	// EventRebuild reports that the hierarchy was dropped after a failed
	// update and is rebuilt from scratch on next access.
	EventRebuild
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventModification:
		return "modification"
	case EventRebuild:
		return "rebuild"
	default:
		return "unknown"
	}
}

// TokenHierarchyEvent is delivered to listeners after every update.
type TokenHierarchyEvent struct {
	Type EventType
	Info *TokenHierarchyEventInfo

	// Change is the frozen change of the root list; nil for EventRebuild.
	Change *TokenChangeInfo
}

// Listener observes hierarchy events. Listeners may retain the event and its
// change tree.
type Listener interface {
	TokenHierarchyChanged(ev *TokenHierarchyEvent)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev *TokenHierarchyEvent)

// TokenHierarchyChanged implements Listener.
func (f ListenerFunc) TokenHierarchyChanged(ev *TokenHierarchyEvent) { f(ev) }

// Outcome is the result kind of an update.
type Outcome int

const (
	// OutcomeIncremental means the hierarchy was updated in place.
	OutcomeIncremental Outcome = iota

	// OutcomeRebuildRequired means the update failed and the hierarchy was
	// dropped; it is rebuilt from the current text on next access.
	OutcomeRebuildRequired
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == OutcomeRebuildRequired {
		return "rebuild-required"
	}
	return "incremental"
}

// UpdateResult is returned by TokenHierarchy.Update.
type UpdateResult struct {
	Outcome Outcome

	// Event is the event delivered to listeners, or nil when the hierarchy
	// had not been built yet and there was nothing to update.
	Event *TokenHierarchyEvent

	// Err is a *RelexError when Outcome is OutcomeRebuildRequired.
	Err error
}

// RebuildRequired reports whether the update fell back to a full rebuild.
func (r UpdateResult) RebuildRequired() bool { return r.Outcome == OutcomeRebuildRequired }

// Options configures a TokenHierarchy.
type Options struct {
	// Logger receives debug output of updates that do not pass their own
	// logger. Nil discards.
	Logger *log.Logger

	// MaxFlySequenceLength bounds runs of consecutive flyweight tokens.
	MaxFlySequenceLength int
}

// TokenHierarchy is the root token list of a document together with all
// embedded lists, kept in sync with the text through Update.
//
// A hierarchy is not safe for concurrent use. Queries and updates must be
// serialized by the lock discipline of the text source.
type TokenHierarchy struct {
	language       lexer.Language
	text           lexer.Text
	logger         *log.Logger
	maxFlySequence int

	root      *IncTokenList
	joins     map[string]*TokenListList
	listeners []listenerEntry
	nextID    int
	builds    int
}

type listenerEntry struct {
	id int
	l  Listener
}

// NewTokenHierarchy creates a hierarchy lexing text with language. Lexing is
// deferred until the token list is first requested.
func NewTokenHierarchy(text lexer.Text, language lexer.Language, opts Options) *TokenHierarchy {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	maxFly := opts.MaxFlySequenceLength
	if maxFly <= 0 {
		maxFly = lexer.DefaultMaxFlySequenceLength
	}
	return &TokenHierarchy{
		language:       language,
		text:           text,
		logger:         logger,
		maxFlySequence: maxFly,
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Language returns the root language.
func (h *TokenHierarchy) Language() lexer.Language { return h.language }

// Text returns the text the hierarchy was last updated to.
func (h *TokenHierarchy) Text() lexer.Text { return h.text }

// IsActive reports whether the token lists are currently built.
func (h *TokenHierarchy) IsActive() bool { return h.root != nil }

// Builds returns how many times the hierarchy was lexed from scratch.
func (h *TokenHierarchy) Builds() int { return h.builds }

// TokenList returns the root token list, lexing the text first when the
// hierarchy is not built.
func (h *TokenHierarchy) TokenList() (*IncTokenList, error) {
	if h.root != nil {
		return h.root, nil
	}
	if err := h.build(h.logger); err != nil {
		return nil, err
	}
	return h.root, nil
}

// JoinedSections returns the joined sections of a language path such as
// "markup/expr", or nil when there are none.
func (h *TokenHierarchy) JoinedSections(path string) *TokenListList {
	if h.joins == nil {
		return nil
	}
	return h.joins[path]
}

// AddListener registers l for hierarchy events and returns a function that
// unregisters it.
func (h *TokenHierarchy) AddListener(l Listener) (remove func()) {
	h.nextID++
	id := h.nextID
	h.listeners = append(h.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range h.listeners {
			if e.id == id {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

// Update brings the hierarchy in sync with the edit described by info.
// logger receives debug output of this update; nil uses the hierarchy's
// logger.
//
// Any failure inside the relex, including a panicking lexer, drops the
// hierarchy and reports OutcomeRebuildRequired with a *RelexError. Listeners
// then get an EventRebuild event instead of a partial change tree.
func (h *TokenHierarchy) Update(info *TokenHierarchyEventInfo, logger *log.Logger) UpdateResult {
	if logger == nil {
		logger = h.logger
	}

	h.text = info.Input()
	if h.root == nil {
		return UpdateResult{Outcome: OutcomeIncremental}
	}

	change, err := h.relexSafely(info, logger)
	if err != nil {
		return h.fail(info, err, logger)
	}

	ev := &TokenHierarchyEvent{Type: EventModification, Info: info, Change: change.ChangeInfo()}
	h.fire(ev)
	return UpdateResult{Outcome: OutcomeIncremental, Event: ev}
}

func (h *TokenHierarchy) relexSafely(info *TokenHierarchyEventInfo, logger *log.Logger) (
	change *TokenListChange, err error,
) {
	defer func() {
		if r := recover(); r != nil {
			change, err = nil, recovered(r)
		}
	}()
	return newUpdater(h, info, logger).run()
}

func (h *TokenHierarchy) fail(info *TokenHierarchyEventInfo, cause error, logger *log.Logger) UpdateResult {
	h.root = nil
	h.joins = nil

	relexErr := &RelexError{Language: h.language.Name(), ModOffset: info.ModOffset(), Cause: cause}
	logger.Warn("incremental relex failed, hierarchy will be rebuilt", "error", cause)

	ev := &TokenHierarchyEvent{Type: EventRebuild, Info: info}
	h.fire(ev)
	return UpdateResult{Outcome: OutcomeRebuildRequired, Event: ev, Err: relexErr}
}

func (h *TokenHierarchy) build(logger *log.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
		if err != nil {
			h.root = nil
			h.joins = nil
		}
	}()

	h.root = newIncTokenList(h)
	h.joins = make(map[string]*TokenListList)
	h.builds++

	if err := newUpdater(h, nil, logger).build(); err != nil {
		return err
	}
	logger.Debug("built token hierarchy",
		"language", h.language.Name(),
		"tokens", h.root.TokenCount(),
		"length", h.text.Len())
	return nil
}

func (h *TokenHierarchy) fire(ev *TokenHierarchyEvent) {
	for _, e := range h.listeners {
		e.l.TokenHierarchyChanged(ev)
	}
}
