// Package bot is the inbound message pipeline: duplicate suppression,
// per-sender serialization, intent pre-classification and the hand-off
// between session store, engine and dispatcher.
package bot

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"marsa/internal/dispatch"
	"marsa/internal/engine"
	"marsa/internal/session"
	"marsa/pkg/config"
	"marsa/pkg/locale"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

// AdminSurface handles operator chat commands. It reports handled=false
// when the text is not an admin command, in which case the message falls
// through to conversational handling.
type AdminSurface interface {
	HandleCommand(senderID, text string) ([]model.Command, bool)
}

type Processor struct {
	cfg        *config.Config
	engine     *engine.Engine
	sessions   *session.Store
	dispatcher *dispatch.Dispatcher
	admin      AdminSurface
	dedup      *DedupStore
	log        *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	processed  int64
	duplicates int64
	panics     int64
}

func NewProcessor(cfg *config.Config, eng *engine.Engine, sessions *session.Store, dispatcher *dispatch.Dispatcher, admin AdminSurface) *Processor {
	return &Processor{
		cfg:        cfg,
		engine:     eng,
		sessions:   sessions,
		dispatcher: dispatcher,
		admin:      admin,
		dedup:      NewDedupStore(cfg.DedupTTL),
		log:        cfg.Log,
		locks:      make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing one sender's events. Locks are
// created lazily and never removed; the set is bounded by the sender
// population, which rate limiting keeps small.
func (p *Processor) lockFor(senderID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.locks[senderID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[senderID] = l
	}
	return l
}

// Process handles one inbound event end to end. Events from the same
// sender run strictly in arrival order; the sender lock is held through
// dispatch so outbound replies keep that order too.
func (p *Processor) Process(ctx context.Context, ev model.InboundEvent) {
	if ev.SenderID == "" {
		return
	}
	if ev.MessageID != "" && !p.dedup.FirstSeen(ev.MessageID) {
		atomic.AddInt64(&p.duplicates, 1)
		p.log.Info("Duplicate delivery dropped", "message_id", ev.MessageID, "sender", ev.SenderID)
		return
	}

	l := p.lockFor(ev.SenderID)
	l.Lock()
	defer l.Unlock()

	cmds := p.handle(ev)
	atomic.AddInt64(&p.processed, 1)
	p.dispatcher.Dispatch(ctx, cmds)
}

// handle computes the commands for one event. A panic anywhere in the
// transition falls back to the menu with a generic apology; collected
// answers survive because only the state is reset.
func (p *Processor) handle(ev model.InboundEvent) (cmds []model.Command) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(&p.panics, 1)
			p.log.Error("Panic while handling event",
				"sender", ev.SenderID, "panic", r, "stack", string(debug.Stack()))

			lang := locale.English
			if sess, ok := p.sessions.Get(ev.SenderID); ok {
				lang = locale.Normalize(sess.Language)
				p.sessions.Update(ev.SenderID, model.SessionPatch{
					State: model.StatePtr(model.StateMenu),
				})
			}
			cmds = append(p.engine.Apology(ev.SenderID, lang), p.engine.Menu(ev.SenderID, lang)...)
		}
	}()

	if p.admin != nil && p.cfg.IsAdmin(ev.SenderID) {
		if adminCmds, handled := p.admin.HandleCommand(ev.SenderID, ev.Text); handled {
			return adminCmds
		}
	}

	sess, exists := p.sessions.Get(ev.SenderID)

	if ev.Kind == model.EventText {
		switch intent := engine.Classify(ev.Text); intent {
		case engine.IntentGreeting:
			return p.restart(ev.SenderID, sess, exists)
		case engine.IntentCancel:
			if exists && !sess.State.Terminal() {
				patch, cmds := p.engine.CancelFlow(sess)
				p.sessions.Update(ev.SenderID, patch)
				return cmds
			}
			return p.restart(ev.SenderID, sess, exists)
		case engine.IntentFAQLocation, engine.IntentFAQPricing:
			lang := locale.English
			if exists {
				lang = locale.Normalize(sess.Language)
			}
			return p.engine.FAQ(ev.SenderID, lang, intent)
		}
	}

	if !exists {
		p.sessions.CreateOrReset(ev.SenderID, model.StateInitial, "")
		return p.engine.Welcome(ev.SenderID)
	}

	patch, cmds := p.engine.Handle(sess, ev)
	if _, ok := p.sessions.Update(ev.SenderID, patch); !ok {
		// Swept between Get and Update; start over next message.
		p.log.Info("Session vanished during handling", "sender", ev.SenderID)
	}
	return cmds
}

// restart begins a fresh conversation. Known senders keep their language
// and land on the menu; unknown ones get the language selection.
func (p *Processor) restart(senderID string, sess model.Session, exists bool) []model.Command {
	if exists && sess.Language != "" {
		p.sessions.CreateOrReset(senderID, model.StateMenu, sess.Language)
		return p.engine.Menu(senderID, locale.Normalize(sess.Language))
	}
	p.sessions.CreateOrReset(senderID, model.StateInitial, "")
	return p.engine.Welcome(senderID)
}

// DeliverReminder is the scheduler fire callback. It renders and sends
// the reminder outside any session lock.
func (p *Processor) DeliverReminder(ctx context.Context) func(job model.ReminderJob) {
	return func(job model.ReminderJob) {
		p.dispatcher.Dispatch(ctx, []model.Command{p.engine.ReminderMessage(job)})
	}
}

func (p *Processor) Stop() {
	p.dedup.Stop()
}

// Stats reports pipeline counters for the admin surface.
type Stats struct {
	Processed  int64 `json:"processed"`
	Duplicates int64 `json:"duplicates"`
	Panics     int64 `json:"panics"`
}

func (p *Processor) Stats() Stats {
	return Stats{
		Processed:  atomic.LoadInt64(&p.processed),
		Duplicates: atomic.LoadInt64(&p.duplicates),
		Panics:     atomic.LoadInt64(&p.panics),
	}
}
