package app

import (
	"context"
	"sync/atomic"

	"github.com/dshills/ledmoji/internal/compose"
	"github.com/dshills/ledmoji/internal/config"
	"github.com/dshills/ledmoji/internal/glyph"
	"github.com/dshills/ledmoji/internal/segment"
	"github.com/dshills/ledmoji/internal/transport"
)

// requestBuffer bounds the inbound request channel. The broker client keeps
// its own buffering; anything beyond this is dropped with a warning rather
// than blocking the receive path.
const requestBuffer = 64

// Transport is the broker connection the daemon renders through. Satisfied
// by *transport.Adapter; tests substitute a fake.
type Transport interface {
	// Connect establishes the connection and the input subscription.
	Connect(ctx context.Context) error
	// OnMessage registers the inbound handler. Called before Connect.
	OnMessage(fn func(payload []byte))
	// Publish sends a frame payload to a topic.
	Publish(topic string, payload []byte) error
	// Close tears the connection down.
	Close()
}

// Application wires the render pipeline to the broker: inbound messages are
// decoded, segmented, composed and published, one request at a time, in
// arrival order.
type Application struct {
	cfg  *config.Config
	log  *Logger
	trns Transport

	store *glyph.Store
	seg   *segment.Segmenter
	comp  *compose.Compositor

	// requests feeds the single render worker.
	requests chan []byte

	// epoch identifies the most recent request. Frames carry the epoch they
	// were composed under; stale frames are discarded before publish.
	epoch atomic.Uint64

	running atomic.Bool

	// scrollCancel/scrollDone track the in-flight scroll emission, if any.
	// Only the render worker touches them.
	scrollCancel context.CancelFunc
	scrollDone   chan struct{}
}

// New creates an Application, initializing components in dependency order.
// A missing or unreadable asset directory fails here; the daemon must not
// start without its glyphs.
func New(cfg *config.Config, log *Logger) (*Application, error) {
	if log == nil {
		log = NullLogger
	}

	store, err := glyph.NewStore(cfg.EmojiDir, cfg.CanvasHeight)
	if err != nil {
		return nil, NewComponentError("glyph store", "init", err)
	}
	log.Info("glyph store: %d assets, %d multi-codepoint sequences",
		store.Len(), len(store.Sequences()))

	policy, err := compose.ParsePolicy(cfg.Overflow)
	if err != nil {
		return nil, NewComponentError("compositor", "init", err)
	}
	placeholder, err := compose.ParsePlaceholder(cfg.Placeholder)
	if err != nil {
		return nil, NewComponentError("compositor", "init", err)
	}

	app := &Application{
		cfg:      cfg,
		log:      log,
		store:    store,
		seg:      segment.New(store.Sequences()),
		requests: make(chan []byte, requestBuffer),
	}
	app.comp = compose.New(store, compose.Config{
		Width:       cfg.CanvasWidth,
		Height:      cfg.CanvasHeight,
		Spacing:     cfg.GlyphSpacing,
		Policy:      policy,
		Placeholder: placeholder,
	})

	app.trns = transport.New(transport.Config{
		BrokerURL:      cfg.BrokerURL,
		ClientID:       cfg.ClientID,
		InputTopic:     cfg.InputTopic,
		ConnectTimeout: cfg.ConnectTimeout,
		PublishTimeout: cfg.PublishTimeout,
		ReconnectMin:   cfg.ReconnectMin,
		ReconnectMax:   cfg.ReconnectMax,
		KeepAlive:      cfg.ConnectTimeout / 2,
	}, log.WithComponent("transport"))

	return app, nil
}

// SetTransport replaces the broker transport. Must be called before Run.
func (app *Application) SetTransport(t Transport) {
	app.trns = t
}

// Run connects to the broker and processes render requests until ctx is
// done. Transient broker failures are absorbed by the transport; Run only
// returns on cancellation or a second concurrent Run call.
func (app *Application) Run(ctx context.Context) error {
	if app.trns == nil {
		return ErrNoTransport
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.trns.OnMessage(app.enqueue)
	if err := app.trns.Connect(ctx); err != nil {
		return NewComponentError("transport", "connect", err)
	}
	defer app.trns.Close()

	app.log.Info("render loop started: %s -> %s", app.cfg.InputTopic, app.cfg.OutputTopic)

	for {
		select {
		case <-ctx.Done():
			app.cancelScroll()
			app.log.Info("render loop stopped")
			return nil
		case payload := <-app.requests:
			app.handle(ctx, payload)
		}
	}
}

// enqueue hands an inbound payload to the render worker. Called from the
// transport's receive goroutine; never blocks it.
func (app *Application) enqueue(payload []byte) {
	select {
	case app.requests <- payload:
	default:
		app.log.Warn("request buffer full, dropping inbound message")
	}
}
