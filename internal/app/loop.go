package app

import (
	"context"
	"time"

	"github.com/dshills/ledmoji/internal/compose"
	"github.com/dshills/ledmoji/internal/request"
)

// handle runs one render pass: decode, segment, compose, publish. A
// malformed payload is logged and dropped; the loop continues. A new
// request supersedes any in-progress scroll emission before rendering.
func (app *Application) handle(ctx context.Context, payload []byte) {
	req, err := request.Decode(payload)
	if err != nil {
		app.log.Warn("dropping request: %v", err)
		return
	}

	// Wait for the in-flight scroll frame to finish publishing, then take
	// over. No frame is ever abandoned mid-publish.
	app.cancelScroll()
	epoch := app.epoch.Add(1)

	units := app.seg.Segment(req.Text)
	params := compose.Params{Tint: req.Tint}

	if req.Scroll || app.comp.Policy() == compose.PolicyScroll {
		frames := app.comp.ComposeScroll(units, params)
		app.startScroll(ctx, frames, epoch)
		return
	}

	app.publishFrame(app.comp.Compose(units, params), epoch)
}

// startScroll emits frames at the configured interval on a background
// goroutine, cancellable when a newer request arrives.
func (app *Application) startScroll(ctx context.Context, frames []*compose.Frame, epoch uint64) {
	sctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	app.scrollCancel = cancel
	app.scrollDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(app.cfg.ScrollInterval)
		defer ticker.Stop()

		for i, f := range frames {
			app.publishFrame(f, epoch)
			if i == len(frames)-1 {
				return
			}
			select {
			case <-sctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// cancelScroll stops the in-progress scroll emission, if any, and waits for
// its current frame to finish publishing.
func (app *Application) cancelScroll() {
	if app.scrollCancel == nil {
		return
	}
	app.scrollCancel()
	<-app.scrollDone
	app.scrollCancel = nil
	app.scrollDone = nil
}

// publishFrame publishes one frame unless a newer request has superseded its
// epoch. Publish failures are logged; the transport's reconnect path owns
// recovery.
func (app *Application) publishFrame(f *compose.Frame, epoch uint64) {
	if epoch != app.epoch.Load() {
		app.log.Debug("discarding stale frame (epoch %d)", epoch)
		return
	}
	if err := app.trns.Publish(app.cfg.OutputTopic, f.Encode()); err != nil {
		app.log.Error("publishing frame: %v", err)
	}
}
