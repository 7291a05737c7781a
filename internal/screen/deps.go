package screen

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/rosary/internal/i18n"
	"github.com/abhisek/rosary/internal/notify"
	"github.com/abhisek/rosary/internal/session"
)

// Deps carries the services every screen shares. The translator is
// swapped in place when the user changes language.
type Deps struct {
	Manager *session.Manager
	History *session.History
	Bundle  *i18n.Bundle
	Notify  *notify.Bus
	Logger  *slog.Logger

	Brand   string
	AppURL  string
	Version string
	// Refresh is how often pages with a timestamp redraw elapsed time.
	Refresh time.Duration

	mu sync.RWMutex
	tr *i18n.Translator
}

// SetLocale switches the active translator.
func (d *Deps) SetLocale(locale string) {
	tr := d.Bundle.Translator(locale)
	d.mu.Lock()
	d.tr = tr
	d.mu.Unlock()
}

// Locale returns the active locale code.
func (d *Deps) Locale() string {
	return d.translator().Locale()
}

// T translates key in the active locale.
func (d *Deps) T(key string, pairs ...string) string {
	return d.translator().T(key, pairs...)
}

func (d *Deps) translator() *i18n.Translator {
	d.mu.RLock()
	tr := d.tr
	d.mu.RUnlock()
	if tr == nil {
		return d.Bundle.Translator(i18n.BaseLocale)
	}
	return tr
}

// CycleLocale moves to the next catalog locale, persists it and announces
// the change.
func (d *Deps) CycleLocale(ctx context.Context) string {
	next := d.Bundle.Next(d.Locale())
	d.SetLocale(next)
	if d.Manager != nil {
		d.Manager.Preferences().SetLocale(ctx, next)
	}
	if d.Notify != nil {
		d.Notify.Success(d.T("LOCALE_CHANGED", "language", d.T("LOCALE_NAME")))
	}
	return next
}
