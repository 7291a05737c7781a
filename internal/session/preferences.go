package session

import (
	"context"
	"log/slog"

	"golang.org/x/mod/semver"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/store"
)

// Preferences reads and writes user settings. Failures are logged and the
// caller sees the default.
type Preferences struct {
	settings store.SettingsRepo
	logger   *slog.Logger
}

// NewPreferences returns preferences backed by settings.
func NewPreferences(settings store.SettingsRepo, logger *slog.Logger) *Preferences {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Preferences{settings: settings, logger: logger}
}

// Kind returns the preferred devotion for new sessions.
func (p *Preferences) Kind(ctx context.Context) devotion.Kind {
	v, _ := p.get(ctx, SettingDM)
	return devotion.KindFromDM(v == dmYes)
}

// SetKind persists the preferred devotion.
func (p *Preferences) SetKind(ctx context.Context, k devotion.Kind) bool {
	v := dmNo
	if k.IsDM() {
		v = dmYes
	}
	return p.set(ctx, SettingDM, v)
}

// Locale returns the stored locale, or "" when none was chosen.
func (p *Preferences) Locale(ctx context.Context) string {
	v, _ := p.get(ctx, SettingLocale)
	return v
}

// SetLocale persists the chosen locale.
func (p *Preferences) SetLocale(ctx context.Context, locale string) bool {
	return p.set(ctx, SettingLocale, locale)
}

// ShouldWelcome reports whether the welcome screen is due for version:
// never seen, or seen for an older release. Development builds compare by
// equality.
func (p *Preferences) ShouldWelcome(ctx context.Context, version string) bool {
	seen, ok := p.get(ctx, SettingWelcome)
	if !ok || seen == "" {
		return true
	}
	cur, prev := canonicalVersion(version), canonicalVersion(seen)
	if semver.IsValid(cur) && semver.IsValid(prev) {
		return semver.Compare(cur, prev) > 0
	}
	return seen != version
}

// MarkWelcomed records that the welcome screen was shown for version.
func (p *Preferences) MarkWelcomed(ctx context.Context, version string) bool {
	return p.set(ctx, SettingWelcome, version)
}

func canonicalVersion(v string) string {
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	return semver.Canonical(v)
}

func (p *Preferences) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := p.settings.Get(ctx, key)
	if err != nil {
		p.logger.Warn("read setting failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (p *Preferences) set(ctx context.Context, key, value string) bool {
	if err := p.settings.Set(ctx, key, value); err != nil {
		p.logger.Warn("write setting failed", "key", key, "error", err)
		return false
	}
	return true
}
