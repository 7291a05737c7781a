package home

import (
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/router"
	"github.com/abhisek/rosary/internal/screen/screentest"
	"github.com/abhisek/rosary/internal/screens/intention"
	"github.com/abhisek/rosary/internal/screens/prayer"
	"github.com/abhisek/rosary/internal/session"
)

func pushed(t *testing.T, h *HomeScreen) any {
	t.Helper()
	_, cmd := h.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	return msg.Screen
}

func TestStartOpensIntention(t *testing.T) {
	env := screentest.New(t)
	h := New(env.Deps)

	assert.IsType(t, &intention.IntentionScreen{}, pushed(t, h))
	assert.Equal(t, session.PhaseIntending, env.Deps.Manager.Phase())
}

func TestResumeOpensPrayer(t *testing.T) {
	env := screentest.New(t)
	ctx := context.Background()
	env.Deps.Manager.Begin(ctx)
	_, err := env.Deps.Manager.Submit(ctx, "")
	require.NoError(t, err)

	h := New(env.Deps)
	view := ansi.Strip(h.View(80, 30))
	assert.Contains(t, view, "Resume")
	assert.Contains(t, view, "Page 1 of 88")

	assert.IsType(t, &prayer.PrayerScreen{}, pushed(t, h))
	assert.Equal(t, session.PhaseActive, env.Deps.Manager.Phase())
}

func TestToggleKind(t *testing.T) {
	env := screentest.New(t)
	h := New(env.Deps)
	assert.Contains(t, ansi.Strip(h.View(80, 30)), "Luminous Mysteries")

	h.Update(screentest.Key("down"))
	_, cmd := h.Update(screentest.Key("enter"))
	assert.Nil(t, cmd)

	assert.Equal(t, devotion.DivineMercy, env.Deps.Manager.Kind())
	assert.Equal(t, "Prayer changed to Divine Mercy.", env.Note(t).Message)

	view := ansi.Strip(h.View(80, 30))
	assert.Contains(t, view, "Switch to Holy Rosary")
	assert.Contains(t, view, "Chaplet of the Divine Mercy")
	assert.True(t, h.menu.Items[3].Disabled, "promises are rosary only")
}

func TestLanguageCycles(t *testing.T) {
	env := screentest.New(t)
	h := New(env.Deps)

	for i := 0; i < 4; i++ {
		h.Update(screentest.Key("down"))
	}
	require.Equal(t, 4, h.menu.Selected)
	h.Update(screentest.Key("enter"))

	assert.Equal(t, "la", env.Deps.Locale())
	assert.Equal(t, "la", env.Deps.Manager.Preferences().Locale(context.Background()))
	env.Note(t)
}

func TestShareIsSticky(t *testing.T) {
	env := screentest.New(t)
	h := New(env.Deps)
	for i := 0; i < 5; i++ {
		h.Update(screentest.Key("down"))
	}
	h.Update(screentest.Key("enter"))

	n := env.Note(t)
	assert.True(t, n.Sticky)
	assert.Contains(t, n.Message, "https://example.com/rosary")
}

func TestFocusRefreshesLabels(t *testing.T) {
	env := screentest.New(t)
	h := New(env.Deps)
	assert.Equal(t, "Start", h.menu.Items[0].Label)

	ctx := context.Background()
	env.Deps.Manager.Begin(ctx)
	_, err := env.Deps.Manager.Submit(ctx, "")
	require.NoError(t, err)

	h.Focus()
	assert.Equal(t, "Resume", h.menu.Items[0].Label)
}
