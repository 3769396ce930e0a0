package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/pokedex/internal/models"
)

func TestOverlayLifecycle(t *testing.T) {
	var o Overlay
	assert.Equal(t, OverlayClosed, o.State())
	assert.False(t, o.Visible())

	ticket, ok := o.Open("2")
	require.True(t, ok)
	assert.Equal(t, "2", ticket.ID)
	assert.Equal(t, OverlayLoading, o.State())
	assert.True(t, o.Visible())
	assert.Nil(t, o.Detail())

	applied := o.Resolve(ticket, &models.PokemonDetail{ID: "2", Name: "Charmander"}, nil)
	require.True(t, applied)
	assert.Equal(t, OverlayDisplaying, o.State())
	assert.Equal(t, "Charmander", o.Detail().Name)

	o.Close()
	assert.Equal(t, OverlayClosed, o.State())
	assert.False(t, o.Visible())
	assert.Nil(t, o.Detail())
}

func TestOverlayDiscardsStaleResponses(t *testing.T) {
	var o Overlay
	first, _ := o.Open("1")
	second, _ := o.Open("2")

	assert.False(t, o.Resolve(first, &models.PokemonDetail{ID: "1"}, nil))
	assert.Equal(t, OverlayLoading, o.State())

	assert.True(t, o.Resolve(second, &models.PokemonDetail{ID: "2"}, nil))
	assert.Equal(t, "2", o.Detail().ID)
}

func TestOverlayDiscardsResponseAfterClose(t *testing.T) {
	var o Overlay
	ticket, _ := o.Open("1")
	o.Close()

	assert.False(t, o.Resolve(ticket, &models.PokemonDetail{ID: "1"}, nil))
	assert.Equal(t, OverlayClosed, o.State())
	assert.False(t, o.Visible())
}

func TestOverlayReopenRefetches(t *testing.T) {
	var o Overlay
	first, _ := o.Open("1")
	require.True(t, o.Resolve(first, &models.PokemonDetail{ID: "1"}, nil))
	o.Close()

	again, ok := o.Open("1")
	require.True(t, ok)
	assert.NotEqual(t, first.Seq, again.Seq)
	assert.Equal(t, OverlayLoading, o.State())
}

func TestOverlayFailure(t *testing.T) {
	var o Overlay
	ticket, _ := o.Open("404")
	boom := errors.New("boom")

	require.True(t, o.Resolve(ticket, nil, boom))
	assert.Equal(t, OverlayFailed, o.State())
	assert.ErrorIs(t, o.Err(), boom)
	assert.True(t, o.Visible())
}

func TestOverlayRejectsWrongRecord(t *testing.T) {
	var o Overlay
	ticket, _ := o.Open("1")

	require.True(t, o.Resolve(ticket, &models.PokemonDetail{ID: "7"}, nil))
	assert.Equal(t, OverlayFailed, o.State())
	assert.ErrorIs(t, o.Err(), ErrRecordMismatch)
	assert.Nil(t, o.Detail())
}

func TestOverlayOpenWithoutIdentifier(t *testing.T) {
	var o Overlay
	_, ok := o.Open("")
	assert.False(t, ok)
	assert.True(t, o.Visible())
	assert.Equal(t, OverlayLoading, o.State())
}

func TestOverlayStateString(t *testing.T) {
	assert.Equal(t, "closed", OverlayClosed.String())
	assert.Equal(t, "loading", OverlayLoading.String())
	assert.Equal(t, "displaying", OverlayDisplaying.String())
	assert.Equal(t, "failed", OverlayFailed.String())
	assert.Equal(t, "unknown", OverlayState(42).String())
}
