package catalog

import (
	"errors"

	"github.com/meur/pokedex/internal/models"
)

// ErrRecordMismatch is reported when a detail response names another identifier
var ErrRecordMismatch = errors.New("detail response is for a different record")

// OverlayState is the lifecycle stage of a detail overlay
type OverlayState int

const (
	OverlayClosed OverlayState = iota
	OverlayLoading
	OverlayDisplaying
	OverlayFailed
)

func (s OverlayState) String() string {
	switch s {
	case OverlayClosed:
		return "closed"
	case OverlayLoading:
		return "loading"
	case OverlayDisplaying:
		return "displaying"
	case OverlayFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket tags a detail fetch with the identifier and sequence it was issued for
type Ticket struct {
	ID  string
	Seq uint64
}

// Overlay tracks one detail panel. Only the response for the most recent
// ticket is applied.
type Overlay struct {
	state  OverlayState
	open   bool
	id     string
	seq    uint64
	detail *models.PokemonDetail
	err    error
}

// Open shows the overlay for id. When id is empty the chrome is open but
// there is nothing to fetch and ok is false.
func (o *Overlay) Open(id string) (t Ticket, ok bool) {
	o.seq++
	o.open = true
	o.id = id
	o.detail = nil
	o.err = nil
	o.state = OverlayLoading
	if id == "" {
		return Ticket{}, false
	}
	return Ticket{ID: id, Seq: o.seq}, true
}

// Resolve applies the outcome of the fetch issued for t.
// It returns false and leaves the overlay untouched when t is stale.
func (o *Overlay) Resolve(t Ticket, d *models.PokemonDetail, err error) bool {
	if !o.open || t.Seq != o.seq || t.ID != o.id || t.ID == "" {
		return false
	}
	if err == nil && (d == nil || d.ID != t.ID) {
		err = ErrRecordMismatch
	}
	if err != nil {
		o.state = OverlayFailed
		o.err = err
		return true
	}
	o.state = OverlayDisplaying
	o.detail = d
	return true
}

// Close hides the overlay and invalidates any fetch still in flight
func (o *Overlay) Close() {
	o.seq++
	o.open = false
	o.state = OverlayClosed
	o.detail = nil
	o.err = nil
}

// Visible reports whether anything should render at all
func (o *Overlay) Visible() bool { return o.open }

func (o *Overlay) State() OverlayState { return o.state }

func (o *Overlay) ID() string { return o.id }

// Detail is non-nil only while displaying
func (o *Overlay) Detail() *models.PokemonDetail { return o.detail }

// Err is non-nil only in the failed state
func (o *Overlay) Err() error { return o.err }
