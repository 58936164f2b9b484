package flyout

import (
	"sync"
	"time"
)

// DefaultCloseDelay gives the pointer time to travel from a group trigger
// into its flyout.
const DefaultCloseDelay = 300 * time.Millisecond

// TooltipGap is the horizontal gap between an item and its tooltip.
const TooltipGap = 8

// Rect is the on-screen box of a hovered element, in CSS pixels.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a screen anchor.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TooltipAnchor sits to the right of the item at its vertical centre.
func TooltipAnchor(r Rect) Point {
	return Point{X: r.Left + r.Width + TooltipGap, Y: r.Top + r.Height/2}
}

// MenuAnchor is the top-right corner of the group trigger.
func MenuAnchor(r Rect) Point {
	return Point{X: r.Left + r.Width, Y: r.Top}
}

// Tooltip is the single-line label shown beside a collapsed rail item.
type Tooltip struct {
	Label  string `json:"label"`
	Anchor Point  `json:"anchor"`
}

// Menu is the flyout listing a settings group's items.
type Menu struct {
	ID     string `json:"id"`
	Anchor Point  `json:"anchor"`
}

// Controller holds at most one tooltip and at most one flyout menu.
// Tooltips clear immediately on leave; menus close after a delay that is
// cancelled by entering the menu or hovering another trigger.
type Controller struct {
	timer *Timer

	mu       sync.Mutex
	tooltip  *Tooltip
	menu     *Menu
	closeSeq uint64
	onExpire func()
}

func NewController(clock Clock, closeDelay time.Duration) *Controller {
	if closeDelay <= 0 {
		closeDelay = DefaultCloseDelay
	}
	return &Controller{timer: NewTimer(clock, closeDelay)}
}

// OnExpire registers f to run after a delayed close has cleared the menu.
// f runs on the clock's goroutine with no controller lock held.
func (c *Controller) OnExpire(f func()) {
	c.mu.Lock()
	c.onExpire = f
	c.mu.Unlock()
}

func (c *Controller) ShowTooltip(label string, r Rect) {
	c.mu.Lock()
	c.tooltip = &Tooltip{Label: label, Anchor: TooltipAnchor(r)}
	c.mu.Unlock()
}

func (c *Controller) HideTooltip() {
	c.mu.Lock()
	c.tooltip = nil
	c.mu.Unlock()
}

// OpenMenu shows the flyout for group id, replacing any current menu in one
// step and cancelling a pending close.
func (c *Controller) OpenMenu(id string, r Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelCloseLocked()
	c.menu = &Menu{ID: id, Anchor: MenuAnchor(r)}
}

// ScheduleClose starts the delayed close, e.g. when the pointer leaves the
// trigger or the menu. No-op without an open menu.
func (c *Controller) ScheduleClose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.menu == nil {
		return
	}
	c.closeSeq++
	seq := c.closeSeq
	c.timer.Schedule(func() { c.expire(seq) })
}

// KeepOpen cancels a pending close, e.g. when the pointer enters the menu.
func (c *Controller) KeepOpen() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelCloseLocked()
}

// CloseMenu clears the menu immediately.
func (c *Controller) CloseMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelCloseLocked()
	c.menu = nil
}

// Reset clears everything, e.g. when the rails leave collapsed mode.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelCloseLocked()
	c.menu = nil
	c.tooltip = nil
}

// ClosePending reports whether a delayed close is armed.
func (c *Controller) ClosePending() bool {
	return c.timer.Pending()
}

// Snapshot returns copies of the current tooltip and menu.
func (c *Controller) Snapshot() (*Tooltip, *Menu) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var t *Tooltip
	if c.tooltip != nil {
		cp := *c.tooltip
		t = &cp
	}
	var m *Menu
	if c.menu != nil {
		cp := *c.menu
		m = &cp
	}
	return t, m
}

func (c *Controller) cancelCloseLocked() {
	c.closeSeq++
	c.timer.Cancel()
}

func (c *Controller) expire(seq uint64) {
	c.mu.Lock()
	// a hover that landed between dispatch and here wins
	if seq != c.closeSeq || c.menu == nil {
		c.mu.Unlock()
		return
	}
	c.menu = nil
	f := c.onExpire
	c.mu.Unlock()

	if f != nil {
		f()
	}
}
