// Package configurator implements part selection and recoloring of a loaded model.
package configurator

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/padforge/internal/engine/scene"
	"github.com/Faultbox/padforge/internal/logger"
	"github.com/Faultbox/padforge/pkg/paint"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultHighlightDelay = 500 * time.Millisecond
	NoSelectionLabel      = "No part selected"
)

// Phase is the controller lifecycle state.
type Phase int

const (
	Uninitialized Phase = iota
	Idle
	Highlighting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Highlighting:
		return "highlighting"
	default:
		return "uninitialized"
	}
}

// State is a snapshot of the controller state machine.
type State struct {
	Phase Phase
	Part  string
}

// Options configures a Controller.
type Options struct {
	Palette        *paint.Palette
	Excluded       []string
	DisplayNames   map[string]string
	HighlightDelay time.Duration
	HighlightColor *paint.Color // nil means white
	Scheduler      Scheduler
	Panel          Panel
	Logger         *zap.Logger
}

// Controller owns the part selection, the per-part color overrides and the
// palette, and keeps mesh materials and the panel in sync.
// All methods must be called from the render goroutine.
type Controller struct {
	registry  *Registry
	materials *Materials
	root      *scene.Node

	palette        *paint.Palette
	displayNames   map[string]string
	highlightDelay time.Duration
	highlightColor paint.Color
	sched          Scheduler
	panel          Panel
	log            *zap.Logger

	parts     []string
	index     int
	current   *scene.Mesh
	overrides map[string]string

	phase        Phase
	highlightSeq uint64
}

// New builds the selectable part list (registry order minus exclusions),
// shows the panel and selects the first part when there is one.
func New(registry *Registry, materials *Materials, root *scene.Node, opts Options) *Controller {
	if registry == nil {
		registry = NewRegistry()
	}
	if materials == nil {
		materials = NewMaterials()
	}

	c := &Controller{
		registry:       registry,
		materials:      materials,
		root:           root,
		palette:        opts.Palette,
		displayNames:   opts.DisplayNames,
		highlightDelay: opts.HighlightDelay,
		highlightColor: paint.White,
		sched:          opts.Scheduler,
		panel:          opts.Panel,
		log:            opts.Logger,
		overrides:      make(map[string]string),
	}
	if c.palette == nil {
		c.palette, _ = paint.NewPalette(nil)
	}
	if c.highlightDelay <= 0 {
		c.highlightDelay = DefaultHighlightDelay
	}
	if opts.HighlightColor != nil {
		c.highlightColor = *opts.HighlightColor
	}
	if c.sched == nil {
		c.sched = NewFrameScheduler(time.Now())
	}
	if c.panel == nil {
		c.panel = nopPanel{}
	}
	if c.log == nil {
		c.log = logger.Named("configurator")
	}

	excluded := make(map[string]struct{}, len(opts.Excluded))
	for _, name := range opts.Excluded {
		excluded[name] = struct{}{}
	}
	for _, name := range registry.Names() {
		if _, skip := excluded[name]; !skip {
			c.parts = append(c.parts, name)
		}
	}

	c.panel.Bind(c)
	c.panel.ShowPart(NoSelectionLabel, 0, len(c.parts))
	c.panel.MarkSwatch(-1)

	if len(c.parts) > 0 {
		c.SelectPartByIndex(0)
	}
	return c
}

// SelectPartByName selects the named part. Unknown and excluded names are
// logged and ignored.
func (c *Controller) SelectPartByName(name string) {
	for i, p := range c.parts {
		if p == name {
			c.SelectPartByIndex(i)
			return
		}
	}
	c.log.Warn("part not selectable", zap.String("part", name))
}

// SelectPartByIndex selects the part at index, flashes it with the highlight
// color and schedules the restore of its known color. Out-of-range indices
// are ignored.
func (c *Controller) SelectPartByIndex(index int) {
	if index < 0 || index >= len(c.parts) {
		return
	}
	name := c.parts[index]
	mesh, _ := c.registry.Get(name)

	// The pending restore of the part being left will be discarded as stale,
	// so put that part back to its known color now.
	if c.phase == Highlighting && c.current != nil && c.current != mesh {
		c.applyKnown(c.parts[c.index], c.current)
	}

	c.index = index
	c.current = mesh
	if mesh == nil || mesh.Material == nil {
		c.phase = Idle
		return
	}

	known, ok := c.overrides[name]
	if !ok {
		known = mesh.Material.Color.Hex()
		c.overrides[name] = known
	}
	knownColor, err := paint.ParseHex(known)
	if err != nil {
		knownColor = mesh.Material.Color
	}

	mesh.Material.Color = c.highlightColor
	c.phase = Highlighting
	c.highlightSeq++
	seq := c.highlightSeq
	c.sched.AfterFunc(c.highlightDelay, func() {
		c.restoreHighlight(name, mesh, seq)
	})

	c.panel.ShowPart(c.DisplayName(name), index+1, len(c.parts))
	c.markClosest(knownColor)
}

// restoreHighlight puts the part back to its current known color, unless the
// selection moved to another part in the meantime.
func (c *Controller) restoreHighlight(name string, mesh *scene.Mesh, seq uint64) {
	if c.current != mesh || c.parts[c.index] != name {
		c.log.Debug("stale highlight restore dropped", zap.String("part", name))
		return
	}
	c.applyKnown(name, mesh)
	if seq == c.highlightSeq {
		c.phase = Idle
	}
}

func (c *Controller) applyKnown(name string, mesh *scene.Mesh) {
	if mesh.Material == nil {
		return
	}
	if col, err := paint.ParseHex(c.overrides[name]); err == nil {
		mesh.Material.Color = col
	}
}

// Navigate moves the selection by direction with wraparound.
func (c *Controller) Navigate(direction int) {
	n := len(c.parts)
	if n == 0 {
		return
	}
	i := c.index + direction
	if i < 0 {
		i = n - 1
	} else if i >= n {
		i = 0
	}
	c.SelectPartByIndex(i)
}

// ApplyColor recolors the selected part and records the value as its override.
// It is a no-op without a selection and fails with paint.ErrInvalidColor for
// values that are not hex colors.
func (c *Controller) ApplyColor(value string) error {
	if c.current == nil || c.current.Material == nil {
		return nil
	}
	col, err := paint.ParseHex(value)
	if err != nil {
		return err
	}

	name := c.parts[c.index]
	c.current.Material.Color = col
	c.overrides[name] = value
	c.panel.MarkSwatch(c.palette.Match(col))
	return nil
}

// ApplySwatch applies the palette color at index.
func (c *Controller) ApplySwatch(index int) error {
	if index < 0 || index >= c.palette.Len() {
		return nil
	}
	return c.ApplyColor(c.palette.At(index).Hex)
}

// ResetCurrentPart restores the whole material of the selected part from the
// original captured at load time. The original color becomes the known color.
func (c *Controller) ResetCurrentPart() error {
	if c.current == nil || c.current.Material == nil {
		return nil
	}
	name := c.parts[c.index]
	orig, ok := c.materials.Original(name)
	if !ok {
		return nil
	}

	if err := c.current.Material.CopyFrom(orig); err != nil {
		return err
	}
	c.overrides[name] = orig.Color.Hex()
	c.markClosest(c.current.Material.Color)
	return nil
}

func (c *Controller) markClosest(col paint.Color) {
	c.panel.MarkSwatch(c.palette.Closest(col))
}

// DisplayName returns the panel label of part.
func (c *Controller) DisplayName(part string) string {
	return DisplayName(c.displayNames, part)
}

// State returns the current state machine snapshot.
func (c *Controller) State() State {
	if c.current == nil {
		return State{Phase: c.phase}
	}
	return State{Phase: c.phase, Part: c.parts[c.index]}
}

// Selected returns the selected part name.
func (c *Controller) Selected() (string, bool) {
	if c.current == nil {
		return "", false
	}
	return c.parts[c.index], true
}

// Index returns the position of the selection in Parts.
func (c *Controller) Index() int {
	return c.index
}

// Parts returns the selectable part names in navigation order.
func (c *Controller) Parts() []string {
	out := make([]string, len(c.parts))
	copy(out, c.parts)
	return out
}

// Override returns the recorded color of part.
func (c *Controller) Override(part string) (string, bool) {
	v, ok := c.overrides[part]
	return v, ok
}

// Overrides returns a copy of the override map.
func (c *Controller) Overrides() map[string]string {
	out := make(map[string]string, len(c.overrides))
	for k, v := range c.overrides {
		out[k] = v
	}
	return out
}

// Palette returns the swatch palette.
func (c *Controller) Palette() *paint.Palette {
	return c.palette
}

// SelectedMesh returns the registered mesh of the selected part.
func (c *Controller) SelectedMesh() (*scene.Mesh, bool) {
	return c.current, c.current != nil
}
