package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/padforge/internal/configurator"
	"github.com/Faultbox/padforge/internal/logger"
	"github.com/Faultbox/padforge/pkg/paint"
)

// Panel layout.
const (
	SwatchSize    = 44
	swatchSpacing = 8
	activeBorder  = 3
)

// Panel status messages.
const (
	StatusLoading     = "Loading model..."
	StatusUnavailable = "Model unavailable"
)

// Panel is the ImGui customization panel: part navigation, the swatch
// grid and a reset button. It implements configurator.Panel.
type Panel struct {
	Title string

	actions  configurator.Actions
	swatches []paint.Swatch
	log      *zap.Logger

	label    string
	position int
	total    int
	active   int

	status string // non-empty replaces the controls
	detail string
}

// NewPanel creates a panel showing swatches. It starts in the loading state.
func NewPanel(swatches []paint.Swatch, log *zap.Logger) *Panel {
	if log == nil {
		log = logger.Log
	}
	return &Panel{
		Title:    "Customize",
		swatches: swatches,
		log:      log.Named("panel"),
		label:    configurator.NoSelectionLabel,
		active:   -1,
		status:   StatusLoading,
	}
}

// Bind connects the panel controls to the controller and leaves the
// loading state.
func (p *Panel) Bind(a configurator.Actions) {
	p.actions = a
	p.status = ""
	p.detail = ""
}

// ShowPart updates the part label and counter.
func (p *Panel) ShowPart(label string, position, total int) {
	p.label = label
	p.position = position
	p.total = total
}

// MarkSwatch makes index the only active swatch. Out of range clears the mark.
func (p *Panel) MarkSwatch(index int) {
	if index < 0 || index >= len(p.swatches) {
		index = -1
	}
	p.active = index
}

// SetUnavailable switches the panel to the failed state with an optional detail line.
func (p *Panel) SetUnavailable(detail string) {
	p.actions = nil
	p.status = StatusUnavailable
	p.detail = detail
}

// Label returns the current part label.
func (p *Panel) Label() string {
	return p.label
}

// Counter returns the "position/total" text.
func (p *Panel) Counter() string {
	return fmt.Sprintf("%d/%d", p.position, p.total)
}

// ActiveSwatch returns the marked swatch index, or -1.
func (p *Panel) ActiveSwatch() int {
	return p.active
}

// Status returns the loading or failure message, "" when controls are shown.
func (p *Panel) Status() string {
	return p.status
}

// HandleKey runs the action bound to key: arrows navigate, R resets and
// 1-9 apply swatches. It reports whether the key was used.
func (p *Panel) HandleKey(key imgui.Key) bool {
	if p.actions == nil {
		return false
	}
	switch {
	case key == imgui.KeyLeftArrow:
		p.actions.Navigate(-1)
	case key == imgui.KeyRightArrow:
		p.actions.Navigate(1)
	case key == imgui.KeyR:
		p.reset()
	case key >= imgui.Key1 && key <= imgui.Key9:
		index := int(key - imgui.Key1)
		if index >= len(p.swatches) {
			return false
		}
		p.apply(index)
	default:
		return false
	}
	return true
}

// panelKeys are polled every frame while no text field has focus.
var panelKeys = []imgui.Key{
	imgui.KeyLeftArrow, imgui.KeyRightArrow, imgui.KeyR,
	imgui.Key1, imgui.Key2, imgui.Key3, imgui.Key4, imgui.Key5,
	imgui.Key6, imgui.Key7, imgui.Key8, imgui.Key9,
}

// PollKeys dispatches the panel shortcuts pressed this frame.
func (p *Panel) PollKeys() {
	if imgui.IsAnyItemActive() {
		return
	}
	for _, key := range panelKeys {
		if IsKeyPressed(key) {
			p.HandleKey(key)
		}
	}
}

func (p *Panel) apply(index int) {
	if err := p.actions.ApplySwatch(index); err != nil {
		p.log.Warn("apply swatch failed", zap.Int("index", index), zap.Error(err))
	}
}

func (p *Panel) reset() {
	if err := p.actions.ResetCurrentPart(); err != nil {
		p.log.Warn("reset failed", zap.Error(err))
	}
}

// Render draws the panel as a fixed window at the given screen rectangle.
func (p *Panel) Render(x, y, width, height float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))

	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsNoCollapse

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(16, 16))
	if imgui.BeginV(p.Title, nil, flags) {
		if p.status != "" {
			p.renderStatus()
		} else {
			p.renderControls()
		}
	}
	imgui.End()
	imgui.PopStyleVar()
}

func (p *Panel) renderStatus() {
	if p.status == StatusUnavailable {
		imgui.TextColored(imgui.NewVec4(0.8, 0.2, 0.2, 1.0), p.status)
	} else {
		imgui.TextDisabled(p.status)
	}
	if p.detail != "" {
		imgui.Spacing()
		imgui.TextWrapped(p.detail)
	}
}

func (p *Panel) renderControls() {
	// Part navigation: [<] label [>]
	navWidth := float32(36)
	startX := imgui.CursorPosX()
	full := imgui.ContentRegionAvail().X

	if imgui.ButtonV("<", imgui.NewVec2(navWidth, 0)) {
		p.actions.Navigate(-1)
	}
	imgui.SameLine()
	textWidth := imgui.CalcTextSize(p.label).X
	imgui.SetCursorPosX(startX + max((full-textWidth)/2, navWidth))
	imgui.Text(p.label)
	imgui.SameLine()
	imgui.SetCursorPosX(startX + full - navWidth)
	if imgui.ButtonV(">", imgui.NewVec2(navWidth, 0)) {
		p.actions.Navigate(1)
	}

	imgui.TextDisabled(p.Counter())
	imgui.Separator()
	imgui.Spacing()

	p.renderSwatches()

	imgui.Spacing()
	imgui.Separator()
	imgui.Spacing()
	if imgui.ButtonV("Reset", imgui.NewVec2(-1, 0)) {
		p.reset()
	}
	imgui.TextDisabled("(Left/Right: part, 1-9: color, R: reset)")
}

func (p *Panel) renderSwatches() {
	if len(p.swatches) == 0 {
		imgui.TextDisabled("No colors configured")
		return
	}

	drawList := imgui.WindowDrawList()
	perRow := max(int((imgui.ContentRegionAvail().X+swatchSpacing)/(SwatchSize+swatchSpacing)), 1)

	for i, s := range p.swatches {
		if i%perRow != 0 {
			imgui.SameLineV(0, swatchSpacing)
		}
		c := s.Color().Float()
		col := imgui.NewVec4(c[0], c[1], c[2], 1.0)
		pos := imgui.CursorScreenPos()

		imgui.PushStyleColorVec4(imgui.ColButton, col)
		imgui.PushStyleColorVec4(imgui.ColButtonHovered, col)
		imgui.PushStyleColorVec4(imgui.ColButtonActive, col)
		clicked := imgui.ButtonV(fmt.Sprintf("##swatch%d", i), imgui.NewVec2(SwatchSize, SwatchSize))
		imgui.PopStyleColorV(3)

		if imgui.IsItemHovered() {
			imgui.SetTooltip(fmt.Sprintf("%s (%s)", s.Name, s.Color().Hex()))
		}
		if i == p.active {
			drawList.AddRectV(
				imgui.NewVec2(pos.X-1, pos.Y-1),
				imgui.NewVec2(pos.X+SwatchSize+1, pos.Y+SwatchSize+1),
				imgui.ColorU32Vec4(imgui.NewVec4(0.1, 0.1, 0.1, 1.0)), 4, 0, activeBorder)
		}
		if clicked {
			p.apply(i)
		}
	}
}
