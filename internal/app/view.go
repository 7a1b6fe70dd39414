package app

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/padforge/internal/engine/picking"
	"github.com/Faultbox/padforge/internal/engine/renderer"
)

// renderView draws the 3D view into a fixed window and handles its input.
func (a *App) renderView(x, y, width, height float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoCollapse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoScrollWithMouse

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##View", nil, flags) {
		size := imgui.ContentRegionAvail()
		if size.X >= 1 && size.Y >= 1 {
			a.drawScene(size)
		}
	}
	imgui.End()
	imgui.PopStyleVar()
}

func (a *App) drawScene(size imgui.Vec2) {
	a.renderer.Resize(int32(size.X), int32(size.Y))
	a.camera.Update()

	frame := renderer.Frame{
		View:      a.camera.ViewMatrix(),
		Proj:      a.camera.ProjectionMatrix(size.X / size.Y),
		CameraPos: a.camera.Position(),
		Rig:       a.rig,
		Root:      a.world,
	}
	if a.cfg.Render.ShowBounds {
		frame.Highlight = a.selectedMesh()
	}
	tex := a.renderer.Render(frame)

	origin := imgui.CursorScreenPos()
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(tex))
	// Flip V: GL textures start at the bottom-left.
	imgui.ImageWithBgV(*texRef, size,
		imgui.NewVec2(0, 1), imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 0), imgui.NewVec4(1, 1, 1, 1))

	a.handleViewInput(origin, size, imgui.IsItemHovered())
}

// handleViewInput rotates on drag, zooms on wheel, selects the clicked
// part and shows a hand cursor over selectable parts.
func (a *App) handleViewInput(origin, size imgui.Vec2, hovered bool) {
	mouse := imgui.MousePos()
	a.pointer.Update(mouse.X, mouse.Y, imgui.IsMouseDown(imgui.MouseButtonLeft))

	if a.pointer.Pressed {
		a.viewActive = hovered
	}
	if a.viewActive && a.pointer.Dragging() {
		a.camera.HandleDrag(a.pointer.DeltaX, a.pointer.DeltaY)
	}

	localX := mouse.X - origin.X
	localY := mouse.Y - origin.Y

	if a.pointer.Released {
		if a.viewActive && hovered && a.pointer.Clicked() {
			if name := a.pick(localX, localY, size); name != "" {
				a.controller.SelectPartByName(name)
			}
		}
		a.viewActive = false
	}

	if !hovered {
		a.hovered = ""
		return
	}
	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		a.camera.HandleZoom(wheel)
	}
	if !a.pointer.Dragging() {
		a.hovered = a.pick(localX, localY, size)
	}
	if a.isPart(a.hovered) {
		imgui.SetMouseCursor(imgui.MouseCursorHand)
	}
}

// pick returns the name of the nearest mesh under the view-local point.
func (a *App) pick(x, y float32, size imgui.Vec2) string {
	if a.world == nil || a.controller == nil {
		return ""
	}
	viewProj := a.camera.ProjectionMatrix(size.X / size.Y).Mul4(a.camera.ViewMatrix())
	ray := picking.ScreenToRay(x, y, size.X, size.Y, viewProj.Inv())
	hit, ok := picking.PickNode(ray, a.world)
	if !ok {
		return ""
	}
	return hit.Name()
}
