package platform

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/interaction"
)

// HUD is the status bar under the grid.
type HUD struct {
	ui     *ebitenui.UI
	status *widget.Text
	last   string
}

func NewHUD(cfg config.Config) *HUD {
	barImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1e, G: 0x21, B: 0x24, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	status := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	w, _ := cfg.WindowSize()
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(w, cfg.Window.StatusHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)
	bar.AddChild(status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	return &HUD{ui: &ebitenui.UI{Container: root}, status: status}
}

// Status formats the status line for the controller's current state.
func Status(ctrl *interaction.Controller, placed int) string {
	cell := "-"
	if col, row, ok := ctrl.Hover(); ok {
		cell = fmt.Sprintf("(%d,%d)", col, row)
	}
	return fmt.Sprintf("%s  cell %s  placed %d  [%.0f tps]", ctrl.State(), cell, placed, ebiten.ActualTPS())
}

func (h *HUD) Update(status string) {
	if status != h.last {
		h.status.Label = status
		h.last = status
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
