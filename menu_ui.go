package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rakesh/common"
	"golang.org/x/image/font/basicfont"
)

var (
	menuTextColor  = color.NRGBA{R: 0xff, G: 0xfd, B: 0xd0, A: 0xff}
	menuTitleColor = color.NRGBA{R: 0xfc, G: 0xc2, B: 0x00, A: 0xff}
)

var instructionLines = []string{
	"Use arrow keys to move",
	"Avoid spikes, they restart the game",
	"To unlock the lock find a key",
	"Reach the exit sign, with all stars collected, to complete the level",
	"If Rakesh does not move minimize the screen and open it again",
}

type menuButton struct {
	label string
	click func()
}

// menu describes one centered panel: a heading, optional text lines and a
// column of buttons.
type menu struct {
	heading string
	lines   []string
	buttons []menuButton
	// panelAlpha is the panel background opacity.
	panelAlpha uint8
}

func NewTitleUI(g *Game) *ebitenui.UI {
	return newMenuUI(menu{
		heading: common.Title,
		buttons: []menuButton{
			{"Play", func() { g.startLevel(1) }},
			{"Instructions", g.showInstructions},
			{"Levels", g.showLevelSelect},
			{"Quit", g.exit},
		},
		panelAlpha: 160,
	})
}

func NewInstructionsUI(g *Game) *ebitenui.UI {
	return newMenuUI(menu{
		heading: "Instructions",
		lines:   instructionLines,
		buttons: []menuButton{{"<  Back", g.showTitle}},
	})
}

func NewLevelSelectUI(g *Game, count int) *ebitenui.UI {
	buttons := make([]menuButton, 0, count+1)
	for i := 1; i <= count; i++ {
		buttons = append(buttons, menuButton{fmt.Sprintf("Level %d", i), func() { g.startLevel(i) }})
	}
	buttons = append(buttons, menuButton{"<  Back", g.showTitle})
	return newMenuUI(menu{heading: "Levels", buttons: buttons})
}

func NewPauseUI(g *Game) *ebitenui.UI {
	return newMenuUI(menu{
		heading: "Paused",
		buttons: []menuButton{
			{"Resume", func() { g.paused = false }},
			{"Restart level", g.restartLevel},
			{"Title", g.showTitle},
		},
		panelAlpha: 200,
	})
}

func NewVictoryUI(g *Game, score int) *ebitenui.UI {
	return newMenuUI(menu{
		heading:    "You win",
		lines:      []string{fmt.Sprintf("Final score: %d", score)},
		buttons:    []menuButton{{"Title", g.showTitle}},
		panelAlpha: 200,
	})
}

// newMenuUI builds a panel with colored nine-slices and the built-in basic
// font, so no theme assets need to be loaded.
func newMenuUI(m menu) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: m.panelAlpha})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: menuTextColor}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 40, Right: 40}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(m.heading, &face, menuTitleColor),
		widget.TextOpts.WidgetOpts(centered),
	))
	for _, line := range m.lines {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(line, &face, menuTextColor),
			widget.TextOpts.WidgetOpts(centered),
		))
	}
	for _, b := range m.buttons {
		click := b.click
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				click()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
