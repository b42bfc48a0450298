package assets

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var images = map[string]*ebiten.Image{}

var (
	colorGrass     = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	colorDirt      = color.NRGBA{R: 0x79, G: 0x55, B: 0x48, A: 0xff}
	colorStone     = color.NRGBA{R: 0x60, G: 0x64, B: 0x6b, A: 0xff}
	colorStoneDark = color.NRGBA{R: 0x42, G: 0x45, B: 0x4b, A: 0xff}
	colorWood      = color.NRGBA{R: 0xa1, G: 0x6e, B: 0x3c, A: 0xff}
	colorGold      = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	colorGoldDark  = color.NRGBA{R: 0xc7, G: 0x8d, B: 0x00, A: 0xff}
	colorSteel     = color.NRGBA{R: 0xcf, G: 0xd8, B: 0xdc, A: 0xff}
	colorLava      = color.NRGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff}
	colorLavaHot   = color.NRGBA{R: 0xff, G: 0xeb, B: 0x3b, A: 0xff}
	colorBomb      = color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
	colorSkin      = color.NRGBA{R: 0xc6, G: 0x8e, B: 0x5c, A: 0xff}
	colorShirt     = color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	colorPants     = color.NRGBA{R: 0x37, G: 0x47, B: 0x4f, A: 0xff}
	colorHair      = color.NRGBA{R: 0x26, G: 0x1a, B: 0x12, A: 0xff}
	colorFaint     = color.NRGBA{R: 0x90, G: 0xa4, B: 0xae, A: 0x60}
)

// PairColors tints keys and locks so each pair reads at a glance.
var PairColors = []color.NRGBA{
	{R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	{R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	{R: 0x8e, G: 0x24, B: 0xaa, A: 0xff},
}

// Image returns the generated image for key, drawing it on first use. Keys
// are "tile/<kind>", "tile/key<N>", "tile/lock<N>", "player/<pose><frame>",
// "bullet", "mover/platform" and "mover/spikes". w and h size the
// images that have no fixed size.
func Image(key string, w, h int) (*ebiten.Image, error) {
	cacheKey := fmt.Sprintf("%s@%dx%d", key, w, h)
	if img, ok := images[cacheKey]; ok {
		return img, nil
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("assets: image %q: bad size %dx%d", key, w, h)
	}
	img := ebiten.NewImage(w, h)
	if err := paint(img, key, float32(w), float32(h)); err != nil {
		img.Deallocate()
		return nil, err
	}
	images[cacheKey] = img
	return img, nil
}

func paint(img *ebiten.Image, key string, w, h float32) error {
	kind, rest, _ := strings.Cut(key, "/")
	switch kind {
	case "tile":
		return paintTile(img, rest, w, h)
	case "player":
		return paintPlayer(img, rest, w, h)
	case "bullet":
		vector.FillRect(img, 0, 0, w, h, colorGold, false)
		vector.FillRect(img, w*0.7, 0, w*0.3, h, colorGoldDark, false)
		return nil
	case "mover":
		if rest == "spikes" {
			paintSpikes(img, w, h, colorSteel)
			return nil
		}
		vector.FillRect(img, 0, 0, w, h, colorWood, false)
		vector.StrokeRect(img, 1, 1, w-2, h-2, 2, colorDirt, false)
		return nil
	}
	return fmt.Errorf("assets: unknown image %q", key)
}

func paintTile(img *ebiten.Image, name string, w, h float32) error {
	switch {
	case name == "platforms":
		vector.FillRect(img, 0, 0, w, h, colorDirt, false)
		vector.FillRect(img, 0, 0, w, h*0.2, colorGrass, false)
		vector.StrokeRect(img, 0, 0, w, h, 1, colorStoneDark, false)
	case name == "barrier":
		vector.FillRect(img, 0, 0, w, h, colorStone, false)
		for y := float32(0); y < h; y += h / 4 {
			vector.StrokeLine(img, 0, y, w, y, 2, colorStoneDark, false)
		}
	case name == "background":
		vector.FillRect(img, 0, 0, w, h, color.NRGBA{R: 0xb0, G: 0xbe, B: 0xc5, A: 0x50}, false)
	case name == "phasable":
		vector.FillRect(img, 0, 0, w, h, colorFaint, false)
		vector.StrokeRect(img, 2, 2, w-4, h-4, 2, colorStone, false)
	case name == "misc":
		vector.FillRect(img, w*0.45, h*0.4, w*0.1, h*0.6, colorGrass, false)
		vector.FillCircle(img, w*0.5, h*0.35, w*0.18, color.NRGBA{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff}, true)
	case name == "ladders":
		vector.StrokeLine(img, w*0.2, 0, w*0.2, h, 4, colorWood, false)
		vector.StrokeLine(img, w*0.8, 0, w*0.8, h, 4, colorWood, false)
		for y := h / 8; y < h; y += h / 4 {
			vector.StrokeLine(img, w*0.2, y, w*0.8, y, 3, colorWood, false)
		}
	case name == "items":
		vector.FillRect(img, 0, 0, w, h, colorWood, false)
		vector.StrokeRect(img, 2, 2, w-4, h-4, 3, colorDirt, false)
		vector.StrokeLine(img, 0, 0, w, h, 3, colorDirt, true)
		vector.StrokeLine(img, w, 0, 0, h, 3, colorDirt, true)
	case name == "coins":
		vector.FillCircle(img, w/2, h/2, w*0.25, colorGold, true)
		vector.StrokeCircle(img, w/2, h/2, w*0.25, 3, colorGoldDark, true)
	case name == "stars":
		paintStar(img, w/2, h/2, w*0.4, w*0.17, colorGold)
	case strings.HasPrefix(name, "key"):
		c := pairColor(strings.TrimPrefix(name, "key"))
		vector.StrokeCircle(img, w*0.3, h/2, w*0.14, 5, c, true)
		vector.StrokeLine(img, w*0.44, h/2, w*0.85, h/2, 5, c, false)
		vector.StrokeLine(img, w*0.75, h/2, w*0.75, h*0.65, 5, c, false)
	case strings.HasPrefix(name, "lock"):
		c := pairColor(strings.TrimPrefix(name, "lock"))
		vector.FillRect(img, 0, 0, w, h, c, false)
		vector.StrokeRect(img, 2, 2, w-4, h-4, 3, colorStoneDark, false)
		vector.FillCircle(img, w/2, h*0.42, w*0.1, colorBomb, true)
		vector.FillRect(img, w*0.46, h*0.42, w*0.08, h*0.25, colorBomb, false)
	case name == "spikes":
		paintSpikes(img, w, h, colorSteel)
	case name == "bombs":
		vector.FillCircle(img, w/2, h*0.58, w*0.3, colorBomb, true)
		vector.StrokeLine(img, w*0.6, h*0.3, w*0.75, h*0.12, 3, colorWood, true)
		vector.FillCircle(img, w*0.77, h*0.1, w*0.06, colorLava, true)
	case name == "lava":
		vector.FillRect(img, 0, 0, w, h, colorLava, false)
		for x := float32(0); x < w; x += w / 4 {
			vector.FillCircle(img, x+w/8, h*0.2, w/10, colorLavaHot, true)
		}
	case name == "exit":
		vector.FillRect(img, w*0.45, h*0.3, w*0.1, h*0.7, colorWood, false)
		vector.FillRect(img, w*0.1, h*0.1, w*0.8, h*0.3, colorWood, false)
		vector.StrokeLine(img, w*0.25, h*0.25, w*0.7, h*0.25, 3, color.White, false)
		vector.StrokeLine(img, w*0.6, h*0.15, w*0.7, h*0.25, 3, color.White, false)
		vector.StrokeLine(img, w*0.6, h*0.35, w*0.7, h*0.25, 3, color.White, false)
	case name == "prize":
		vector.FillRect(img, w*0.3, h*0.2, w*0.4, h*0.35, colorGold, false)
		vector.FillRect(img, w*0.45, h*0.55, w*0.1, h*0.2, colorGoldDark, false)
		vector.FillRect(img, w*0.25, h*0.75, w*0.5, h*0.12, colorGoldDark, false)
		vector.StrokeCircle(img, w*0.3, h*0.35, w*0.1, 3, colorGold, true)
		vector.StrokeCircle(img, w*0.7, h*0.35, w*0.1, 3, colorGold, true)
	default:
		return fmt.Errorf("assets: unknown tile %q", name)
	}
	return nil
}

func pairColor(suffix string) color.NRGBA {
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		n = 1
	}
	return PairColors[(n-1)%len(PairColors)]
}

func paintSpikes(img *ebiten.Image, w, h float32, c color.Color) {
	const teeth = 4
	var path vector.Path
	step := w / teeth
	for i := 0; i < teeth; i++ {
		x := float32(i) * step
		path.MoveTo(x, h)
		path.LineTo(x+step/2, h*0.25)
		path.LineTo(x+step, h)
		path.Close()
	}
	fillPath(img, &path, c)
}

func paintStar(img *ebiten.Image, cx, cy, outer, inner float32, c color.Color) {
	var path vector.Path
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	fillPath(img, &path, c)
}

var whiteImage *ebiten.Image

func fillPath(img *ebiten.Image, path *vector.Path, c color.Color) {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	img.DrawTriangles(vs, is, whiteImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// PlayerFrames lists the generated frame keys of every pose.
func PlayerFrames() map[string][]string {
	frames := map[string][]string{
		"idle": {"player/idle"},
		"jump": {"player/jump"},
		"fall": {"player/fall"},
	}
	for i := 0; i < 8; i++ {
		frames["walk"] = append(frames["walk"], fmt.Sprintf("player/walk%d", i))
	}
	for i := 0; i < 2; i++ {
		frames["climb"] = append(frames["climb"], fmt.Sprintf("player/climb%d", i))
	}
	return frames
}

// paintPlayer draws a side-on figure facing right. Walk frames swing the
// legs through one stride; climb frames alternate the arms.
func paintPlayer(img *ebiten.Image, frame string, w, h float32) error {
	pose := strings.TrimRight(frame, "0123456789")
	idx := 0
	if n, err := strconv.Atoi(strings.TrimPrefix(frame, pose)); err == nil {
		idx = n
	}

	hipX, hipY := w*0.5, h*0.66
	legLen := h * 0.3
	var legA, legB, armA, armB float64

	switch pose {
	case "idle":
		legA, legB, armA, armB = 0.08, -0.08, 0.15, -0.15
	case "jump":
		legA, legB, armA, armB = 0.6, -0.2, -2.4, -2.0
	case "fall":
		legA, legB, armA, armB = 0.3, -0.4, -1.2, 1.2
	case "walk":
		swing := math.Sin(float64(idx) / 8 * 2 * math.Pi)
		legA, legB = 0.55*swing, -0.55*swing
		armA, armB = -0.5*swing, 0.5*swing
	case "climb":
		if idx%2 == 0 {
			armA, armB, legA, legB = -2.6, -1.6, 0.3, -0.1
		} else {
			armA, armB, legA, legB = -1.6, -2.6, -0.1, 0.3
		}
	default:
		return fmt.Errorf("assets: unknown player frame %q", frame)
	}

	limb := func(x, y float32, angle float64, length float32, c color.Color) {
		ex := x + length*float32(math.Sin(angle))
		ey := y + length*float32(math.Cos(angle))
		vector.StrokeLine(img, x, y, ex, ey, w*0.1, c, true)
	}

	limb(hipX, hipY, legB, legLen, colorPants)
	limb(hipX, h*0.38, armB, h*0.25, colorSkin)
	vector.FillRect(img, w*0.38, h*0.32, w*0.24, h*0.36, colorShirt, false)
	limb(hipX, hipY, legA, legLen, colorPants)
	limb(hipX, h*0.38, armA, h*0.25, colorSkin)
	vector.FillCircle(img, w*0.5, h*0.2, h*0.12, colorSkin, true)
	vector.FillRect(img, w*0.38, h*0.06, w*0.26, h*0.07, colorHair, false)
	vector.FillCircle(img, w*0.56, h*0.19, h*0.018, colorBomb, true)
	return nil
}
