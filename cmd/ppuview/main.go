// Command ppuview is a minimal ebiten front end for the PPU core: it
// loads an iNES ROM, free-runs the machine's frame timer, and blits the
// first pattern table's decoded tiles so the bus/cache wiring can be
// eyeballed outside of unit tests. It has no CPU core behind it, so
// nothing writes through the registers or the palette; the viewer only
// reads the pattern cache.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/golang/glog"

	"nesppu/internal/machine"
	"nesppu/internal/version"
)

const (
	screenWidth  = 256
	screenHeight = 240
	tilesPerRow  = 16
)

type viewer struct {
	m     *machine.Machine
	image *ebiten.Image
}

func newViewer(m *machine.Machine) *viewer {
	return &viewer{
		m:     m,
		image: ebiten.NewImage(screenWidth, screenHeight),
	}
}

// Update steps the machine a full frame's worth of dots, so the frame
// timer's VBlank enter/leave hooks fire once per displayed frame. No
// register is read or written here.
func (v *viewer) Update() error {
	for i := 0; i < 341*262; i++ {
		v.m.Step()
	}
	return nil
}

// Draw paints the first pattern table (pages 0-3, 16x16 tiles) using
// the bus's decoded tile cache rather than re-deriving pixels from raw
// CHR bytes, which is the whole point of PatternCache.
func (v *viewer) Draw(screen *ebiten.Image) {
	for page := 0; page < 4; page++ {
		tilesInPage := ppuPageSizeTiles()
		for i := 0; i < tilesInPage; i++ {
			addr := uint16(page*0x0400 + i*16)
			tile, _, ok := v.m.PPU.Bus.CacheTileAt(addr)
			if !ok {
				continue
			}
			tileIndex := page*tilesInPage + i
			ox := (tileIndex % tilesPerRow) * 8
			oy := (tileIndex / tilesPerRow) * 8
			for r := 0; r < 8; r++ {
				for c := 0; c < 8; c++ {
					gray := uint8(tile[r][c] * 85)
					screen.Set(ox+c, oy+r, grayColor(gray))
				}
			}
		}
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("ppuview %s  frame %d", version.GetVersion(), v.m.Timer.Frame()))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func ppuPageSizeTiles() int { return 0x0400 / 16 }

func grayColor(v uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: 0xFF}
}

func main() {
	romPath := flag.String("rom", "", "path to an iNES ROM to load")
	flag.Parse()
	defer glog.Flush()

	m := machine.New()
	if *romPath != "" {
		f, err := os.Open(*romPath)
		if err != nil {
			glog.Fatalf("open rom: %v", err)
		}
		defer f.Close()
		if err := m.LoadCartridge(f); err != nil {
			glog.Fatalf("load cartridge: %v", err)
		}
	}

	ebiten.SetWindowSize(screenWidth*3, screenHeight*3)
	ebiten.SetWindowTitle("ppuview - PPU core inspector")
	if err := ebiten.RunGame(newViewer(m)); err != nil {
		glog.Fatalf("run game: %v", err)
	}
}
