package cartridge

import "nesppu/internal/ppu"

// installNametables lays out pages 8-15 of the PPU bus from the
// cartridge's VRAM according to MirrorMode. Pages 12-15 are installed
// as aliases of pages 8-11 (same underlying slice) rather than special
// read handlers: $3000-$3EFF is defined as a mirror of $2000-$2EFF, and
// a page pointer can express that as cheaply as a handler would. Page
// 15 additionally backs $3F00-$3FFF, the palette window: PpuRegisters
// sends palette writes to the palette, and a palette read returns the
// palette byte while only its data buffer is refilled from this page.
func (c *Cartridge) installNametables(bus *ppu.Bus) {
	var logical [4][]uint8

	switch c.mirror {
	case MirrorVertical:
		logical = [4][]uint8{c.vram[0:1024], c.vram[1024:2048], c.vram[0:1024], c.vram[1024:2048]}
	case MirrorHorizontal:
		logical = [4][]uint8{c.vram[0:1024], c.vram[0:1024], c.vram[1024:2048], c.vram[1024:2048]}
	case MirrorSingleScreen0:
		logical = [4][]uint8{c.vram[0:1024], c.vram[0:1024], c.vram[0:1024], c.vram[0:1024]}
	case MirrorSingleScreen1:
		logical = [4][]uint8{c.vram[1024:2048], c.vram[1024:2048], c.vram[1024:2048], c.vram[1024:2048]}
	case MirrorFourScreen:
		logical = [4][]uint8{c.vram[0:1024], c.vram[1024:2048], c.vram[2048:3072], c.vram[3072:4096]}
	}

	for i, span := range logical {
		page := 8 + i
		mirrorPage := 12 + i
		bus.InstallReadPage(page, span)
		bus.InstallWritePage(page, span)
		bus.InstallReadPage(mirrorPage, span)
		bus.InstallWritePage(mirrorPage, span)
	}
}

// SetMirrorMode switches the nametable arrangement and reinstalls
// pages 8-15 accordingly. Mappers that support runtime single-screen
// switching (outside NROM's scope, but common on the rest of the
// mapper family) call this whenever their control register changes.
func (c *Cartridge) SetMirrorMode(bus *ppu.Bus, mode MirrorMode) {
	c.mirror = mode
	c.installNametables(bus)
}
