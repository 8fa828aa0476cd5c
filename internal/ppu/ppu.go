// Package ppu implements the PPU memory/register core: the bus fabric
// that routes PPU address-space accesses through a mapper-installed
// page table, the eight CPU-visible PPU registers with their
// cycle-sensitive side effects, and the on-write tile-pattern cache
// consumed by the rasterizer.
package ppu

// PPU aggregates the bus, palette and register state that the source
// codebase kept as a single global record. There are no package-level
// globals here: every caller holds (or is handed) its own *PPU, owned
// by the enclosing machine instance.
type PPU struct {
	Bus     *Bus
	Palette *Palette
	Regs    *Registers
}

// New wires a PPU against its collaborators. nmi and timer may be nil
// in headless/test configurations that don't drive NMI or the
// suppression window.
func New(nmi NmiScheduler, timer FrameTimer) *PPU {
	bus := NewBus()
	palette := &Palette{}
	return &PPU{
		Bus:     bus,
		Palette: palette,
		Regs:    NewRegisters(bus, palette, nmi, timer),
	}
}

// ReadRegister services reg_read(offset): the CPU's address decode is
// assumed to have already produced an offset in 0..7.
func (p *PPU) ReadRegister(offset uint8) uint8 {
	return p.Regs.Read(offset)
}

// WriteRegister services reg_write(offset, data).
func (p *PPU) WriteRegister(offset uint8, data uint8) {
	p.Regs.Write(offset, data)
}

// Reset applies hard- or soft-reset semantics across every owned
// component. Hard reset zeroes the registers and the palette; OAM and
// bus page installations are left to the caller (OAM per the external
// contract, page installations because they're mapper-owned).
func (p *PPU) Reset(hard bool) {
	p.Regs.Reset(hard)
	if hard {
		p.Palette.Reset()
	}
}

// EnterVBlank is called by the frame scheduler on entering scanline
// 241, dot 0. It sets STATUS bit 7 and raises NMI if CONTROL0 bit 7 is
// set, per the external NMI contract.
func (p *PPU) EnterVBlank() {
	p.Regs.SetVBlank(true)
}

// LeaveVBlank is called by the frame scheduler on entering the
// pre-render line, dot 0. It clears STATUS bit 7 only - sprite 0 hit
// and sprite overflow are the rasterizer's concern and are cleared
// there.
func (p *PPU) LeaveVBlank() {
	p.Regs.SetVBlank(false)
}
