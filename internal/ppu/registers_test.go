package ppu

type stubNMI struct {
	sets, clears int
}

func (s *stubNMI) SetNMI()   { s.sets++ }
func (s *stubNMI) ClearNMI() { s.clears++ }

type stubTimer struct {
	scanline, cycle int
	frame           uint64
}

func (s *stubTimer) Scanline() int  { return s.scanline }
func (s *stubTimer) LineCycle() int { return s.cycle }
func (s *stubTimer) Frame() uint64  { return s.frame }

func newTestRegisters() (*Registers, *Bus, *Palette, *stubNMI, *stubTimer) {
	bus := NewBus()
	pal := &Palette{}
	nmi := &stubNMI{}
	timer := &stubTimer{scanline: -1, cycle: 0}
	regs := NewRegisters(bus, pal, nmi, timer)
	return regs, bus, pal, nmi, timer
}
