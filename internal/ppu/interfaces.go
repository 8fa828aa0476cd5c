package ppu

// NmiScheduler is the PPU's inbound contract with the CPU core for the
// non-maskable-interrupt line. SetNMI is level-triggered in the CPU's
// view; the PPU may call it more than once before ClearNMI without
// that implying a second edge.
type NmiScheduler interface {
	SetNMI()
	ClearNMI()
}

// FrameTimer supplies the scalar timing signals the register logic
// needs to evaluate the scanline-241 suppression window. The caller
// (rasterizer) must advance these before asking Registers to service a
// CPU access that depends on them.
type FrameTimer interface {
	Scanline() int
	LineCycle() int
	Frame() uint64
}

// RendererHook is the outbound contract through which the core exposes
// write visibility to the rasterizer: a finished scanline of pixel
// indices, ready to be resolved against the palette and blitted.
type RendererHook interface {
	EmitScanline(line int, pixels [256]uint8)
}
