package ppu

// PageSize is the size in bytes of one PPU bus page.
const PageSize = 0x0400

// PageCount is the number of 1KB pages spanning the 14-bit PPU address
// space (0x0000-0x3FFF).
const PageCount = 16

// ReadHandler services a bus read that isn't backed by a plain memory
// page (open-bus stubs, mapper-side registers mapped into PPU space).
type ReadHandler func(addr uint16) uint8

// WriteHandler services a bus write that isn't backed by a plain memory
// page.
type WriteHandler func(addr uint16, data uint8)

// UnmappedLogger receives a diagnostic whenever a bus access lands on a
// page with neither a memory pointer nor a handler installed. It is the
// log_unmapped_io collaborator from the external interface; nil disables
// diagnostics entirely.
type UnmappedLogger func(channel string, addr uint16, data *uint8)

// Bus routes every PPU address-space access through a 16-entry table of
// 1KB pages. Each page is either a direct pointer into mapper-owned
// memory or a handler callback; at most one of the two should be set
// per (page, direction) in a well-formed mapping. Pages are populated
// by the cartridge mapper and may be rewritten at any point between CPU
// instructions - the bus itself holds no opinion about when that
// happens, only that the next access observes the new table.
type Bus struct {
	readPages  [PageCount][]uint8
	writePages [PageCount][]uint8

	readHandlers  [PageCount]ReadHandler
	writeHandlers [PageCount]WriteHandler

	// cachePages/cacheHFlipPages hold, per page, the decoded tile
	// cache backing that page's CHR bytes (nil for pages above
	// 0x2000, which never hold pattern data).
	cachePages      [PageCount][]Tile
	cacheHFlipPages [PageCount][]Tile

	// readFunc/writeFunc are the indirection slots described in the
	// external interface: installing an interceptor replaces these,
	// installing nil reinstates the built-in routing.
	readFunc  func(addr uint16) uint8
	writeFunc func(addr uint16, data uint8)

	logUnmapped UnmappedLogger
}

// NewBus constructs an empty Bus with every page unmapped. Clients must
// install pages/handlers before using it; an all-unmapped bus reads as
// all zeros.
func NewBus() *Bus {
	b := &Bus{}
	b.readFunc = b.rawRead
	b.writeFunc = b.rawWrite
	return b
}

// SetUnmappedLogger installs the diagnostic sink used for unmapped
// accesses. Passing nil silences diagnostics.
func (b *Bus) SetUnmappedLogger(fn UnmappedLogger) {
	b.logUnmapped = fn
}

// InstallReadPage maps a 1024-byte span as the direct read source for
// page. Passing nil unmaps it (reads then fall through to the read
// handler, if any).
func (b *Bus) InstallReadPage(page int, mem []uint8) {
	b.readPages[page] = mem
}

// InstallWritePage maps a 1024-byte span as the direct write target for
// page. Passing nil unmaps it.
func (b *Bus) InstallWritePage(page int, mem []uint8) {
	b.writePages[page] = mem
}

// InstallReadHandler installs the fallback read callback for page, used
// only when no read page is mapped there.
func (b *Bus) InstallReadHandler(page int, fn ReadHandler) {
	b.readHandlers[page] = fn
}

// InstallWriteHandler installs the fallback write callback for page,
// used only when no write page is mapped there.
func (b *Bus) InstallWriteHandler(page int, fn WriteHandler) {
	b.writeHandlers[page] = fn
}

// InstallCachePages installs the pattern-cache backing arrays for page:
// one Tile per 16-byte-aligned tile in the page (64 tiles per 1KB page).
// Pages at or above 0x2000 never have a cache and should be left nil.
func (b *Bus) InstallCachePages(page int, normal, hflip []Tile) {
	b.cachePages[page] = normal
	b.cacheHFlipPages[page] = hflip
}

// CacheTileAt returns the decoded normal and horizontally-flipped tile
// for the 16-byte block containing addr, and whether a cache is backing
// that page at all.
func (b *Bus) CacheTileAt(addr uint16) (normal, hflip Tile, ok bool) {
	page := int(addr>>10) & 0xF
	idx := (addr & 0x03FF) / 16
	cache := b.cachePages[page]
	hcache := b.cacheHFlipPages[page]
	if cache == nil || int(idx) >= len(cache) {
		return Tile{}, Tile{}, false
	}
	return cache[idx], hcache[idx], true
}

// SetReadInterceptor installs a wrapper that runs in place of the
// built-in bus_read for every subsequent access. Passing nil reinstates
// direct routing through the page table.
func (b *Bus) SetReadInterceptor(fn func(addr uint16) uint8) {
	if fn == nil {
		b.readFunc = b.rawRead
		return
	}
	b.readFunc = fn
}

// SetWriteInterceptor installs a wrapper that runs in place of the
// built-in bus_write. Passing nil reinstates direct routing.
func (b *Bus) SetWriteInterceptor(fn func(addr uint16, data uint8)) {
	if fn == nil {
		b.writeFunc = b.rawWrite
		return
	}
	b.writeFunc = fn
}

// Read performs a PPU bus read through the currently installed
// interceptor (direct page-table routing by default).
func (b *Bus) Read(addr uint16) uint8 {
	return b.readFunc(addr & 0x3FFF)
}

// Write performs a PPU bus write through the currently installed
// interceptor.
func (b *Bus) Write(addr uint16, data uint8) {
	b.writeFunc(addr&0x3FFF, data)
}

func (b *Bus) rawRead(addr uint16) uint8 {
	page := int(addr>>10) & 0xF
	if mem := b.readPages[page]; mem != nil {
		return mem[addr&0x03FF]
	}
	if fn := b.readHandlers[page]; fn != nil {
		return fn(addr)
	}
	b.diagnose("ppu_memread", addr, nil)
	return 0
}

func (b *Bus) rawWrite(addr uint16, data uint8) {
	page := int(addr>>10) & 0xF
	if mem := b.writePages[page]; mem != nil {
		mem[addr&0x03FF] = data
		if addr < 0x2000 {
			b.refreshTile(page, addr)
		}
		return
	}
	if fn := b.writeHandlers[page]; fn != nil {
		fn(addr, data)
		return
	}
	b.diagnose("ppu_memwrite", addr, &data)
}

// refreshTile recomputes the pattern cache for the 16-byte tile
// containing addr. The whole tile is redone on every write rather than
// tracking which byte changed - cheap, and it removes per-byte
// bookkeeping entirely.
func (b *Bus) refreshTile(page int, addr uint16) {
	cache := b.cachePages[page]
	hcache := b.cacheHFlipPages[page]
	if cache == nil {
		return
	}
	chr := b.readPages[page]
	if chr == nil {
		return
	}
	tileBase := addr & 0x03F0 & 0x03FF
	idx := tileBase / 16
	if int(idx) >= len(cache) {
		return
	}
	src := chr[tileBase : tileBase+16]
	cache[idx] = CacheTile(src)
	hcache[idx] = CacheTileHFlip(src)
}

func (b *Bus) diagnose(channel string, addr uint16, data *uint8) {
	if b.logUnmapped != nil {
		b.logUnmapped(channel, addr, data)
	}
}
