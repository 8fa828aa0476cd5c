// Package cartridge loads iNES ROM images and installs their CHR and
// nametable memory into a ppu.Bus page table, playing the mapper's
// role as the owner of the pages the PPU core only borrows.
package cartridge

import (
	"encoding/binary"
	"errors"
	"io"

	"nesppu/internal/ppu"
)

// MirrorMode is the nametable mirroring arrangement declared by the
// cartridge (or, for four-screen boards, backed by extra on-cartridge
// VRAM).
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// Cartridge holds the ROM/RAM images produced by parsing an iNES file
// and the mapper metadata needed to lay them out on the PPU bus.
type Cartridge struct {
	prgROM []uint8
	chrROM []uint8
	sram   [0x2000]uint8
	vram   []uint8 // nametable RAM, 2KB (or 4KB for four-screen boards)

	mapperID   uint8
	mirror     MirrorMode
	hasBattery bool
	hasCHRRAM  bool
}

type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8
	CHRROMSize uint8
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	TVSystem1  uint8
	TVSystem2  uint8
	Padding    [5]uint8
}

// LoadFromReader parses an iNES image and returns a Cartridge whose CHR
// and nametable memory is ready to be installed onto a PPU bus.
func LoadFromReader(r io.Reader) (*Cartridge, error) {
	var header iNESHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.Magic[:]) != "NES\x1A" {
		return nil, errors.New("cartridge: not an iNES image")
	}
	if header.PRGROMSize == 0 {
		return nil, errors.New("cartridge: PRG ROM size cannot be zero")
	}

	cart := &Cartridge{
		mapperID:   (header.Flags6 >> 4) | (header.Flags7 & 0xF0),
		hasBattery: header.Flags6&0x02 != 0,
	}

	switch {
	case header.Flags6&0x08 != 0:
		cart.mirror = MirrorFourScreen
		cart.vram = make([]uint8, 0x1000)
	case header.Flags6&0x01 != 0:
		cart.mirror = MirrorVertical
		cart.vram = make([]uint8, 0x0800)
	default:
		cart.mirror = MirrorHorizontal
		cart.vram = make([]uint8, 0x0800)
	}

	if header.Flags6&0x04 != 0 {
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, err
		}
	}

	cart.prgROM = make([]uint8, int(header.PRGROMSize)*0x4000)
	if _, err := io.ReadFull(r, cart.prgROM); err != nil {
		return nil, err
	}

	if header.CHRROMSize > 0 {
		cart.chrROM = make([]uint8, int(header.CHRROMSize)*0x2000)
		if _, err := io.ReadFull(r, cart.chrROM); err != nil {
			return nil, err
		}
	} else {
		cart.chrROM = make([]uint8, 0x2000)
		cart.hasCHRRAM = true
	}

	return cart, nil
}

// MirrorMode returns the cartridge's nametable mirroring arrangement.
func (c *Cartridge) MirrorMode() MirrorMode { return c.mirror }

// MapperID returns the iNES mapper number; only mapper 0 (NROM) is
// implemented by this package's InstallPPUPages.
func (c *Cartridge) MapperID() uint8 { return c.mapperID }

// ReadPRG and WritePRG round out iNES loading for PRG-RAM-backed
// boards. The CPU-side bus that would call these is outside this
// core's scope; they exist so LoadFromReader produces a complete,
// byte-faithful cartridge image rather than a CHR-only fragment.
func (c *Cartridge) ReadPRG(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		offset := address - 0x8000
		if len(c.prgROM) == 0x4000 {
			offset &= 0x3FFF
		}
		if int(offset) < len(c.prgROM) {
			return c.prgROM[offset]
		}
		return 0
	case address >= 0x6000:
		return c.sram[address-0x6000]
	default:
		return 0
	}
}

func (c *Cartridge) WritePRG(address uint16, value uint8) {
	if address >= 0x6000 && address < 0x8000 {
		c.sram[address-0x6000] = value
	}
}

// InstallPPUPages lays the cartridge's CHR and nametable memory onto
// bus: pages 0-7 (0x0000-0x1FFF) become the pattern tables, writable
// only when the cartridge has CHR-RAM, and pages 8-15 (0x2000-0x3FFF)
// become the nametables, mirrored per the cartridge's MirrorMode. This
// is the mapper-side "bank swap" the PPU bus is built to tolerate at
// any point between CPU instructions.
func (c *Cartridge) InstallPPUPages(bus *ppu.Bus) {
	c.installCHR(bus)
	c.installNametables(bus)
}

func (c *Cartridge) installCHR(bus *ppu.Bus) {
	for page := 0; page < 8; page++ {
		start := page * ppu.PageSize
		end := start + ppu.PageSize
		if end > len(c.chrROM) {
			break
		}
		span := c.chrROM[start:end]
		bus.InstallReadPage(page, span)
		if c.hasCHRRAM {
			bus.InstallWritePage(page, span)
		} else {
			bus.InstallWritePage(page, nil)
		}

		tilesPerPage := ppu.PageSize / 16
		normal := make([]ppu.Tile, tilesPerPage)
		hflip := make([]ppu.Tile, tilesPerPage)
		for i := 0; i < tilesPerPage; i++ {
			tile := span[i*16 : i*16+16]
			normal[i] = ppu.CacheTile(tile)
			hflip[i] = ppu.CacheTileHFlip(tile)
		}
		bus.InstallCachePages(page, normal, hflip)
	}
}
