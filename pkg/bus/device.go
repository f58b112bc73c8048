package bus

// MemoryHandler is a device that answers a range of the memory address
// space. Handlers receive the full bus address and do their own masking.
type MemoryHandler interface {
	ReadMem(addr uint16) byte
	WriteMem(addr uint16, val byte)
}

// IOHandler is a device that answers one or more I/O ports.
type IOHandler interface {
	In(port uint8) byte
	Out(port uint8, val byte)
}
