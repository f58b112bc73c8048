package vdm1

// charset is the character generator ROM: 128 glyphs of 13 scanlines,
// each scanline read most significant bit first.
var charset = [128][CharHeight]byte{
	{0x00, 0x7f, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x7f, 0x00, 0x00, 0x00}, // 0x00
	{0x00, 0x7f, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x00, 0x00, 0x00}, // 0x01
	{0x00, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x7f, 0x00, 0x00, 0x00}, // 0x02
	{0x00, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x7f, 0x00, 0x00, 0x00}, // 0x03
	{0x00, 0x20, 0x10, 0x08, 0x04, 0x3e, 0x10, 0x08, 0x04, 0x02, 0x00, 0x00, 0x00}, // 0x04
	{0x00, 0x7f, 0x41, 0x63, 0x55, 0x49, 0x55, 0x63, 0x41, 0x7f, 0x00, 0x00, 0x00}, // 0x05
	{0x00, 0x00, 0x01, 0x02, 0x04, 0x48, 0x50, 0x60, 0x40, 0x00, 0x00, 0x00, 0x00}, // 0x06
	{0x00, 0x1c, 0x22, 0x41, 0x41, 0x41, 0x7f, 0x14, 0x14, 0x77, 0x00, 0x00, 0x00}, // 0x07
	{0x00, 0x10, 0x20, 0x7c, 0x22, 0x11, 0x01, 0x01, 0x01, 0x01, 0x00, 0x00, 0x00}, // 0x08
	{0x00, 0x00, 0x08, 0x04, 0x02, 0x7f, 0x02, 0x04, 0x08, 0x00, 0x00, 0x00, 0x00}, // 0x09
	{0x00, 0x7f, 0x00, 0x00, 0x00, 0x7f, 0x00, 0x00, 0x00, 0x7f, 0x00, 0x00, 0x00}, // 0x0A
	{0x00, 0x00, 0x08, 0x08, 0x08, 0x49, 0x2a, 0x1c, 0x08, 0x00, 0x00, 0x00, 0x00}, // 0x0B
	{0x00, 0x08, 0x08, 0x2a, 0x1c, 0x08, 0x49, 0x2a, 0x1c, 0x08, 0x00, 0x00, 0x00}, // 0x0C
	{0x00, 0x00, 0x08, 0x10, 0x20, 0x7f, 0x20, 0x10, 0x08, 0x00, 0x00, 0x00, 0x00}, // 0x0D
	{0x00, 0x1c, 0x22, 0x63, 0x55, 0x49, 0x55, 0x63, 0x22, 0x1c, 0x00, 0x00, 0x00}, // 0x0E
	{0x00, 0x1c, 0x22, 0x41, 0x41, 0x49, 0x41, 0x41, 0x22, 0x1c, 0x00, 0x00, 0x00}, // 0x0F
	{0x00, 0x7f, 0x41, 0x41, 0x41, 0x7f, 0x41, 0x41, 0x41, 0x7f, 0x00, 0x00, 0x00}, // 0x10
	{0x00, 0x1c, 0x2a, 0x49, 0x49, 0x4f, 0x41, 0x41, 0x22, 0x1c, 0x00, 0x00, 0x00}, // 0x11
	{0x00, 0x1c, 0x22, 0x41, 0x41, 0x4f, 0x49, 0x49, 0x2a, 0x1c, 0x00, 0x00, 0x00}, // 0x12
	{0x00, 0x1c, 0x22, 0x41, 0x41, 0x79, 0x49, 0x49, 0x2a, 0x1c, 0x00, 0x00, 0x00}, // 0x13
	{0x00, 0x1c, 0x2a, 0x49, 0x49, 0x79, 0x41, 0x41, 0x22, 0x1c, 0x00, 0x00, 0x00}, // 0x14
	{0x00, 0x00, 0x11, 0x0a, 0x04, 0x4a, 0x51, 0x60, 0x40, 0x00, 0x00, 0x00, 0x00}, // 0x15
	{0x00, 0x3e, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x63, 0x00, 0x00, 0x00}, // 0x16
	{0x00, 0x01, 0x01, 0x01, 0x01, 0x7f, 0x01, 0x01, 0x01, 0x01, 0x00, 0x00, 0x00}, // 0x17
	{0x00, 0x7f, 0x41, 0x22, 0x14, 0x08, 0x14, 0x22, 0x41, 0x7f, 0x00, 0x00, 0x00}, // 0x18
	{0x00, 0x08, 0x08, 0x08, 0x1c, 0x1c, 0x08, 0x08, 0x08, 0x08, 0x00, 0x00, 0x00}, // 0x19
	{0x00, 0x3c, 0x42, 0x42, 0x40, 0x30, 0x08, 0x08, 0x00, 0x08, 0x00, 0x00, 0x00}, // 0x1A
	{0x00, 0x1c, 0x22, 0x41, 0x41, 0x7f, 0x41, 0x41, 0x22, 0x1c, 0x00, 0x00, 0x00}, // 0x1B
	{0x00, 0x7f, 0x49, 0x49, 0x49, 0x79, 0x41, 0x41, 0x41, 0x7f, 0x00, 0x00, 0x00}, // 0x1C
	{0x00, 0x7f, 0x41, 0x41, 0x41, 0x79, 0x49, 0x49, 0x49, 0x7f, 0x00, 0x00, 0x00}, // 0x1D
	{0x00, 0x7f, 0x41, 0x41, 0x41, 0x4f, 0x49, 0x49, 0x49, 0x7f, 0x00, 0x00, 0x00}, // 0x1E
	{0x00, 0x7f, 0x49, 0x49, 0x49, 0x4f, 0x41, 0x41, 0x41, 0x7f, 0x00, 0x00, 0x00}, // 0x1F
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 0x20
	{0x00, 0x08, 0x08, 0x08, 0x08, 0x08, 0x00, 0x00, 0x08, 0x08, 0x00, 0x00, 0x00}, // 0x21
	{0x00, 0x24, 0x24, 0x24, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 0x22
	{0x00, 0x14, 0x14, 0x14, 0x7f, 0x14, 0x7f, 0x14, 0x14, 0x14, 0x00, 0x00, 0x00}, // 0x23
	{0x00, 0x08, 0x3f, 0x48, 0x48, 0x3e, 0x09, 0x09, 0x7e, 0x08, 0x00, 0x00, 0x00}, // 0x24
	{0x00, 0x20, 0x51, 0x22, 0x04, 0x08, 0x10, 0x22, 0x45, 0x02, 0x00, 0x00, 0x00}, // 0x25
	{0x00, 0x38, 0x44, 0x44, 0x28, 0x10, 0x29, 0x46, 0x46, 0x39, 0x00, 0x00, 0x00}, // 0x26
	{0x00, 0x0c, 0x0c, 0x08, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 0x27
	{0x00, 0x04, 0x08, 0x10, 0x10, 0x10, 0x10, 0x10, 0x08, 0x04, 0x00, 0x00, 0x00}, // 0x28
	{0x00, 0x10, 0x08, 0x04, 0x04, 0x04, 0x04, 0x04, 0x08, 0x10, 0x00, 0x00, 0x00}, // 0x29
	{0x00, 0x00, 0x08, 0x49, 0x2a, 0x1c, 0x2a, 0x49, 0x08, 0x00, 0x00, 0x00, 0x00}, // 0x2A
	{0x00, 0x00, 0x08, 0x08, 0x08, 0x7f, 0x08, 0x08, 0x08, 0x00, 0x00, 0x00, 0x00}, // 0x2B
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x10, 0x20, 0x00}, // 0x2C
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x7f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 0x2D
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x00, 0x00, 0x00}, // 0x2E
	{0x00, 0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x00, 0x00, 0x00, 0x00}, // 0x2F
	{0x00, 0x3e, 0x41, 0x43, 0x45, 0x49, 0x51, 0x61, 0x41, 0x3e, 0x00, 0x00, 0x00}, // 0x30
	{0x00, 0x08, 0x18, 0x28, 0x08, 0x08, 0x08, 0x08, 0x08, 0x3e, 0x00, 0x00, 0x00}, // 0x31
	{0x00, 0x3e, 0x41, 0x01, 0x02, 0x1c, 0x20, 0x40, 0x40, 0x7f, 0x00, 0x00, 0x00}, // 0x32
	{0x00, 0x3e, 0x41, 0x01, 0x01, 0x1e, 0x01, 0x01, 0x41, 0x3e, 0x00, 0x00, 0x00}, // 0x33
	{0x00, 0x02, 0x06, 0x0a, 0x12, 0x22, 0x42, 0x7f, 0x02, 0x02, 0x00, 0x00, 0x00}, // 0x34
	{0x00, 0x7f, 0x40, 0x40, 0x7c, 0x02, 0x01, 0x01, 0x42, 0x3c, 0x00, 0x00, 0x00}, // 0x35
	{0x00, 0x1e, 0x20, 0x40, 0x40, 0x7e, 0x41, 0x41, 0x41, 0x3e, 0x00, 0x00, 0x00}, // 0x36
	{0x00, 0x7f, 0x41, 0x02, 0x04, 0x08, 0x10, 0x10, 0x10, 0x10, 0x00, 0x00, 0x00}, // 0x37
	{0x00, 0x3e, 0x41, 0x41, 0x41, 0x3e, 0x41, 0x41, 0x41, 0x3e, 0x00, 0x00, 0x00}, // 0x38
	{0x00, 0x3e, 0x41, 0x41, 0x41, 0x3f, 0x01, 0x01, 0x02, 0x3c, 0x00, 0x00, 0x00}, // 0x39
	{0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x00, 0x00, 0x18, 0x18, 0x00, 0x00, 0x00}, // 0x3A
	{0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x00, 0x00, 0x18, 0x18, 0x10, 0x20, 0x00}, // 0x3B
	{0x00, 0x04, 0x08, 0x10, 0x20, 0x40, 0x20, 0x10, 0x08, 0x04, 0x00, 0x00, 0x00}, // 0x3C
	{0x00, 0x00, 0x00, 0x00, 0x3e, 0x00, 0x3e, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 0x3D
	{0x00, 0x10, 0x08, 0x04, 0x02, 0x01, 0x02, 0x04, 0x08, 0x10, 0x00, 0x00, 0x00}, // 0x3E
	{0x00, 0x1e, 0x21, 0x21, 0x01, 0x06, 0x08, 0x08, 0x00, 0x08, 0x00, 0x00, 0x00}, // 0x3F
	{0x00, 0x1e, 0x21, 0x4d, 0x55, 0x55, 0x5e, 0x40, 0x20, 0x1e, 0x00, 0x00, 0x00}, // 0x40
	{0x00, 0x1c, 0x22, 0x41, 0x41, 0x41, 0x7f, 0x41, 0x41, 0x41, 0x00, 0x00, 0x00}, // 0x41
	{0x00, 0x7e, 0x21, 0x21, 0x21, 0x3e, 0x21, 0x21, 0x21, 0x7e, 0x00, 0x00, 0x00}, // 0x42
	{0x00, 0x1e, 0x21, 0x40, 0x40, 0x40, 0x40, 0x40, 0x21, 0x1e, 0x00, 0x00, 0x00}, // 0x43
	{0x00, 0x7c, 0x22, 0x21, 0x21, 0x21, 0x21, 0x21, 0x22, 0x7c, 0x00, 0x00, 0x00}, // 0x44
	{0x00, 0x7f, 0x40, 0x40, 0x40, 0x78, 0x40, 0x40, 0x40, 0x7f, 0x00, 0x00, 0x00}, // 0x45
	{0x00, 0x7f, 0x40, 0x40, 0x40, 0x78, 0x40, 0x40, 0x40, 0x40, 0x00, 0x00, 0x00}, // 0x46
	{0x00, 0x1e, 0x21, 0x40, 0x40, 0x40, 0x4f, 0x41, 0x21, 0x1e, 0x00, 0x00, 0x00}, // 0x47
	{0x00, 0x41, 0x41, 0x41, 0x41, 0x7f, 0x41, 0x41, 0x41, 0x41, 0x00, 0x00, 0x00}, // 0x48
	{0x00, 0x3e, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x3e, 0x00, 0x00, 0x00}, // 0x49
	{0x00, 0x1f, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04, 0x44, 0x38, 0x00, 0x00, 0x00}, // 0x4A
	{0x00, 0x41, 0x42, 0x44, 0x48, 0x50, 0x68, 0x44, 0x42, 0x41, 0x00, 0x00, 0x00}, // 0x4B
	{0x00, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x7f, 0x00, 0x00, 0x00}, // 0x4C
	{0x00, 0x41, 0x63, 0x55, 0x49, 0x49, 0x41, 0x41, 0x41, 0x41, 0x00, 0x00, 0x00}, // 0x4D
	{0x00, 0x41, 0x61, 0x51, 0x49, 0x45, 0x43, 0x41, 0x41, 0x41, 0x00, 0x00, 0x00}, // 0x4E
	{0x00, 0x1c, 0x22, 0x41, 0x41, 0x41, 0x41, 0x41, 0x22, 0x1c, 0x00, 0x00, 0x00}, // 0x4F
	{0x00, 0x7e, 0x41, 0x41, 0x41, 0x7e, 0x40, 0x40, 0x40, 0x40, 0x00, 0x00, 0x00}, // 0x50
	{0x00, 0x1c, 0x22, 0x41, 0x41, 0x41, 0x49, 0x45, 0x22, 0x1d, 0x00, 0x00, 0x00}, // 0x51
	{0x00, 0x7e, 0x41, 0x41, 0x41, 0x7e, 0x48, 0x44, 0x42, 0x41, 0x00, 0x00, 0x00}, // 0x52
	{0x00, 0x3e, 0x41, 0x40, 0x40, 0x3e, 0x01, 0x01, 0x41, 0x3e, 0x00, 0x00, 0x00}, // 0x53
	{0x00, 0x7f, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x00, 0x00, 0x00}, // 0x54
	{0x00, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x3e, 0x00, 0x00, 0x00}, // 0x55
	{0x00, 0x41, 0x41, 0x41, 0x22, 0x22, 0x14, 0x14, 0x08, 0x08, 0x00, 0x00, 0x00}, // 0x56
	{0x00, 0x41, 0x41, 0x41, 0x41, 0x49, 0x49, 0x55, 0x63, 0x41, 0x00, 0x00, 0x00}, // 0x57
	{0x00, 0x41, 0x41, 0x22, 0x14, 0x08, 0x14, 0x22, 0x41, 0x41, 0x00, 0x00, 0x00}, // 0x58
	{0x00, 0x41, 0x41, 0x22, 0x14, 0x08, 0x08, 0x08, 0x08, 0x08, 0x00, 0x00, 0x00}, // 0x59
	{0x00, 0x7f, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x7f, 0x00, 0x00, 0x00}, // 0x5A
	{0x00, 0x3c, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x3c, 0x00, 0x00, 0x00}, // 0x5B
	{0x00, 0x00, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01, 0x00, 0x00, 0x00, 0x00}, // 0x5C
	{0x00, 0x3c, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04, 0x3c, 0x00, 0x00, 0x00}, // 0x5D
	{0x00, 0x08, 0x14, 0x22, 0x41, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 0x5E
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7f, 0x00, 0x00, 0x00}, // 0x5F
	{0x00, 0x18, 0x18, 0x08, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 0x60
	{0x00, 0x00, 0x00, 0x00, 0x3c, 0x02, 0x3e, 0x42, 0x42, 0x3d, 0x00, 0x00, 0x00}, // 0x61
	{0x00, 0x40, 0x40, 0x40, 0x5c, 0x62, 0x42, 0x42, 0x62, 0x5c, 0x00, 0x00, 0x00}, // 0x62
	{0x00, 0x00, 0x00, 0x00, 0x3c, 0x42, 0x40, 0x40, 0x42, 0x3c, 0x00, 0x00, 0x00}, // 0x63
	{0x00, 0x02, 0x02, 0x02, 0x3a, 0x46, 0x42, 0x42, 0x46, 0x3a, 0x00, 0x00, 0x00}, // 0x64
	{0x00, 0x00, 0x00, 0x00, 0x3c, 0x42, 0x7e, 0x40, 0x40, 0x3c, 0x00, 0x00, 0x00}, // 0x65
	{0x00, 0x0c, 0x12, 0x10, 0x10, 0x7c, 0x10, 0x10, 0x10, 0x10, 0x00, 0x00, 0x00}, // 0x66
	{0x00, 0x00, 0x00, 0x00, 0x3a, 0x46, 0x42, 0x46, 0x3a, 0x02, 0x02, 0x42, 0x3c}, // 0x67
	{0x00, 0x40, 0x40, 0x40, 0x5c, 0x62, 0x42, 0x42, 0x42, 0x42, 0x00, 0x00, 0x00}, // 0x68
	{0x00, 0x00, 0x08, 0x00, 0x18, 0x08, 0x08, 0x08, 0x08, 0x1c, 0x00, 0x00, 0x00}, // 0x69
	{0x00, 0x00, 0x00, 0x00, 0x06, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x22, 0x1c}, // 0x6A
	{0x00, 0x40, 0x40, 0x40, 0x44, 0x48, 0x50, 0x68, 0x44, 0x42, 0x00, 0x00, 0x00}, // 0x6B
	{0x00, 0x18, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x08, 0x1c, 0x00, 0x00, 0x00}, // 0x6C
	{0x00, 0x00, 0x00, 0x00, 0x76, 0x49, 0x49, 0x49, 0x49, 0x49, 0x00, 0x00, 0x00}, // 0x6D
	{0x00, 0x00, 0x00, 0x00, 0x5c, 0x62, 0x42, 0x42, 0x42, 0x42, 0x00, 0x00, 0x00}, // 0x6E
	{0x00, 0x00, 0x00, 0x00, 0x3c, 0x42, 0x42, 0x42, 0x42, 0x3c, 0x00, 0x00, 0x00}, // 0x6F
	{0x00, 0x00, 0x00, 0x00, 0x5c, 0x62, 0x42, 0x42, 0x62, 0x5c, 0x40, 0x40, 0x40}, // 0x70
	{0x00, 0x00, 0x00, 0x00, 0x3a, 0x46, 0x42, 0x42, 0x46, 0x3a, 0x02, 0x02, 0x02}, // 0x71
	{0x00, 0x00, 0x00, 0x00, 0x5c, 0x62, 0x40, 0x40, 0x40, 0x40, 0x00, 0x00, 0x00}, // 0x72
	{0x00, 0x00, 0x00, 0x00, 0x3c, 0x42, 0x30, 0x0c, 0x42, 0x3c, 0x00, 0x00, 0x00}, // 0x73
	{0x00, 0x00, 0x10, 0x10, 0x7c, 0x10, 0x10, 0x10, 0x12, 0x0c, 0x00, 0x00, 0x00}, // 0x74
	{0x00, 0x00, 0x00, 0x00, 0x42, 0x42, 0x42, 0x42, 0x46, 0x3a, 0x00, 0x00, 0x00}, // 0x75
	{0x00, 0x00, 0x00, 0x00, 0x41, 0x41, 0x41, 0x22, 0x14, 0x08, 0x00, 0x00, 0x00}, // 0x76
	{0x00, 0x00, 0x00, 0x00, 0x41, 0x49, 0x49, 0x49, 0x49, 0x36, 0x00, 0x00, 0x00}, // 0x77
	{0x00, 0x00, 0x00, 0x00, 0x42, 0x24, 0x18, 0x18, 0x24, 0x42, 0x00, 0x00, 0x00}, // 0x78
	{0x00, 0x00, 0x00, 0x00, 0x42, 0x42, 0x42, 0x42, 0x46, 0x3a, 0x02, 0x42, 0x3c}, // 0x79
	{0x00, 0x00, 0x00, 0x00, 0x7e, 0x04, 0x08, 0x10, 0x20, 0x7e, 0x00, 0x00, 0x00}, // 0x7A
	{0x00, 0x0e, 0x10, 0x10, 0x10, 0x20, 0x10, 0x10, 0x10, 0x0e, 0x00, 0x00, 0x00}, // 0x7B
	{0x00, 0x08, 0x08, 0x08, 0x00, 0x00, 0x08, 0x08, 0x08, 0x00, 0x00, 0x00, 0x00}, // 0x7C
	{0x00, 0x18, 0x04, 0x04, 0x04, 0x02, 0x04, 0x04, 0x04, 0x18, 0x00, 0x00, 0x00}, // 0x7D
	{0x00, 0x30, 0x49, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 0x7E
	{0x00, 0x24, 0x49, 0x12, 0x24, 0x49, 0x12, 0x24, 0x49, 0x12, 0x00, 0x00, 0x00}, // 0x7F
}
