package ui

// iconBytes is a 16x16 PNG used as the tray icon.
var iconBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0xf3, 0xff, 0x61, 0x00, 0x00, 0x00,
	0x2a, 0x49, 0x44, 0x41, 0x54, 0x78, 0xda, 0x63, 0x60, 0xa0, 0x0a, 0xf8,
	0xff, 0xff, 0x3f, 0x59, 0x78, 0x18, 0x1b, 0x00, 0x63, 0x50, 0x6c, 0x00,
	0x41, 0x83, 0x88, 0x35, 0x00, 0xa7, 0x41, 0x74, 0x33, 0x80, 0xfe, 0x81,
	0x38, 0x22, 0x53, 0x22, 0x05, 0x00, 0x00, 0xf2, 0x5a, 0x49, 0xd3, 0x28,
	0xc6, 0xaa, 0x74, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}
