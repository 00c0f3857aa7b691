package linear

// PageSize is the size of a WebAssembly memory page.
const PageSize = 65536

// memoryModule encodes a module that exports one memory named "memory" with
// the given page limits.
func memoryModule(minPages, maxPages uint32) []byte {
	var limits []byte
	limits = append(limits, 0x01) // limits with maximum
	limits = appendULEB(limits, minPages)
	limits = appendULEB(limits, maxPages)

	memSection := append([]byte{0x01}, limits...) // one memory

	exportSection := []byte{0x01, 0x06} // one export, 6-byte name
	exportSection = append(exportSection, "memory"...)
	exportSection = append(exportSection, 0x02, 0x00) // memory index 0

	out := []byte{
		0x00, 0x61, 0x73, 0x6d, // magic
		0x01, 0x00, 0x00, 0x00, // version
	}
	out = appendSection(out, 0x05, memSection)
	out = appendSection(out, 0x07, exportSection)
	return out
}

func appendSection(out []byte, id byte, body []byte) []byte {
	out = append(out, id)
	out = appendULEB(out, uint32(len(body)))
	return append(out, body...)
}

func appendULEB(out []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}
