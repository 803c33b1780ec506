package source

// SkipHeader drops an opaque prefix such as "EU4txt" in front of the textual
// body. Data is returned unchanged when an '=' appears before any ASCII
// control byte; otherwise it is sliced from the first control byte.
func SkipHeader(data []byte) []byte {
	for i, c := range data {
		if c == '=' {
			return data
		}
		if c < 0x20 || c == 0x7f {
			return data[i:]
		}
	}
	return data
}
