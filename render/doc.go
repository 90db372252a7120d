// Package render turns decoded values and disassembled tapes into output
// for people and other tools.
//
// Text and Disassembly produce lipgloss-styled listings; pass PlainStyle
// for uncolored output. YAML and CBOR produce documents other languages
// can read: YAML keeps shared structure through anchors, CBOR is canonical
// and rejects cycles.
package render
