package debuginfo

import (
	"fmt"
	"io"
)

// Disassembler formats a DebugInfo's file-regions, function-header and
// lexical-scope tables as readable, testable text. It mirrors the
// bytecode disassembler's io.Writer-targeted, section-separated style,
// but the tables it prints have a fixed grammar (spec §6, §8) rather
// than an instruction-by-instruction dump.
type Disassembler struct {
	w       io.Writer
	printed bool
}

// NewDisassembler constructs a disassembler that writes to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

func (d *Disassembler) startSection() {
	if d.printed {
		fmt.Fprintln(d.w)
	}
	d.printed = true
}

// DisassembleFilenames prints the file-regions table, one line per
// region in table order:
//
//	Filename table:
//	  0: offset=<fromAddress> file=<filename> url=<sourceMappingUrlId>
func (d *Disassembler) DisassembleFilenames(info *DebugInfo) {
	d.startSection()
	fmt.Fprintln(d.w, "Filename table:")
	for i, region := range info.files {
		filename, ok := info.filenames.Lookup(region.FilenameID)
		if !ok {
			filename = "<unknown>"
		}
		fmt.Fprintf(d.w, "  %d: offset=%d file=%s url=%d\n", i, region.FromAddress, filename, region.SourceMappingURLID)
	}
}

// DisassembleFilesAndOffsets prints every function's header offset
// together with the filename active at that offset:
//
//	Functions and files:
//	  function 0: offset=<debugOffset> file=<filename>
func (d *Disassembler) DisassembleFilesAndOffsets(info *DebugInfo, functionHeaderOffsets []uint32) {
	d.startSection()
	fmt.Fprintln(d.w, "Functions and files:")
	for functionIndex, headerOffset := range functionHeaderOffsets {
		filename, ok := info.GetFilenameForAddress(headerOffset)
		if !ok {
			filename = "<unknown>"
		}
		fmt.Fprintf(d.w, "  function %d: offset=%d file=%s\n", functionIndex, headerOffset, filename)
	}
}

// DisassembleLexicalData prints the single lexical scope recorded at
// offset; parent links are not followed:
//
//	Lexical data at <offset>:
//	  offset=<offset> parent=<parentFunctionId|none> names=[<name>, ...]
func (d *Disassembler) DisassembleLexicalData(info *DebugInfo, offset uint32) {
	d.startSection()
	fmt.Fprintf(d.w, "Lexical data at %d:\n", offset)
	names := info.GetVariableNames(offset)
	parent, hasParent := info.GetParentFunctionID(offset)
	parentStr := "none"
	if hasParent {
		parentStr = fmt.Sprintf("%d", parent)
	}
	fmt.Fprintf(d.w, "  offset=%d parent=%s names=%s\n", offset, parentStr, formatNames(names))
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return "[]"
	}
	out := "["
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out + "]"
}
