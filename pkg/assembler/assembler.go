// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package assembler translates TTK91 assembly into packed instruction words
// in a single pass, patching forward label references afterwards.
package assembler

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/lassandro/gottk91/pkg/encoding"
)

type asm struct {
	rep *Reporter

	source []string // original lines, for diagnostics
	folded []string // comment-stripped, right-trimmed, case-folded

	st symTable

	instructions []uint32
	lineOf       []int
	unresolved   []unresolvedJump
}

// Compile assembles source into a Program. Diagnostics go to opts.Output;
// the returned error summarizes the count and carries no positions of its
// own. When symtab is non-nil it receives the final symbol and label tables,
// whether or not assembly succeeded.
func Compile(source string, opts CompileOptions, symtab *SymTable) (*Program, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	file := opts.Filename
	if file == "" {
		file = "<input>"
	}

	a := &asm{
		rep: NewReporter(out, file, opts.Color),
		st:  newSymTable(),
	}

	a.source = strings.Split(source, "\n")
	a.folded = make([]string, len(a.source))
	for i, line := range a.source {
		line = strings.TrimSuffix(line, "\r")
		a.source[i] = line
		a.folded[i] = foldLower(stripComment(line))
	}

	glog.V(1).Infof("assembling %s: %d lines", file, len(a.source))

	for i, line := range a.folded {
		if isBlank(line) {
			continue
		}
		lineNo := i + 1
		if a.tryPseudo(lineNo, line) {
			continue
		}
		a.parseLine(lineNo, line)
	}

	a.resolveJumps()

	if symtab != nil {
		symtab.Symbols = a.st.symbols
		symtab.Labels = a.st.labels
	}

	if n := a.rep.Errors(); n > 0 {
		return nil, fmt.Errorf("found %d error(s), no code generated", n)
	}

	// Safety net for programs missing their `SVC SP, =HALT`. The
	// interpreter reports reaching it so the author can be nagged.
	a.emit(0, encoding.OpHalt, encoding.R0, encoding.R0,
		encoding.ModeImmediate, 0)

	glog.V(1).Infof("%s: %d instructions, %d data slots",
		file, len(a.instructions), a.st.totalNumBytes)

	return &Program{
		Filename:         file,
		Instructions:     a.instructions,
		Constants:        a.st.values,
		DataSectionBytes: a.st.totalNumBytes,
		Lines:            a.source,
		LineOf:           a.lineOf,
	}, nil
}

// parseLine handles an instruction line, optionally preceded by a label.
func (a *asm) parseLine(lineNo int, line string) {
	sc := newLineScanner(line)

	word, col, ok := sc.popWord()
	if !ok {
		return
	}

	m, known := mnemonics[word]
	if !known {
		if !isIdentifier(word) {
			a.errorf(lineNo, Mark(col, len(word)),
				"Unknown instruction '%s'", word)
			return
		}
		if _, dup := a.st.labels[word]; dup {
			a.errorf(lineNo, Mark(col, len(word)),
				"Label '%s' already exists", word)
			return
		}
		if len(a.instructions) > math.MaxInt16 {
			a.errorf(lineNo, Mark(col, len(word)),
				"Too many instructions to address label '%s'", word)
			return
		}
		a.st.labels[word] = int16(len(a.instructions))

		word, col, ok = sc.popWord()
		if !ok {
			a.errorf(lineNo, Mark(0, col),
				"Label is not followed by an instruction")
			return
		}
		m, known = mnemonics[word]
		if !known {
			a.errorf(lineNo, Mark(col, len(word)),
				"Unknown instruction '%s'", word)
			return
		}
	}

	m.parse(a, m.op, sc, lineNo)
}

// resolveJumps patches forward references. The placeholder value field is
// zero, so the label index is simply OR'd in.
func (a *asm) resolveJumps() {
	for _, uj := range a.unresolved {
		idx, ok := a.st.labels[uj.label]
		if !ok {
			a.errorf(uj.line, Mark(uj.col, uj.length),
				"Label '%s' not found", uj.label)
			continue
		}
		a.instructions[uj.index] |= encoding.EncodeValue(idx)
	}

	if n := len(a.unresolved); n > 0 {
		glog.V(1).Infof("resolved %d forward jump(s)", n)
	}
	a.unresolved = a.unresolved[:0]
}

func (a *asm) line(lineNo int) string {
	if lineNo >= 1 && lineNo <= len(a.source) {
		return a.source[lineNo-1]
	}
	return ""
}

func (a *asm) errorf(lineNo int, span Span, format string, args ...interface{}) {
	a.rep.Errorf(lineNo, a.line(lineNo), span, format, args...)
}

func (a *asm) warnf(lineNo int, span Span, format string, args ...interface{}) {
	a.rep.Warnf(lineNo, a.line(lineNo), span, format, args...)
}
