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

package assembler

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// tryPseudo tentatively reads "NAME TYPE VALUE" from the line. The line is
// claimed only if TYPE is one of dc, ds, equ; otherwise nothing is consumed
// and the caller parses the line as an instruction. A claimed line with a
// bad NAME or VALUE reports an error but stays claimed.
func (a *asm) tryPseudo(lineNo int, line string) bool {
	sc := newLineScanner(line)

	name, nameCol, ok := sc.popWord()
	if !ok {
		return false
	}

	typ, typCol, ok := sc.popWord()
	if !ok || typ != "dc" && typ != "ds" && typ != "equ" {
		return false
	}

	valStr, valCol, ok := sc.popWord()
	if !ok {
		a.errorf(lineNo, Mark(typCol, len(typ)),
			"Missing value for %s", strings.ToUpper(typ))
		return true
	}
	if !sc.empty() {
		col := sc.pos()
		a.errorf(lineNo, Mark(col, len(sc.rest)),
			"Unexpected '%s' after %s", sc.rest, strings.ToUpper(typ))
		return true
	}

	if !isIdentifier(name) {
		a.errorf(lineNo, Mark(nameCol, len(name)),
			"Invalid name '%s' for a data declaration", name)
		return true
	}
	if _, exists := a.st.symbols[name]; exists {
		a.errorf(lineNo, Mark(nameCol, len(name)),
			"Symbol '%s' already exists", name)
		return true
	}

	v64, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil || v64 > math.MaxInt32 || v64 < math.MinInt32 {
		a.errorf(lineNo, Mark(valCol, len(valStr)),
			"Invalid value '%s' for %s", valStr, strings.ToUpper(typ))
		return true
	}
	value := int32(v64)

	var bound int32
	switch typ {
	case "dc":
		bound = a.st.totalNumBytes
		a.st.values = append(a.st.values, DataConstant{
			Address: bound,
			Value:   value,
		})
		a.st.totalNumBytes += 4

	case "ds":
		if value < 0 {
			a.errorf(lineNo, Mark(valCol, len(valStr)),
				"DS cannot reserve a negative number of slots")
			return true
		}
		// 4*value must not run the bump pointer past int32.
		if value > (math.MaxInt32-a.st.totalNumBytes)/4 {
			a.errorf(lineNo, Mark(valCol, len(valStr)),
				"DS of %s slots does not fit in the data section", valStr)
			return true
		}
		bound = a.st.totalNumBytes
		a.st.totalNumBytes += 4 * value

	case "equ":
		bound = value
	}

	a.st.symbols[name] = bound

	glog.V(2).Infof("%s %s %d -> %d", name, typ, value, bound)

	return true
}
