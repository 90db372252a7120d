package render

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/wippyai/pickle/value"
	"github.com/wippyai/pickle/wire"
)

// markConsumers pop the most recent mark when executed.
var markConsumers = map[byte]bool{
	wire.OpAppends:   true,
	wire.OpSetItems:  true,
	wire.OpAddItems:  true,
	wire.OpFrozenSet: true,
	wire.OpTuple:     true,
	wire.OpPopMark:   true,
	wire.OpDict:      true,
	wire.OpList:      true,
	wire.OpObj:       true,
	wire.OpInst:      true,
}

// Disassembly lists instructions one per line, indenting the opcodes that
// run while a mark is open, and ends with the highest protocol used.
func Disassembly(instrs []wire.Instruction, st Style) string {
	var b strings.Builder
	depth := 0
	highest := -1
	for _, in := range instrs {
		if markConsumers[in.Info.Code] && depth > 0 {
			depth--
		}
		name := strings.Repeat(indentUnit, depth) + in.Info.Name
		arg := FormatArg(in.Arg)

		b.WriteString(st.Offset.Render(fmt.Sprintf("%5d:", in.Offset)))
		b.WriteByte(' ')
		b.WriteString(fmt.Sprintf("%-4s ", codeRepr(in.Info.Code)))
		if arg == "" {
			b.WriteString(st.Opcode.Render(name))
		} else {
			b.WriteString(st.Opcode.Render(fmt.Sprintf("%-18s", name)))
			b.WriteByte(' ')
			b.WriteString(st.Arg.Render(arg))
		}
		b.WriteByte('\n')

		if in.Info.Code == wire.OpMark {
			depth++
		}
		if in.Info.Proto > highest {
			highest = in.Info.Proto
		}
	}
	if highest >= 0 {
		fmt.Fprintf(&b, "highest protocol among opcodes = %d\n", highest)
	}
	return b.String()
}

// FormatArg renders an instruction operand the way Repr renders values.
func FormatArg(arg any) string {
	switch a := arg.(type) {
	case nil:
		return ""
	case int64:
		return fmt.Sprint(a)
	case *big.Int:
		return a.String()
	case float64:
		return value.FormatFloat(a)
	case []byte:
		return value.QuoteBytes(a)
	case string:
		return value.QuoteStr(a)
	case [2]string:
		return a[0] + " " + a[1]
	}
	return fmt.Sprint(arg)
}

func codeRepr(c byte) string {
	if c >= 0x20 && c < 0x7f && c != '\\' {
		return string(rune(c))
	}
	return fmt.Sprintf("\\x%02x", c)
}
