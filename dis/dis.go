// Package dis renders compiled units as human readable instruction
// listings.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/op"
)

// Instruction is one disassembled instruction.
type Instruction struct {
	Offset   int
	Name     string
	Operands []string
	Info     string
	Span     ast.Span
}

// Listing is the disassembly of one unit. Closures holds the listings of
// the nested closures in pool order.
type Listing struct {
	Path         string
	Kind         string
	Registers    int
	Instructions []Instruction
	Closures     []*Listing
}

// Disassemble returns the listing of a unit and its nested closures.
func Disassemble(u *bytecode.Unit) *Listing {
	return disassemble(u, unitName(u, "module"), "module")
}

func unitName(u *bytecode.Unit, fallback string) string {
	if u.Name() != "" {
		return u.Name()
	}
	return fallback
}

func disassemble(u *bytecode.Unit, path, kind string) *Listing {
	l := &Listing{Path: path, Kind: kind, Registers: u.Registers()}
	for i := 0; i < u.InstructionCount(); i++ {
		instr := u.InstructionAt(i)
		info := op.GetInfo(instr.Op)
		l.Instructions = append(l.Instructions, Instruction{
			Offset:   i,
			Name:     instr.Op.String(),
			Operands: operands(instr, info),
			Info:     annotate(u, instr),
			Span:     u.SpanAt(i),
		})
	}
	for i := 0; i < u.ClosureCount(); i++ {
		c := u.ClosureAt(i)
		name := path + "/" + unitName(c.Unit, fmt.Sprintf("closure%d", i))
		l.Closures = append(l.Closures, disassemble(c.Unit, name, c.Mode.String()))
	}
	return l
}

func operands(instr bytecode.Instruction, info op.Info) []string {
	out := make([]string, 0, len(info.Operands))
	for _, name := range info.Operands {
		var v string
		switch name {
		case "a":
			v = instr.A.String()
		case "b":
			v = instr.B.String()
		case "out":
			v = instr.Out.String()
		case "index":
			v = fmt.Sprint(instr.Index)
		case "index2":
			v = fmt.Sprint(instr.Index2)
		}
		out = append(out, name+"="+v)
	}
	return out
}

// annotate resolves pool references an instruction makes into a short
// description.
func annotate(u *bytecode.Unit, instr bytecode.Instruction) string {
	var parts []string
	switch instr.Op {
	case op.Field, op.CallMethod, op.CallMethodMut:
		parts = append(parts, fmt.Sprintf("%q", u.StringAt(int(instr.Index))))
	case op.Instantiate:
		c := u.ClosureAt(int(instr.Index))
		parts = append(parts, unitName(c.Unit, "closure"))
	case op.Jump, op.JumpIf, op.JumpIfNot:
		parts = append(parts, fmt.Sprintf("-> %d", u.LabelAt(int(instr.Index))))
	case op.Select:
		if instr.Index == op.SelectOr {
			parts = append(parts, "or")
		} else {
			parts = append(parts, "and")
		}
	case op.While:
		parts = append(parts, fmt.Sprintf("cond %d, body %d", instr.Index, instr.Index2))
	case op.Iter:
		parts = append(parts, fmt.Sprintf("body %d", instr.Index))
	}
	for _, r := range []bytecode.Readable{instr.A, instr.B} {
		switch r.Kind {
		case bytecode.ReadConst:
			if int(r.Index) < u.ConstantCount() {
				parts = append(parts, r.String()+"="+u.ConstantAt(int(r.Index)).Repr())
			}
		case bytecode.ReadStr:
			if int(r.Index) < u.StringCount() {
				parts = append(parts, fmt.Sprintf("%s=%q", r, u.StringAt(int(r.Index))))
			}
		}
	}
	return strings.Join(parts, " ")
}

// Printer writes listings.
type Printer struct {
	// UseColor enables ANSI colors for opcode names and headers.
	UseColor bool
}

var (
	colorHeader = color.New(color.FgHiWhite, color.Bold)
	colorOpcode = color.New(color.FgCyan)
	colorInfo   = color.New(color.FgHiBlack)
)

func (p Printer) paint(c *color.Color, s string) string {
	if !p.UseColor {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

// Print writes a listing and its closures to w.
func (p Printer) Print(w io.Writer, l *Listing) error {
	if _, err := fmt.Fprintf(w, "%s\n", p.paint(colorHeader,
		fmt.Sprintf("%s %s (%d registers)", l.Kind, l.Path, l.Registers))); err != nil {
		return err
	}
	for _, instr := range l.Instructions {
		line := fmt.Sprintf("  %04d %s %-36s %s",
			instr.Offset,
			p.paint(colorOpcode, fmt.Sprintf("%-16s", instr.Name)),
			strings.Join(instr.Operands, " "),
			formatSpan(instr.Span))
		if instr.Info != "" {
			line += " " + p.paint(colorInfo, "; "+instr.Info)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	for _, c := range l.Closures {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := p.Print(w, c); err != nil {
			return err
		}
	}
	return nil
}

func formatSpan(s ast.Span) string {
	if s.IsDetached() {
		return "detached"
	}
	return fmt.Sprintf("%s:%d-%d", s.File, s.Start, s.End)
}

// Fprint writes the uncolored listing of a unit to w.
func Fprint(w io.Writer, u *bytecode.Unit) error {
	return Printer{}.Print(w, Disassemble(u))
}

// Print writes the listing of a unit to the color-aware standard output.
// Colors follow color.NoColor.
func Print(u *bytecode.Unit) error {
	return Printer{UseColor: !color.NoColor}.Print(color.Output, Disassemble(u))
}
