package bytecode

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/object"
)

// Digest is a content hash of a unit.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Fingerprinter is implemented by values that identify themselves by
// content, such as pre-instantiated closures.
type Fingerprinter interface {
	Fingerprint() Digest
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

type accessPrint struct {
	Kind     AccessKind
	Span     ast.Span
	Readable Readable
	Register Register
	Value    string
	Base     int
	Name     string
	Args     Readable
}

type defaultPrint struct {
	Target Register
	Value  string
}

type unitPrint struct {
	Name         string
	Kind         UnitKind
	File         ast.FileID
	Span         ast.Span
	Instructions []Instruction
	Spans        []ast.Span
	Constants    []string
	Strings      []string
	Closures     []string
	Accesses     []accessPrint
	Labels       []int
	Patterns     []Pattern
	Defaults     []defaultPrint
	Registers    int
	Output       Readable
	Captures     []Capture
	Params       []Param
	Self         int64
	Exports      []Export
}

// Fingerprint hashes the canonical CBOR encoding of a unit. Two units with
// the same fingerprint behave identically, including the spans of the
// errors they raise.
func Fingerprint(u *Unit) (Digest, error) {
	p := unitPrint{
		Name:         u.name,
		Kind:         u.kind,
		File:         u.file,
		Span:         u.span,
		Instructions: u.instructions,
		Spans:        u.spans,
		Strings:      u.strings,
		Labels:       u.labels,
		Patterns:     u.patterns,
		Registers:    u.registers,
		Output:       u.output,
		Captures:     u.captures,
		Params:       u.params,
		Self:         -1,
		Exports:      u.exports,
	}
	if u.hasSelf {
		p.Self = int64(u.self)
	}
	for _, c := range u.constants {
		p.Constants = append(p.Constants, valuePrint(c))
	}
	for _, c := range u.closures {
		if c.Mode == Instantiated && c.Value != nil {
			p.Closures = append(p.Closures, valuePrint(c.Value))
			continue
		}
		d, err := Fingerprint(c.Unit)
		if err != nil {
			return Digest{}, err
		}
		p.Closures = append(p.Closures, c.Mode.String()+":"+d.String())
	}
	for _, a := range u.accesses {
		ap := accessPrint{
			Kind: a.Kind, Span: a.Span, Readable: a.Readable, Register: a.Register,
			Base: a.Base, Name: a.Name, Args: a.Args,
		}
		if a.Value != nil {
			ap.Value = valuePrint(a.Value)
		}
		p.Accesses = append(p.Accesses, ap)
	}
	for _, d := range u.defaults {
		p.Defaults = append(p.Defaults, defaultPrint{Target: d.Target, Value: valuePrint(d.Value)})
	}
	data, err := encMode.Marshal(p)
	if err != nil {
		return Digest{}, fmt.Errorf("fingerprint %s: %w", u.name, err)
	}
	return sha256.Sum256(data), nil
}

// FingerprintClosure hashes a closure unit together with the values bound
// to it when it was built, such as parameter defaults. Nil values stand
// for unbound slots.
func FingerprintClosure(u *Unit, bound []object.Value) (Digest, error) {
	d, err := Fingerprint(u)
	if err != nil {
		return Digest{}, err
	}
	h := sha256.New()
	h.Write(d[:])
	for _, v := range bound {
		if v == nil {
			h.Write([]byte{0})
			continue
		}
		h.Write([]byte(valuePrint(v)))
		h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}

func valuePrint(v object.Value) string {
	switch v := v.(type) {
	case Fingerprinter:
		return "closure:" + v.Fingerprint().String()
	case *object.Module:
		return "module:" + v.File().String()
	}
	return v.Type().Name() + ":" + v.Repr()
}
