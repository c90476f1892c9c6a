// Package bytecode provides the immutable representation of compiled quill
// code.
//
// The compiler lowers one lexical scope (the top level of a module or one
// closure body) into a [Unit]: a linear stream of fixed-format
// [Instruction] values operating on a per-invocation register file, plus
// the pools and tables the instructions index into.
//
// # Key Types
//
//   - [Unit]: instructions, spans, pools and tables for one scope
//   - [Readable] and [Writable]: where an operand is read from or written to
//   - [Closure]: a nested unit plus its runtime representation
//   - [Pattern]: a compiled destructuring pattern
//   - [Access]: a compiled place, such as `dict.key` or `arr.at(0)`
//
// # Immutability Guarantees
//
// A Unit is immutable after construction. Constructors copy input slices;
// accessors return elements by index. Units and the pre-instantiated
// closures they hold may be shared across goroutines.
package bytecode
