// Package library provides the global scope quill programs compile
// against: conversion types, builtin functions, and the calc module.
package library

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
)

var setupOnce sync.Once

// New returns a fresh library scope. The scope is read-only once handed
// to a compiler; callers may define extra globals before that.
func New() *object.Scope {
	setupOnce.Do(setupTypes)

	s := object.NewScope()
	s.Define("bool", object.BoolType)
	s.Define("int", object.IntType)
	s.Define("float", object.FloatType)
	s.Define("str", object.StrType)
	s.Define("array", object.ArrayType)
	s.Define("dictionary", object.DictType)
	s.Define("type", object.NewNative("type", typeOf))
	s.Define("repr", object.NewNative("repr", repr))
	s.Define("len", object.NewNative("len", length))
	s.Define("range", object.NewNative("range", rangeOf))
	s.Define("upper", object.NewNative("upper", upper))
	s.Define("lower", object.NewNative("lower", lower))
	s.Define("panic", object.NewNative("panic", panicked))
	s.Define("assert", newAssert())
	s.Define("calc", newCalc())
	return s
}

// setupTypes makes the conversion types callable. Types are shared by
// every library scope, so this runs once.
func setupTypes() {
	object.IntType.SetConstructor(toInt)
	object.FloatType.SetConstructor(toFloat)
	object.BoolType.SetConstructor(toBool)
	object.StrType.SetConstructor(toStr)
	object.StrType.Scope().Define("from-unicode", object.NewNative("from-unicode", fromUnicode))
	object.ArrayType.SetConstructor(toArray)
}

func one(args *object.Args, what string) (object.Value, error) {
	v, err := args.Expect(what)
	if err != nil {
		return nil, err
	}
	if err := args.Finish(); err != nil {
		return nil, err
	}
	return v, nil
}

func toInt(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case object.Int:
		return v, nil
	case object.Float:
		return object.Int(int64(v)), nil
	case object.Bool:
		if v {
			return object.Int(1), nil
		}
		return object.Int(0), nil
	case object.Str:
		i, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		if err != nil {
			return nil, diag.New("invalid integer: %s", string(v))
		}
		return object.Int(i), nil
	}
	return nil, diag.New("expected integer, float, boolean, or string, found %s", v.Type())
}

func toFloat(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case object.Int:
		return object.Float(v), nil
	case object.Float:
		return v, nil
	case object.Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err != nil {
			return nil, diag.New("invalid float: %s", string(v))
		}
		return object.Float(f), nil
	}
	return nil, diag.New("expected integer, float, or string, found %s", v.Type())
}

func toBool(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	b, err := object.AsBool(v)
	if err != nil {
		return nil, err
	}
	return object.Bool(b), nil
}

func toStr(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	return object.Str(object.Display(v)), nil
}

func fromUnicode(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "codepoint")
	if err != nil {
		return nil, err
	}
	cp, err := object.AsInt(v)
	if err != nil {
		return nil, err
	}
	if cp < 0 || cp > 0x10FFFF {
		return nil, diag.New("%d is not a valid codepoint", cp)
	}
	return object.Str(string(rune(cp))), nil
}

func toArray(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	items, err := object.Iterate(v)
	if err != nil {
		return nil, err
	}
	return object.NewArray(append([]object.Value(nil), items...)), nil
}
