package object

// ExpectInt consumes a positional integer argument.
func (a *Args) ExpectInt(what string) (int64, error) {
	v, err := a.Expect(what)
	if err != nil {
		return 0, err
	}
	return AsInt(v)
}

// ExpectStr consumes a positional string argument.
func (a *Args) ExpectStr(what string) (string, error) {
	v, err := a.Expect(what)
	if err != nil {
		return "", err
	}
	return AsStr(v)
}

// ExpectFunc consumes a positional function argument.
func (a *Args) ExpectFunc(what string) (Func, error) {
	v, err := a.Expect(what)
	if err != nil {
		return nil, err
	}
	fn, ok := v.(Func)
	if !ok {
		return nil, errorf("expected function, found %s", v.Type())
	}
	return fn, nil
}

// EatInt consumes an optional positional integer argument.
func (a *Args) EatInt() (int64, bool, error) {
	v, ok := a.Eat()
	if !ok {
		return 0, false, nil
	}
	i, err := AsInt(v)
	return i, true, err
}

// finished runs Finish and returns v when no arguments are left over.
func finished[T any](a *Args, v T) (T, error) {
	if err := a.Finish(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
