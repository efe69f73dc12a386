// Package cli wraps github.com/spf13/pflag behind the same shape the
// upstream simulator's own hand-rolled CommandLineParser exposes:
// AddOption to register a flag with a default and a help string,
// IntParameter/StringParameter/BoolParameter to read a parsed value back by
// name, and IsArgSet to tell whether a flag was actually given on the
// command line rather than left at its default.
package cli

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/spf13/pflag"
)

// Kind distinguishes the value type of a registered option, mirroring the
// upstream misc.INT / misc.STRING option-kind constants.
type Kind int

const (
	STRING Kind = iota
	INT
	BOOL
)

// Options is a thin registry over a pflag.FlagSet. Every option is
// registered with AddOption before Parse is called; after Parse, values are
// read back with the typed *Parameter accessors.
type Options struct {
	set  *pflag.FlagSet
	kind map[string]Kind
}

// New constructs an empty Options registry bound to program name name.
func New(name string) *Options {
	return &Options{
		set:  pflag.NewFlagSet(name, pflag.ContinueOnError),
		kind: make(map[string]Kind),
	}
}

// AddOption registers one flag. defaultValue is the flag's zero-arg default,
// formatted the way the corresponding pflag Var constructor expects
// ("0"/"1" for BOOL, a base-10 integer for INT, otherwise the literal
// string).
func (o *Options) AddOption(kind Kind, name, defaultValue, help string) {
	o.kind[name] = kind
	switch kind {
	case INT:
		var def int
		fmt.Sscanf(defaultValue, "%d", &def)
		o.set.Int(name, def, help)
	case BOOL:
		o.set.Bool(name, defaultValue == "1" || defaultValue == "true", help)
	default:
		o.set.String(name, defaultValue, help)
	}
}

// AddShorthand attaches a single-letter shorthand to an already-registered
// flag of any kind, used for --input/-i, --output/-o and --verbose/-v.
//
// pflag.FlagSet only wires a shorthand into its internal lookup table at
// flag-creation time (FlagSet.AddFlag), so retroactively setting Flag.Shorthand
// is not enough for the shorthand to actually parse; the unexported
// shorthands map has to be updated too.
func (o *Options) AddShorthand(name, shorthand string) {
	f := o.set.Lookup(name)
	if f == nil || shorthand == "" {
		return
	}
	f.Shorthand = shorthand

	v := reflect.ValueOf(o.set).Elem().FieldByName("shorthands")
	v = reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	v.SetMapIndex(reflect.ValueOf(shorthand[0]), reflect.ValueOf(f))
}

// Parse parses args (typically os.Args[1:]).
func (o *Options) Parse(args []string) error {
	return o.set.Parse(args)
}

// IsArgSet reports whether name was explicitly given on the command line.
func (o *Options) IsArgSet(name string) bool {
	return o.set.Changed(name)
}

// StringParameter returns the current value of a registered STRING option.
func (o *Options) StringParameter(name string) string {
	v, err := o.set.GetString(name)
	if err != nil {
		panic(fmt.Errorf("cli: %s is not a string option: %w", name, err))
	}
	return v
}

// IntParameter returns the current value of a registered INT option.
func (o *Options) IntParameter(name string) int {
	v, err := o.set.GetInt(name)
	if err != nil {
		panic(fmt.Errorf("cli: %s is not an int option: %w", name, err))
	}
	return v
}

// BoolParameter returns the current value of a registered BOOL option.
func (o *Options) BoolParameter(name string) bool {
	v, err := o.set.GetBool(name)
	if err != nil {
		panic(fmt.Errorf("cli: %s is not a bool option: %w", name, err))
	}
	return v
}

// Usage returns the formatted flag usage text, analogous to the upstream
// parser's StringifyHelpMsgs.
func (o *Options) Usage() string {
	return o.set.FlagUsages()
}
