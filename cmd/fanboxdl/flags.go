package main

import (
	"strconv"

	"github.com/spf13/pflag"
)

// switchFlag is one half of a --x/--no-x pair writing to a shared target.
// Flags are applied in command line order, so the last one given wins.
type switchFlag struct {
	target *bool
	on     bool
}

func (f *switchFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*f.target = v == f.on
	return nil
}

func (f *switchFlag) String() string {
	if f.target == nil {
		return "false"
	}
	return strconv.FormatBool(*f.target == f.on)
}

func (f *switchFlag) Type() string {
	return "bool"
}

// addSwitch registers --name and --no-name on fs, both driving target
func addSwitch(fs *pflag.FlagSet, target *bool, name, onUsage, offUsage string) {
	on := fs.VarPF(&switchFlag{target: target, on: true}, name, "", onUsage)
	on.NoOptDefVal = "true"
	off := fs.VarPF(&switchFlag{target: target, on: false}, "no-"+name, "", offUsage)
	off.NoOptDefVal = "true"
}
