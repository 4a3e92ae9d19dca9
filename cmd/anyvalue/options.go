package main

// Options is the root of the CLI. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Call        *CallCmd        `command:"call"        description:"Call the configured export for each input"`
	Describe    *DescribeCmd    `command:"describe"    description:"List module exports with their signatures"`
	Interactive *InteractiveCmd `command:"interactive" description:"Pick an export and call it from a terminal UI"`
}

// Init instantiates the sub-command named by the first argument so go-flags
// can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "call":
		o.Call = &CallCmd{}
	case "describe":
		o.Describe = &DescribeCmd{}
	case "interactive":
		o.Interactive = &InteractiveCmd{}
	}
}

// ConfigFlag is shared by every command.
type ConfigFlag struct {
	Config string `short:"f" long:"config" required:"true" description:"config YAML location (path or afs URL)"`
}
