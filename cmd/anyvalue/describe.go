package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// DescribeCmd lists exports with inferred and WIT signatures.
type DescribeCmd struct {
	ConfigFlag

	out io.Writer
}

func (c *DescribeCmd) Execute(_ []string) error {
	ctx, stop := interruptContext()
	defer stop()
	s, err := openSession(ctx, c.Config)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	exports := s.module.Exports()
	out := writerOr(c.out)
	fmt.Fprintf(out, "module %s: %d exports\n", s.module.Name(), len(exports))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, e := range exports {
		sig := e.Signature
		if configured, err := s.signatureFor(e.Name); err == nil && configured != nil {
			sig = *configured
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Name, sig, sig.WIT())
	}
	return tw.Flush()
}
