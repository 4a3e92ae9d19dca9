package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/anyvalue/functor"
	"github.com/wippyai/anyvalue/value"
)

// CallCmd binds one export, wraps it in a threadsafe decorator and fans the
// inputs out across workers. Results print in input order.
type CallCmd struct {
	ConfigFlag
	Export  string `short:"e" long:"export" description:"export to call (defaults to the configured function)"`
	Workers int    `short:"w" long:"workers" description:"worker goroutines (defaults to the configured workers)"`

	out io.Writer
}

func (c *CallCmd) Execute(args []string) error {
	ctx, stop := interruptContext()
	defer stop()
	s, err := openSession(ctx, c.Config)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	export := s.cfg.Function
	if c.Export != "" {
		export = c.Export
	}
	if export == "" {
		return fmt.Errorf("no export given: set function in the config or pass --export")
	}
	sig, err := s.signatureFor(export)
	if err != nil {
		return err
	}
	f, err := s.module.Functor(ctx, export, sig)
	if err != nil {
		return err
	}
	defer f.Close()

	texts := args
	if len(texts) == 0 {
		texts = s.cfg.Inputs
	}
	if len(texts) == 0 && len(f.Signature().Params) == 0 {
		texts = []string{""}
	}
	inputs := make([]*value.Value, len(texts))
	for i, text := range texts {
		in, err := f.Signature().ParseInput(text)
		if err != nil {
			return fmt.Errorf("input %d (%q): %w", i, text, err)
		}
		inputs[i] = in
	}

	workers := s.cfg.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}
	results, dispatchErr := functor.Dispatch(ctx, functor.NewThreadsafe(f), inputs, workers)

	out := writerOr(c.out)
	failed := 0
	for i, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "%s\terror: %v\n", texts[i], r.Err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", texts[i], r.Out)
	}
	s.logger.Info("calls dispatched",
		zap.String("export", export),
		zap.Stringer("signature", f.Signature()),
		zap.Int("inputs", len(inputs)),
		zap.Int("workers", workers),
		zap.Int("failed", failed))

	if dispatchErr != nil {
		return fmt.Errorf("calls interrupted: %w", dispatchErr)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d calls failed", failed, len(results))
	}
	return nil
}
