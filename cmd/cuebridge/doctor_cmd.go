package main

import (
	"flag"
	"fmt"
)

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	f := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(f)
	if err != nil {
		return err
	}
	defer a.close()

	path, err := a.runner.Resolve(a.cfg.Cue.ExecutablePath)
	if err != nil {
		return a.fail(err)
	}

	fmt.Printf(a.msgs.Get("doctor.resolved")+"\n", path)
	return nil
}
