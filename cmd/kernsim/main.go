package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/viant/kernsim"
	"github.com/viant/kernsim/logging"
	"github.com/viant/kernsim/service/shell"
)

// testSequence is the canned script executed in test mode.
var testSequence = []string{
	"allocate 1024",
	"submit read 512",
	"stats",
	"allocate 2048",
	"submit write 1024",
	"stats",
	"exit",
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("kernsim", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	testMode := flags.Bool("test", false, "run the canned test sequence and exit")
	configURL := flags.String("config", "", "configuration file URL")
	scriptURL := flags.String("script", "", "command script URL")
	logLevel := flags.String("log-level", "", "minimum log level")
	_ = flags.Parse(args)

	config := kernsim.DefaultConfig()
	if *configURL != "" {
		loaded, err := kernsim.LoadConfig(ctx, *configURL)
		if err != nil {
			return err
		}
		config = *loaded
	}
	if *logLevel != "" {
		if _, err := logging.ParseLevel(*logLevel); err != nil {
			return err
		}
		config.Logging.Level = *logLevel
	}

	service, err := kernsim.New(kernsim.WithConfig(config))
	if err != nil {
		return err
	}
	defer service.Pool().Close()

	runtime := service.Runtime()
	if err := runtime.Start(ctx); err != nil {
		return err
	}
	defer runtime.Shutdown()

	switch {
	case *testMode:
		service.Logger().Info("Running in test mode")
		service.Shell().RunScript(ctx, testSequence)
	case *scriptURL != "":
		lines, err := shell.LoadScript(ctx, *scriptURL)
		if err != nil {
			return err
		}
		service.Shell().RunScript(ctx, lines)
	default:
		if err := service.Shell().Run(ctx); err != nil {
			return err
		}
	}
	return nil
}
