package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"airbingen/internal/cli"
	"airbingen/internal/logging"
	"airbingen/ir"
	"airbingen/translator"
)

func main() {
	options := InitOptions()
	if err := options.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := Run(options); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// InitOptions registers every flag airbingen accepts.
func InitOptions() *cli.Options {
	options := cli.New("airbingen")
	options.AddOption(cli.STRING, "input", "", "path to the YAML/JSON device description")
	options.AddShorthand("input", "i")
	options.AddOption(cli.STRING, "output", "", "path to write the AIRBIN ELF")
	options.AddShorthand("output", "o")
	options.AddOption(cli.BOOL, "verbose", "0", "raise log verbosity")
	options.AddShorthand("verbose", "v")
	options.AddOption(cli.BOOL, "strict", "0", "promote input diagnostics to fatal errors")
	options.AddOption(cli.STRING, "run-id", "", "operator-supplied correlation id (generated if empty)")
	return options
}

// Run wires flags, logging, device loading and translation together. It
// returns the first fatal error encountered rather than calling os.Exit
// itself, so it can be exercised directly by tests.
func Run(options *cli.Options) error {
	inputPath := options.StringParameter("input")
	outputPath := options.StringParameter("output")
	if inputPath == "" || outputPath == "" {
		return fmt.Errorf("airbingen: --input and --output are both required\n%s", options.Usage())
	}

	log, err := logging.New(options.BoolParameter("verbose"))
	if err != nil {
		return fmt.Errorf("airbingen: build logger: %w", err)
	}
	defer log.Sync()

	runID := options.StringParameter("run-id")
	if runID == "" {
		runID = uuid.NewString()
	}
	log = log.Named("airbingen")

	device, err := ir.LoadDevice(inputPath)
	if err != nil {
		log.Error("failed to load device description", zap.Error(err))
		return fmt.Errorf("airbingen: load device: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("airbingen: open output: %w", err)
	}
	defer out.Close()

	t := translator.New(log, options.BoolParameter("strict"), runID)
	if _, err := t.Run(device, out); err != nil {
		return fmt.Errorf("airbingen: %w", err)
	}
	return nil
}
