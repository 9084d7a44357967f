package scan

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/bokysan/scanstream"
	"github.com/bokysan/scanstream/internal/logging"
	"github.com/bokysan/scanstream/internal/streams"
	"github.com/bokysan/scanstream/internal/util/addr"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Exit codes of the scan command. Anything else went wrong before a verdict
// could be reached.
const (
	ExitInfected   = 1
	ExitScanFailed = 2
)

// Command streams a file (or standard input) through the scanning daemon
// while copying it to the output, and reports the verdict via the exit code.
type Command struct {
	Address addr.ProtoAddress `json:"address" yaml:"address" short:"a" long:"address" env:"ADDRESS" description:"Scanning daemon address, e.g. 'tcp://localhost:3310' or 'unix:///run/clamav/clamd.ctl'" default:"tcp://localhost:3310"`
	Input   string            `json:"input"   yaml:"input"   short:"i" long:"input"   env:"INPUT"   description:"File to scan. Standard input is used when not set."`
	Output  string            `json:"output"  yaml:"output"  short:"o" long:"output"  env:"OUTPUT"  description:"Copy the streamed content to this file. Content is discarded when not set."`
}

func NewCommand() *Command {
	return &Command{}
}

func (s *Command) String() string {
	return "scan " + s.source() + " via " + s.Address.String()
}

func (s *Command) source() string {
	if s.Input == "" {
		return "stdin"
	}
	return s.Input
}

//noinspection GoUnusedParameter
func (s *Command) Execute(args []string) error {
	logging.SetupLogging()

	var input io.ReadCloser = os.Stdin
	if s.Input != "" {
		f, err := os.Open(s.Input)
		if err != nil {
			return errors.Wrapf(err, "Could not open %v", s.Input)
		}
		input = f
	}

	var output io.Writer = ioutil.Discard
	var outputFile *os.File
	if s.Output != "" {
		f, err := os.Create(s.Output)
		if err != nil {
			streams.TryClose(input)
			return errors.Wrapf(err, "Could not create %v", s.Output)
		}
		output = f
		outputFile = f
	}

	stream, err := scanstream.Wrap(input, s.Address.Dial)
	if err != nil {
		streams.TryClose(input)
		if outputFile != nil {
			streams.TryClose(outputFile)
		}
		log.WithError(err).Errorf("Could not set up the scan: %v", err)
		os.Exit(ExitScanFailed)
	}

	log.Debugf("Streaming %v through %v...", s.source(), s.Address.String())
	written, err := io.Copy(output, stream)

	var errs error
	if closeErr := stream.Close(); closeErr != nil {
		errs = multierror.Append(errs, closeErr)
	}
	if s.Input != "" {
		streams.TryClose(input)
	}
	if outputFile != nil {
		if closeErr := outputFile.Close(); closeErr != nil {
			errs = multierror.Append(errs, errors.WithStack(closeErr))
		}
	}

	if scanErr, ok := err.(*scanstream.ScanError); ok {
		log.Errorf("Content flagged after %v bytes: %v", written, scanErr)
		if scanErr.Infected() {
			os.Exit(ExitInfected)
		}
		os.Exit(ExitScanFailed)
	}
	if err != nil {
		errs = multierror.Append(errs, errors.Wrapf(err, "Could not stream %v", s.source()))
		return errs
	}

	log.Infof("Scanned %v bytes from %v: clean", written, s.source())
	return errs
}
