package main

import (
	"fmt"
	"os"
	"path"

	"github.com/bokysan/scanstream/internal/args"
	"github.com/bokysan/scanstream/internal/commands/scan"
	"github.com/bokysan/scanstream/internal/commands/version"
	scFlags "github.com/bokysan/scanstream/internal/flags"
	"github.com/bokysan/scanstream/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	// ErrConfigFileDoesNotExist is raised when the configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// ScanStream is the main executable
type ScanStream struct {
	parser *flags.Parser
}

// NewScanStream will create a new instance of ScanStream and initialize the parser
func NewScanStream() *ScanStream {
	executableFilename := os.Args[0]
	executablePath := path.Base(executableFilename)

	sc := &ScanStream{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	sc.setupGeneral()
	sc.setupVersion()
	sc.setupScan()

	return sc
}

// setupGeneral will configure general options
func (sc *ScanStream) setupGeneral() {
	if _, err := sc.parser.AddGroup("General", "General options", &args.General); err != nil {
		err = errors.WithStack(err)
		util.MustErrorNilOrExit(err)
	}
}

// setupVersion adds the `version` command
func (sc *ScanStream) setupVersion() {
	cmd := &version.Command{}
	_, err := sc.parser.AddCommand(
		"version",
		"Print the version",
		"Print the application version and exit",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupScan adds the `scan` command
func (sc *ScanStream) setupScan() {
	cmd := scan.NewCommand()
	_, err := sc.parser.AddCommand(
		"scan",
		"Scan a stream",
		"Stream a file or standard input through the scanning daemon and report the verdict",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// main starts scanstream and reads the configuration file
func main() {

	scanStream := NewScanStream()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			message := fmt.Sprintf("Configuration file %s does not exist.", file)
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: message,
			})
		}

		yamlParser := scFlags.NewYamlParser(scanStream.parser)

		args.General.ConfigurationFilePath = file
		return yamlParser.ParseFile(file)
	}

	_, err := scanStream.parser.Parse()
	util.MustErrorNilOrExit(err)

}
