package flags

import (
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
)

var Scan struct {
	Address string `long:"address"`
	Output  string `long:"output"`
}

func Test_EmptyParse(t *testing.T) {
	file := "testdata/empty.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)
	err := yamlParser.ParseFile(file)

	require.NoErrorf(t, err, "Parsing not successful: %v", file)
}

func Test_ScanParse(t *testing.T) {
	file := "testdata/scan.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	data := &Scan
	_, err := parser.AddCommand("scan", "Scan", "Scan options", data)
	require.NoErrorf(t, err, "Could not add scan command")

	err = yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, "tcp://localhost:3310", data.Address, "Invalid reading of the address value")
	require.Equal(t, "copy.bin", data.Output, "Invalid reading of the output value")
}

func Test_UnknownCommand(t *testing.T) {
	file := "testdata/unknown_command.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	_, err := parser.AddCommand("scan", "Scan", "Scan options", &Scan)
	require.NoErrorf(t, err, "Could not add scan command")

	err = yamlParser.ParseFile(file)
	require.Errorf(t, err, "Parsing should have failed for an unknown command: %v", file)
}
