package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"

	"github.com/mcncl/xjx"
)

// CLI defines the command-line interface
var CLI struct {
	Input        string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output       string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Direction    string `help:"Conversion direction: auto, x2j or j2x. Auto detects by the first input byte." default:"auto" enum:"auto,x2j,j2x"`
	Config       string `help:"Path to a YAML config preset. Discovered from .xjx.yml when omitted." short:"c" type:"path"`
	HighFidelity bool   `help:"Use the lossless round-trip preset."`
	Pretty       bool   `help:"Pretty-print the output." short:"p"`
	Indent       int    `help:"Indentation width for pretty output." default:"2"`
	Debug        bool   `help:"Dump the resolved configuration to stderr." short:"d"`
	Version      bool   `help:"Show version information." short:"v"`
	Interactive  bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("xjx"),
		kong.Description("A tool to convert between XML and JSON"),
		kong.UsageOnError(),
	)

	// No arguments at all drops into interactive mode.
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("xjx version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", xjx.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: xjx --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	input, err := readInput()
	if err != nil {
		return err
	}

	conv, err := xjx.New(opts)
	if err != nil {
		return err
	}

	if CLI.Debug {
		cfg := conv.Config()
		spew.Fdump(os.Stderr, cfg)
	}

	output, err := convert(conv, input)
	if err != nil {
		return err
	}

	return writeOutput(output)
}

// loadOptions resolves the preset layering: config file under the
// chosen base preset, then explicit flags on top.
func loadOptions() (xjx.Options, error) {
	opts := xjx.DefaultOptions()
	if CLI.HighFidelity {
		opts = xjx.HighFidelityOptions()
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = xjx.FindConfigFile()
	}
	if configPath != "" {
		loaded, err := xjx.LoadOptions(configPath)
		if err != nil {
			return xjx.Options{}, xjx.NewInputError(
				fmt.Sprintf("failed to load config file '%s'", configPath), err)
		}
		if CLI.HighFidelity {
			loaded.HighFidelity = true
		}
		opts = loaded
	}

	if CLI.Pretty {
		opts.Formatting.Pretty = true
	}
	if CLI.Indent > 0 {
		opts.Formatting.Indent = CLI.Indent
	}
	return opts, nil
}

// convert runs the conversion in the requested or detected direction.
func convert(conv *xjx.Converter, input string) (string, error) {
	direction := CLI.Direction
	if direction == "auto" {
		if strings.HasPrefix(strings.TrimSpace(input), "<") {
			direction = "x2j"
		} else {
			direction = "j2x"
		}
	}

	if direction == "j2x" {
		return conv.JsonTextToXml(input)
	}

	result, err := conv.XmlToJson(input)
	if err != nil {
		return "", err
	}
	var encoded []byte
	if CLI.Pretty {
		encoded, err = json.MarshalIndent(result, "", strings.Repeat(" ", CLI.Indent))
	} else {
		encoded, err = json.Marshal(result)
	}
	if err != nil {
		return "", xjx.NewOutputError("failed to encode JSON result", err)
	}
	return string(encoded), nil
}

// readInput reads from file, stdin pipe or interactive paste
func readInput() (string, error) {
	if CLI.Input != "" {
		return readFile(CLI.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", xjx.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", xjx.NewInputError("no input provided", xjx.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", xjx.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", xjx.NewInputError("empty input received from stdin", xjx.ErrEmptyInput)
	}
	return string(data), nil
}

func readFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", xjx.NewInputError("file path is empty", xjx.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", xjx.NewInputError(
				fmt.Sprintf("file '%s' not found", path), xjx.ErrFileNotFound)
		}
		return "", xjx.NewInputError(
			fmt.Sprintf("failed to read file '%s'", path), err)
	}
	if len(data) == 0 {
		return "", xjx.NewInputError(
			fmt.Sprintf("input file '%s' is empty", path), xjx.ErrFileEmpty)
	}
	return string(data), nil
}

// writeOutput writes the result to file or stdout
func writeOutput(output string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(output), 0644); err != nil {
			return xjx.NewOutputError(
				fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Converted output written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Println(strings.TrimSpace(output)); err != nil {
		return xjx.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste
// a document and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "xjx Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your XML or JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", xjx.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	input := builder.String()
	if strings.TrimSpace(input) == "" {
		return "", xjx.NewInputError("empty input received", xjx.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing...")
	return input, nil
}
