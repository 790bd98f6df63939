package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/textglue/srx/pkg/ruleset"
	"github.com/textglue/srx/pkg/segmenter"
)

var (
	segmentLanguage     string
	segmentAccurate     bool
	segmentLineMode     bool
	segmentWindowSize   int
	segmentMargin       int
	segmentLookbehind   int
	segmentUsePrefilter bool
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Segment standard input into sentences",
	Long: `Segment reads text from standard input and writes one segment per
line. In whole-input mode (the default) raw newlines are replaced by
spaces before segmentation; with --line each input line is segmented
independently.`,
	Args: cobra.NoArgs,
	RunE: runSegment,
}

func init() {
	flags := segmentCmd.Flags()
	flags.StringVar(&segmentLanguage, "language", "", "Language code used to select language rules")
	flags.BoolVar(&segmentAccurate, "accurate", false, "Use the accurate iterator (whole input in memory)")
	flags.BoolVar(&segmentLineMode, "line", false, "Segment each input line independently")
	flags.IntVar(&segmentWindowSize, "window", segmenter.DefaultWindowSize, "Streaming buffer size in characters")
	flags.IntVar(&segmentMargin, "margin", segmenter.DefaultMargin, "Window-edge margin in characters")
	flags.IntVar(&segmentLookbehind, "max-lookbehind", segmenter.DefaultMaxLookbehind, "Maximum lookbehind construct length")
	flags.BoolVar(&segmentUsePrefilter, "prefilter", false, "Skip rules whose literal keyword is absent from the buffer")

	// Running the bare binary segments stdin.
	rootCmd.RunE = segmentCmd.RunE
	rootCmd.Flags().AddFlagSet(flags)
}

func runSegment(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "reading from stdin...")
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	opts := []segmenter.Option{
		segmenter.WithWindowSize(segmentWindowSize),
		segmenter.WithMargin(segmentMargin),
		segmenter.WithMaxLookbehind(segmentLookbehind),
		segmenter.WithPrefilter(segmentUsePrefilter),
	}

	if segmentLineMode {
		return segmentLines(doc, cmd.InOrStdin(), out, opts)
	}
	return segmentWhole(doc, cmd.InOrStdin(), out, opts)
}

// segmentWhole treats stdin as one text, with raw newlines replaced
// by spaces so line wrapping does not interfere with the rules.
func segmentWhole(doc *ruleset.Document, in io.Reader, out *bufio.Writer, opts []segmenter.Option) error {
	if segmentAccurate {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		it, err := segmenter.NewAccurate(doc, segmentLanguage, replaceNewlines(string(data)), opts...)
		if err != nil {
			return err
		}
		return writeSegments(out, it)
	}

	it, err := segmenter.NewStreamingReader(doc, segmentLanguage, newlineToSpaceReader{r: in}, opts...)
	if err != nil {
		return err
	}
	return writeSegments(out, it)
}

// segmentLines segments every input line on its own.
func segmentLines(doc *ruleset.Document, in io.Reader, out *bufio.Writer, opts []segmenter.Option) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		var it segmenter.Iterator
		var err error
		if segmentAccurate {
			it, err = segmenter.NewAccurate(doc, segmentLanguage, line, opts...)
		} else {
			it, err = segmenter.NewStreaming(doc, segmentLanguage, line, opts...)
		}
		if err != nil {
			return err
		}
		if err := writeSegments(out, it); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func writeSegments(out *bufio.Writer, it segmenter.Iterator) error {
	for {
		segment, ok := it.Next()
		if !ok {
			break
		}
		if _, err := fmt.Fprintln(out, segment); err != nil {
			return err
		}
	}
	return it.Err()
}

func loadDocument() (*ruleset.Document, error) {
	var doc *ruleset.Document
	var err error

	if rulesPath != "" {
		doc, err = ruleset.LoadFile(rulesPath)
	} else {
		doc, err = ruleset.LoadBuiltin()
	}
	if err != nil {
		return nil, fmt.Errorf("loading ruleset: %w", err)
	}

	if schemaPath != "" {
		if _, err := os.Stat(schemaPath); err != nil {
			return nil, fmt.Errorf("schema does not exist: %s", schemaPath)
		}
		if err := ruleset.Validate(doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func replaceNewlines(text string) string {
	out := []rune(text)
	for i, r := range out {
		if r == '\n' {
			out[i] = ' '
		}
	}
	return string(out)
}

// newlineToSpaceReader rewrites \n to a space on the fly so the
// streaming iterator can stay streaming in whole-input mode.
type newlineToSpaceReader struct {
	r io.Reader
}

func (nr newlineToSpaceReader) Read(p []byte) (int, error) {
	n, err := nr.r.Read(p)
	for i := 0; i < n; i++ {
		if p[i] == '\n' {
			p[i] = ' '
		}
	}
	return n, err
}
