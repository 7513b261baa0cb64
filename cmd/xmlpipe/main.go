// Command xmlpipe runs the streaming pipeline against a file or
// standard input, printing each dispatched element. It exists as an
// integration demo and debugging aid; the pipeline itself takes its
// input from whatever chunk source the owning process provides.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xmlpipe/xmlpipe/chunk"
	"github.com/xmlpipe/xmlpipe/fanout"
	"github.com/xmlpipe/xmlpipe/stream"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		chunkSize  int
		selectExpr string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "xmlpipe [file]",
		Short: "Stream an XML document and print the root's direct children",
		Long: `xmlpipe feeds the given file (or standard input) through the
streaming parse-and-fan-out pipeline in fixed-size chunks, printing
every element dispatched to the primary sink and counting deliveries to
the forwarding sink.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := io.Reader(os.Stdin)
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "open input")
				}
				defer f.Close()
				in = f
			}
			var sel *xpath.Expr
			if selectExpr != "" {
				var err error
				if sel, err = xpath.Compile(selectExpr); err != nil {
					return errors.Wrapf(err, "compile selector %q", selectExpr)
				}
			}
			log := logrus.New()
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			return run(in, cmd.OutOrStdout(), chunkSize, sel, log)
		},
	}
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 4096, "size of chunks fed to the parser")
	cmd.Flags().StringVar(&selectExpr, "select", "", "XPath filter applied to printed elements")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(in io.Reader, out io.Writer, chunkSize int, sel *xpath.Expr, log *logrus.Logger) error {
	if chunkSize < 1 {
		chunkSize = 1
	}
	source := make(chan chunk.Chunk)
	go feed(in, source, chunkSize, log)

	printSink := fanout.Blocking(func(el *xmlquery.Node) {
		if sel != nil && xmlquery.QuerySelector(el, sel) == nil {
			return
		}
		fmt.Fprintln(out, el.OutputXML(true))
	})

	forwarded := make(chan *xmlquery.Node, 64)
	counted := make(chan int)
	go func() {
		n := 0
		for range forwarded {
			n++
		}
		counted <- n
	}()

	disp := &fanout.Dispatcher{A: printSink, B: fanout.Channel(forwarded)}
	s := stream.New(source, disp, stream.WithLogger(log))
	s.Run()

	printSink.Close()
	close(forwarded)
	log.WithFields(logrus.Fields{
		"reason":    s.Reason(),
		"root":      s.RootTag(),
		"forwarded": <-counted,
	}).Info("stream ended")
	return nil
}

// feed reads in into fixed-size chunks and injects PoisonPill at EOF.
func feed(in io.Reader, source chan<- chunk.Chunk, chunkSize int, log *logrus.Logger) {
	buf := make([]byte, chunkSize)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			p := make([]byte, n)
			copy(p, buf[:n])
			source <- chunk.Bytes(p)
		}
		if err != nil {
			if err != io.EOF {
				log.Warnf("read input: %v", err)
			}
			source <- chunk.PoisonPill
			return
		}
	}
}
