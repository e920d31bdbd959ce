package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/httputil"
)

// source is a document read from the command line.
type source struct {
	Text string
	// Name is the file name or URL, "stdin" for standard input.
	Name string
	// URL is set when the document was fetched.
	URL string
}

// readSource reads arg as a URL, a file, or standard input ("" or "-").
func readSource(ctx context.Context, arg string, stdin io.Reader, fetcher *httputil.Fetcher) (*source, error) {
	src, err := read(ctx, arg, stdin, fetcher)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("read input", "source", src.Name, "bytes", len(src.Text))
	return src, nil
}

func read(ctx context.Context, arg string, stdin io.Reader, fetcher *httputil.Fetcher) (*source, error) {
	switch {
	case arg == "" || arg == "-":
		data, err := io.ReadAll(io.LimitReader(stdin, errors.MaxInputBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &source{Text: string(data), Name: "stdin"}, nil

	case httputil.IsURL(arg):
		spinner := newSpinner(ctx, os.Stderr, "Fetching "+arg)
		spinner.Start()
		data, err := fetcher.Fetch(ctx, arg)
		spinner.Stop()
		if err != nil {
			return nil, err
		}
		return &source{Text: string(data), Name: arg, URL: arg}, nil

	default:
		data, err := os.ReadFile(arg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", arg)
			}
			return nil, fmt.Errorf("read %s: %w", arg, err)
		}
		return &source{Text: string(data), Name: arg}, nil
	}
}
