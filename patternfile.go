package apat

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
)

// PatternSpec is one line of a pattern file: a pattern text paired with
// its error budget and indel flag, ready for Compile.
type PatternSpec struct {
	Text     string
	MaxErr   int
	HasIndel bool
}

// ReadPatternFile reads a batch of patterns from path, one per
// non-blank, non-comment line, under the grammar <pattern> <ws>
// <signed-int> (original_source/pkg/obiapat/apat_parse.c's
// ReadPattern): a negative error count means "allow indels" and its
// absolute value is the error budget. Lines are trimmed; a line whose
// first non-whitespace character is '/' is a full-line comment and is
// skipped, along with blank lines.
//
// A ".gz" path is transparently decompressed with pgzip, mirroring
// merge.go's xmlPresenter: parallel gzip decoding pays off on the large
// pattern batches this format is meant for.
func ReadPatternFile(path string) ([]PatternSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		in = zr
	}

	var specs []PatternSpec
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "/") {
			continue
		}

		spec, err := parsePatternLine(line)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return specs, nil
}

// parsePatternLine splits one pattern-file line into its pattern text
// and signed error count.
func parsePatternLine(line string) (PatternSpec, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return PatternSpec{}, newError(PatternSyntax, "malformed pattern line %q: want <pattern> <ws> <signed-int>", line)
	}

	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return PatternSpec{}, newError(PatternSyntax, "malformed error count in line %q: %v", line, err)
	}

	text := strings.Join(fields[:len(fields)-1], "")

	spec := PatternSpec{Text: text}
	if n < 0 {
		spec.HasIndel = true
		spec.MaxErr = -n
	} else {
		spec.MaxErr = n
	}
	return spec, nil
}
