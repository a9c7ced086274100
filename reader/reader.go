package reader

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	sdkerrors "cosmossdk.io/errors"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/numtools/numtools/types"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Sample holds the values parsed from a numeric input file in arrival order.
type Sample struct {
	Values  []float64
	Skipped int
}

// Len returns the number of valid values in the sample.
func (s Sample) Len() int {
	return len(s.Values)
}

// Empty reports whether no valid value was read.
func (s Sample) Empty() bool {
	return len(s.Values) == 0
}

// ReadNumbers reads one number per line from the file at path. Lines that do
// not parse are logged and skipped.
func ReadNumbers(logger zerolog.Logger, path string) (Sample, error) {
	f, err := open(path)
	if err != nil {
		return Sample{}, err
	}
	defer f.Close()

	logFileSize(logger, f, path)

	return ParseNumbers(logger, f)
}

// ParseNumbers reads r line by line and parses every trimmed line as a
// float64. Blank lines, lines longer than maxLineSize, hexadecimal literals
// and non-finite values count as invalid data.
func ParseNumbers(logger zerolog.Logger, r io.Reader) (Sample, error) {
	var (
		sample  Sample
		lineNum int
	)

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		line, size, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sample, sdkerrors.Wrapf(types.ErrFileNotFound, "failed to read line %d: %s", lineNum+1, err)
		}
		lineNum++

		if size > maxLineSize {
			sample.Skipped++
			logger.Warn().
				Int("line", lineNum).
				Str("size", humanize.Bytes(uint64(size))).
				Msg("invalid data encountered and skipped")
			continue
		}

		raw := strings.TrimSpace(string(line))
		value, err := parseValue(raw)
		if err != nil {
			sample.Skipped++
			logger.Warn().
				Int("line", lineNum).
				Str("raw", raw).
				Msg("invalid data encountered and skipped")
			continue
		}
		sample.Values = append(sample.Values, value)
	}

	logger.Debug().
		Str("valid", humanize.Comma(int64(sample.Len()))).
		Str("skipped", humanize.Comma(int64(sample.Skipped))).
		Msg("numeric input parsed")

	return sample, nil
}

// readLine returns the next line without its line ending and the full size
// of that line. Only the first maxLineSize bytes are kept; the rest of a
// longer line is consumed and dropped.
func readLine(br *bufio.Reader) ([]byte, int, error) {
	var (
		line []byte
		size int
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && size > 0 {
				return line, size, nil
			}
			return nil, size, err
		}

		if size+len(chunk) <= maxLineSize {
			line = append(line, chunk...)
		}
		size += len(chunk)

		if !isPrefix {
			return line, size, nil
		}
	}
}

// ReadText returns the whole content of the file at path.
func ReadText(logger zerolog.Logger, path string) (string, error) {
	f, err := open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	logFileSize(logger, f, path)

	content, err := io.ReadAll(f)
	if err != nil {
		return "", sdkerrors.Wrapf(types.ErrFileNotFound, "failed to read %q: %s", path, err)
	}
	return string(content), nil
}

func parseValue(raw string) (float64, error) {
	if isHexLiteral(raw) {
		return 0, sdkerrors.Wrapf(types.ErrInvalidDataLine, "hexadecimal value %q", raw)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, sdkerrors.Wrapf(types.ErrInvalidDataLine, "non-finite value %q", raw)
	}
	return value, nil
}

func isHexLiteral(raw string) bool {
	raw = strings.TrimLeft(raw, "+-")
	return len(raw) > 1 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X')
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sdkerrors.Wrapf(types.ErrFileNotFound, "the file %q was not found", path)
		}
		return nil, sdkerrors.Wrapf(types.ErrFileNotFound, "the file %q could not be opened: %s", path, err)
	}

	info, err := f.Stat()
	if err == nil && info.IsDir() {
		f.Close()
		return nil, sdkerrors.Wrapf(types.ErrFileNotFound, "%q is a directory", path)
	}
	return f, nil
}

func logFileSize(logger zerolog.Logger, f *os.File, path string) {
	info, err := f.Stat()
	if err != nil {
		return
	}
	logger.Debug().
		Str("path", path).
		Str("size", humanize.Bytes(uint64(info.Size()))).
		Msg("reading input")
}
