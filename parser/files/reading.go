package files

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/activecm/wfpreprocess/pkg/trace"
	"github.com/activecm/wfpreprocess/util"

	log "github.com/sirupsen/logrus"
)

// gzipExt marks compressed trace files
const gzipExt = ".gz"

// TraceNamePattern returns the pattern trace file names must fully match:
// two numbers joined by the splitter followed by the trace extension,
// optionally gzip compressed
func TraceNamePattern(splitter, extension string) *regexp.Regexp {
	return regexp.MustCompile(`^\d+` + regexp.QuoteMeta(splitter) + `\d+` +
		regexp.QuoteMeta(extension) + `(` + regexp.QuoteMeta(gzipExt) + `)?$`)
}

// GatherTraceFiles walks the given files and directories recursively looking
// for trace files. The result is sorted.
func GatherTraceFiles(paths []string, splitter, extension string, logger *log.Logger) ([]string, error) {
	pattern := TraceNamePattern(splitter, extension)
	var toReturn []string

	for _, root := range paths {
		if !util.IsDir(root) {
			if pattern.MatchString(filepath.Base(root)) {
				toReturn = append(toReturn, root)
			} else {
				logger.WithFields(log.Fields{
					"path": root,
				}).Warn("Ignoring file with unexpected trace name")
			}
			continue
		}

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				logger.WithFields(log.Fields{
					"error": err.Error(),
					"path":  path,
				}).Error("Error when reading directory")
				return nil
			}
			if !info.IsDir() && pattern.MatchString(info.Name()) {
				toReturn = append(toReturn, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(toReturn)
	return toReturn, nil
}

// TraceName returns the base name of a trace file without the gzip suffix
func TraceName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), gzipExt)
}

// GetFileScanner returns a buffered scanner for a trace file, a function to close the
// underlying stream and any associated processors, as well as any error that may occur while
// creating the scanner
func GetFileScanner(fileHandle *os.File) (scanner *bufio.Scanner, closer func() error, err error) {
	// by default just close out the underlying file handle
	closer = fileHandle.Close

	if strings.HasSuffix(fileHandle.Name(), gzipExt) {
		var gzipReader io.Reader
		gzipReader, closer, err = newGzipReader(fileHandle)
		if err != nil {
			return nil, closer, err
		}
		scanner = bufio.NewScanner(gzipReader)
	} else {
		scanner = bufio.NewScanner(fileHandle)
	}

	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner, closer, nil
}

//newGzipReader returns an un-gzipped byte stream given a gzip compressed byte stream.
//This method tries to use the system's pigz or gzip implementation before relying on
//Golang's gzip package. Returns stream to read from, a function to
//close the underlying stream, and any err that may occur when opening the stream.
func newGzipReader(fileHandle io.ReadCloser) (reader io.Reader, closer func() error, err error) {
	closer = fileHandle.Close

	var gzipPath string
	if path, err := exec.LookPath("pigz"); err == nil {
		gzipPath = path
	} else if path, err := exec.LookPath("gzip"); err == nil {
		gzipPath = path
	} else {
		reader, err = gzip.NewReader(fileHandle)
		return reader, closer, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	gzipCommand := exec.CommandContext(ctx, gzipPath, "-d", "-c")
	gzipCommand.Stdin = fileHandle

	pipeR, err := gzipCommand.StdoutPipe()
	if err != nil {
		cancel()
		return reader, fileHandle.Close, err
	}

	var cmdStdErr bytes.Buffer
	gzipCommand.Stderr = &cmdStdErr

	if err := gzipCommand.Start(); err != nil {
		cancel()
		return reader, fileHandle.Close, err
	}

	// the closer kills the subprocess in addition to closing the file descriptor
	closer = func() error {
		cancel()
		errFile := fileHandle.Close()
		errProc := gzipCommand.Wait()

		if errProc != nil && cmdStdErr.Len() > 0 {
			errProc = fmt.Errorf("%s: %s", errProc.Error(), cmdStdErr.String())
		}
		if errProc != nil && errFile != nil {
			return fmt.Errorf("%s; %s", errProc.Error(), errFile.Error())
		}
		if errProc != nil {
			return errProc
		}
		return errFile
	}

	return pipeR, closer, nil
}

// ReadTrace opens, decompresses if needed, and parses a trace file
func ReadTrace(path string) (trace.Trace, error) {
	fileHandle, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	scanner, closeScanner, err := GetFileScanner(fileHandle)
	if err != nil {
		closeScanner()
		return nil, err
	}

	t, err := ParseTrace(scanner, path)
	errClose := closeScanner()
	if err != nil {
		return nil, err
	}
	if errClose != nil {
		return nil, errClose
	}
	return t, nil
}

// ParseTrace reads tab separated timestamp and size records, one per line.
// Any line that does not parse, blank lines included, fails the whole trace.
// The newline ending the last record is not a line of its own.
func ParseTrace(scanner *bufio.Scanner, path string) (trace.Trace, error) {
	var t trace.Trace
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			return nil, &ParseError{Path: path, Line: lineNum, Err: ErrEmptyRecord}
		}

		packet, err := parseRecord(line)
		if err != nil {
			return nil, &ParseError{Path: path, Line: lineNum, Err: err}
		}
		t = append(t, packet)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: lineNum + 1, Err: err}
	}
	return t, nil
}

func parseRecord(line string) (trace.Packet, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 2 {
		return trace.Packet{}, fmt.Errorf("%w: found %d", ErrColumnCount, len(fields))
	}

	ts, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return trace.Packet{}, err
	}
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return trace.Packet{}, fmt.Errorf("%w: %s", ErrTimestamp, fields[0])
	}
	size, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return trace.Packet{}, err
	}
	if size > MaxPacketSize || size < -MaxPacketSize {
		return trace.Packet{}, fmt.Errorf("%w: %d", ErrSizeRange, size)
	}
	return trace.Packet{Time: ts, Size: size}, nil
}
