// Package jsonl provides a replayable ChunkIterable over files of
// newline-delimited JSON arrays, one row per line. Files with an .lz4 suffix
// are transparently decompressed.
package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
	"github.com/pierrec/lz4"
	"github.com/tidwall/gjson"
)

// Conf configures a JSONL data source
type Conf struct {
	// ChunkSize is the number of rows per produced chunk (defaults to 64)
	ChunkSize int
	// MaxBufferSize is the maximum size of a single line in bytes
	// (defaults to bufio.MaxScanTokenSize)
	MaxBufferSize int
}

func ensureDefaultConfValues(conf *Conf) *Conf {
	if conf == nil {
		conf = &Conf{}
	}
	if conf.ChunkSize <= 0 {
		conf.ChunkSize = 64
	}
	if conf.MaxBufferSize <= 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return conf
}

// CreateChunkIterable returns a re-entrant ChunkIterable over the rows of a
// JSONL file. Every call to Iterator reopens the file, so the result is
// suitable for multi-phase training.
func CreateChunkIterable(path string, conf *Conf) flo.ChunkIterable {
	return &iterable{path: path, conf: ensureDefaultConfValues(conf)}
}

type iterable struct {
	path string
	conf *Conf
}

func (j *iterable) Iterator() (flo.ChunkIterator, error) {
	f, err := os.Open(j.path)
	if err != nil {
		return nil, err
	}
	var r io.Reader = f
	if strings.HasSuffix(j.path, ".lz4") {
		r = lz4.NewReader(f)
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), j.conf.MaxBufferSize)
	it := &iterator{file: f, scanner: scanner, conf: j.conf}
	it.advance()
	return it, nil
}

type iterator struct {
	file    *os.File
	scanner *bufio.Scanner
	conf    *Conf
	next    flo.Matrix
	err     error
	done    bool
}

// advance reads the next chunk of rows from the scanner, closing the file
// once it is exhausted
func (it *iterator) advance() {
	if it.done {
		it.next = nil
		return
	}
	var chunk flo.Matrix
	for len(chunk) < it.conf.ChunkSize && it.scanner.Scan() {
		line := it.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		parsed := gjson.ParseBytes(line)
		if !parsed.IsArray() {
			it.fail(fmt.Errorf("Line is not a JSON array: %s", line))
			return
		}
		values := parsed.Array()
		row := make([]float64, len(values))
		for i, v := range values {
			row[i] = v.Float()
		}
		chunk = append(chunk, row)
	}
	if err := it.scanner.Err(); err != nil {
		it.fail(err)
		return
	}
	if len(chunk) < it.conf.ChunkSize {
		it.done = true
		it.file.Close()
	}
	it.next = chunk
}

func (it *iterator) fail(err error) {
	it.err = err
	it.next = nil
	it.done = true
	it.file.Close()
}

func (it *iterator) HasNextChunk() bool {
	return len(it.next) > 0 || it.err != nil
}

func (it *iterator) NextChunk() (interface{}, error) {
	if it.err != nil {
		err := it.err
		it.err = nil
		return nil, err
	}
	if len(it.next) == 0 {
		return nil, errors.NoMoreChunksError{}
	}
	chunk := it.next
	it.advance()
	return chunk, nil
}
