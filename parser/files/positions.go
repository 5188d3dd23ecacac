package files

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/activecm/wfpreprocess/pkg/features"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrPositionsFormat is returned when a positions document is not a flat object of offsets
var ErrPositionsFormat = errors.New("positions must be a JSON object of integer offsets")

// WritePositions writes the block offsets as a JSON object, keys in block order
func WritePositions(w io.Writer, positions features.Positions) error {
	stream := json.BorrowStream(w)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, p := range positions {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(p.Name)
		stream.WriteInt(p.Offset)
	}
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")
	if err := stream.Flush(); err != nil {
		return err
	}
	return stream.Error
}

// WritePositionsFile creates or truncates path and writes the positions to it
func WritePositionsFile(path string, positions features.Positions) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePositions(file, positions); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadPositions parses a positions document, keeping the key order
func ReadPositions(r io.Reader) (features.Positions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	iter := json.BorrowIterator(bytes.TrimSpace(data))
	defer json.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, ErrPositionsFormat
	}
	positions := features.Positions{}
	for name := iter.ReadObject(); name != ""; name = iter.ReadObject() {
		if iter.WhatIsNext() != jsoniter.NumberValue {
			return nil, ErrPositionsFormat
		}
		positions = append(positions, features.Position{Name: name, Offset: iter.ReadInt()})
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, iter.Error
	}
	return positions, nil
}

// ReadPositionsFile reads a positions document from disk
func ReadPositionsFile(path string) (features.Positions, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadPositions(file)
}
