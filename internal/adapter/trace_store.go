package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	m "helix.dev/pkg/helix/internal/model"
)

// TraceFormat selects the encoding of a saved execution.
type TraceFormat string

const (
	// TraceJSON is indented JSON.
	TraceJSON TraceFormat = "json"
	// TraceYAML is YAML.
	TraceYAML TraceFormat = "yaml"
	// TraceCBOR is compact binary CBOR.
	TraceCBOR TraceFormat = "cbor"
)

// ErrUnknownTraceFormat is returned for unsupported format names.
var ErrUnknownTraceFormat = errors.New("unknown trace format")

// ParseTraceFormat validates a format name. "yml" is accepted for YAML.
func ParseTraceFormat(name string) (TraceFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return TraceJSON, nil
	case "yaml", "yml":
		return TraceYAML, nil
	case "cbor":
		return TraceCBOR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTraceFormat, name)
	}
}

// TraceStore persists executions.
type TraceStore interface {
	SaveExecution(ctx context.Context, path m.Path, execution m.Execution) error
	LoadExecution(ctx context.Context, path m.Path) (m.Execution, error)
	Format() TraceFormat
}

type traceStore struct {
	fs     GenomeFSAdapter
	format TraceFormat
}

// NewTraceStore creates a TraceStore writing format through fs.
func NewTraceStore(fs GenomeFSAdapter, format TraceFormat) TraceStore {
	if format == "" {
		format = TraceJSON
	}

	return &traceStore{fs: fs, format: format}
}

func (s *traceStore) Format() TraceFormat {
	return s.format
}

// SaveExecution encodes execution in the store's format.
func (s *traceStore) SaveExecution(ctx context.Context, path m.Path, execution m.Execution) error {
	data, err := EncodeExecution(s.format, execution)
	if err != nil {
		return err
	}

	return s.fs.WriteFile(ctx, path, data)
}

// LoadExecution decodes a saved execution, picking the format from the file
// extension.
func (s *traceStore) LoadExecution(ctx context.Context, path m.Path) (m.Execution, error) {
	format, err := ParseTraceFormat(filepath.Ext(string(path)))
	if err != nil {
		return m.Execution{}, err
	}

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return m.Execution{}, err
	}

	return DecodeExecution(format, data)
}

// EncodeExecution serialises execution.
func EncodeExecution(format TraceFormat, execution m.Execution) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case TraceJSON:
		data, err = json.MarshalIndent(execution, "", "  ")
	case TraceYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err = enc.Encode(execution); err == nil {
			err = enc.Close()
		}

		data = buf.Bytes()
	case TraceCBOR:
		data, err = cbor.Marshal(execution)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTraceFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("encode %s trace: %w", format, err)
	}

	return data, nil
}

// DecodeExecution parses data written by EncodeExecution.
func DecodeExecution(format TraceFormat, data []byte) (m.Execution, error) {
	var (
		execution m.Execution
		err       error
	)

	switch format {
	case TraceJSON:
		err = json.Unmarshal(data, &execution)
	case TraceYAML:
		err = yaml.Unmarshal(data, &execution)
	case TraceCBOR:
		err = cbor.Unmarshal(data, &execution)
	default:
		return m.Execution{}, fmt.Errorf("%w: %q", ErrUnknownTraceFormat, format)
	}

	if err != nil {
		return m.Execution{}, fmt.Errorf("decode %s trace: %w", format, err)
	}

	return execution, nil
}
