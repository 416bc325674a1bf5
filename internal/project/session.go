package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// SessionVersion is written into every session file.
const SessionVersion = "1"

// Session formats, named after the file extension that selects them.
const (
	FormatJSON     = "json"
	FormatJSONZstd = "json.zst"
	FormatCBOR     = "cbor"
	FormatCBORZstd = "cbor.zst"
)

// ErrUnknownFormat is returned for session paths with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown session format")

// Session is a saved packing run: the configuration it used and the state of
// its bins. Packing can be resumed from it.
type Session struct {
	Version   string                       `json:"version" cbor:"version"`
	ID        string                       `json:"id" cbor:"id"`
	Name      string                       `json:"name" cbor:"name"`
	CreatedAt string                       `json:"created_at" cbor:"created_at"`
	Config    model.PackerConfig           `json:"config" cbor:"config"`
	Snapshot  model.Snapshot[model.Sprite] `json:"snapshot" cbor:"snapshot"`
}

// NewSession captures the current state of p under the given name.
func NewSession(name string, p *engine.Packer[model.Sprite]) Session {
	return Session{
		Version:   SessionVersion,
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    p.Config(),
		Snapshot:  p.Save(),
	}
}

// ResumePacker rebuilds a packer from the session. All bins are open again.
func ResumePacker(s Session) (*engine.Packer[model.Sprite], error) {
	p, err := engine.NewWithConfig[model.Sprite](s.Config)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.Name, err)
	}
	if err := p.Load(s.Snapshot); err != nil {
		return nil, fmt.Errorf("session %s: %w", s.Name, err)
	}
	return p, nil
}

// FormatForPath returns the session format selected by the file extension.
func FormatForPath(path string) (string, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".cbor.zst"):
		return FormatCBORZstd, nil
	case strings.HasSuffix(name, ".json.zst"):
		return FormatJSONZstd, nil
	case strings.HasSuffix(name, ".cbor"):
		return FormatCBOR, nil
	case strings.HasSuffix(name, ".json"):
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// MarshalSession encodes a session in the given format.
func MarshalSession(s Session, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatJSONZstd:
		data, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		return compress(data), nil
	case FormatCBOR:
		return cborEnc.Marshal(s)
	case FormatCBORZstd:
		data, err := cborEnc.Marshal(s)
		if err != nil {
			return nil, err
		}
		return compress(data), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// UnmarshalSession decodes a session written by MarshalSession.
func UnmarshalSession(data []byte, format string) (Session, error) {
	var s Session
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &s)
	case FormatJSONZstd:
		if data, err = decompress(data); err == nil {
			err = json.Unmarshal(data, &s)
		}
	case FormatCBOR:
		err = cborDec.Unmarshal(data, &s)
	case FormatCBORZstd:
		if data, err = decompress(data); err == nil {
			err = cborDec.Unmarshal(data, &s)
		}
	default:
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Session{}, err
	}
	if s.Version == "" {
		return Session{}, fmt.Errorf("invalid session: missing version field")
	}
	return s, nil
}

// SaveSession writes a session to path in the format its extension selects.
// It creates any missing parent directories automatically.
func SaveSession(path string, s Session) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	data, err := MarshalSession(s, format)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadSession reads a session file written by SaveSession.
func LoadSession(path string) (Session, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Session{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}
	s, err := UnmarshalSession(data, format)
	if err != nil {
		return Session{}, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}
	return s, nil
}
