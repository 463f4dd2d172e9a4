package qtl2prep

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// MarkerList reads a newline-delimited list of marker IDs, one per line.
type MarkerList struct {
	path    string
	rc      io.ReadCloser
	scanner *bufio.Scanner
}

func OpenMarkerList(ctx context.Context, path string, client *storage.Client) (*MarkerList, error) {
	rc, err := Open(ctx, path, client)
	if err != nil {
		return nil, err
	}

	return NewMarkerList(path, rc), nil
}

// NewMarkerList wraps an already opened reader. path is only used for error
// messages.
func NewMarkerList(path string, rc io.ReadCloser) *MarkerList {
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &MarkerList{
		path:    path,
		rc:      rc,
		scanner: scanner,
	}
}

func (m *MarkerList) Close() error {
	return m.rc.Close()
}

func (m *MarkerList) Err() error {
	if err := m.scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", m.path, err)
	}

	return nil
}

// Read returns the next non-blank marker ID, or false once the list is
// exhausted or an error occurred.
func (m *MarkerList) Read() (string, bool) {
	for m.scanner.Scan() {
		if id := m.scanner.Text(); id != "" {
			return id, true
		}
	}

	return "", false
}

// ReadMarkerList reads every marker ID at path in file order. Only the first
// occurrence of a duplicated ID is kept.
func ReadMarkerList(ctx context.Context, path string, client *storage.Client) ([]string, error) {
	ml, err := OpenMarkerList(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer ml.Close()

	return ReadAllMarkers(ml)
}

func ReadAllMarkers(ml *MarkerList) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for id, ok := ml.Read(); ok; id, ok = ml.Read() {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if err := ml.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
