package snapshot

import (
	"bytes"
	"context"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
)

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put writes the snapshot stored under key, replacing any previous one.
	Put(ctx context.Context, key string, html []byte) error

	// Get returns the snapshot stored under key. A missing key is an S152
	// error.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns the keys starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the snapshot stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
}

// ValidateKey checks that key is a relative slash-separated path made of
// letters, digits, '.', '_' and '-', without empty or dot-dot segments.
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("S153").WithDetail("Snapshot key is empty")
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return errors.New("S153").WithDetail("Snapshot key " + key + " has an empty or relative segment")
		}
		for _, c := range seg {
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			case c == '.' || c == '_' || c == '-':
			default:
				return errors.New("S153").WithDetail("Snapshot key " + key + " contains " + string(c))
			}
		}
	}
	return nil
}

// Mismatch describes a snapshot that differs from the rendered output.
type Mismatch struct {
	Key  string
	Want []byte
	Got  []byte
}

// Check compares html against the snapshot under key. It returns nil when
// they are equal and a *Mismatch otherwise; store errors are returned as is.
func Check(ctx context.Context, s Store, key string, html []byte) (*Mismatch, error) {
	want, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(want, html) {
		return nil, nil
	}
	return &Mismatch{Key: key, Want: want, Got: html}, nil
}

// NotFound reports whether err says a snapshot does not exist.
func NotFound(err error) bool {
	return errors.Is(err, "S152")
}
