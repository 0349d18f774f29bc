// Package workspace is the editor's file collaborator: it loads documents
// from disk, saves them atomically and reports external changes to open
// files.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/tracing"
)

// ErrIsDirectory is returned when a directory is opened as a file.
var ErrIsDirectory = errors.New("is a directory")

// decoder decodes UTF-8, replacing invalid sequences with U+FFFD. A
// leading UTF-8 byte order mark is dropped. Other byte order marks are
// ordinary invalid bytes.
func decoder() transform.Transformer {
	return unicode.UTF8BOM.NewDecoder()
}

// Read loads the file at path as text. Invalid UTF-8 never fails the read.
func Read(ctx context.Context, path string) (string, error) {
	_, span := tracing.Tracer().Start(ctx, tracing.SpanOpen)
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrDocumentPath, path))

	info, err := os.Stat(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stat failed")
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	if info.IsDir() {
		span.SetStatus(codes.Error, "directory")
		return "", fmt.Errorf("opening %s: %w", path, ErrIsDirectory)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	text, _, err := transform.String(decoder(), string(data))
	if err != nil {
		// the decoder replaces rather than fails; keep the raw bytes if it ever does
		log.Warn(log.CatWorkspace, "decode failed", "path", path, "error", err)
		text = strings.ToValidUTF8(string(data), "�")
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrBytes, len(data)),
		attribute.Int(tracing.AttrDocumentLines, strings.Count(text, "\n")+1),
	)
	log.Debug(log.CatWorkspace, "read file", "path", path, "bytes", len(data))
	return text, nil
}

// Write saves text to path atomically: it writes a temp file next to path
// and renames it over the original. An existing file keeps its mode.
func Write(ctx context.Context, path, text string) error {
	_, span := tracing.Tracer().Start(ctx, tracing.SpanSave)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrDocumentPath, path),
		attribute.Int(tracing.AttrBytes, len(text)),
	)

	if err := WriteFileAtomic(path, []byte(text)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		log.ErrorErr(log.CatWorkspace, "save failed", err, "path", path)
		return err
	}
	log.Info(log.CatWorkspace, "saved", "path", path, "bytes", len(text))
	return nil
}

// WriteFileAtomic replaces path with data through a synced temp file in
// the same directory. An existing file keeps its permission bits; a new
// one is created 0644 along with any missing parents.
func WriteFileAtomic(path string, data []byte) (err error) {
	mode := fs.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return fmt.Errorf("saving %s: %w", path, ErrIsDirectory)
		}
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
