package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

type systemClipboard struct{}

func (systemClipboard) WriteText(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}

// fileSink writes downloads to path, or to the suggested name in dir when
// path is empty.
type fileSink struct {
	dir   string
	path  string
	saved string
}

func (s *fileSink) Save(_ context.Context, name string, data []byte) error {
	target := s.path
	if target == "" {
		target = filepath.Join(s.dir, name)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}
	s.saved = target
	return nil
}
