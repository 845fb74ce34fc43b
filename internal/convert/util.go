package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
)

// stem drops the final extension, keeping dot-files such as ".pdf" whole.
func stem(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func loggerOr(l logging.Logger) logging.Logger {
	if l != nil {
		return l
	}
	return logging.NewLogrusAdapter("info", "text", nil)
}
