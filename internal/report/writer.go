package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/idelchi/dirdiff/internal/size"
	"github.com/idelchi/dirdiff/internal/snapshot"
)

// Write emits snap as a report, one "<path> [<size>]" line per entry with
// paths in ascending order. The output parses back into an equal snapshot,
// modulo the one-decimal truncation of size.Format.
func Write(w io.Writer, snap *snapshot.Snapshot) error {
	buffered := bufio.NewWriter(w)

	for _, path := range snap.Paths() {
		bytes, _ := snap.Get(path)

		if _, err := fmt.Fprintf(buffered, "%s [%s]\n", path, size.Format(bytes)); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// Save writes snap as a report file at path, replacing any existing file.
func Save(path string, snap *snapshot.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %q: %w", path, err)
	}

	if err := Write(file, snap); err != nil {
		file.Close()

		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing report %q: %w", path, err)
	}

	return nil
}
