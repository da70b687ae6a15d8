package pipeline

import (
	"fmt"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// WriteReport writes s to path as YAML. The file is replaced atomically so
// a reader never sees a partial report.
func WriteReport(path string, s Summary) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending report: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	enc := yaml.NewEncoder(pending)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}
