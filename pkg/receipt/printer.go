package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"droppos/pkg/logger"
)

// SpoolPrinter writes rendered documents into a spool directory picked up by
// the print dispatcher running next to the physical printer.
type SpoolPrinter struct {
	dir string
}

// NewSpoolPrinter creates a printer spooling into dir.
func NewSpoolPrinter(dir string) *SpoolPrinter {
	return &SpoolPrinter{dir: dir}
}

// Print writes the document to the spool directory.
func (p *SpoolPrinter) Print(ctx context.Context, doc *Document) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create spool dir: %w", err)
	}

	path := filepath.Join(p.dir, doc.BillNumber+".txt")
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("spool receipt: %w", err)
	}

	logger.Info(ctx, "receipt spooled",
		"bill", doc.BillNumber,
		"path", path)
	return nil
}

// NopPrinter discards documents. Used when no printer is attached.
type NopPrinter struct{}

// Print does nothing.
func (NopPrinter) Print(ctx context.Context, doc *Document) error { return nil }
