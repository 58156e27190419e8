package receipt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpoolPrinter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")
	p := NewSpoolPrinter(dir)

	doc := &Document{
		BillNumber:  "BILL202503140001",
		ContentType: "text/plain",
		Content:     []byte("receipt body"),
	}
	require.NoError(t, p.Print(context.Background(), doc))

	data, err := os.ReadFile(filepath.Join(dir, "BILL202503140001.txt"))
	require.NoError(t, err)
	assert.Equal(t, "receipt body", string(data))
}

func TestNopPrinter(t *testing.T) {
	assert.NoError(t, NopPrinter{}.Print(context.Background(), &Document{BillNumber: "X"}))
}
