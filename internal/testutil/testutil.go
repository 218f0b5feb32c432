package testutil

import (
	"encoding/binary"
	"os"
	"testing"
)

// CreateTempDir creates a temporary directory for testing
func CreateTempDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "procctl-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// LE encodes value as a little-endian integer of width bytes
func LE(value uint64, width int) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, value)
	return buf[:width]
}

// CallLog records calls across several mocks so tests can assert on ordering
type CallLog struct {
	Calls []string
}

func NewCallLog() *CallLog {
	return &CallLog{Calls: []string{}}
}

func (c *CallLog) add(call string) {
	if c != nil {
		c.Calls = append(c.Calls, call)
	}
}
