package testsupport

import (
	"fmt"
	"strings"
	"testing"
)

// MemoryDSN returns a sqlite DSN for an in-memory database private to t.
// The database lives as long as one connection to it stays open.
func MemoryDSN(t testing.TB) string {
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}
