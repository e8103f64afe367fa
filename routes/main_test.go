package routes

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Point the cache at a closed port so tests never share state through a
	// developer's local redis; the cache is best-effort and fails open.
	os.Setenv("REDIS_HOST", "127.0.0.1")
	os.Setenv("REDIS_PORT", "1")
	os.Exit(m.Run())
}
