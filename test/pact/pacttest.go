//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-api"
	ConsumerName = "shop-portal"

	StateMembersBaseline = "members baseline"
	StateMemberExists    = "member with id 101 exists"
	StateMemberMissing   = "no member with id 404"
	StateOrderPlaceable  = "member 101 and item 201 with stock exist"
)

const (
	ExistingMemberID int64 = 101
	MissingMemberID  int64 = 404
	StockedItemID    int64 = 201
)

const (
	exampleMemberName = "Pact Kim"
	exampleItemName   = "JPA Book"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the shop portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleMemberName is the name every seeded member carries.
func ExampleMemberName() string { return exampleMemberName }

// ExampleItemName is the name of the seeded item.
func ExampleItemName() string { return exampleItemName }

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
