package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// Every node under internal must declare exactly the dependencies it resolves,
// from the config loader up to the app components.
func TestNodeDependencies(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}
