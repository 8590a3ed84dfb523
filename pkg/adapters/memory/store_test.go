package memory_test

import (
	"testing"

	"github.com/aretw0/vine/pkg/adapters/memory"
	"github.com/aretw0/vine/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	tests.RunSessionStoreContract(t, memory.NewStore())
}
