package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/testutil"
)

func TestMockLogger_RecordsAndClears(t *testing.T) {
	m := testutil.NewMockLogger()
	m.Info("parsed", logging.String("format", "smiles"))
	m.Error("boom")

	assert.True(t, m.HasMessage("info", "parsed"))
	assert.True(t, m.HasMessage("error", "boom"))
	assert.False(t, m.HasMessage("warn", "parsed"))
	assert.Len(t, m.GetMessages(), 2)

	m.Clear()
	assert.Empty(t, m.GetMessages())
}

func TestMockLogger_SatisfiesInterface(t *testing.T) {
	var log logging.Logger = testutil.NewMockLogger()
	log.With(logging.Int("n", 1)).Named("sub").Debug("ok")
}
