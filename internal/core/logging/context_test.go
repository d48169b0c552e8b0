package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithLoadID(t *testing.T) {
	ctx := WithLoadID(context.Background(), "load-123")
	assert.Equal(t, "load-123", GetLoadID(ctx))
}

func TestWithSource(t *testing.T) {
	ctx := WithSource(context.Background(), "chr1.fa")
	assert.Equal(t, "chr1.fa", GetSource(ctx))
}

func TestContextValues_NotPresent(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetLoadID(ctx))
	assert.Empty(t, GetSource(ctx))
}

func TestContextValues_Both(t *testing.T) {
	ctx := WithSource(WithLoadID(context.Background(), "load-1"), "demo")

	assert.Equal(t, "load-1", GetLoadID(ctx))
	assert.Equal(t, "demo", GetSource(ctx))
}
