package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeGraphSelfLoop, "edge 3-3 is a self-loop")
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeGraphSelfLoop, err.Code)
	assert.Equal(t, "[GRAPH_003] edge 3-3 is a self-loop", err.Error())
	assert.NotEmpty(t, err.Stack)
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeGraphDanglingEdge, "edge endpoint out of range").
		WithDetail("edge=(0,17) vertices=12")
	assert.Equal(t, "[GRAPH_001] edge endpoint out of range: edge=(0,17) vertices=12", err.Error())

	// Original is not mutated.
	orig := New(ErrCodeGraphDanglingEdge, "msg")
	_ = orig.WithDetail("d")
	assert.Empty(t, orig.Detail)

	var nilErr *AppError
	assert.Nil(t, nilErr.WithDetail("x"))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "should be nil"))

	cause := stderrors.New("token stream ended early")
	err := Wrap(cause, ErrCodeSMILESInvalid, "cannot parse query")
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeSMILESInvalid, err.Code)
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrap_PreservesCodeOnUnknown(t *testing.T) {
	inner := New(ErrCodeGraphDuplicateEdge, "duplicate edge 1-2")
	outer := Wrap(inner, CodeUnknown, "construction failed")
	assert.Equal(t, ErrCodeGraphDuplicateEdge, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeSDFInvalid, "counts line truncated")
	wrapped := fmt.Errorf("record 4: %w", inner)
	assert.True(t, IsCode(wrapped, ErrCodeSDFInvalid))
	assert.False(t, IsCode(wrapped, ErrCodeSMILESInvalid))
	assert.False(t, IsCode(nil, ErrCodeSDFInvalid))
}

func TestIsMalformedGraph(t *testing.T) {
	assert.True(t, IsMalformedGraph(New(ErrCodeGraphSelfLoop, "loop")))
	assert.True(t, IsMalformedGraph(New(ErrCodeSMILESInvalid, "bad smiles")))
	assert.False(t, IsMalformedGraph(New(ErrCodeInternal, "boom")))
	assert.False(t, IsMalformedGraph(stderrors.New("plain")))
	assert.False(t, IsMalformedGraph(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeRenderFailed, GetCode(New(ErrCodeRenderFailed, "layout failed")))
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, 400, HTTPStatusForCode(ErrCodeGraphSelfLoop))
	assert.Equal(t, 500, HTTPStatusForCode(ErrorCode("NOPE_999")))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "GRAPH", ModuleForCode(ErrCodeGraphEmpty))
	assert.Equal(t, "MCS", ModuleForCode(ErrCodeMCSIncompatibleKind))
	assert.Equal(t, "ADP", ModuleForCode(ErrCodeSMARTSInvalid))
}

func TestIsClientServerError(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeSMILESInvalid))
	assert.False(t, IsServerError(ErrCodeSMILESInvalid))
	assert.True(t, IsServerError(ErrCodeInternal))
}
