package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"datasight/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrap_ClassifiesDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"not found", core.ErrProfileNotFound, CodeNotFound},
		{"invalid id", fmt.Errorf("%w: abc", core.ErrInvalidID), CodeInvalidInput},
		{"load", core.NewLoadError("csv", stderrors.New("bad quote")), CodeLoadError},
		{"unsupported", core.ErrUnsupportedFormat, CodeLoadError},
		{"binding", core.ErrBindingMissing, CodeRenderError},
		{"compute", core.ErrCompute, CodeRenderError},
		{"other", stderrors.New("boom"), CodeInternalError},
		{"app error keeps code", ValidationError("nope"), CodeValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, "context")
			assert.Equal(t, tt.code, GetCode(wrapped))
			assert.True(t, stderrors.Is(wrapped, tt.err))
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "x"))
	assert.NoError(t, Wrapf(nil, "x %d", 1))
	assert.NoError(t, WithCode(CodeNotFound, nil))
}

func TestGetCode_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("profile"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "could not read a.csv: bad", LoadError("a.csv", stderrors.New("bad")).Error())
	assert.Equal(t, "profile not found", NotFound("profile").Error())
	assert.Equal(t, CodeRenderError, WithCode(CodeRenderError, stderrors.New("x")).(*AppError).Code)
	assert.Equal(t, "x", WithCode(CodeRenderError, stderrors.New("x")).Error())
}
