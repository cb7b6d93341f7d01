package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/agentsgen/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "config", ID: ".agentsgen.json"}
		assert.Equal(t, "config .agentsgen.json not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("config", "x")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("pack.llms_format", "pdf", "must be txt or md")
		assert.Equal(t, "validation failed for field pack.llms_format: must be txt or md", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestMarkerError(t *testing.T) {
	err := pkgerrors.NewMarkerError("AGENTS.md", []string{"first problem", "second problem"})
	assert.Equal(t, "first problem; second problem", err.Error())
	assert.True(t, pkgerrors.IsMarkerError(err))
	assert.False(t, pkgerrors.IsMissingSection(err))
}

func TestMissingSectionError(t *testing.T) {
	err := pkgerrors.NewMissingSectionError("RUNBOOK.md", []string{"quickstart", "troubleshooting"})
	assert.Equal(t, "Missing required marker sections: quickstart, troubleshooting", err.Error())
	assert.True(t, pkgerrors.IsMissingSection(err))
	assert.False(t, pkgerrors.IsMarkerError(err))
}

func TestPathError(t *testing.T) {
	err := &pkgerrors.PathError{Path: "../x.md", Root: "/repo"}
	assert.True(t, errors.Is(err, pkgerrors.ErrPathEscape))
}

func TestConfigError(t *testing.T) {
	base := errors.New("boom")
	err := pkgerrors.NewConfigError("pack", "output_dir must be relative", base)
	assert.Contains(t, err.Error(), "pack")
	assert.Contains(t, err.Error(), "output_dir must be relative")
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/AGENTS.md", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapIO("rename", "/repo/RUNBOOK.md", errors.New("permission denied"))
		var ioErr *pkgerrors.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "rename", ioErr.Operation)
		assert.Equal(t, "/repo/RUNBOOK.md", ioErr.Path)
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	})
}

func TestParseError(t *testing.T) {
	err := pkgerrors.WrapParse("json", ".agentsgen.json", errors.New("unexpected EOF"))
	assert.Equal(t, "parse error in json file .agentsgen.json: unexpected EOF", err.Error())
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("render", "template", "python/AGENTS.md.tpl", errors.New("bad action"))
	var resErr *pkgerrors.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "failed to render template python/AGENTS.md.tpl: bad action", err.Error())
}
