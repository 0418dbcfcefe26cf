package error

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (*bytes.Buffer, *int) {
	buf := &bytes.Buffer{}
	code := -1

	logger, exit := log.Logger, Exit
	log.Logger = zerolog.New(buf)
	Exit = func(c int) { code = c }
	t.Cleanup(func() { log.Logger, Exit = logger, exit })

	return buf, &code
}

func TestExternal(t *testing.T) {
	buf, code := capture(t)
	External("The file %s has %d traces.", "line.sgy", 0)
	assert.Equal(t, 1, *code)
	assert.Contains(t, buf.String(), "The file line.sgy has 0 traces.")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestInternal(t *testing.T) {
	buf, code := capture(t)
	Internal("bad token '%s'", "1..")
	assert.Equal(t, 1, *code)
	assert.Contains(t, buf.String(), "bad token '1..'")
	assert.Contains(t, buf.String(), `"stack"`)
}

func TestCheck(t *testing.T) {
	buf, code := capture(t)
	Check(nil)
	assert.Equal(t, -1, *code)
	assert.Empty(t, buf.String())

	Check(errors.New("100% broken"))
	assert.Equal(t, 1, *code)
	assert.Contains(t, buf.String(), "100% broken")
}
