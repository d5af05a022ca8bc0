package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mash-protocol/ipmi-go/pkg/ipmi"
)

func TestShellDispatch(t *testing.T) {
	a, layer, out := testApp(t)
	s := &shell{app: a}

	assert.True(t, s.dispatch("   "))
	assert.Empty(t, out.String())

	assert.True(t, s.dispatch("metrics"))
	assert.Contains(t, out.String(), "intel/ipmi/power/system/avg")

	out.Reset()
	assert.True(t, s.dispatch("frob"))
	assert.Contains(t, out.String(), "Unknown command: frob")

	out.Reset()
	layer.EXPECT().
		BatchExecRaw(mock.Anything, mock.Anything).
		Return(nil, &ipmi.Status{Code: ipmi.CodeTimeout, Message: "Timeout on read select."})
	assert.True(t, s.dispatch("raw 06 01"))
	assert.Contains(t, out.String(), "Error: ")
	assert.Contains(t, out.String(), "Timeout on read select.")

	out.Reset()
	assert.True(t, s.dispatch("help"))
	assert.Contains(t, out.String(), "IPMI Batch Commands")

	assert.False(t, s.dispatch("quit"))
}
