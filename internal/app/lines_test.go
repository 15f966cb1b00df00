package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanswap/pkg/ime"
)

func TestConvertLines(t *testing.T) {
	in := strings.NewReader("dkssud\nhello there\n\nrk sk")
	var out bytes.Buffer

	require.NoError(t, ConvertLines(in, &out, ime.ConvertText))
	assert.Equal(t, "안녕 \nhello there \n \n가 나 \n", out.String())
}

func TestConvertLinesEmptyInput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ConvertLines(strings.NewReader(""), &out, ime.ConvertText))
	assert.Empty(t, out.String())
}
