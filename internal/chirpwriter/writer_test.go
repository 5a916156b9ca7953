package chirpwriter

import (
	"bytes"
	"testing"

	"github.com/ginjaninja78/rtsys2chirp/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_HeaderOrderAndFormatting(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{UseCRLF: true})

	require.NoError(t, w.WriteHeader([]string{"Location", "Name", "Offset", "TStep", "Comment"}))

	rec := types.NewDestinationRecord()
	rec.Set("Comment", types.StringValue("Club net, weekly"))
	rec.Set("Location", types.IntValue(3))
	rec.Set("Offset", types.FloatValue(0.6))
	rec.Set("TStep", types.FloatValue(5))
	rec.Set("Extra", types.StringValue("ignored"))
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"Location,Name,Offset,TStep,Comment\r\n3,,0.6,5.0,\"Club net, weekly\"\r\n",
		buf.String())
}

func TestWriter_LF(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{})

	require.NoError(t, w.WriteHeader([]string{"Location"}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "Location\n", buf.String())
}

func TestWriter_HeaderOrdering(t *testing.T) {
	w := New(&bytes.Buffer{}, Options{})

	assert.ErrorIs(t, w.Write(types.NewDestinationRecord()), ErrHeaderNotWritten)

	require.NoError(t, w.WriteHeader([]string{"Location"}))
	assert.ErrorIs(t, w.WriteHeader([]string{"Location"}), ErrHeaderWritten)
	assert.Equal(t, []string{"Location"}, w.header)
}
