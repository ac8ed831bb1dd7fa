package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/pstkit/internal/format"
	"github.com/mbranch/pstkit/ltp"
)

func TestRowPropertySetGetContains(t *testing.T) {
	row := map[uint32]ltp.PropertyValue{
		PidTagSubject:      {Tag: PidTagSubject, Type: format.PtypString, Raw: utf16Bytes(t, "hello")},
		PidTagContentCount: {Tag: PidTagContentCount, Type: format.PtypInteger32, Int: 3},
	}
	ps := newRowPropertySet(row)

	assert.True(t, ps.Contains(PidTagSubject))
	assert.False(t, ps.Contains(PidTagDisplayName))
	assert.Equal(t, "hello", ps.String(PidTagSubject))
	assert.Equal(t, int64(3), ps.Int(PidTagContentCount))
	assert.Equal(t, "", ps.String(PidTagDisplayName))
	assert.Equal(t, int64(0), ps.Int(PidTagDisplayName))

	_, err := ps.Get(PidTagDisplayName)
	require.Error(t, err)
}

func TestEnumerateNamedNilMap(t *testing.T) {
	row := map[uint32]ltp.PropertyValue{
		PidTagSubject: {Tag: PidTagSubject, Type: format.PtypString},
	}
	ps := newRowPropertySet(row)
	entries, errs := ps.EnumerateNamed(nil)
	require.Empty(t, errs)
	require.Len(t, entries, 1)
	assert.Equal(t, PidTagSubject, entries[0].Tag)
	assert.Equal(t, NamedProperty{}, entries[0].Named)
}

func utf16Bytes(t *testing.T, s string) []byte {
	t.Helper()
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}
