package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", d.String())

	_, err = ParseDate("10/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-03-10")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-10"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.True(t, d.Equal(parsed))
}

func TestDate_Scan(t *testing.T) {
	t.Parallel()

	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2024-03-10", d.String())

	var null Date
	require.NoError(t, null.Scan(nil))
	assert.True(t, null.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateOf_TruncatesToUTCDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+10", 10*3600)
	d := DateOf(time.Date(2024, 3, 11, 2, 0, 0, 0, loc)) // 2024-03-10T16:00Z
	assert.Equal(t, "2024-03-10", d.String())
}
