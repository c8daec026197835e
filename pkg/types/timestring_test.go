package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", ts.String())

	for _, bad := range []string{"", "9:05:00", "25:00", "12:60", "noon"} {
		_, err := NewTimeStringFromString(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	assert.Equal(t, "00:00", NewTimeStringFromMinutes(0).String())
	assert.Equal(t, "09:30", NewTimeStringFromMinutes(9*60+30).String())
	assert.Equal(t, "23:59", NewTimeStringFromMinutes(23*60+59).String())

	// Значения вне суток нормализуются по модулю
	assert.Equal(t, "00:10", NewTimeStringFromMinutes(24*60+10).String())
	assert.Equal(t, "23:50", NewTimeStringFromMinutes(-10).String())
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("14:20")
	m, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 14*60+20, m)

	_, err = TimeString("garbage").Minutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("23:50")
	next, err := ts.AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, "00:10", next.String())
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("09:00").IsBefore(TimeString("09:00")))
	assert.True(t, TimeString("18:00").IsAfter(TimeString("09:30")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30"))
	assert.Equal(t, "10:30", ts.String())

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("11:45")))
	assert.Equal(t, "11:45", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 6, 2, 15, 20, 0, 0, time.UTC)))
	assert.Equal(t, "15:20", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.Equal(t, "", ts.String())

	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("not-a-time"))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("08:15").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:15", v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}

func TestTimeString_JSON(t *testing.T) {
	data, err := json.Marshal(TimeString("09:00"))
	require.NoError(t, err)
	assert.Equal(t, `"09:00"`, string(data))

	var ts TimeString
	require.NoError(t, json.Unmarshal([]byte(`"17:40"`), &ts))
	assert.Equal(t, "17:40", ts.String())

	assert.Error(t, json.Unmarshal([]byte(`"24:00"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}
