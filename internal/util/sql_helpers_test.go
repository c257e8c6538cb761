package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringToNullString(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)

	ns := StringToNullString("hello")
	assert.True(t, ns.Valid)
	assert.Equal(t, "hello", ns.String)
}

func TestTimeToNullTime(t *testing.T) {
	assert.False(t, TimeToNullTime(time.Time{}).Valid)

	now := time.Now()
	nt := TimeToNullTime(now)
	assert.True(t, nt.Valid)
	assert.Equal(t, now, nt.Time)
}

func TestNullTimeToPtr(t *testing.T) {
	assert.Nil(t, NullTimeToPtr(TimeToNullTime(time.Time{})))

	now := time.Now()
	ptr := NullTimeToPtr(TimeToNullTime(now))
	assert.NotNil(t, ptr)
	assert.Equal(t, now, *ptr)
}
