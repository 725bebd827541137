package helper_util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	helper_util "github.com/gimme-oss/gimme/util/helper"
)

func TestFormatExpiry(t *testing.T) {
	// The offset must stay numeric ("+00:00"), never the "Z" shorthand.
	instant := time.Date(2018, 5, 4, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "2018-05-04T01:00:00+00:00", helper_util.FormatExpiry(instant))

	// Non-UTC instants are rendered in UTC.
	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, "2018-05-04T01:00:00+00:00",
		helper_util.FormatExpiry(time.Date(2018, 5, 3, 20, 0, 0, 0, est)))
}

func TestParseTime(t *testing.T) {
	parsed, err := helper_util.ParseTime("2018-05-04T00:00:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2018, 5, 4, 0, 0, 0, 0, time.UTC), parsed)

	_, err = helper_util.ParseTime("not a timestamp")
	assert.Error(t, err)
}
