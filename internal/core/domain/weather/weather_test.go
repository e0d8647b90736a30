package weather_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
)

func TestCacheKey_CaseAndWhitespaceInsensitive(t *testing.T) {
	variants := []string{"London", "london", "  LONDON ", "\tLoNdOn\n"}
	for _, v := range variants {
		assert.Equal(t, "weather:london", weather.CacheKey(v), v)
	}
	assert.Equal(t, "weather:new york", weather.CacheKey(" New York "))
	assert.NotEqual(t, weather.CacheKey("Paris"), weather.CacheKey("Parish"))
}

func TestKindOf(t *testing.T) {
	err := weather.NewError(weather.KindTimeout, weather.MsgTimeout, errors.New("deadline"))
	assert.Equal(t, weather.KindTimeout, weather.KindOf(err))

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.Equal(t, weather.KindTimeout, weather.KindOf(wrapped))
	assert.Equal(t, weather.MsgTimeout, err.Error())

	assert.Equal(t, weather.KindUnknown, weather.KindOf(errors.New("Request timeout")))
	assert.Equal(t, weather.KindUnknown, weather.KindOf(nil))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "invalid_city", weather.KindInvalidCity.String())
	assert.Equal(t, "unreachable", weather.KindUnreachable.String())
	assert.Equal(t, "unknown", weather.ErrorKind(99).String())
}
