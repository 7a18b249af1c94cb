package timezone

import (
	"sitterhub/config"
	"sitterhub/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation = time.UTC
)

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return
	}

	appLocation = loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constant.DateOnlyFormat, value)
}

// FormatDate renders a calendar date produced by ParseDate or Today.
func FormatDate(t time.Time) string {
	return t.UTC().Format(constant.DateOnlyFormat)
}

// Today returns the current calendar date in the application timezone as a UTC midnight.
func Today() time.Time {
	return DateOf(Now())
}

// DateOf truncates t to its calendar date in its own location, expressed as a UTC midnight.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
