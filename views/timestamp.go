package views

import (
	"time"
	_ "time/tzdata"
)

const (
	wideLayout   = "2 Jan 2006, 03:04:05 pm"
	narrowLayout = "2 Jan 06, 03:04:05 pm"
)

// TimeFormat renders submission times in one fixed zone, whatever the
// machine's local zone is. An empty Suffix uses the zone's abbreviation
// at the rendered instant.
type TimeFormat struct {
	Location *time.Location
	Suffix   string
}

// India is the default display convention.
var India = TimeFormat{Location: loadLocation("Asia/Kolkata", 5*60*60+30*60), Suffix: "IST"}

func NewTimeFormat(name string) (TimeFormat, error) {
	if name == "Asia/Kolkata" {
		return India, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return TimeFormat{}, err
	}
	return TimeFormat{Location: loc}, nil
}

// Format renders t like "19 Oct 2026, 02:03:04 pm IST". Narrow terminals
// get a two-digit year.
func (tf TimeFormat) Format(t time.Time, narrow bool) string {
	if t.IsZero() {
		return "-"
	}
	layout := wideLayout
	if narrow {
		layout = narrowLayout
	}
	loc := tf.Location
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	suffix := tf.Suffix
	if suffix == "" {
		suffix, _ = local.Zone()
	}
	return local.Format(layout) + " " + suffix
}

func loadLocation(name string, offset int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, offset)
	}
	return loc
}
