package migration

import (
	"time"
)

// TimestampLayout is the CodeIgniter 4 migration timestamp format.
const TimestampLayout = "2006-01-02-150405"

// Sequence returns n strictly increasing timestamps starting at base, one
// second apart.
func Sequence(base time.Time, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * time.Second).Format(TimestampLayout)
	}
	return out
}

// FileName joins a timestamp and a class name into a migration file name.
func FileName(timestamp, class string) string {
	return timestamp + "_" + class + ".php"
}
