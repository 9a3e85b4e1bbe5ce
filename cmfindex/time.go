package cmfindex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// BuildTime wraps time.Time so it can be written to and scanned back
// from a SQLite column regardless of whether the driver hands back an
// int64 unix timestamp or a formatted text string.
type BuildTime time.Time

// Scan implements sql.Scanner.
func (t *BuildTime) Scan(v interface{}) error {
	switch which := v.(type) {
	case int64:
		*t = BuildTime(time.Unix(which, 0))
		return nil
	case int:
		*t = BuildTime(time.Unix(int64(which), 0))
		return nil
	case []byte:
		vt, err := time.Parse("2006-01-02 15:04:05", string(which))
		if err != nil {
			return err
		}
		*t = BuildTime(vt)
		return nil
	case string:
		vt, err := time.Parse("2006-01-02 15:04:05", which)
		if err != nil {
			return err
		}
		*t = BuildTime(vt)
		return nil
	}

	return fmt.Errorf("cmfindex: cannot scan %T into BuildTime", v)
}

// Value implements driver.Valuer so a BuildTime can be passed directly
// as a query argument.
func (t BuildTime) Value() (driver.Value, error) {
	return time.Time(t).Unix(), nil
}
