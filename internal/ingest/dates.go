package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// excelEpochOffset is the number of days between the spreadsheet serial
// epoch (1899-12-30) and the Unix epoch.
const excelEpochOffset = 25569

// dateLayouts are tried in order for textual dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseRecordDate parses a calculation date in any of the spellings the
// exports produce: a spreadsheet serial number or a textual date. The
// boolean is false when the value is empty or unparseable.
func ParseRecordDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		return fromExcelSerial(serial), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// fromExcelSerial converts a spreadsheet day serial to a UTC time.
func fromExcelSerial(serial float64) time.Time {
	seconds := (serial - excelEpochOffset) * 86400
	return time.Unix(int64(seconds), 0).UTC()
}

// flexDate decodes a date that may arrive as a JSON string or a
// spreadsheet serial number. Unparseable values decode to the zero time
// instead of failing the whole load.
type flexDate struct {
	Time time.Time
}

// set parses a textual value, as found in CSV cells.
func (d *flexDate) set(value string) {
	if t, ok := ParseRecordDate(value); ok {
		d.Time = t
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *flexDate) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		d.set(asString)
		return nil
	}
	var asNumber float64
	if err := json.Unmarshal(data, &asNumber); err == nil {
		d.Time = fromExcelSerial(asNumber)
		return nil
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d flexDate) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// flexBool decodes an active flag that may arrive as a JSON bool, a
// number, or a textual yes/no spelling.
type flexBool bool

// set parses a textual value, as found in CSV cells.
func (b *flexBool) set(value string) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1", "active":
		*b = true
	default:
		*b = false
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *flexBool) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = flexBool(asBool)
		return nil
	}
	var asNumber float64
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*b = asNumber != 0
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		b.set(asString)
		return nil
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b flexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}
