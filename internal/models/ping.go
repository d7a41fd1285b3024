package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ping represents a single GPS position report
type Ping struct {
	Timestamp time.Time `json:"timestamp"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`

	// Optional sensor data
	Altitude *float64 `json:"alt,omitempty"` // meters
	Velocity *float64 `json:"vel,omitempty"` // m/s, device-reported
	Accuracy *float64 `json:"acc,omitempty"` // meters
}

// Valid reports whether the ping carries the minimum data required for
// segment construction (coordinates and a timestamp)
func (p Ping) Valid() bool {
	return !p.Timestamp.IsZero()
}

// pingRecord is the wire form of a ping. lat/lon/tst are pointers so that
// missing fields can be told apart from zero values.
type pingRecord struct {
	Lat *float64        `json:"lat"`
	Lon *float64        `json:"lon"`
	Tst json.RawMessage `json:"tst"`
	Alt *float64        `json:"alt"`
	Vel *float64        `json:"vel"`
	Acc *float64        `json:"acc"`
}

// UnmarshalJSON decodes a ping record. The tst field accepts Unix seconds
// (integer or float) or an ISO-8601 / RFC3339 string.
func (p *Ping) UnmarshalJSON(data []byte) error {
	var rec pingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	if rec.Lat == nil || rec.Lon == nil || len(rec.Tst) == 0 {
		return fmt.Errorf("ping record missing lat/lon/tst")
	}

	ts, err := parseTimestamp(rec.Tst)
	if err != nil {
		return fmt.Errorf("failed to parse ping timestamp: %w", err)
	}

	p.Lat = *rec.Lat
	p.Lon = *rec.Lon
	p.Timestamp = ts
	p.Altitude = rec.Alt
	p.Velocity = rec.Vel
	p.Accuracy = rec.Acc
	return nil
}

// parseTimestamp parses a tst value as Unix seconds or a timestamp string
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	var secs float64
	if err := json.Unmarshal(raw, &secs); err == nil {
		sec := int64(secs)
		nsec := int64((secs - float64(sec)) * 1e9)
		return time.Unix(sec, nsec).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("tst is neither a number nor a string")
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// DecodePings decodes a JSON array of ping records, dropping records that
// are missing coordinates or a timestamp. The caller logs the aggregate
// dropped count if it cares.
func DecodePings(data []byte) ([]Ping, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to decode ping array: %w", err)
	}

	pings := make([]Ping, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		var p Ping
		if err := json.Unmarshal(item, &p); err != nil {
			dropped++
			continue
		}
		pings = append(pings, p)
	}
	return pings, dropped, nil
}
