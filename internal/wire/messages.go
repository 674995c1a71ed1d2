// Package wire defines the AvailabilityService messages and their
// protowire encoding. Messages are hand-coded rather than generated;
// field numbers are part of the browser client's contract and must not
// be reused.
package wire

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var errParse = errors.New("wire: malformed message")

type RegisterRequest struct {
	Email    string // 1
	Password string // 2
	Name     string // 3
}

type RegisterResponse struct {
	UserId string // 1
	Token  string // 2
}

type LoginRequest struct {
	Email    string // 1
	Password string // 2
}

type LoginResponse struct {
	Token  string // 1
	UserId string // 2
	Name   string // 3
}

// Month is the zero-based month index the calendar client sends;
// out-of-range values roll over like native date arithmetic.
type GetUnavailabilityForMonthRequest struct {
	Year  int32 // 1
	Month int32 // 2
}

type UnavailabilityRecord struct {
	Id          string                 // 1
	UserId      string                 // 2
	Date        string                 // 3, YYYY-MM-DD
	DisplayName string                 // 4
	Unavailable bool                   // 5
	CreatedAt   *timestamppb.Timestamp // 6
}

type GetUnavailabilityForMonthResponse struct {
	Records []*UnavailabilityRecord // 1
}

type GetCurrentUserUnavailabilityRequest struct {
	Year  int32 // 1
	Month int32 // 2
}

type GetCurrentUserUnavailabilityResponse struct {
	Dates []string // 1
}

type ToggleUnavailabilityRequest struct {
	Date string // 1, YYYY-MM-DD
}

type ToggleUnavailabilityResponse struct {
	Unavailable bool // 1
}

// ----- encoding -----

func appendString(out []byte, num protowire.Number, s string) []byte {
	out = protowire.AppendTag(out, num, protowire.BytesType)
	return protowire.AppendString(out, s)
}

func appendBool(out []byte, num protowire.Number, v bool) []byte {
	out = protowire.AppendTag(out, num, protowire.VarintType)
	if v {
		return protowire.AppendVarint(out, 1)
	}
	return protowire.AppendVarint(out, 0)
}

func appendInt32(out []byte, num protowire.Number, v int32) []byte {
	out = protowire.AppendTag(out, num, protowire.VarintType)
	return protowire.AppendVarint(out, uint64(int64(v)))
}

func appendTimestamp(out []byte, num protowire.Number, ts *timestamppb.Timestamp) []byte {
	if ts == nil {
		return out
	}
	var inner []byte
	if ts.Seconds != 0 {
		inner = protowire.AppendTag(inner, 1, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(ts.Seconds))
	}
	if ts.Nanos != 0 {
		inner = protowire.AppendTag(inner, 2, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(ts.Nanos))
	}
	out = protowire.AppendTag(out, num, protowire.BytesType)
	return protowire.AppendBytes(out, inner)
}

func appendRecord(out []byte, num protowire.Number, r *UnavailabilityRecord) []byte {
	if r == nil {
		return out
	}
	var inner []byte
	inner = appendString(inner, 1, r.Id)
	inner = appendString(inner, 2, r.UserId)
	inner = appendString(inner, 3, r.Date)
	inner = appendString(inner, 4, r.DisplayName)
	inner = appendBool(inner, 5, r.Unavailable)
	inner = appendTimestamp(inner, 6, r.CreatedAt)
	out = protowire.AppendTag(out, num, protowire.BytesType)
	return protowire.AppendBytes(out, inner)
}

// ----- decoding -----

// fieldFn consumes the value of field num/typ from b and reports how many
// bytes it used, or a negative count on malformed input. Unknown fields
// are skipped so old clients stay compatible.
type fieldFn func(num protowire.Number, typ protowire.Type, b []byte) int

func walkFields(b []byte, f fieldFn) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errParse
		}
		b = b[n:]
		if n = f(num, typ, b); n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return errParse
		}
		b = b[n:]
	}
	return nil
}

func consumeString(b []byte, dst *string) int {
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		*dst = string(v)
	}
	return n
}

func consumeBool(b []byte, dst *bool) int {
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = v != 0
	}
	return n
}

func consumeInt32(b []byte, dst *int32) int {
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = int32(int64(v))
	}
	return n
}

func parseTimestamp(b []byte) (*timestamppb.Timestamp, error) {
	ts := &timestamppb.Timestamp{}
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 {
				ts.Seconds = int64(v)
			}
			return n
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 {
				ts.Nanos = int32(v)
			}
			return n
		}
		return 0
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func parseRecord(b []byte) (*UnavailabilityRecord, error) {
	r := &UnavailabilityRecord{}
	var inner error
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(b, &r.Id)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(b, &r.UserId)
		case num == 3 && typ == protowire.BytesType:
			return consumeString(b, &r.Date)
		case num == 4 && typ == protowire.BytesType:
			return consumeString(b, &r.DisplayName)
		case num == 5 && typ == protowire.VarintType:
			return consumeBool(b, &r.Unavailable)
		case num == 6 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n >= 0 {
				r.CreatedAt, inner = parseTimestamp(v)
			}
			return n
		}
		return 0
	})
	if err != nil {
		return nil, err
	}
	if inner != nil {
		return nil, inner
	}
	return r, nil
}
