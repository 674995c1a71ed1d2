package wire

import (
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestCodecMonthResponseRoundTrip(t *testing.T) {
	var c Codec
	in := &GetUnavailabilityForMonthResponse{
		Records: []*UnavailabilityRecord{
			{
				Id:          "m1",
				UserId:      "u1",
				Date:        "2024-02-29",
				DisplayName: "Alice",
				Unavailable: true,
				CreatedAt:   timestamppb.New(time.Unix(1700000000, 500)),
			},
			{
				Id:          "m2",
				UserId:      "u2",
				Date:        "2024-02-01",
				DisplayName: "Unknown",
				Unavailable: true,
			},
		},
	}

	data, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := &GetUnavailabilityForMonthResponse{}
	if err := c.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out.Records))
	}
	r := out.Records[0]
	if r.Id != "m1" || r.UserId != "u1" || r.Date != "2024-02-29" || r.DisplayName != "Alice" || !r.Unavailable {
		t.Errorf("record mismatch: %+v", r)
	}
	if r.CreatedAt == nil || r.CreatedAt.Seconds != 1700000000 || r.CreatedAt.Nanos != 500 {
		t.Errorf("timestamp mismatch: %+v", r.CreatedAt)
	}
	if out.Records[1].CreatedAt != nil {
		t.Error("absent timestamp should stay nil")
	}
}

func TestCodecMonthRequestNegativeAndOverflowMonths(t *testing.T) {
	var c Codec
	for _, month := range []int32{-1, 0, 11, 12} {
		in := &GetUnavailabilityForMonthRequest{Year: 2024, Month: month}
		data, err := c.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		out := &GetUnavailabilityForMonthRequest{}
		if err := c.Unmarshal(data, out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.Year != 2024 || out.Month != month {
			t.Errorf("got (%d, %d), want (2024, %d)", out.Year, out.Month, month)
		}
	}
}

func TestCodecToggleRoundTrip(t *testing.T) {
	var c Codec

	data, err := c.Marshal(&ToggleUnavailabilityRequest{Date: "2024-03-15"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := &ToggleUnavailabilityRequest{}
	if err := c.Unmarshal(data, req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Date != "2024-03-15" {
		t.Errorf("date mismatch: %s", req.Date)
	}

	// false must survive the trip too — it means "now available"
	for _, v := range []bool{true, false} {
		data, _ := c.Marshal(&ToggleUnavailabilityResponse{Unavailable: v})
		resp := &ToggleUnavailabilityResponse{}
		if err := c.Unmarshal(data, resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Unavailable != v {
			t.Errorf("bool mismatch: got %v, want %v", resp.Unavailable, v)
		}
	}
}

func TestCodecSkipsUnknownFields(t *testing.T) {
	var out []byte
	out = protowire.AppendTag(out, 99, protowire.VarintType)
	out = protowire.AppendVarint(out, 7)
	out = appendString(out, 1, "2024-03-15")

	var c Codec
	req := &ToggleUnavailabilityRequest{}
	if err := c.Unmarshal(out, req); err != nil {
		t.Fatalf("unmarshal with unknown field: %v", err)
	}
	if req.Date != "2024-03-15" {
		t.Errorf("date mismatch: %s", req.Date)
	}
}

func TestCodecRejectsMalformedAndForeignTypes(t *testing.T) {
	var c Codec

	if err := c.Unmarshal([]byte{0xff, 0xff, 0xff}, &ToggleUnavailabilityRequest{}); err == nil {
		t.Error("expected error for truncated input")
	}
	if _, err := c.Marshal(struct{}{}); err == nil {
		t.Error("expected error for non-wire type")
	}
	if err := c.Unmarshal(nil, struct{}{}); err == nil {
		t.Error("expected error for non-wire type")
	}
}
