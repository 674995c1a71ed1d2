package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Codec marshals the service's messages for the native gRPC port
// (installed with grpc.ForceServerCodec) and for the gRPC-Web bridge.
type Codec struct{}

func (Codec) Name() string { return "availwire" }

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *RegisterRequest:
		var out []byte
		out = appendString(out, 1, m.Email)
		out = appendString(out, 2, m.Password)
		out = appendString(out, 3, m.Name)
		return out, nil
	case *RegisterResponse:
		var out []byte
		out = appendString(out, 1, m.UserId)
		out = appendString(out, 2, m.Token)
		return out, nil
	case *LoginRequest:
		var out []byte
		out = appendString(out, 1, m.Email)
		out = appendString(out, 2, m.Password)
		return out, nil
	case *LoginResponse:
		var out []byte
		out = appendString(out, 1, m.Token)
		out = appendString(out, 2, m.UserId)
		out = appendString(out, 3, m.Name)
		return out, nil
	case *GetUnavailabilityForMonthRequest:
		var out []byte
		out = appendInt32(out, 1, m.Year)
		out = appendInt32(out, 2, m.Month)
		return out, nil
	case *GetUnavailabilityForMonthResponse:
		var out []byte
		for _, r := range m.Records {
			out = appendRecord(out, 1, r)
		}
		return out, nil
	case *GetCurrentUserUnavailabilityRequest:
		var out []byte
		out = appendInt32(out, 1, m.Year)
		out = appendInt32(out, 2, m.Month)
		return out, nil
	case *GetCurrentUserUnavailabilityResponse:
		var out []byte
		for _, d := range m.Dates {
			out = appendString(out, 1, d)
		}
		return out, nil
	case *ToggleUnavailabilityRequest:
		var out []byte
		out = appendString(out, 1, m.Date)
		return out, nil
	case *ToggleUnavailabilityResponse:
		return appendBool(nil, 1, m.Unavailable), nil
	}
	return nil, fmt.Errorf("wire: cannot marshal %T", v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case *RegisterRequest:
		return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			if typ != protowire.BytesType {
				return 0
			}
			switch num {
			case 1:
				return consumeString(b, &m.Email)
			case 2:
				return consumeString(b, &m.Password)
			case 3:
				return consumeString(b, &m.Name)
			}
			return 0
		})
	case *RegisterResponse:
		return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			if typ != protowire.BytesType {
				return 0
			}
			switch num {
			case 1:
				return consumeString(b, &m.UserId)
			case 2:
				return consumeString(b, &m.Token)
			}
			return 0
		})
	case *LoginRequest:
		return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			if typ != protowire.BytesType {
				return 0
			}
			switch num {
			case 1:
				return consumeString(b, &m.Email)
			case 2:
				return consumeString(b, &m.Password)
			}
			return 0
		})
	case *LoginResponse:
		return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			if typ != protowire.BytesType {
				return 0
			}
			switch num {
			case 1:
				return consumeString(b, &m.Token)
			case 2:
				return consumeString(b, &m.UserId)
			case 3:
				return consumeString(b, &m.Name)
			}
			return 0
		})
	case *GetUnavailabilityForMonthRequest:
		return unmarshalMonthRequest(data, &m.Year, &m.Month)
	case *GetCurrentUserUnavailabilityRequest:
		return unmarshalMonthRequest(data, &m.Year, &m.Month)
	case *GetUnavailabilityForMonthResponse:
		var inner error
		err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			if num == 1 && typ == protowire.BytesType {
				v, n := protowire.ConsumeBytes(b)
				if n >= 0 {
					r, err := parseRecord(v)
					if err != nil {
						inner = err
					} else {
						m.Records = append(m.Records, r)
					}
				}
				return n
			}
			return 0
		})
		if err != nil {
			return err
		}
		return inner
	case *GetCurrentUserUnavailabilityResponse:
		return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			if num == 1 && typ == protowire.BytesType {
				var d string
				n := consumeString(b, &d)
				if n >= 0 {
					m.Dates = append(m.Dates, d)
				}
				return n
			}
			return 0
		})
	case *ToggleUnavailabilityRequest:
		return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			if num == 1 && typ == protowire.BytesType {
				return consumeString(b, &m.Date)
			}
			return 0
		})
	case *ToggleUnavailabilityResponse:
		return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			if num == 1 && typ == protowire.VarintType {
				return consumeBool(b, &m.Unavailable)
			}
			return 0
		})
	}
	return fmt.Errorf("wire: cannot unmarshal %T", v)
}

func unmarshalMonthRequest(data []byte, year, month *int32) error {
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.VarintType {
			return 0
		}
		switch num {
		case 1:
			return consumeInt32(b, year)
		case 2:
			return consumeInt32(b, month)
		}
		return 0
	})
}
