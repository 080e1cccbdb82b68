package fixture

import (
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// Manifest records everything needed to regenerate and verify a fixture
// payload. It is stored as JSON next to the payload file.
type Manifest struct {
	Name       string `json:"name"`
	Algo       string `json:"algo"`
	Seed       uint64 `json:"seed"`
	Kind       string `json:"kind"`
	Length     int    `json:"length"`
	Codec      string `json:"codec"`
	RawSize    int    `json:"raw_size"`
	StoredSize int    `json:"stored_size"`
	Checksum   uint64 `json:"checksum"`
	Created    int64  `json:"created"`
}

// MarshalEasyJSON supports easyjson.Marshaler.
func (m Manifest) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawByte('{')
	out.RawString(`"name":`)
	out.String(m.Name)
	out.RawString(`,"algo":`)
	out.String(m.Algo)
	out.RawString(`,"seed":`)
	out.Uint64(m.Seed)
	out.RawString(`,"kind":`)
	out.String(m.Kind)
	out.RawString(`,"length":`)
	out.Int(m.Length)
	out.RawString(`,"codec":`)
	out.String(m.Codec)
	out.RawString(`,"raw_size":`)
	out.Int(m.RawSize)
	out.RawString(`,"stored_size":`)
	out.Int(m.StoredSize)
	out.RawString(`,"checksum":`)
	out.Uint64(m.Checksum)
	out.RawString(`,"created":`)
	out.Int64(m.Created)
	out.RawByte('}')
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler.
func (m *Manifest) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "name":
			m.Name = in.String()
		case "algo":
			m.Algo = in.String()
		case "seed":
			m.Seed = in.Uint64()
		case "kind":
			m.Kind = in.String()
		case "length":
			m.Length = in.Int()
		case "codec":
			m.Codec = in.String()
		case "raw_size":
			m.RawSize = in.Int()
		case "stored_size":
			m.StoredSize = in.Int()
		case "checksum":
			m.Checksum = in.Uint64()
		case "created":
			m.Created = in.Int64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// MarshalJSON supports json.Marshaler.
func (m Manifest) MarshalJSON() ([]byte, error) {
	var w jwriter.Writer
	m.MarshalEasyJSON(&w)
	return w.BuildBytes()
}

// UnmarshalJSON supports json.Unmarshaler.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	m.UnmarshalEasyJSON(&l)
	return l.Error()
}
