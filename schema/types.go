package schema

import "github.com/anirudhraja/quickwire/wire"

// ProtoFile represents a single .proto file
type ProtoFile struct {
	Name     string     `json:"name"`     // file.proto
	Path     string     `json:"path"`     // path the file was loaded from
	Package  string     `json:"package"`  // package name
	Syntax   string     `json:"syntax"`   // proto2 or proto3
	Imports  []string   `json:"imports"`  // imported files, as written
	Messages []*Message `json:"messages"` // message definitions
	Enums    []*Enum    `json:"enums"`    // enum definitions
}

// Message represents a protobuf message definition
type Message struct {
	Name        string     `json:"name"`         // "User"
	FullName    string     `json:"full_name"`    // "pkg.Outer.User"
	Fields      []*Field   `json:"fields"`       // message fields, in declaration order
	NestedTypes []*Message `json:"nested_types"` // nested messages
	NestedEnums []*Enum    `json:"nested_enums"` // nested enums
	OneofGroups []*Oneof   `json:"oneof_groups"` // oneof groups
	MapEntry    bool       `json:"map_entry"`    // is this a map entry?
}

// FieldByNumber returns the field declared with num, or nil.
func (m *Message) FieldByNumber(num int32) *Field {
	for _, f := range m.Fields {
		if f.Number == num {
			return f
		}
	}
	return nil
}

// FieldByName returns the field declared with name, or nil.
func (m *Message) FieldByName(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Field represents a message field
type Field struct {
	Name       string     `json:"name"`        // "user_name"
	Number     int32      `json:"number"`      // 1
	Label      FieldLabel `json:"label"`       // optional, required, repeated
	Type       FieldType  `json:"type"`        // field type information
	Packed     bool       `json:"packed"`      // repeated scalar encoded as one length-delimited run
	OneofIndex int32      `json:"oneof_index"` // oneof group index (-1 if not in oneof)
}

// Tag returns the tag this field is written with. Packed repeated scalars,
// maps and every length-delimited kind use wire.WireBytes.
func (f *Field) Tag() wire.Tag {
	if f.Label == LabelRepeated && f.Packed {
		return wire.MakeTag(wire.FieldNumber(f.Number), wire.WireBytes)
	}
	return wire.MakeTag(wire.FieldNumber(f.Number), f.Type.WireType())
}

// Oneof represents a oneof group
type Oneof struct {
	Name   string   `json:"name"`   // "user_info"
	Fields []*Field `json:"fields"` // fields in this oneof
}

// FieldLabel represents field labels
type FieldLabel string

const (
	LabelOptional FieldLabel = "optional"
	LabelRequired FieldLabel = "required"
	LabelRepeated FieldLabel = "repeated"
)

// FieldType represents field type information
type FieldType struct {
	Kind          TypeKind      `json:"kind"`                     // primitive, message, enum, map, wrapper
	PrimitiveType PrimitiveType `json:"primitive_type,omitempty"` // for primitive types
	MessageType   string        `json:"message_type,omitempty"`   // for message types: "User", "google.protobuf.Timestamp"
	EnumType      string        `json:"enum_type,omitempty"`      // for enum types
	WrapperType   WrapperType   `json:"wrapper_type,omitempty"`   // for wrapper types
	MapKey        *FieldType    `json:"map_key,omitempty"`        // for map key type
	MapValue      *FieldType    `json:"map_value,omitempty"`      // for map value type
}

// WireType returns the framing of one value of this type.
func (t FieldType) WireType() wire.WireType {
	switch t.Kind {
	case KindPrimitive:
		return t.PrimitiveType.WireType()
	case KindEnum:
		return wire.WireVarint
	default:
		return wire.WireBytes
	}
}

// TypeKind represents the kind of field type
type TypeKind string

const (
	KindPrimitive TypeKind = "primitive"
	KindMessage   TypeKind = "message"
	KindEnum      TypeKind = "enum"
	KindMap       TypeKind = "map"
	KindWrapper   TypeKind = "wrapper"
)

// PrimitiveType represents protobuf primitive types
type PrimitiveType string

const (
	TypeDouble   PrimitiveType = "double"
	TypeFloat    PrimitiveType = "float"
	TypeInt64    PrimitiveType = "int64"
	TypeUint64   PrimitiveType = "uint64"
	TypeInt32    PrimitiveType = "int32"
	TypeFixed64  PrimitiveType = "fixed64"
	TypeFixed32  PrimitiveType = "fixed32"
	TypeBool     PrimitiveType = "bool"
	TypeString   PrimitiveType = "string"
	TypeBytes    PrimitiveType = "bytes"
	TypeUint32   PrimitiveType = "uint32"
	TypeSfixed32 PrimitiveType = "sfixed32"
	TypeSfixed64 PrimitiveType = "sfixed64"
	TypeSint32   PrimitiveType = "sint32"
	TypeSint64   PrimitiveType = "sint64"
)

var primitiveWireTypes = map[PrimitiveType]wire.WireType{
	TypeDouble:   wire.WireFixed64,
	TypeFloat:    wire.WireFixed32,
	TypeInt64:    wire.WireVarint,
	TypeUint64:   wire.WireVarint,
	TypeInt32:    wire.WireVarint,
	TypeFixed64:  wire.WireFixed64,
	TypeFixed32:  wire.WireFixed32,
	TypeBool:     wire.WireVarint,
	TypeString:   wire.WireBytes,
	TypeBytes:    wire.WireBytes,
	TypeUint32:   wire.WireVarint,
	TypeSfixed32: wire.WireFixed32,
	TypeSfixed64: wire.WireFixed64,
	TypeSint32:   wire.WireVarint,
	TypeSint64:   wire.WireVarint,
}

// ParsePrimitiveType maps a scalar type name from a .proto file.
func ParsePrimitiveType(name string) (PrimitiveType, bool) {
	t := PrimitiveType(name)
	_, ok := primitiveWireTypes[t]
	return t, ok
}

// WireType returns the framing of the primitive.
func (t PrimitiveType) WireType() wire.WireType {
	if wt, ok := primitiveWireTypes[t]; ok {
		return wt
	}
	return wire.WireBytes
}

// IsPackedType checks and returns if the Primitive type is packed for repeated label
func IsPackedType(t PrimitiveType) bool {
	wt, ok := primitiveWireTypes[t]
	return ok && wt != wire.WireBytes
}

// WrapperType represents protobuf wrapper types
type WrapperType string

const (
	WrapperDoubleValue WrapperType = "google.protobuf.DoubleValue"
	WrapperFloatValue  WrapperType = "google.protobuf.FloatValue"
	WrapperInt64Value  WrapperType = "google.protobuf.Int64Value"
	WrapperUInt64Value WrapperType = "google.protobuf.UInt64Value"
	WrapperInt32Value  WrapperType = "google.protobuf.Int32Value"
	WrapperUInt32Value WrapperType = "google.protobuf.UInt32Value"
	WrapperBoolValue   WrapperType = "google.protobuf.BoolValue"
	WrapperStringValue WrapperType = "google.protobuf.StringValue"
	WrapperBytesValue  WrapperType = "google.protobuf.BytesValue"
)

var wrapperTypes = map[WrapperType]struct{}{
	WrapperDoubleValue: {},
	WrapperFloatValue:  {},
	WrapperInt64Value:  {},
	WrapperUInt64Value: {},
	WrapperInt32Value:  {},
	WrapperUInt32Value: {},
	WrapperBoolValue:   {},
	WrapperStringValue: {},
	WrapperBytesValue:  {},
}

// ParseWrapperType reports whether name is one of the well-known wrappers.
func ParseWrapperType(name string) (WrapperType, bool) {
	t := WrapperType(name)
	_, ok := wrapperTypes[t]
	return t, ok
}

// Enum represents an enum definition
type Enum struct {
	Name       string       `json:"name"`        // "Status"
	FullName   string       `json:"full_name"`   // "pkg.Status"
	Values     []*EnumValue `json:"values"`      // enum values
	AllowAlias bool         `json:"allow_alias"` // allow_alias option
}

// EnumValue represents an enum value
type EnumValue struct {
	Name   string `json:"name"`   // "ACTIVE"
	Number int32  `json:"number"` // 1
}
