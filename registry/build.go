package registry

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/anirudhraja/quickwire/schema"
	"github.com/anirudhraja/quickwire/wire"
	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"
)

// buildProtoFile converts a parsed .proto file into the schema model. Named
// field types are left as unresolved message references for resolveMessage.
func buildProtoFile(filePath string, parsed *protoparserparser.Proto) (*schema.ProtoFile, error) {
	if parsed == nil {
		return nil, fmt.Errorf("file %s was not parsed", filePath)
	}
	pf := &schema.ProtoFile{
		Name:   path.Base(filePath),
		Path:   filePath,
		Syntax: "proto2", // protoc's default when no syntax statement is present
	}
	if parsed.Syntax != nil && parsed.Syntax.ProtobufVersion != "" {
		pf.Syntax = parsed.Syntax.ProtobufVersion
	}

	// the package statement may follow messages, so find it first
	for _, body := range parsed.ProtoBody {
		if pkg, ok := body.(*protoparserparser.Package); ok {
			pf.Package = pkg.Name
		}
	}

	for _, body := range parsed.ProtoBody {
		switch b := body.(type) {
		case *protoparserparser.Import:
			pf.Imports = append(pf.Imports, strings.Trim(b.Location, `"`))
		case *protoparserparser.Message:
			msg, err := buildMessage(b, pf.Package, pf.Syntax)
			if err != nil {
				return nil, err
			}
			pf.Messages = append(pf.Messages, msg)
		case *protoparserparser.Enum:
			pf.Enums = append(pf.Enums, buildEnum(b, pf.Package))
		}
	}
	return pf, nil
}

func buildMessage(m *protoparserparser.Message, scope, syntax string) (*schema.Message, error) {
	msg := &schema.Message{
		Name:     m.MessageName,
		FullName: getFullName(scope, m.MessageName),
	}

	for _, body := range m.MessageBody {
		switch b := body.(type) {
		case *protoparserparser.Field:
			label := schema.LabelOptional
			switch {
			case b.IsRepeated:
				label = schema.LabelRepeated
			case b.IsRequired:
				label = schema.LabelRequired
			}
			f, err := buildField(b.FieldName, b.FieldNumber, b.Type, label)
			if err != nil {
				return nil, fmt.Errorf("message %s: %w", msg.FullName, err)
			}
			f.Packed = isPacked(f, syntax, b.FieldOptions)
			msg.Fields = append(msg.Fields, f)
		case *protoparserparser.MapField:
			f, err := buildField(b.MapName, b.FieldNumber, b.Type, schema.LabelRepeated)
			if err != nil {
				return nil, fmt.Errorf("message %s: %w", msg.FullName, err)
			}
			key, ok := schema.ParsePrimitiveType(b.KeyType)
			if !ok || key == schema.TypeDouble || key == schema.TypeFloat || key == schema.TypeBytes {
				return nil, fmt.Errorf("message %s: invalid map key type %s", msg.FullName, b.KeyType)
			}
			value := f.Type
			f.Type = schema.FieldType{
				Kind:     schema.KindMap,
				MapKey:   &schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: key},
				MapValue: &value,
			}
			msg.Fields = append(msg.Fields, f)
		case *protoparserparser.Oneof:
			group := &schema.Oneof{Name: b.OneofName}
			index := int32(len(msg.OneofGroups))
			for _, of := range b.OneofFields {
				f, err := buildField(of.FieldName, of.FieldNumber, of.Type, schema.LabelOptional)
				if err != nil {
					return nil, fmt.Errorf("message %s: %w", msg.FullName, err)
				}
				f.OneofIndex = index
				group.Fields = append(group.Fields, f)
				msg.Fields = append(msg.Fields, f)
			}
			msg.OneofGroups = append(msg.OneofGroups, group)
		case *protoparserparser.Message:
			nested, err := buildMessage(b, msg.FullName, syntax)
			if err != nil {
				return nil, err
			}
			msg.NestedTypes = append(msg.NestedTypes, nested)
		case *protoparserparser.Enum:
			msg.NestedEnums = append(msg.NestedEnums, buildEnum(b, msg.FullName))
		}
	}
	return msg, nil
}

func buildField(name, number, typeName string, label schema.FieldLabel) (*schema.Field, error) {
	num, err := strconv.ParseInt(number, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("field %s: invalid number %q", name, number)
	}
	if !wire.FieldNumber(num).Valid() {
		return nil, fmt.Errorf("field %s: number %d out of range", name, num)
	}
	return &schema.Field{
		Name:       name,
		Number:     int32(num),
		Label:      label,
		Type:       parseFieldType(typeName),
		OneofIndex: -1,
	}, nil
}

func parseFieldType(typeName string) schema.FieldType {
	if p, ok := schema.ParsePrimitiveType(typeName); ok {
		return schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: p}
	}
	if w, ok := schema.ParseWrapperType(strings.TrimPrefix(typeName, ".")); ok {
		return schema.FieldType{Kind: schema.KindWrapper, WrapperType: w, MessageType: string(w)}
	}
	return schema.FieldType{Kind: schema.KindMessage, MessageType: typeName}
}

// isPacked applies the default for the file's syntax (packed in proto3, not
// in proto2) unless the field carries an explicit packed option.
func isPacked(f *schema.Field, syntax string, options []*protoparserparser.FieldOption) bool {
	if f.Label != schema.LabelRepeated || f.Type.Kind != schema.KindPrimitive || !schema.IsPackedType(f.Type.PrimitiveType) {
		return false
	}
	for _, opt := range options {
		if opt.OptionName == "packed" {
			return opt.Constant == "true"
		}
	}
	return syntax == "proto3"
}

func buildEnum(e *protoparserparser.Enum, scope string) *schema.Enum {
	enum := &schema.Enum{
		Name:     e.EnumName,
		FullName: getFullName(scope, e.EnumName),
	}
	for _, body := range e.EnumBody {
		switch b := body.(type) {
		case *protoparserparser.EnumField:
			num, err := strconv.ParseInt(b.Number, 0, 32)
			if err != nil {
				continue
			}
			enum.Values = append(enum.Values, &schema.EnumValue{Name: b.Ident, Number: int32(num)})
		case *protoparserparser.Option:
			if b.OptionName == "allow_alias" && b.Constant == "true" {
				enum.AllowAlias = true
			}
		}
	}
	return enum
}
