package registry

import (
	"fmt"

	"github.com/anirudhraja/quickwire/schema"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

var primitiveDescriptorTypes = map[schema.PrimitiveType]descriptorpb.FieldDescriptorProto_Type{
	schema.TypeDouble:   descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	schema.TypeFloat:    descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
	schema.TypeInt64:    descriptorpb.FieldDescriptorProto_TYPE_INT64,
	schema.TypeUint64:   descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	schema.TypeInt32:    descriptorpb.FieldDescriptorProto_TYPE_INT32,
	schema.TypeFixed64:  descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
	schema.TypeFixed32:  descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
	schema.TypeBool:     descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	schema.TypeString:   descriptorpb.FieldDescriptorProto_TYPE_STRING,
	schema.TypeBytes:    descriptorpb.FieldDescriptorProto_TYPE_BYTES,
	schema.TypeUint32:   descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	schema.TypeSfixed32: descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
	schema.TypeSfixed64: descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
	schema.TypeSint32:   descriptorpb.FieldDescriptorProto_TYPE_SINT32,
	schema.TypeSint64:   descriptorpb.FieldDescriptorProto_TYPE_SINT64,
}

var labelDescriptors = map[schema.FieldLabel]descriptorpb.FieldDescriptorProto_Label{
	schema.LabelOptional: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL,
	schema.LabelRequired: descriptorpb.FieldDescriptorProto_LABEL_REQUIRED,
	schema.LabelRepeated: descriptorpb.FieldDescriptorProto_LABEL_REPEATED,
}

// FileDescriptor builds the descriptor of a loaded file, suitable for
// protodesc.NewFile. Imports become dependencies and must be resolvable by
// whatever resolver the caller passes there.
func (r *Registry) FileDescriptor(name string) (*descriptorpb.FileDescriptorProto, error) {
	pf, err := r.GetFile(name)
	if err != nil {
		return nil, err
	}

	fd := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(pf.Name),
		Dependency: pf.Imports,
		Syntax:     proto.String(pf.Syntax),
	}
	if pf.Package != "" {
		fd.Package = proto.String(pf.Package)
	}
	for _, msg := range pf.Messages {
		md, err := r.messageDescriptor(msg, pf.Syntax)
		if err != nil {
			return nil, err
		}
		fd.MessageType = append(fd.MessageType, md)
	}
	for _, enum := range pf.Enums {
		fd.EnumType = append(fd.EnumType, enumDescriptor(enum))
	}
	return fd, nil
}

func (r *Registry) messageDescriptor(msg *schema.Message, syntax string) (*descriptorpb.DescriptorProto, error) {
	md := &descriptorpb.DescriptorProto{Name: proto.String(msg.Name)}
	if msg.MapEntry {
		md.Options = &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)}
	}
	for _, group := range msg.OneofGroups {
		md.OneofDecl = append(md.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String(group.Name)})
	}

	for _, f := range msg.Fields {
		fdp, err := fieldDescriptor(f, syntax)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", msg.FullName, f.Name, err)
		}
		if f.Type.Kind == schema.KindMap {
			entry, err := r.GetOrCreateMapEntryMessage(msg, f)
			if err != nil {
				return nil, err
			}
			entryDesc, err := r.messageDescriptor(entry, syntax)
			if err != nil {
				return nil, err
			}
			md.NestedType = append(md.NestedType, entryDesc)
			fdp.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
			fdp.TypeName = proto.String("." + entry.FullName)
		}
		md.Field = append(md.Field, fdp)
	}

	for _, nested := range msg.NestedTypes {
		nd, err := r.messageDescriptor(nested, syntax)
		if err != nil {
			return nil, err
		}
		md.NestedType = append(md.NestedType, nd)
	}
	for _, enum := range msg.NestedEnums {
		md.EnumType = append(md.EnumType, enumDescriptor(enum))
	}
	return md, nil
}

func fieldDescriptor(f *schema.Field, syntax string) (*descriptorpb.FieldDescriptorProto, error) {
	fdp := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(f.Name),
		Number: proto.Int32(f.Number),
		Label:  labelDescriptors[f.Label].Enum(),
	}
	if f.OneofIndex >= 0 {
		fdp.OneofIndex = proto.Int32(f.OneofIndex)
	}

	switch f.Type.Kind {
	case schema.KindPrimitive:
		t, ok := primitiveDescriptorTypes[f.Type.PrimitiveType]
		if !ok {
			return nil, fmt.Errorf("unknown primitive type %q", f.Type.PrimitiveType)
		}
		fdp.Type = t.Enum()
	case schema.KindEnum:
		fdp.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
		fdp.TypeName = proto.String("." + f.Type.EnumType)
	case schema.KindMessage, schema.KindWrapper:
		fdp.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		fdp.TypeName = proto.String("." + f.Type.MessageType)
	case schema.KindMap:
		// filled in by the caller once the entry message exists
	default:
		return nil, fmt.Errorf("unknown type kind %q", f.Type.Kind)
	}

	// Only deviations from the syntax default are spelled out.
	if f.Label == schema.LabelRepeated && f.Type.Kind == schema.KindPrimitive && schema.IsPackedType(f.Type.PrimitiveType) {
		if defaultPacked := syntax == "proto3"; f.Packed != defaultPacked {
			fdp.Options = &descriptorpb.FieldOptions{Packed: proto.Bool(f.Packed)}
		}
	}
	return fdp, nil
}

func enumDescriptor(enum *schema.Enum) *descriptorpb.EnumDescriptorProto {
	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(enum.Name)}
	if enum.AllowAlias {
		ed.Options = &descriptorpb.EnumOptions{AllowAlias: proto.Bool(true)}
	}
	for _, v := range enum.Values {
		ed.Value = append(ed.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(v.Name),
			Number: proto.Int32(v.Number),
		})
	}
	return ed
}
