package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/anirudhraja/quickwire/schema"
	"github.com/puzpuzpuz/xsync/v4"
	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"
)

// Registry allows us to store the schema of the protobuf messages. Record
// fixtures and tests look messages up here to check field numbers and wire
// types, and to build descriptors for cross-checking against the protobuf
// runtime.
//
// Lookups are safe for concurrent use; LoadSchema calls are serialised by
// the caller.
type Registry struct {
	// ProtoDirectories are searched, in order, for the files passed to
	// LoadSchema and for their imports.
	ProtoDirectories []string

	parsedProtoBody *xsync.Map[string, *protoparserparser.Proto] // file path -> parsed AST
	protoEntities   *xsync.Map[string, *protoFileEntity]        // file path -> imports
	files           *xsync.Map[string, *schema.ProtoFile]       // file path -> converted file
	messages        *xsync.Map[string, *schema.Message]         // fully qualified name -> message
	enums           *xsync.Map[string, *schema.Enum]            // fully qualified name -> enum
}

type protoFileEntity struct {
	imports []string
}

// NewRegistry creates an empty registry resolving files against dirs. With
// no dirs, paths are used as given.
func NewRegistry(dirs ...string) *Registry {
	if len(dirs) == 0 {
		dirs = []string{""}
	}
	return &Registry{
		ProtoDirectories: dirs,
		parsedProtoBody:  xsync.NewMap[string, *protoparserparser.Proto](),
		protoEntities:    xsync.NewMap[string, *protoFileEntity](),
		files:            xsync.NewMap[string, *schema.ProtoFile](),
		messages:         xsync.NewMap[string, *schema.Message](),
		enums:            xsync.NewMap[string, *schema.Enum](),
	}
}

// LoadSchema parses protoFile and, transitively, everything it imports, then
// resolves every field type. Files already loaded are not parsed again.
// Imports of google/protobuf files are not followed; the well-known wrapper
// types are recognised by name.
func (r *Registry) LoadSchema(protoFile string) error {
	paths, err := r.getAllProtoInfo(protoFile)
	if err != nil {
		return err
	}

	var loaded []*schema.ProtoFile
	for _, path := range paths {
		if _, ok := r.files.Load(path); ok {
			continue
		}
		parsed, _ := r.parsedProtoBody.Load(path)
		pf, err := buildProtoFile(path, parsed)
		if err != nil {
			return fmt.Errorf("failed to load proto file %s: %w", path, err)
		}
		r.registerNames(pf)
		r.files.Store(path, pf)
		loaded = append(loaded, pf)
	}

	// Pass 2 runs once every name from every file is known.
	entities := r.allEntities()
	for _, pf := range loaded {
		for _, msg := range pf.Messages {
			if err := r.resolveMessage(msg, entities); err != nil {
				return fmt.Errorf("failed to resolve %s: %w", pf.Name, err)
			}
		}
	}
	return nil
}

// registerNames registers all message and enum names of a file.
func (r *Registry) registerNames(pf *schema.ProtoFile) {
	for _, msg := range pf.Messages {
		r.registerMessage(msg)
	}
	for _, enum := range pf.Enums {
		r.enums.Store(enum.FullName, enum)
	}
}

func (r *Registry) registerMessage(msg *schema.Message) {
	r.messages.Store(msg.FullName, msg)
	for _, nested := range msg.NestedTypes {
		r.registerMessage(nested)
	}
	for _, enum := range msg.NestedEnums {
		r.enums.Store(enum.FullName, enum)
	}
}

func (r *Registry) allEntities() map[string]struct{} {
	entities := make(map[string]struct{}, r.messages.Size()+r.enums.Size())
	r.messages.Range(func(name string, _ *schema.Message) bool {
		entities[name] = struct{}{}
		return true
	})
	r.enums.Range(func(name string, _ *schema.Enum) bool {
		entities[name] = struct{}{}
		return true
	})
	return entities
}

// resolveMessage turns every named field type of msg into a fully qualified
// message or enum reference.
func (r *Registry) resolveMessage(msg *schema.Message, entities map[string]struct{}) error {
	for _, f := range msg.Fields {
		t := &f.Type
		if t.Kind == schema.KindMap {
			t = t.MapValue
		}
		if err := r.resolveType(t, msg.FullName, entities); err != nil {
			return fmt.Errorf("field %s.%s: %w", msg.FullName, f.Name, err)
		}
	}
	for _, nested := range msg.NestedTypes {
		if err := r.resolveMessage(nested, entities); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) resolveType(t *schema.FieldType, scope string, entities map[string]struct{}) error {
	if t.Kind != schema.KindMessage {
		return nil
	}
	if wkt := strings.TrimPrefix(t.MessageType, "."); strings.HasPrefix(wkt, "google.protobuf.") {
		t.MessageType = wkt
		return nil
	}
	name, err := getReferencedType(t.MessageType, scope, entities)
	if err != nil {
		return err
	}
	if _, ok := r.enums.Load(name); ok {
		t.Kind = schema.KindEnum
		t.EnumType = name
		t.MessageType = ""
		return nil
	}
	t.MessageType = name
	return nil
}

func getFullName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// GetMessage retrieves a message definition by fully qualified name, or by
// a name unique up to its package prefix.
func (r *Registry) GetMessage(name string) (*schema.Message, error) {
	if msg, exists := r.messages.Load(name); exists {
		return msg, nil
	}

	var found *schema.Message
	r.messages.Range(func(fullName string, msg *schema.Message) bool {
		if strings.HasSuffix(fullName, "."+name) {
			found = msg
			return false
		}
		return true
	})
	if found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("message not found: %s", name)
}

// GetEnum retrieves an enum definition by name
func (r *Registry) GetEnum(name string) (*schema.Enum, error) {
	if enum, exists := r.enums.Load(name); exists {
		return enum, nil
	}

	var found *schema.Enum
	r.enums.Range(func(fullName string, enum *schema.Enum) bool {
		if strings.HasSuffix(fullName, "."+name) {
			found = enum
			return false
		}
		return true
	})
	if found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("enum not found: %s", name)
}

// GetFile returns a loaded file by the path it was loaded from or by its base
// name.
func (r *Registry) GetFile(name string) (*schema.ProtoFile, error) {
	if pf, ok := r.files.Load(name); ok {
		return pf, nil
	}
	var found *schema.ProtoFile
	r.files.Range(func(_ string, pf *schema.ProtoFile) bool {
		if pf.Name == name {
			found = pf
			return false
		}
		return true
	})
	if found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// ListMessages returns all registered message names, sorted.
func (r *Registry) ListMessages() []string {
	names := make([]string, 0, r.messages.Size())
	r.messages.Range(func(name string, _ *schema.Message) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// ListEnums returns all registered enum names, sorted.
func (r *Registry) ListEnums() []string {
	names := make([]string, 0, r.enums.Size())
	r.enums.Range(func(name string, _ *schema.Enum) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// GetOrCreateMapEntryMessage returns the synthetic entry message of a map
// field, registering it under the parent message on first use.
func (r *Registry) GetOrCreateMapEntryMessage(parent *schema.Message, field *schema.Field) (*schema.Message, error) {
	if field.Type.Kind != schema.KindMap {
		return nil, fmt.Errorf("field %s is not a map", field.Name)
	}
	entryTypeName := mapEntryName(field.Name)
	fullName := getFullName(parent.FullName, entryTypeName)

	if msg, ok := r.messages.Load(fullName); ok {
		return msg, nil
	}
	mapEntryMessage, _ := r.messages.LoadOrStore(fullName, &schema.Message{
		Name:     entryTypeName,
		FullName: fullName,
		MapEntry: true,
		Fields: []*schema.Field{
			{Name: "key", Number: 1, Label: schema.LabelOptional, Type: *field.Type.MapKey, OneofIndex: -1},
			{Name: "value", Number: 2, Label: schema.LabelOptional, Type: *field.Type.MapValue, OneofIndex: -1},
		},
	})
	return mapEntryMessage, nil
}

// mapEntryName is the CamelCase entry message name protoc derives from a
// map field name: "my_map" becomes "MyMapEntry".
func mapEntryName(fieldName string) string {
	var b strings.Builder
	upperNext := true
	for _, c := range fieldName {
		switch {
		case c == '_':
			upperNext = true
		case upperNext && 'a' <= c && c <= 'z':
			b.WriteRune(c - 'a' + 'A')
			upperNext = false
		default:
			b.WriteRune(c)
			upperNext = false
		}
	}
	b.WriteString("Entry")
	return b.String()
}
