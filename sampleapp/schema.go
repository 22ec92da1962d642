package main

import (
	"fmt"
	"path/filepath"

	"github.com/anirudhraja/quickwire/registry"
	"github.com/anirudhraja/quickwire/schema"
	"github.com/anirudhraja/quickwire/wire"
	"github.com/rs/zerolog"
)

// workloadMessages are the messages the sample workloads encode; each must
// exist in the schema passed with --proto.
var workloadMessages = []string{
	"Test1",
	"TestRepeatedBool",
	"TestRepeatedPackedInt32",
	"TestRepeatedMessages",
	"TestOptionalMessages",
	"TestStrings",
	"TestBytes",
	"PerftestData",
}

func loadRegistry(path string) (*registry.Registry, error) {
	reg := registry.NewRegistry(filepath.Dir(path))
	if err := reg.LoadSchema(filepath.Base(path)); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return reg, nil
}

func checkSchema(log zerolog.Logger, path string) error {
	reg, err := loadRegistry(path)
	if err != nil {
		return err
	}
	for _, name := range workloadMessages {
		msg, err := reg.GetMessage(name)
		if err != nil {
			return err
		}
		log.Debug().Str("message", msg.FullName).Int("fields", len(msg.Fields)).Msg("Schema message found")
	}
	log.Info().Str("proto", path).Int("messages", len(reg.ListMessages())).Msg("Schema loaded")
	return nil
}

func printSchema(log zerolog.Logger, path string) error {
	reg, err := loadRegistry(path)
	if err != nil {
		return err
	}
	for _, name := range reg.ListMessages() {
		msg, err := reg.GetMessage(name)
		if err != nil {
			return err
		}
		fmt.Printf("message %s\n", msg.FullName)
		for _, f := range msg.Fields {
			num, typ := wire.ParseTag(f.Tag())
			fmt.Printf("  %-28s %-9s %-24s #%-3d %-7s tag=0x%02x\n",
				f.Name, f.Label, typeName(f.Type), num, typ, uint64(f.Tag()))
		}
	}
	for _, name := range reg.ListEnums() {
		enum, err := reg.GetEnum(name)
		if err != nil {
			return err
		}
		fmt.Printf("enum %s (%d values)\n", enum.FullName, len(enum.Values))
	}
	log.Debug().Str("proto", path).Msg("Schema printed")
	return nil
}

func typeName(t schema.FieldType) string {
	switch t.Kind {
	case schema.KindPrimitive:
		return string(t.PrimitiveType)
	case schema.KindEnum:
		return t.EnumType
	case schema.KindMap:
		return fmt.Sprintf("map<%s,%s>", typeName(*t.MapKey), typeName(*t.MapValue))
	default:
		return t.MessageType
	}
}
