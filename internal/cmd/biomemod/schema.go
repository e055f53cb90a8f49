package biomemod

import (
	"flag"
	"fmt"
	"io"
	"os"

	platformcmd "github.com/louisbranch/biomemod/internal/platform/cmd"
	"github.com/louisbranch/biomemod/internal/world/worldfile"
)

// SchemaConfig holds schema command configuration.
type SchemaConfig struct {
	Output string `env:"SCHEMA_OUTPUT"`
}

// ParseSchemaConfig loads env defaults and then flags.
func ParseSchemaConfig(fs *flag.FlagSet, args []string) (SchemaConfig, error) {
	var cfg SchemaConfig
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return SchemaConfig{}, err
	}
	fs.StringVar(&cfg.Output, "out", cfg.Output, "write the schema here instead of stdout")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return SchemaConfig{}, err
	}
	return cfg, nil
}

// Schema writes the world file JSON schema.
func Schema(cfg SchemaConfig, out io.Writer) error {
	data, err := worldfile.MarshalSchema()
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}
