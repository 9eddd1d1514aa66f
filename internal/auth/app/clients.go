package app

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"gopkg.in/yaml.v3"
)

//go:embed clients.dev.yaml
var devClients []byte

type clientsFile struct {
	Clients []domain.Client `yaml:"clients"`
}

// LoadClients reads client records from path, or the embedded development
// set when path is empty. Unknown keys are rejected so a typo in a field
// name does not silently drop a permission list.
func LoadClients(path string) ([]domain.Client, error) {
	raw := devClients
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read clients file: %w", err)
		}
		raw = b
	}
	return parseClients(raw)
}

func parseClients(raw []byte) ([]domain.Client, error) {
	var f clientsFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse clients: %w", err)
	}
	if len(f.Clients) == 0 {
		return nil, fmt.Errorf("no clients defined")
	}
	return f.Clients, nil
}
