// README: Built-in Lagos zone seeds and the optional YAML seed file loader.
package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lagosride/internal/types"
)

func pt(lat, lng float64) *types.Point { return &types.Point{Lat: lat, Lng: lng} }

// DefaultSeeds is the Lagos launch catalogue: starting demand/supply per zone.
func DefaultSeeds() []ZoneSeed {
	return []ZoneSeed{
		{Name: "Ikeja", Demand: 25, Supply: 20, Center: pt(6.6018, 3.3515)},
		{Name: "Lekki", Demand: 40, Supply: 15, Center: pt(6.4478, 3.4723)},
		{Name: "Victoria Island", Demand: 50, Supply: 18, Center: pt(6.4281, 3.4219)},
		{Name: "Surulere", Demand: 20, Supply: 22, Center: pt(6.4969, 3.3540)},
		{Name: "Yaba", Demand: 30, Supply: 25, Center: pt(6.5095, 3.3711)},
		{Name: "Apapa", Demand: 15, Supply: 10, Center: pt(6.4489, 3.3590)},
		{Name: "Ikorodu", Demand: 10, Supply: 15, Center: pt(6.6194, 3.5105)},
		{Name: "Ajah", Demand: 35, Supply: 12, Center: pt(6.4667, 3.5667)},
		{Name: "Maryland", Demand: 18, Supply: 16, Center: pt(6.5710, 3.3650)},
		{Name: "Festac", Demand: 12, Supply: 14, Center: pt(6.4667, 3.2833)},
	}
}

type seedFile struct {
	Zones []ZoneSeed `yaml:"zones"`
}

// LoadSeedFile reads a YAML document of the form:
//
//	zones:
//	  - name: Ikeja
//	    demand: 25
//	    supply: 20
//	    center: {lat: 6.60, lng: 3.35}
func LoadSeedFile(path string) ([]ZoneSeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone seeds: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse zone seeds %s: %w", path, err)
	}
	if len(f.Zones) == 0 {
		return nil, fmt.Errorf("%w: %s lists no zones", ErrInvalidSeed, path)
	}
	return f.Zones, nil
}

// Seeds resolves the configured seed source.
func Seeds(path string) ([]ZoneSeed, error) {
	if path == "" {
		return DefaultSeeds(), nil
	}
	return LoadSeedFile(path)
}
