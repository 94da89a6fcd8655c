package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"barliman/internal/domain"
)

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Stock int    `yaml:"stock"`
}

// LoadSeed registers the products from a YAML seed file. Used when no
// database is configured.
func LoadSeed(svc *Service, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}

	for _, sp := range seed.Products {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return fmt.Errorf("parsing price for %s: %w", sp.Code, err)
		}

		err = svc.Register(domain.Product{
			Code:  sp.Code,
			Name:  sp.Name,
			Price: price,
			Stock: sp.Stock,
		})
		if err != nil {
			return fmt.Errorf("registering %s: %w", sp.Code, err)
		}
	}

	return nil
}
