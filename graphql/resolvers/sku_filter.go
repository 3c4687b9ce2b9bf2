package resolvers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	entity "qcube.GO/model/entity"
)

// SKUFilter is the decoded shape of the skus(filtro) JSON argument.
type SKUFilter struct {
	Q         string `mapstructure:"q"`
	Categoria string `mapstructure:"categoria"`
	Ubicacion string `mapstructure:"ubicacion"`
	BajoStock bool   `mapstructure:"bajoStock"`
}

// DecodeSKUFilter parses the filtro argument. Weak typing tolerates the
// usual JSON sloppiness ("1" for true, numbers for strings).
func DecodeSKUFilter(raw string) (*SKUFilter, error) {
	if strings.TrimSpace(raw) == "" {
		return &SKUFilter{}, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("filtro invalido: %w", err)
	}

	var f SKUFilter
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("filtro invalido: %w", err)
	}
	return &f, nil
}

// Apply filters the SKU collection in memory.
func (f *SKUFilter) Apply(skus []entity.SKU) []entity.SKU {
	var out []entity.SKU
	for _, s := range skus {
		if f.Q != "" {
			q := strings.ToLower(f.Q)
			if !strings.Contains(strings.ToLower(s.SKU), q) &&
				!strings.Contains(strings.ToLower(s.Nombre), q) &&
				!strings.Contains(strings.ToLower(s.Categoria), q) {
				continue
			}
		}
		if f.Categoria != "" && !strings.EqualFold(s.Categoria, f.Categoria) {
			continue
		}
		if f.Ubicacion != "" && !strings.EqualFold(s.Ubicacion, f.Ubicacion) {
			continue
		}
		if f.BajoStock && !s.LowStock() {
			continue
		}
		out = append(out, s)
	}
	return out
}
