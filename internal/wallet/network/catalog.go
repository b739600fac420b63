package network

import (
	_ "embed"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/pkg/errors"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Catalog is the static description of supported networks and their derive schemes.
type Catalog struct {
	DefaultDeriveTypeVisibleNetworks []string             `toml:"default_derive_type_visible_networks"`
	Implementations                  []ImplementationSpec `toml:"implementations"`
	Networks                         []NetworkSpec        `toml:"networks"`
}

// ImplementationSpec lists the ordered derive schemes of one implementation.
type ImplementationSpec struct {
	Impl   string       `toml:"impl"`
	Derive []DeriveSpec `toml:"derive"`
}

// DeriveSpec is the flat TOML form of a derive.Entry.
type DeriveSpec struct {
	Type                     string `toml:"type"`
	Template                 string `toml:"template"`
	CoinName                 string `toml:"coin_name"`
	Label                    string `toml:"label"`
	NamePrefix               string `toml:"name_prefix"`
	AddressEncoding          string `toml:"address_encoding"`
	UseAddressEncodingDerive bool   `toml:"use_address_encoding_derive"`
	IDSuffix                 string `toml:"id_suffix"`
}

// NetworkSpec is the TOML form of a Network.
type NetworkSpec struct {
	ID                string `toml:"id"`
	Name              string `toml:"name"`
	Symbol            string `toml:"symbol"`
	Testnet           bool   `toml:"testnet"`
	BackendIndex      bool   `toml:"backend_index"`
	HardwareNetwork   string `toml:"hardware_network"`
	QRAccountEnabled  bool   `toml:"qr_account_enabled"`
	NFTEnabled        bool   `toml:"nft_enabled"`
	DefaultEnabled    bool   `toml:"default_enabled"`
	DefaultDeriveType string `toml:"default_derive_type"`
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog from path, falling back to the built-in one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read network catalog %q", path)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a TOML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if _, err := toml.Decode(string(data), &c); err != nil {
		return nil, errors.Wrap(err, "failed to decode network catalog")
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Catalog) validate() error {
	impls := make(map[string]bool, len(c.Implementations))
	for _, impl := range c.Implementations {
		if impl.Impl == "" {
			return errors.New("network catalog: implementation without name")
		}
		if len(impl.Derive) == 0 {
			return errors.Errorf("network catalog: implementation %q has no derive schemes", impl.Impl)
		}
		impls[impl.Impl] = true
	}

	seen := make(map[string]bool, len(c.Networks))
	for _, n := range c.Networks {
		impl, chainID := ParseNetworkID(n.ID)
		if impl == "" || chainID == "" {
			return errors.Errorf("network catalog: malformed network id %q", n.ID)
		}
		if seen[n.ID] {
			return errors.Errorf("network catalog: duplicate network id %q", n.ID)
		}
		seen[n.ID] = true

		if impl != ImplAllNetworks && !impls[impl] {
			return errors.Errorf("network catalog: network %q references unknown implementation %q", n.ID, impl)
		}
	}

	return nil
}

// DeriveTable converts the derive schemes of impl into a derive.Table.
func (c *Catalog) DeriveTable(impl string) (derive.Table, bool) {
	idx := slices.IndexFunc(c.Implementations, func(s ImplementationSpec) bool { return s.Impl == impl })
	if idx < 0 {
		return nil, false
	}

	specs := c.Implementations[idx].Derive
	table := make(derive.Table, 0, len(specs))
	for _, s := range specs {
		table = append(table, derive.Entry{
			Type: derive.Type(s.Type),
			Info: derive.Info{
				Template:                 s.Template,
				CoinName:                 s.CoinName,
				Label:                    s.Label,
				NamePrefix:               s.NamePrefix,
				AddressEncoding:          s.AddressEncoding,
				UseAddressEncodingDerive: s.UseAddressEncodingDerive,
				IDSuffix:                 s.IDSuffix,
			},
		})
	}

	return table, true
}

func (s NetworkSpec) toNetwork() *Network {
	impl, chainID := ParseNetworkID(s.ID)
	deriveType := derive.Type(s.DefaultDeriveType)
	if deriveType == "" {
		deriveType = derive.TypeDefault
	}

	return &Network{
		ID:                s.ID,
		Impl:              impl,
		Name:              s.Name,
		Symbol:            s.Symbol,
		ChainID:           chainID,
		IsTestnet:         s.Testnet,
		BackendIndex:      s.BackendIndex,
		HardwareNetwork:   s.HardwareNetwork,
		QRAccountEnabled:  s.QRAccountEnabled,
		NFTEnabled:        s.NFTEnabled,
		DefaultEnabled:    s.DefaultEnabled,
		DefaultDeriveType: deriveType,
	}
}
