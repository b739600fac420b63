package derive

// Type names a derivation scheme available on a network implementation.
type Type string

const (
	TypeDefault    Type = "default"
	TypeBIP44      Type = "BIP44"
	TypeBIP49      Type = "BIP49"
	TypeBIP84      Type = "BIP84"
	TypeBIP86      Type = "BIP86"
	TypeLedgerLive Type = "ledgerLive"
)

// Address encodings used by UTXO chains to tell derive types apart.
const (
	EncodingP2PKH       = "P2PKH"
	EncodingP2SHP2WPKH  = "P2SH_P2WPKH"
	EncodingP2WPKH      = "P2WPKH"
	EncodingP2TR        = "P2TR"
	IndexPlaceholder    = "$$INDEX$$"
	accountIDSeparator  = "--"
	encodingPassMinSegs = 3
)

// Info describes one derivation scheme of an implementation.
type Info struct {
	Template                 string `json:"template" toml:"template"`
	CoinName                 string `json:"coinName,omitempty" toml:"coin_name"`
	Label                    string `json:"label,omitempty" toml:"label"`
	NamePrefix               string `json:"namePrefix,omitempty" toml:"name_prefix"`
	AddressEncoding          string `json:"addressEncoding,omitempty" toml:"address_encoding"`
	UseAddressEncodingDerive bool   `json:"useAddressEncodingDerive,omitempty" toml:"use_address_encoding_derive"`
	IDSuffix                 string `json:"idSuffix,omitempty" toml:"id_suffix"`
}

// Entry is a single named derivation scheme.
type Entry struct {
	Type Type `json:"type" toml:"type"`
	Info
}

// Table lists the derivation schemes of one implementation in declaration order.
// Order matters: the first entry is representative of the whole table and template
// lookups return the earliest match.
type Table []Entry

// Get returns the info registered for t.
func (tb Table) Get(t Type) (*Info, bool) {
	for i := range tb {
		if tb[i].Type == t {
			return &tb[i].Info, true
		}
	}

	return nil, false
}

// Types returns the derive types of the table in order.
func (tb Table) Types() []Type {
	res := make([]Type, 0, len(tb))
	for _, e := range tb {
		res = append(res, e.Type)
	}

	return res
}
