package derive

import (
	"strconv"
	"strings"
)

// Resolve maps a stored account's path template to its derive type.
//
// When the table derives by address encoding and the account id carries an encoding
// suffix (more than two "--" separated segments), an entry matching both the template
// and the id suffix wins over a plain template match. Accounts without a template, an
// empty table or no matching entry resolve to TypeDefault with no info.
func Resolve(accountID string, template string, table Table) (Type, *Info) {
	if template == "" || len(table) == 0 {
		return TypeDefault, nil
	}

	matchByEncoding := table[0].UseAddressEncodingDerive &&
		len(strings.Split(accountID, accountIDSeparator)) >= encodingPassMinSegs

	if matchByEncoding {
		for i := range table {
			e := &table[i]
			if e.Template == template && e.AddressEncoding != "" && strings.HasSuffix(accountID, e.AddressEncoding) {
				return e.Type, &e.Info
			}
		}
	}

	for i := range table {
		e := &table[i]
		if e.Template == template {
			return e.Type, &e.Info
		}
	}

	return TypeDefault, nil
}

// BuildPath replaces the index placeholder of template with index.
func BuildPath(template string, index int) string {
	return strings.Replace(template, IndexPlaceholder, strconv.Itoa(index), 1)
}

// SlicePathTemplate splits a template around its index placeholder, e.g.
// m/44'/60'/0'/0/$$INDEX$$ becomes m/44'/60'/0'/0 and {index}.
func SlicePathTemplate(template string) (prefix string, suffix string) {
	before, after, found := strings.Cut(template, IndexPlaceholder)
	if !found {
		return template, ""
	}

	return strings.TrimSuffix(before, "/"), "{index}" + after
}

// CoinType returns the coin type segment of a BIP44 style template, e.g. "60" for
// m/44'/60'/0'/0/$$INDEX$$.
func CoinType(template string) string {
	parts := strings.Split(template, "/")
	if len(parts) < 3 || parts[0] != "m" {
		return ""
	}

	return strings.TrimSuffix(parts[2], "'")
}
