package network

import "strings"

// Network implementations.
const (
	ImplEVM         = "evm"
	ImplBTC         = "btc"
	ImplTBTC        = "tbtc"
	ImplLTC         = "ltc"
	ImplDOGE        = "doge"
	ImplSOL         = "sol"
	ImplTRON        = "tron"
	ImplAllNetworks = "onekeyall"

	Separator = "--"
)

// AllNetworkID is the pseudo network that aggregates every other network.
const AllNetworkID = ImplAllNetworks + Separator + "0"

// ParseNetworkID splits "evm--1" into impl and chain id.
func ParseNetworkID(networkID string) (impl string, chainID string) {
	impl, chainID, _ = strings.Cut(networkID, Separator)
	return impl, chainID
}

// Impl returns the implementation of a network id.
func Impl(networkID string) string {
	impl, _ := ParseNetworkID(networkID)
	return impl
}

// ID builds a network id from impl and chain id.
func ID(impl string, chainID string) string {
	return impl + Separator + chainID
}

// IsAllNetwork reports whether networkID is the all-networks pseudo network.
func IsAllNetwork(networkID string) bool {
	return networkID != "" && networkID == AllNetworkID
}

// IsEVM reports whether networkID belongs to an EVM chain.
func IsEVM(networkID string) bool {
	return networkID != "" && Impl(networkID) == ImplEVM
}

// IsUTXO reports whether impl is a UTXO implementation.
func IsUTXO(impl string) bool {
	switch impl {
	case ImplBTC, ImplTBTC, ImplLTC, ImplDOGE:
		return true
	default:
		return false
	}
}
