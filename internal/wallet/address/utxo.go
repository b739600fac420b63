package address

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

var (
	litecoinParams = func() chaincfg.Params {
		p := chaincfg.MainNetParams
		p.Name = "litecoin"
		p.PubKeyHashAddrID = 0x30
		p.ScriptHashAddrID = 0x32
		p.Bech32HRPSegwit = "ltc"
		return p
	}()

	dogecoinParams = func() chaincfg.Params {
		p := chaincfg.MainNetParams
		p.Name = "dogecoin"
		p.PubKeyHashAddrID = 0x1e
		p.ScriptHashAddrID = 0x16
		return p
	}()
)

func utxoParams(impl string, isTestnet bool) (*chaincfg.Params, error) {
	switch impl {
	case network.ImplBTC:
		if isTestnet {
			return &chaincfg.TestNet3Params, nil
		}
		return &chaincfg.MainNetParams, nil
	case network.ImplTBTC:
		return &chaincfg.TestNet3Params, nil
	case network.ImplLTC:
		return &litecoinParams, nil
	case network.ImplDOGE:
		return &dogecoinParams, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedImpl, "impl %q", impl)
	}
}

// utxoAddress returns the first receive address (0/0) below an account level xpub.
func utxoAddress(impl string, isTestnet bool, xpub string, encoding string) (string, error) {
	params, err := utxoParams(impl, isTestnet)
	if err != nil {
		return "", err
	}

	key, err := bip32.B58Deserialize(xpub)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode xpub")
	}
	if key.IsPrivate {
		key = key.PublicKey()
	}

	for _, index := range []uint32{0, 0} {
		key, err = key.NewChildKey(index)
		if err != nil {
			return "", errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return encodeUTXOAddress(key.Key, encoding, params)
}

func encodeUTXOAddress(pub []byte, encoding string, params *chaincfg.Params) (string, error) {
	var (
		addr btcutil.Address
		err  error
	)

	switch encoding {
	case derive.EncodingP2PKH, "":
		addr, err = btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub), params)
	case derive.EncodingP2WPKH:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub), params)
	case derive.EncodingP2SHP2WPKH:
		witnessProgram := append([]byte{0x00, 0x14}, btcutil.Hash160(pub)...)
		addr, err = btcutil.NewAddressScriptHash(witnessProgram, params)
	case derive.EncodingP2TR:
		var internalKey *btcec.PublicKey
		internalKey, err = btcec.ParsePubKey(pub)
		if err != nil {
			return "", errors.Wrap(err, "failed to parse public key")
		}
		outputKey := txscript.ComputeTaprootKeyNoScript(internalKey)
		addr, err = btcutil.NewAddressTaproot(schnorr.SerializePubKey(outputKey), params)
	default:
		return "", errors.Errorf("unsupported address encoding %q", encoding)
	}

	if err != nil {
		return "", errors.Wrapf(err, "failed to encode %s address", encoding)
	}

	return addr.EncodeAddress(), nil
}
