package store

import (
	"encoding/binary"

	"github.com/rebaselabs/go-rebase/common/types"
)

const (
	AccountKeyPrefix = byte(1)

	GlobalRateKeyPrefix = byte(2)

	SupplyKeyPrefix = byte(3)

	RateHistoryKeyPrefix = byte(4)

	GrantKeyPrefix = byte(5)

	OwnerKeyPrefix = byte(6)

	BaseBalanceKeyPrefix = byte(7)

	VaultAddressKeyPrefix = byte(8)
)

func CreateAccountKey(addr types.Address) []byte {
	key := make([]byte, 0, 1+types.AddressSize)
	key = append(key, AccountKeyPrefix)
	key = append(key, addr.Bytes()...)
	return key
}

func CreateGlobalRateKey() []byte {
	return []byte{GlobalRateKeyPrefix}
}

func CreateSupplyKey() []byte {
	return []byte{SupplyKeyPrefix}
}

func CreateRateHistoryKey(timestamp uint64) []byte {
	key := make([]byte, 0, 9)
	key = append(key, RateHistoryKeyPrefix)
	key = append(key, Uint64ToBytes(timestamp)...)
	return key
}

func CreateGrantKey(addr types.Address) []byte {
	key := make([]byte, 0, 1+types.AddressSize)
	key = append(key, GrantKeyPrefix)
	key = append(key, addr.Bytes()...)
	return key
}

func CreateOwnerKey() []byte {
	return []byte{OwnerKeyPrefix}
}

func CreateBaseBalanceKey(addr types.Address) []byte {
	key := make([]byte, 0, 1+types.AddressSize)
	key = append(key, BaseBalanceKeyPrefix)
	key = append(key, addr.Bytes()...)
	return key
}

func CreateVaultAddressKey() []byte {
	return []byte{VaultAddressKeyPrefix}
}

func Uint64ToBytes(value uint64) []byte {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, value)
	return bytes
}

func BytesToUint64(bytes []byte) uint64 {
	return binary.BigEndian.Uint64(bytes)
}
