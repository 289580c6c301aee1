package types

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// An address renders as AddressPrefix, 40 hex digits of body and 10 hex
// digits of blake2b checksum over the body.
const (
	AddressPrefix       = "rbx_"
	AddressSize         = 20
	addressChecksumSize = 5
	addressPrefixLen    = len(AddressPrefix)
	hexAddressLength    = addressPrefixLen + 2*AddressSize + 2*addressChecksumSize
)

var ErrJsonNotString = errors.New("json value is not a string")

type Address [AddressSize]byte

var ZERO_ADDRESS = Address{}

func BytesToAddress(b []byte) (Address, error) {
	var a Address
	err := a.SetBytes(b)
	return a, err
}

func HexToAddress(hexStr string) (Address, error) {
	if !IsValidHexAddress(hexStr) {
		return Address{}, fmt.Errorf("invalid address %q", hexStr)
	}
	addr, _ := decodeBody(hexStr)
	return addr, nil
}

func IsValidHexAddress(hexStr string) bool {
	if len(hexStr) != hexAddressLength || !strings.HasPrefix(hexStr, AddressPrefix) {
		return false
	}
	body, err := decodeBody(hexStr)
	if err != nil {
		return false
	}
	sum, err := decodeChecksum(hexStr)
	if err != nil {
		return false
	}
	return bytes.Equal(checksum(body[:]), sum[:])
}

// CreateAddress returns a fresh random address. Used by tests and by genesis
// setup when the config leaves the vault address empty.
func CreateAddress() (Address, error) {
	var b [AddressSize]byte
	if _, err := rand.Read(b[:]); err != nil {
		return Address{}, err
	}
	return BytesToAddress(b[:])
}

func (addr *Address) SetBytes(b []byte) error {
	if length := len(b); length != AddressSize {
		return fmt.Errorf("wrong address length %d", length)
	}
	copy(addr[:], b)
	return nil
}

func (addr Address) Hex() string {
	return AddressPrefix + hex.EncodeToString(addr[:]) + hex.EncodeToString(checksum(addr[:]))
}
func (addr Address) Bytes() []byte { return addr[:] }
func (addr Address) String() string {
	return addr.Hex()
}

func (addr Address) IsZero() bool {
	return addr == ZERO_ADDRESS
}

func (addr *Address) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' || input[len(input)-1] != '"' {
		return ErrJsonNotString
	}
	parsed, err := HexToAddress(string(input[1 : len(input)-1]))
	if err != nil {
		return err
	}
	*addr = parsed
	return nil
}

func (addr Address) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

func checksum(body []byte) []byte {
	d, _ := blake2b.New(addressChecksumSize, nil)
	d.Write(body)
	return d.Sum(nil)
}

func decodeBody(hexStr string) (Address, error) {
	var b Address
	_, err := hex.Decode(b[:], []byte(hexStr[addressPrefixLen:addressPrefixLen+2*AddressSize]))
	return b, err
}

func decodeChecksum(hexStr string) ([addressChecksumSize]byte, error) {
	var b [addressChecksumSize]byte
	_, err := hex.Decode(b[:], []byte(hexStr[addressPrefixLen+2*AddressSize:]))
	return b, err
}
