package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressValid(t *testing.T) {
	fakeAddr := "1231231"
	if IsValidHexAddress(fakeAddr) {
		t.Fail()
	}

	fakeAddr = "rbx_bcdc5b9dd0ed0de7de2f0e97c36638e108aa64a2bedc22c0e7ab"
	if IsValidHexAddress(fakeAddr) {
		t.Fail()
	}

	fakeAddr = "abc_bcdc5b9dd0ed0de7de2f0e97c36638e108aa64a2bedc22c0e6"
	if IsValidHexAddress(fakeAddr) {
		t.Fail()
	}

	real, err := CreateAddress()
	if err != nil {
		t.Error(err)
		t.FailNow()
	}

	if !IsValidHexAddress(real.String()) {
		t.Fail()
	}

	// corrupt the checksum tail
	s := real.String()
	tail := byte('0')
	if s[len(s)-1] == '0' {
		tail = '1'
	}
	if IsValidHexAddress(s[:len(s)-1] + string(tail)) {
		t.Fail()
	}
}

func TestHexToAddress(t *testing.T) {
	addr, err := CreateAddress()
	assert.NoError(t, err)

	parsed, err := HexToAddress(addr.Hex())
	assert.NoError(t, err)
	assert.Equal(t, addr, parsed)

	_, err = HexToAddress("rbx_0000")
	assert.Error(t, err)
}

func TestAddress_SetBytes(t *testing.T) {
	var addr Address
	if err := addr.SetBytes(make([]byte, AddressSize+1)); err == nil {
		t.Fail()
	}
	b := make([]byte, AddressSize)
	b[0] = 7
	if err := addr.SetBytes(b); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, b, addr.Bytes())
	assert.False(t, addr.IsZero())
	assert.True(t, ZERO_ADDRESS.IsZero())
}

func TestAddress_UnmarshalJSON(t *testing.T) {
	addr0, _ := CreateAddress()
	marshal, _ := json.Marshal(addr0)
	var addr Address
	e := json.Unmarshal(marshal, &addr)
	if e != nil {
		t.Fatal(e)
	}
	assert.Equal(t, addr0.String(), addr.String())

	e = json.Unmarshal([]byte("12"), &addr)
	assert.Equal(t, ErrJsonNotString, e)
}

func BenchmarkCreateAddress(b *testing.B) {
	addr, _ := CreateAddress()
	println(addr.Hex())
}
