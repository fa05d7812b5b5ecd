package timelock_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexadecimal address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := timelock.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", []byte("abcd")))
		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", b))
	})

	Convey("test nil address printing", t, func() {
		So(timelock.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test condition printing", t, func() {
		cond := timelock.NewCondition("escrow", "wallet", []byte{0xCA, 0xFE})

		So(cond.String(), ShouldEqual, "escrow/wallet/CAFE")
		So(cond.Validate(), ShouldBeNil)
	})
}

func TestConditionAddress(t *testing.T) {
	Convey("Given an escrow wallet condition", t, func() {
		owner := timelock.NewCondition("sigs", "ed25519", []byte("deployer")).Address()
		cond := timelock.NewCondition("escrow", "wallet", owner)

		Convey("the address has the standard length", func() {
			So(cond.Address(), ShouldHaveLength, timelock.AddressLength)
			So(cond.Address().Validate(), ShouldBeNil)
		})

		Convey("the address is deterministic", func() {
			again := timelock.NewCondition("escrow", "wallet", owner)
			So(cond.Address().Equals(again.Address()), ShouldBeTrue)
		})

		Convey("a different owner gets a different address", func() {
			other := timelock.NewCondition("sigs", "ed25519", []byte("wallet_1")).Address()
			So(cond.Address().Equals(timelock.NewCondition("escrow", "wallet", other).Address()), ShouldBeFalse)
		})

		Convey("the sections can be parsed back", func() {
			ext, typ, data, err := cond.Parse()
			So(err, ShouldBeNil)
			So(ext, ShouldEqual, "escrow")
			So(typ, ShouldEqual, "wallet")
			So([]byte(data), ShouldResemble, []byte(owner))
		})
	})

	Convey("Malformed conditions do not validate", t, func() {
		So(timelock.Condition("no/sections").Validate(), ShouldNotBeNil)
		So(timelock.NewCondition("x", "wallet", []byte{1}).Validate(), ShouldNotBeNil)
		So(timelock.NewCondition("escrow", "wallet", nil).Validate(), ShouldNotBeNil)
	})
}

func TestParseAddress(t *testing.T) {
	owner := timelock.Address("0123456789abcdefghij")
	ownerHex := fmt.Sprintf("%x", []byte(owner))
	ownerBech, err := owner.Bech32("tl")
	require.NoError(t, err)
	lock := timelock.NewCondition("escrow", "wallet", []byte("lock"))

	cases := map[string]struct {
		in      string
		want    timelock.Address
		wantErr *errors.Error
	}{
		"hex without prefix":      {in: ownerHex, want: owner},
		"hex with prefix":         {in: "hex:" + ownerHex, want: owner},
		"condition":               {in: "cond:escrow/wallet/6c6f636b", want: lock.Address()},
		"bech32":                  {in: "bech32:" + ownerBech, want: owner},
		"empty":                   {in: "", want: nil},
		"empty hex":               {in: "hex:", want: nil},
		"empty condition":         {in: "cond:", want: nil},
		"short hex":               {in: "hex:0a0b0c", wantErr: errors.ErrInput},
		"not hex":                 {in: "hex:wallet", wantErr: errors.ErrInput},
		"condition missing type":  {in: "cond:escrow/6c6f636b", wantErr: errors.ErrInput},
		"condition data not hex":  {in: "cond:escrow/wallet/lock", wantErr: errors.ErrInput},
		"condition short section": {in: "cond:x/wallet/6c6f636b", wantErr: errors.ErrInput},
		"broken bech32":           {in: "bech32:tl1notachecksum", wantErr: errors.ErrInput},
		"unsupported format":      {in: "base64:AAAA", wantErr: errors.ErrType},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := timelock.ParseAddress(tc.in)
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}

			// the JSON form accepts the same notation
			var fromJSON timelock.Address
			err = json.Unmarshal([]byte(`"`+tc.in+`"`), &fromJSON)
			require.True(t, tc.wantErr.Is(err), "unexpected json error: %+v", err)
			if tc.wantErr == nil {
				assert.True(t, reflect.DeepEqual(tc.want, fromJSON), "got %v", fromJSON)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := timelock.Address("0123456789abcdefghij")
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+fmt.Sprintf("%X", []byte(addr))+`"`, string(raw))

	var back timelock.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, addr.Equals(back))
}

func TestConditionJSON(t *testing.T) {
	lock := timelock.NewCondition("escrow", "wallet", []byte("lock"))

	Convey("Encoding a condition", t, func() {
		raw, err := json.Marshal(lock)
		So(err, ShouldBeNil)
		So(string(raw), ShouldEqual, `"escrow/wallet/6C6F636B"`)

		raw, err = json.Marshal(timelock.Condition(nil))
		So(err, ShouldBeNil)
		So(string(raw), ShouldEqual, `""`)
	})

	Convey("Decoding a condition", t, func() {
		var got timelock.Condition
		So(json.Unmarshal([]byte(`"escrow/wallet/6c6f636b"`), &got), ShouldBeNil)
		So(got.Equals(lock), ShouldBeTrue)

		So(json.Unmarshal([]byte(`""`), &got), ShouldBeNil)
		So(got, ShouldBeNil)

		err := json.Unmarshal([]byte(`"escrow/6c6f636b"`), &got)
		So(errors.ErrInput.Is(err), ShouldBeTrue)

		err = json.Unmarshal([]byte(`"escrow/wallet/lock"`), &got)
		So(errors.ErrInput.Is(err), ShouldBeTrue)
	})
}
