package timelock

import (
	"context"
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextBlockValues(t *testing.T) {
	Convey("Given an empty context", t, func() {
		ctx := context.Background()

		Convey("nothing about the block is known", func() {
			_, ok := GetHeight(ctx)
			So(ok, ShouldBeFalse)
			_, ok = GetHeader(ctx)
			So(ok, ShouldBeFalse)
			_, ok = BlockTime(ctx)
			So(ok, ShouldBeFalse)
			So(func() { GetChainID(ctx) }, ShouldPanic)
			So(GetLogger(ctx), ShouldEqual, DefaultLogger)
		})

		Convey("block values are set once", func() {
			unlock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			ctx = WithHeight(ctx, 42)
			ctx = WithHeader(ctx, abci.Header{Height: 42, ChainID: "timelock-test", Time: unlock})
			ctx = WithChainID(ctx, "timelock-test")

			h, ok := GetHeight(ctx)
			So(ok, ShouldBeTrue)
			So(h, ShouldEqual, int64(42))
			bt, ok := BlockTime(ctx)
			So(ok, ShouldBeTrue)
			So(bt, ShouldResemble, unlock)
			So(GetChainID(ctx), ShouldEqual, "timelock-test")

			So(func() { WithHeight(ctx, 43) }, ShouldPanic)
			So(func() { WithHeader(ctx, abci.Header{}) }, ShouldPanic)
			So(func() { WithChainID(ctx, "timelock-test") }, ShouldPanic)
		})

		Convey("an invalid chain id is rejected", func() {
			So(func() { WithChainID(ctx, "bad") }, ShouldPanic)
		})
	})
}

func TestContextLogger(t *testing.T) {
	Convey("Loggers can be replaced and extended", t, func() {
		logger := log.NewTMLogger(os.Stdout)
		ctx := WithHeight(WithLogger(context.Background(), logger), 7)
		So(GetLogger(ctx), ShouldEqual, logger)

		tagged := WithLogInfo(ctx, "module", "escrow")
		So(GetLogger(tagged), ShouldNotEqual, logger)

		h, _ := GetHeight(tagged)
		So(h, ShouldEqual, int64(7))
	})
}

func TestIsValidChainID(t *testing.T) {
	Convey("Chain ids", t, func() {
		for id, valid := range map[string]bool{
			"":                      false,
			"short":                 false,
			"timelock":              true,
			"tl_test-01":            true,
			"semi;colon":            false,
			"twenty-one-chars-long": false,
			"exactly-twenty-chars":  true,
		} {
			So(IsValidChainID(id), ShouldEqual, valid)
		}
	})
}
