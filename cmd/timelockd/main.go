package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func init() {
	viper.SetEnvPrefix("TIMELOCK")
	viper.AutomaticEnv()
}
