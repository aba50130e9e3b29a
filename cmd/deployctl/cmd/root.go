/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pure-storage/flasharray-deployment-manager/build"
)

const (
	EndpointArg    = "endpoint"
	APITokenArg    = "api-token"
	InsecureArg    = "insecure"
	RESTVersionArg = "rest-version"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deployctl",
	Short: "A utility to export and analyze running arrays.",
	Long: `This is a helper tool which is intended to be used as a companion
application to the deployment manager.  The intent is that this can be used
to extract the configuration of a running array in order to build a
deployment model that can then later be used to provision the target array
or any other array.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.deployctl.yaml)")
	rootCmd.PersistentFlags().String(EndpointArg, "", "The array management endpoint URL")
	rootCmd.PersistentFlags().String(APITokenArg, "", "The API token used to authenticate with the array")
	rootCmd.PersistentFlags().Bool(InsecureArg, true, "Skip server certificate verification")
	rootCmd.PersistentFlags().String(RESTVersionArg, "", "Pin the REST API version rather than negotiating the newest")

	_ = viper.BindPFlag(EndpointArg, rootCmd.PersistentFlags().Lookup(EndpointArg))
	_ = viper.BindPFlag(APITokenArg, rootCmd.PersistentFlags().Lookup(APITokenArg))
	_ = viper.BindPFlag(InsecureArg, rootCmd.PersistentFlags().Lookup(InsecureArg))
	_ = viper.BindPFlag(RESTVersionArg, rootCmd.PersistentFlags().Lookup(RESTVersionArg))

	_ = viper.BindEnv(EndpointArg, build.EndpointEnv)
	_ = viper.BindEnv(APITokenArg, build.APITokenEnv)
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".deployctl")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
