/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pure-storage/flasharray-deployment-manager/build"
	"github.com/pure-storage/flasharray-deployment-manager/controllers/manager"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

const (
	OutputFileNameArg      = "output-file"
	ArrayNameArg           = "array-name"
	NamespaceNameArg       = "namespace-name"
	WithDestroyedArg       = "with-destroyed"
	WithAllInterfacesArg   = "with-all-interfaces"
	WithDefaultMediatorArg = "with-default-mediator"
	PinRESTVersionArg      = "pin-rest-version"
)

// buildClient authenticates against the configured array endpoint.  It
// retries over plain HTTP when the endpoint was configured with an HTTPS
// scheme but the array does not have HTTPS enabled, mirroring the manager's
// own client setup.
func buildClient(ctx context.Context) (*flasharray.Client, error) {
	opts := flasharray.ClientOpts{
		Endpoint:         viper.GetString(EndpointArg),
		APIToken:         viper.GetString(APITokenArg),
		InsecureTLS:      viper.GetBool(InsecureArg),
		RequestedVersion: viper.GetString(RESTVersionArg),
	}

	if opts.Endpoint == "" {
		return nil, fmt.Errorf("an array endpoint must be provided with --%s or %s",
			EndpointArg, build.EndpointEnv)
	}
	if opts.APIToken == "" {
		return nil, fmt.Errorf("an API token must be provided with --%s or %s",
			APITokenArg, build.APITokenEnv)
	}

	client, err := flasharray.NewClient(ctx, opts)
	if err != nil {
		if strings.Contains(err.Error(), manager.HTTPSNotEnabled) && strings.HasPrefix(opts.Endpoint, manager.HTTPSPrefix) {
			_, _ = fmt.Fprintf(os.Stderr, "array is not HTTPS enabled; retrying over HTTP: %s\n",
				opts.Endpoint)

			opts.Endpoint = strings.Replace(opts.Endpoint, manager.HTTPSPrefix, manager.HTTPPrefix, 1)
			return flasharray.NewClient(ctx, opts)
		}

		return nil, err
	}

	return client, nil
}

func BuildCmdRun(cmd *cobra.Command, args []string) {
	var withDefaultMediator bool
	var withAllInterfaces bool
	var outputFile *os.File
	var pinRESTVersion bool
	var withDestroyed bool
	var namespace string
	var name string
	var err error

	if outputFilename, err := cmd.Flags().GetString(OutputFileNameArg); err == nil {
		outputFile, err = os.Create(outputFilename)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to open output file: %s\n",
				err.Error())
			os.Exit(1)
		}
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n",
			OutputFileNameArg)
		os.Exit(2)
	}

	if namespace, err = cmd.Flags().GetString(NamespaceNameArg); err == nil {
		if namespace == "" {
			_, _ = fmt.Fprintf(os.Stderr, "namespace name must not be blank\n")
			os.Exit(3)
		} else if strings.Contains(namespace, " ") || strings.Contains(namespace, "\t") {
			_, _ = fmt.Fprintf(os.Stderr, "namespace name must not contain whitespace characters\n")
			os.Exit(4)
		}

		// Kubernetes does not allow underscores in resource names.
		namespace = strings.Replace(namespace, "_", "-", -1)

	} else {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n",
			NamespaceNameArg)
		os.Exit(5)
	}

	if name, err = cmd.Flags().GetString(ArrayNameArg); err == nil {
		if name == "" {
			_, _ = fmt.Fprintf(os.Stderr, "array name must not be blank\n")
			os.Exit(6)
		} else if strings.Contains(name, " ") || strings.Contains(name, "\t") {
			_, _ = fmt.Fprintf(os.Stderr, "array name must not contain whitespace characters\n")
			os.Exit(7)
		}

		// Kubernetes does not allow underscores in resource names.
		name = strings.Replace(name, "_", "-", -1)

	} else {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n",
			ArrayNameArg)
		os.Exit(8)
	}

	if withDestroyed, err = cmd.Flags().GetBool(WithDestroyedArg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n",
			WithDestroyedArg)
		os.Exit(9)
	}

	if withAllInterfaces, err = cmd.Flags().GetBool(WithAllInterfacesArg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n",
			WithAllInterfacesArg)
		os.Exit(10)
	}

	if withDefaultMediator, err = cmd.Flags().GetBool(WithDefaultMediatorArg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n",
			WithDefaultMediatorArg)
		os.Exit(11)
	}

	if pinRESTVersion, err = cmd.Flags().GetBool(PinRESTVersionArg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n",
			PinRESTVersionArg)
		os.Exit(12)
	}

	ctx := context.Background()

	client, err := buildClient(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to authenticate with the array: %s\n", err.Error())
		os.Exit(30)
	}
	defer func() { _ = client.Logout(ctx) }()

	builder := build.NewDeploymentBuilder(client, namespace, name, os.Stdout)

	resourceFilters := make([]build.ResourceFilter, 0)

	if !withDestroyed {
		resourceFilters = append(resourceFilters, build.NewDestroyedResourceFilter())
	}

	if !withAllInterfaces {
		resourceFilters = append(resourceFilters, build.NewUnconfiguredInterfaceFilter())
	}

	if !withDefaultMediator {
		resourceFilters = append(resourceFilters, build.NewDefaultMediatorFilter())
	}

	if len(resourceFilters) > 0 {
		builder.AddResourceFilters(resourceFilters)
	}

	if pinRESTVersion {
		builder.AddArrayFilters([]build.ArrayFilter{
			build.NewRESTVersionFilter(client.APIVersion.String())})
	}

	deployment, err := builder.Build()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to build deployment details: %s\n", err.Error())
		os.Exit(40)
	}

	yamlBuf, err := deployment.ToYAML()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to convert deployment struct to YAML: %s\n", err.Error())
		os.Exit(41)
	}

	_, err = fmt.Fprintf(outputFile, "# Generated: %s\n# Tool version: %s\n",
		time.Now().Format(time.UnixDate),
		VersionToString())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to write to output file: %s\n", err.Error())
		os.Exit(42)
	}

	_, err = fmt.Fprintf(outputFile, "%s", yamlBuf)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to write to output file: %s\n", err.Error())
		os.Exit(42)
	}

	err = outputFile.Close()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to close output file: %s\n", err.Error())
		os.Exit(43)
	}

	fmt.Printf("done.\n")

	if len(deployment.IncompleteSecrets) != 0 {
		fmt.Printf("\nWarning: The generated deployment configuration contains kubernetes\n")
		fmt.Printf("  Secrets that must be manually edited to add information that is not\n")
		fmt.Printf("  retrievable from the array.  For example, any certificate Secrets\n")
		fmt.Printf("  must be edited to add the private key, and any directory service\n")
		fmt.Printf("  Secrets must be edited to add the bind password.  Any such\n")
		fmt.Printf("  information must be added in base64 encoded format.\n")
		os.Exit(44)
	}
}

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "The build subcommand extracts the configuration from a running array",
	Long: `The build subcommand extracts the configuration from a running array.
The yaml output from this tool must be manually verified and updated to fill-in
fields that are otherwise not automatically settable (i.e., private keys and
bind passwords).  This command requires that the array credentials be provided
either as flags or as environment variables.`,
	Run: BuildCmdRun,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP(OutputFileNameArg, "o", "deployment-config.yaml", "A destination path used for output.")
	buildCmd.Flags().StringP(ArrayNameArg, "s", "", "The name of the storage array resource to be created")
	buildCmd.Flags().StringP(NamespaceNameArg, "n", "deployment", "The name of the namespace used to contain the array")
	buildCmd.Flags().Bool(WithDestroyedArg, false, "Include resources that are pending eradication")
	buildCmd.Flags().Bool(WithAllInterfacesArg, false, "Include unconfigured physical network interfaces")
	buildCmd.Flags().Bool(WithDefaultMediatorArg, false, "Keep the default mediator on exported pods")
	buildCmd.Flags().Bool(PinRESTVersionArg, false, "Pin the exported array to the negotiated REST API version")
}
