/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/sap/go-generics/slices"
	"github.com/spf13/cobra"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/sap/manifest-enricher/kmb/internal/pipeline"
	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/project"
)

const shortName = "kmb"

const rootUsage = `A Kubernetes manifest builder

Common actions for kmb:
- kmb resource           Generate the enriched resource list of a project
- kmb build              Build the images of a project
- kmb apply              Apply the enriched resource list to a Kubernetes cluster
- kmb profiles           List available profiles
`

type rootOptions struct {
	configFlags *genericclioptions.ConfigFlags
	descriptor  string
	resourceDir string
	profile     string
	properties  []string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	options := &rootOptions{
		configFlags: genericclioptions.NewConfigFlags(true),
	}

	cmd := &cobra.Command{
		Use:          shortName,
		Short:        "A Kubernetes manifest builder",
		Long:         rootUsage,
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			logger := zap.New(zap.UseDevMode(options.verbose))
			log.SetLogger(logger)
			c.SetContext(logr.NewContext(c.Context(), logger))
		},
	}

	cmd.Flags().SortFlags = false
	flags := cmd.PersistentFlags()
	flags.StringVar(&options.descriptor, "descriptor", project.DefaultDescriptorFilename, "Path to the build descriptor")
	flags.StringVar(&options.resourceDir, "resource-dir", "", "Resource directory (overrides the resource directory of the build descriptor)")
	flags.StringVar(&options.profile, "profile", "", "Profile to use (overrides the profile of the build descriptor)")
	flags.StringArrayVarP(&options.properties, "define", "D", nil, "System property in the form key=value (can be repeated)")
	flags.BoolVarP(&options.verbose, "verbose", "v", false, "Enable debug logging")
	options.configFlags.AddFlags(flags)

	if err := cmd.RegisterFlagCompletionFunc("namespace", func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if clnt, err := getClient(options.configFlags); err == nil {
			namespaceList := &corev1.NamespaceList{}
			ctx, cancel := context.WithTimeout(context.TODO(), 3*time.Second)
			defer cancel()
			if err := clnt.List(ctx, namespaceList); err == nil {
				return slices.Collect(namespaceList.Items, func(namespace corev1.Namespace) string { return namespace.Name }), cobra.ShellCompDirectiveNoFileComp
			}
		}
		return nil, cobra.ShellCompDirectiveDefault
	}); err != nil {
		panic(err)
	}

	cmd.AddCommand(
		newVersionCmd(),
		newResourceCmd(options),
		newBuildCmd(options),
		newApplyCmd(options),
		newProfilesCmd(options),
	)

	return cmd
}

// Load the build descriptor and create the pipeline according to the global flags.
func (o *rootOptions) newPipeline() (*pipeline.Pipeline, error) {
	systemProperties, err := parseProperties(o.properties)
	if err != nil {
		return nil, err
	}
	descriptor, err := project.LoadDescriptor(o.descriptor)
	if err != nil {
		return nil, err
	}
	return pipeline.New(descriptor, pipeline.Options{
		ResourceDir:      o.resourceDir,
		Profile:          o.profile,
		SystemProperties: systemProperties,
	}), nil
}

func parseProperties(properties []string) (config.PropertiesMap, error) {
	result := make(config.PropertiesMap, len(properties))
	for _, property := range properties {
		key, value, ok := strings.Cut(property, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid value for flag --%s: %s", "define", property)
		}
		if !ok {
			value = "true"
		}
		result[key] = value
	}
	return result, nil
}

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
