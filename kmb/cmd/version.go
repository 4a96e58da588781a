/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	kyaml "sigs.k8s.io/yaml"

	"github.com/sap/manifest-enricher/internal/version"
)

const versionUsage = `Show Kubernetes manifest builder (kmb) version`

type versionOptions struct {
	outputFormat string
}

func newVersionCmd() *cobra.Command {
	options := &versionOptions{}

	cmd := &cobra.Command{
		Use:          "version",
		Short:        "Show version",
		Long:         versionUsage,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE: func(c *cobra.Command, args []string) error {
			return validateOutputFormat(options.outputFormat, "short", "yaml", "json")
		},
		Run: func(c *cobra.Command, args []string) {
			buildInfo := version.GetBuildInfo()
			out := c.OutOrStdout()
			switch options.outputFormat {
			case "short":
				fmt.Fprintf(out, "%s\n", buildInfo.Version)
			case "yaml":
				fmt.Fprintf(out, "%s", string(must(kyaml.Marshal(buildInfo))))
			case "json":
				fmt.Fprintf(out, "%s\n", string(must(json.MarshalIndent(buildInfo, "", "  "))))
			default:
				panic("this cannot happen")
			}
		},
		ValidArgsFunction: func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&options.outputFormat, "output", "o", "short", "Output format; one of \"short\", \"yaml\" or \"json\"")

	return cmd
}

func validateOutputFormat(outputFormat string, allowed ...string) error {
	for _, format := range allowed {
		if outputFormat == format {
			return nil
		}
	}
	return fmt.Errorf("invalid value for flag --%s: %s", "output", outputFormat)
}
