/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sap/go-generics/slices"
	"github.com/spf13/cobra"

	kyaml "sigs.k8s.io/yaml"

	"github.com/sap/manifest-enricher/pkg/profile"
)

const profilesUsage = `List available profiles

Profiles are looked up in the resource directory first (files matching profiles*.yaml), then in the bundled profiles.
Profiles shadowed by a profile of the same name are not shown.`

type profilesOptions struct {
	outputFormat string
}

type profileDetails struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Enrichers  []string `json:"enrichers,omitempty"`
	Generators []string `json:"generators,omitempty"`
}

func newProfilesCmd(rootOptions *rootOptions) *cobra.Command {
	options := &profilesOptions{}

	cmd := &cobra.Command{
		Use:          "profiles",
		Short:        "List profiles",
		Long:         profilesUsage,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE: func(c *cobra.Command, args []string) error {
			return validateOutputFormat(options.outputFormat, "table", "yaml", "json")
		},
		RunE: func(c *cobra.Command, args []string) error {
			p, err := rootOptions.newPipeline()
			if err != nil {
				return err
			}
			located, err := p.Profiles().List()
			if err != nil {
				return err
			}
			profiles := slices.Collect(located, getProfileDetails)

			out := c.OutOrStdout()
			switch options.outputFormat {
			case "table":
				w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", "NAME", "LOCATION", "ENRICHERS", "GENERATORS")
				for _, details := range profiles {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", details.Name, details.Location, strings.Join(details.Enrichers, ","), strings.Join(details.Generators, ","))
				}
				return w.Flush()
			case "yaml":
				fmt.Fprintf(out, "%s", string(must(kyaml.Marshal(profiles))))
			case "json":
				fmt.Fprintf(out, "%s\n", string(must(json.MarshalIndent(profiles, "", "  "))))
			default:
				panic("this cannot happen")
			}
			return nil
		},
		ValidArgsFunction: func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&options.outputFormat, "output", "o", "table", "Output format; one of \"table\", \"yaml\" or \"json\"")

	return cmd
}

func getProfileDetails(located *profile.Located) *profileDetails {
	return &profileDetails{
		Name:       located.Profile.Name,
		Location:   located.Location,
		Enrichers:  located.Profile.Enricher.GetIncludes(),
		Generators: located.Profile.Generator.GetIncludes(),
	}
}
