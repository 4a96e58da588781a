/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"github.com/spf13/cobra"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/sap/manifest-enricher/pkg/resources"
)

const resourceUsage = `Generate the enriched resource list of a project

Resource fragments from the resource directory are rendered, and enriched according to the selected profile.
The result is written as one List document.`

type resourceOptions struct {
	output string
}

func newResourceCmd(rootOptions *rootOptions) *cobra.Command {
	options := &resourceOptions{}

	cmd := &cobra.Command{
		Use:          "resource",
		Aliases:      []string{"resources"},
		Short:        "Generate resources",
		Long:         resourceUsage,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) (err error) {
			p, err := rootOptions.newPipeline()
			if err != nil {
				return err
			}
			objects, err := p.Resources(c.Context())
			if err != nil {
				return err
			}
			raw, err := resources.Encode(objects)
			if err != nil {
				return err
			}

			out, err := openOutput(options.output)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := out.Close(); closeErr != nil {
					err = utilerrors.NewAggregate([]error{err, closeErr})
				}
			}()
			_, err = out.Write(raw)
			return err
		},
		ValidArgsFunction: func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&options.output, "output", "o", "", "Output file (default is stdout)")

	return cmd
}
