/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/sap/manifest-enricher/internal/backoff"
	"github.com/sap/manifest-enricher/pkg/build"
	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/types"
)

const buildUsage = `Build the images of a project

In kubernetes mode, images are built by the local docker daemon (configured through DOCKER_HOST etc.).
In openshift mode, binary builds are started on the cluster (configured through the kubeconfig flags),
creating the required BuildConfig and ImageStream resources if missing.`

const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 30 * time.Second
)

type buildOptions struct {
	mode     string
	recreate string
	retries  int
}

func newBuildCmd(rootOptions *rootOptions) *cobra.Command {
	options := &buildOptions{}

	cmd := &cobra.Command{
		Use:          "build",
		Short:        "Build images",
		Long:         buildUsage,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			log := log.FromContext(ctx)

			namespace := ""
			if rootOptions.configFlags.Namespace != nil {
				namespace = *rootOptions.configFlags.Namespace
			}
			plan, err := build.NewBuildPlan(options.mode, options.recreate, namespace)
			if err != nil {
				return err
			}

			p, err := rootOptions.newPipeline()
			if err != nil {
				return err
			}
			if p.Descriptor().Project.Packaging == project.PackagingPom {
				log.Info("Skipping build (pom packaging)")
				return nil
			}
			images, err := p.Images(ctx)
			if err != nil {
				return err
			}

			var dispatcher *build.Dispatcher
			switch plan.Mode() {
			case build.PlatformModeKubernetes:
				local, err := build.NewDockerBuilderFromEnv(c.ErrOrStderr())
				if err != nil {
					return types.NewExternalServiceError(err, "connecting to docker daemon")
				}
				dispatcher = build.NewDispatcher(plan, build.NewDirArchiver(), local, nil)
			case build.PlatformModeOpenShift:
				clnt, err := getClient(rootOptions.configFlags)
				if err != nil {
					return types.NewExternalServiceError(err, "connecting to cluster")
				}
				dispatcher = build.NewDispatcher(plan, build.NewDirArchiver(), nil, build.NewOpenShiftCluster(clnt))
			default:
				panic("this cannot happen")
			}

			retryBackoff := backoff.NewBackoff(retryBaseDelay, retryMaxDelay)
			for _, image := range images {
				if image.Build == nil {
					log.V(1).Info("Skipping image without build configuration", "name", image.Name)
					continue
				}
				if err := retryBackoff.Retry(ctx, image.Name, options.retries, isRetriable, func() error {
					return dispatcher.Build(ctx, image)
				}); err != nil {
					return err
				}
				log.Info("Built image", "name", image.Name)
			}
			return nil
		},
		ValidArgsFunction: func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&options.mode, "mode", string(build.PlatformModeKubernetes), "Build mode; one of \"kubernetes\" or \"openshift\"")
	flags.StringVar(&options.recreate, "recreate", "none", "Build resources to recreate in openshift mode; one of \"none\", \"buildConfig\", \"imageStream\" or \"all\" (can be combined with ',')")
	flags.IntVar(&options.retries, "retries", 0, "Number of retries of failing image builds")

	if err := cmd.RegisterFlagCompletionFunc("mode", func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(build.PlatformModeKubernetes), string(build.PlatformModeOpenShift)}, cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		panic(err)
	}

	return cmd
}

// Only failures of external services are retried; configuration and capability errors are final.
func isRetriable(err error) bool {
	var externalErr types.ExternalServiceError
	return errors.As(err, &externalErr)
}
