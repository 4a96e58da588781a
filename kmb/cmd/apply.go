/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/sap/manifest-enricher/internal/metrics"
	"github.com/sap/manifest-enricher/pkg/cluster"
	"github.com/sap/manifest-enricher/pkg/types"
)

const applyUsage = `Apply the enriched resource list of a project to a Kubernetes cluster

Objects are applied in order, using server-side apply (with field owner kmb).
Namespaced objects without namespace are applied to the namespace of the kubeconfig context (or --namespace).`

type applyOptions struct {
	dryRun bool
}

func newApplyCmd(rootOptions *rootOptions) *cobra.Command {
	options := &applyOptions{}

	cmd := &cobra.Command{
		Use:          "apply",
		Short:        "Apply resources",
		Long:         applyUsage,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			log := log.FromContext(ctx)

			p, err := rootOptions.newPipeline()
			if err != nil {
				return err
			}
			objects, err := p.Resources(ctx)
			if err != nil {
				return err
			}

			clnt, err := getClient(rootOptions.configFlags)
			if err != nil {
				return types.NewExternalServiceError(err, "connecting to cluster")
			}

			applyOptions := []client.PatchOption{client.FieldOwner(cluster.FieldOwner), client.ForceOwnership}
			if options.dryRun {
				applyOptions = append(applyOptions, client.DryRunAll)
			}
			for _, object := range objects {
				content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(object)
				if err != nil {
					return err
				}
				obj := &unstructured.Unstructured{Object: content}
				unstructured.RemoveNestedField(obj.Object, "metadata", "creationTimestamp")
				unstructured.RemoveNestedField(obj.Object, "status")
				namespaced, err := clnt.IsObjectNamespaced(obj)
				if err != nil {
					return types.NewExternalServiceError(err, fmt.Sprintf("looking up scope of %s", types.ObjectKeyToString(obj)))
				}
				if namespaced && obj.GetNamespace() == "" {
					obj.SetNamespace(clnt.Namespace())
				}
				log.Info("Applying object", "object", types.ObjectKeyToString(obj))
				if err := clnt.Patch(ctx, obj, client.Apply, applyOptions...); err != nil {
					return types.NewExternalServiceError(err, fmt.Sprintf("applying %s", types.ObjectKeyToString(obj)))
				}
				metrics.ClusterOperations.WithLabelValues(obj.GetKind(), "apply").Inc()
			}

			fmt.Fprintf(c.OutOrStdout(), "%d objects successfully applied\n", len(objects))
			return nil
		},
		ValidArgsFunction: func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&options.dryRun, "dry-run", false, "Submit server-side dry-run requests only")

	return cmd
}
