/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package templatex

import "bytes"

// Replace the '<no value>' markers the template engine writes for missing keys by the empty string
// (the same way Helm does it).
func AdjustTemplateOutput(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte("<no value>"), []byte(""))
}
