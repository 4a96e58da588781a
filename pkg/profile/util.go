/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package profile

func must[T any](x T, err error) T {
	if err != nil {
		panic(err)
	}
	return x
}
