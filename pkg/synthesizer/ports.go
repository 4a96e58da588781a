/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package synthesizer

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	corev1 "k8s.io/api/core/v1"
)

var wellKnownPortNames = map[int32]string{
	80:   "http",
	443:  "https",
	8080: "http",
	8443: "https",
	8778: "jolokia",
	9779: "prometheus",
}

// Return the conventional name of the given port number, or the empty string if there is none.
func WellKnownPortName(port int32) string {
	return wellKnownPortNames[port]
}

// Parse an exposed image port, such as '8080' or '53/udp'; the protocol defaults to TCP.
func ParsePort(spec string) (int32, corev1.Protocol, error) {
	number, protocol, found := strings.Cut(strings.TrimSpace(spec), "/")
	port, err := cast.ToInt32E(number)
	if err != nil || port <= 0 || port > 65535 {
		return 0, "", fmt.Errorf("invalid port: %s", spec)
	}
	if !found {
		return port, corev1.ProtocolTCP, nil
	}
	switch p := corev1.Protocol(strings.ToUpper(protocol)); p {
	case corev1.ProtocolTCP, corev1.ProtocolUDP, corev1.ProtocolSCTP:
		return port, p, nil
	default:
		return 0, "", fmt.Errorf("invalid protocol in port: %s", spec)
	}
}
