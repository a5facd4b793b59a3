// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// root
	configFile string
	// root
	asciiOnly bool
	// strength, entropy, patterns
	inputFile string
	// strength, entropy
	interactive bool
	// strength
	denyCommon bool
	// strength
	workers int
	// strength
	pwned bool
	// strength
	exportFile string
	// strength
	overwrite bool
	// compare
	referenceFile string
	// compare
	candidates []string
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
	// serve
	maxUploadMB int64
)
