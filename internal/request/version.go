// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package request

import (
	"runtime/debug"
	"sync"
)

// UserAgent returns the User-Agent string sent by default with every request
// made by this package. It combines the module path and version from build
// information.
func UserAgent() string {
	once.Do(initVersion)
	return userAgent
}

var (
	once      sync.Once
	userAgent string
)

func initVersion() {
	const path = "go.astrophena.name/tgbot"
	ver := "devel"
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range append(bi.Deps, &bi.Main) {
			if dep.Path == path && dep.Version != "" && dep.Version != "(devel)" {
				ver = dep.Version
			}
		}
	}
	userAgent = "tgbot/" + ver + " (+https://" + path + ")"
}
