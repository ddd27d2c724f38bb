// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command jcs canonicalizes JSON documents per RFC 8785.
package main

import "github.com/go-json-experiment/jcs/cmd/jcs/cmd"

func main() {
	cmd.Execute()
}
