package main

import "fmt"

// version is stamped by the release build; the default marks dev builds.
const version = "0.1.0-dev"

func runVersion() {
	fmt.Println("cuebridge " + version)
}
